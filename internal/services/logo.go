package services

import (
  "bytes"
  "context"
  "fmt"
  "hash/fnv"
  "image/color"
  "os"
  "strings"
  "time"
  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/font"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

const logoSize = 512

// LogoService renders an initials placeholder for businesses that have
// not uploaded a logo yet.
type LogoService interface {
  CreateAndUploadLogo(ctx context.Context, business *types.Business) error
  RenderLogo(business *types.Business) (bytes.Buffer, error)
}

type logoService struct {
  db            *gorm.DB
  log           *logger.Logger
  businessRepo  repos.BusinessRepo
  bucketService BucketService
  bgColors      []color.NRGBA
  fontFace      font.Face
}

func NewLogoService(db *gorm.DB, log *logger.Logger, businessRepo repos.BusinessRepo, bucketService BucketService) (LogoService, error) {
  serviceLog := log.With("service", "LogoService")

  fontPath := strings.TrimSpace(os.Getenv("LOGO_FONT"))
  if fontPath == "" {
    return nil, fmt.Errorf("Env var LOGO_FONT is empty")
  }
  face, err := loadFontFace(fontPath, 206)
  if err != nil {
    return nil, fmt.Errorf("could not load logo font: %w", err)
  }

  return &logoService{
    db:            db,
    log:           serviceLog,
    businessRepo:  businessRepo,
    bucketService: bucketService,
    bgColors: []color.NRGBA{
      {R: 0x1d, G: 0x4e, B: 0x89, A: 0xff},
      {R: 0x0e, G: 0x7c, B: 0x7b, A: 0xff},
      {R: 0x7c, G: 0x3a, B: 0xed, A: 0xff},
      {R: 0xc2, G: 0x41, B: 0x0c, A: 0xff},
      {R: 0x15, G: 0x80, B: 0x3d, A: 0xff},
      {R: 0xbe, G: 0x18, B: 0x5d, A: 0xff},
    },
    fontFace: face,
  }, nil
}

func (ls *logoService) CreateAndUploadLogo(ctx context.Context, business *types.Business) error {
  if business == nil {
    return errs.InvalidArgumentf("business required")
  }

  buf, err := ls.RenderLogo(business)
  if err != nil {
    return err
  }

  oldKey := strings.TrimSpace(business.LogoBucketKey)

  // Versioned key so CDNs don't serve the replaced logo.
  newKey := fmt.Sprintf("business_logo/%s/%d.png", business.ID.String(), time.Now().UnixNano())
  if err := ls.bucketService.UploadFile(ctx, newKey, bytes.NewReader(buf.Bytes()), "image/png", true); err != nil {
    return fmt.Errorf("failed to upload business logo: %w", err)
  }

  updates := map[string]interface{}{
    "logo_bucket_key": newKey,
    "logo_url":        ls.bucketService.GetPublicURL(newKey),
  }
  updated, err := ls.businessRepo.Update(ctx, nil, business.ID, updates)
  if err != nil {
    return err
  }
  business.LogoBucketKey = updated.LogoBucketKey
  business.LogoURL = updated.LogoURL

  if oldKey != "" && oldKey != newKey {
    if err := ls.bucketService.DeleteFiles(ctx, []string{oldKey}); err != nil {
      ls.log.Warn("failed to delete old logo (ignored)", "oldKey", oldKey, "error", err)
    }
  }
  return nil
}

func (ls *logoService) RenderLogo(business *types.Business) (bytes.Buffer, error) {
  var buf bytes.Buffer
  if business == nil {
    return buf, errs.InvalidArgumentf("business required")
  }

  bg := ls.bgColors[colorIndex(business.ID.String(), len(ls.bgColors))]
  dc := gg.NewContext(logoSize, logoSize)
  dc.SetColor(bg)
  dc.Clear()

  dc.SetFontFace(ls.fontFace)
  dc.SetRGB(1, 1, 1)
  dc.DrawStringAnchored(initials(business.Name), logoSize/2, logoSize/2, 0.5, 0.5)

  if err := dc.EncodePNG(&buf); err != nil {
    return buf, fmt.Errorf("failed to encode logo: %w", err)
  }
  return buf, nil
}

func initials(name string) string {
  fields := strings.Fields(strings.TrimSpace(name))
  switch len(fields) {
  case 0:
    return "?"
  case 1:
    runes := []rune(fields[0])
    return strings.ToUpper(string(runes[0]))
  default:
    first := []rune(fields[0])
    last := []rune(fields[len(fields)-1])
    return strings.ToUpper(string(first[0]) + string(last[0]))
  }
}

// colorIndex keeps logo colors stable across regenerations.
func colorIndex(seed string, n int) int {
  h := fnv.New32a()
  _, _ = h.Write([]byte(seed))
  return int(h.Sum32() % uint32(n))
}

func loadFontFace(path string, points float64) (font.Face, error) {
  raw, err := os.ReadFile(path)
  if err != nil {
    return nil, err
  }
  parsed, err := truetype.Parse(raw)
  if err != nil {
    return nil, err
  }
  return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}
