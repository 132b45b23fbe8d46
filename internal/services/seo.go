package services

import (
  "context"
  "encoding/json"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

const TableSEOSettings = "seo_settings"

type SEOService interface {
  GetSettings(ctx context.Context, businessID uuid.UUID) (*types.SEOSettings, error)
  UpsertSettings(ctx context.Context, settings *types.SEOSettings) (*types.SEOSettings, error)
}

type seoService struct {
  db      *gorm.DB
  log     *logger.Logger
  seoRepo repos.SEOSettingsRepo
  hub     *realtime.Hub
}

func NewSEOService(db *gorm.DB, log *logger.Logger, seoRepo repos.SEOSettingsRepo, hub *realtime.Hub) SEOService {
  serviceLog := log.With("service", "SEOService")
  return &seoService{db: db, log: serviceLog, seoRepo: seoRepo, hub: hub}
}

// GetSettings returns an empty default instead of ErrNotFound so a
// business that never saved settings still renders a form.
func (ss *seoService) GetSettings(ctx context.Context, businessID uuid.UUID) (*types.SEOSettings, error) {
  if businessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  settings, err := ss.seoRepo.GetByBusiness(ctx, nil, businessID)
  if err != nil {
    if errors.Is(err, errs.ErrNotFound) {
      return &types.SEOSettings{BusinessID: businessID}, nil
    }
    return nil, err
  }
  return settings, nil
}

func (ss *seoService) UpsertSettings(ctx context.Context, settings *types.SEOSettings) (*types.SEOSettings, error) {
  if settings == nil {
    return nil, errs.InvalidArgumentf("settings required")
  }
  if settings.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }

  saved, err := ss.seoRepo.Upsert(ctx, nil, settings)
  if err != nil {
    return nil, err
  }
  if ss.hub != nil {
    raw, _ := json.Marshal(saved)
    ss.hub.Publish(ctx, realtime.ChangeEvent{
      Type:      realtime.EventUpdate,
      Table:     TableSEOSettings,
      SubjectID: saved.BusinessID,
      RecordID:  saved.ID,
      New:       raw,
    })
  }
  return saved, nil
}
