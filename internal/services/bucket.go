package services

import (
  "context"
  "fmt"
  "io"
  "os"
  "time"
  "cloud.google.com/go/storage"
  "google.golang.org/api/iterator"
  "google.golang.org/api/option"
  "github.com/WeBoost/aurora-backend/internal/logger"
)

// StoredObject is one listed object.
type StoredObject struct {
  Name        string    `json:"name"`
  Size        int64     `json:"size"`
  ContentType string    `json:"content_type"`
  Updated     time.Time `json:"updated"`
}

type BucketService interface {
  UploadFile(ctx context.Context, key string, file io.Reader, contentType string, upsert bool) error
  DeleteFiles(ctx context.Context, keys []string) error
  ListFiles(ctx context.Context, prefix string) ([]StoredObject, error)
  GetPublicURL(key string) string
}

type bucketService struct {
  log           *logger.Logger
  storageClient *storage.Client
  bucketName    string
  cdnDomain     string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
  serviceLog := log.With("service", "BucketService")
  bucket := os.Getenv("GCS_BUCKET_NAME")
  if bucket == "" {
    return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
  }
  cdnDomain := os.Getenv("CDN_DOMAIN")
  saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
  if saPath == "" {
    serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ADC...")
  }
  ctx := context.Background()
  var stClient *storage.Client
  var err error
  if saPath != "" {
    stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
  } else {
    stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
  }
  if err != nil {
    return nil, fmt.Errorf("Failed to create storage client: %w", err)
  }
  return &bucketService{
    log:           serviceLog,
    storageClient: stClient,
    bucketName:    bucket,
    cdnDomain:     cdnDomain,
  }, nil
}

func (bs *bucketService) UploadFile(ctx context.Context, key string, file io.Reader, contentType string, upsert bool) error {
  ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
  defer cancel()
  obj := bs.storageClient.Bucket(bs.bucketName).Object(key)
  if !upsert {
    obj = obj.If(storage.Conditions{DoesNotExist: true})
  }
  w := obj.NewWriter(ctx)
  if contentType != "" {
    w.ContentType = contentType
  }
  if _, err := io.Copy(w, file); err != nil {
    _ = w.Close()
    return fmt.Errorf("Failed to write data to GCS: %w", err)
  }
  if err := w.Close(); err != nil {
    return fmt.Errorf("Failed to close GCS writer: %w", err)
  }
  return nil
}

func (bs *bucketService) DeleteFiles(ctx context.Context, keys []string) error {
  ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
  defer cancel()
  for _, key := range keys {
    o := bs.storageClient.Bucket(bs.bucketName).Object(key)
    if err := o.Delete(ctx); err != nil {
      return fmt.Errorf("Failed to delete GCS object %q: %w", key, err)
    }
  }
  return nil
}

func (bs *bucketService) ListFiles(ctx context.Context, prefix string) ([]StoredObject, error) {
  ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
  defer cancel()
  it := bs.storageClient.Bucket(bs.bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
  var out []StoredObject
  for {
    attrs, err := it.Next()
    if err == iterator.Done {
      break
    }
    if err != nil {
      return nil, fmt.Errorf("Failed to list GCS objects with prefix %q: %w", prefix, err)
    }
    out = append(out, StoredObject{
      Name:        attrs.Name,
      Size:        attrs.Size,
      ContentType: attrs.ContentType,
      Updated:     attrs.Updated,
    })
  }
  return out, nil
}

func (bs *bucketService) GetPublicURL(key string) string {
  if bs.cdnDomain != "" {
    return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
  }
  return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
