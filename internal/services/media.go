package services

import (
  "context"
  "encoding/json"
  "fmt"
  "io"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

const TableMediaAsset = "media_asset"

type MediaService interface {
  Upload(ctx context.Context, businessID uuid.UUID, fileName, contentType string, size int64, file io.Reader) (*types.MediaAsset, error)
  List(ctx context.Context, businessID uuid.UUID) ([]*types.MediaAsset, error)
  Remove(ctx context.Context, businessID uuid.UUID, bucketKeys []string) error
}

type mediaService struct {
  db            *gorm.DB
  log           *logger.Logger
  bucketService BucketService
  mediaRepo     repos.MediaAssetRepo
  hub           *realtime.Hub
}

func NewMediaService(db *gorm.DB, log *logger.Logger, bucketService BucketService, mediaRepo repos.MediaAssetRepo, hub *realtime.Hub) MediaService {
  serviceLog := log.With("service", "MediaService")
  return &mediaService{db: db, log: serviceLog, bucketService: bucketService, mediaRepo: mediaRepo, hub: hub}
}

func (ms *mediaService) Upload(ctx context.Context, businessID uuid.UUID, fileName, contentType string, size int64, file io.Reader) (*types.MediaAsset, error) {
  if businessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if fileName == "" {
    return nil, errs.InvalidArgumentf("file name required")
  }
  if ms.bucketService == nil {
    return nil, fmt.Errorf("bucket service not configured")
  }

  // Versioned key so a CDN never serves a stale object for a re-upload.
  key := fmt.Sprintf("business_media/%s/%d_%s", businessID.String(), time.Now().UnixNano(), fileName)
  if err := ms.bucketService.UploadFile(ctx, key, file, contentType, true); err != nil {
    return nil, err
  }

  asset := &types.MediaAsset{
    BusinessID:  businessID,
    BucketKey:   key,
    FileName:    fileName,
    ContentType: contentType,
    SizeBytes:   size,
    PublicURL:   ms.bucketService.GetPublicURL(key),
  }
  created, err := ms.mediaRepo.Create(ctx, nil, asset)
  if err != nil {
    // Keep the bucket consistent with the table when the row write fails.
    if delErr := ms.bucketService.DeleteFiles(ctx, []string{key}); delErr != nil {
      ms.log.Warn("orphaned bucket object after failed asset insert", "key", key, "error", delErr)
    }
    return nil, err
  }
  if ms.hub != nil {
    raw, _ := json.Marshal(created)
    ms.hub.Publish(ctx, realtime.ChangeEvent{
      Type:      realtime.EventInsert,
      Table:     TableMediaAsset,
      SubjectID: created.BusinessID,
      RecordID:  created.ID,
      New:       raw,
    })
  }
  return created, nil
}

func (ms *mediaService) List(ctx context.Context, businessID uuid.UUID) ([]*types.MediaAsset, error) {
  if businessID == uuid.Nil {
    return []*types.MediaAsset{}, nil
  }
  return ms.mediaRepo.ListByBusiness(ctx, nil, businessID)
}

func (ms *mediaService) Remove(ctx context.Context, businessID uuid.UUID, bucketKeys []string) error {
  if businessID == uuid.Nil {
    return errs.InvalidArgumentf("business id required")
  }
  if len(bucketKeys) == 0 {
    return nil
  }
  assets := make([]*types.MediaAsset, 0, len(bucketKeys))
  for _, key := range bucketKeys {
    asset, err := ms.mediaRepo.GetByKey(ctx, nil, key)
    if err != nil {
      return err
    }
    if asset.BusinessID != businessID {
      return errs.ErrNotFound
    }
    assets = append(assets, asset)
  }
  if err := ms.bucketService.DeleteFiles(ctx, bucketKeys); err != nil {
    return &errs.WriteError{Op: "media.remove_objects", Err: err}
  }
  if err := ms.mediaRepo.DeleteByKeys(ctx, nil, bucketKeys); err != nil {
    return err
  }
  if ms.hub != nil {
    for _, asset := range assets {
      raw, _ := json.Marshal(asset)
      ms.hub.Publish(ctx, realtime.ChangeEvent{
        Type:      realtime.EventDelete,
        Table:     TableMediaAsset,
        SubjectID: businessID,
        RecordID:  asset.ID,
        Old:       raw,
      })
    }
  }
  return nil
}
