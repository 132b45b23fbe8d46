package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type MediaAssetRepo interface {
  Create(ctx context.Context, tx *gorm.DB, asset *types.MediaAsset) (*types.MediaAsset, error)
  ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) ([]*types.MediaAsset, error)
  GetByKey(ctx context.Context, tx *gorm.DB, bucketKey string) (*types.MediaAsset, error)
  DeleteByKeys(ctx context.Context, tx *gorm.DB, bucketKeys []string) error
}

type mediaAssetRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMediaAssetRepo(db *gorm.DB, baseLog *logger.Logger) MediaAssetRepo {
  repoLog := baseLog.With("repo", "MediaAssetRepo")
  return &mediaAssetRepo{db: db, log: repoLog}
}

func (mr *mediaAssetRepo) Create(ctx context.Context, tx *gorm.DB, asset *types.MediaAsset) (*types.MediaAsset, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if asset == nil {
    return nil, errs.InvalidArgumentf("asset required")
  }
  if asset.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if asset.ID == uuid.Nil {
    asset.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Create(asset).Error; err != nil {
    return nil, errs.Write("media_asset.create", err)
  }
  return asset, nil
}

func (mr *mediaAssetRepo) ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) ([]*types.MediaAsset, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.MediaAsset
  if businessID == uuid.Nil {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("business_id = ?", businessID).
    Order("created_at desc").
    Find(&results).Error; err != nil {
    return nil, errs.Read("media_asset.list", err)
  }
  return results, nil
}

func (mr *mediaAssetRepo) GetByKey(ctx context.Context, tx *gorm.DB, bucketKey string) (*types.MediaAsset, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var result types.MediaAsset
  if err := transaction.WithContext(ctx).
    Where("bucket_key = ?", bucketKey).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("media_asset.get_by_key", err)
  }
  return &result, nil
}

func (mr *mediaAssetRepo) DeleteByKeys(ctx context.Context, tx *gorm.DB, bucketKeys []string) error {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if len(bucketKeys) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Where("bucket_key IN ?", bucketKeys).
    Delete(&types.MediaAsset{}).Error; err != nil {
    return errs.Write("media_asset.delete", err)
  }
  return nil
}
