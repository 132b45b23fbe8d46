package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type SEOSettingsRepo interface {
  GetByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) (*types.SEOSettings, error)
  Upsert(ctx context.Context, tx *gorm.DB, settings *types.SEOSettings) (*types.SEOSettings, error)
}

type seoSettingsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSEOSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SEOSettingsRepo {
  repoLog := baseLog.With("repo", "SEOSettingsRepo")
  return &seoSettingsRepo{db: db, log: repoLog}
}

func (sr *seoSettingsRepo) GetByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) (*types.SEOSettings, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var result types.SEOSettings
  if err := transaction.WithContext(ctx).
    Where("business_id = ?", businessID).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("seo_settings.get", err)
  }
  return &result, nil
}

// Upsert keeps seo_settings a singleton per business: conflicts on
// business_id update the existing row in place.
func (sr *seoSettingsRepo) Upsert(ctx context.Context, tx *gorm.DB, settings *types.SEOSettings) (*types.SEOSettings, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if settings == nil {
    return nil, errs.InvalidArgumentf("settings required")
  }
  if settings.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if settings.ID == uuid.Nil {
    settings.ID = uuid.New()
  }
  settings.UpdatedAt = time.Now().UTC()
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "business_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "meta_title", "meta_description", "keywords", "og_image_url", "structured_data", "updated_at",
      }),
    }).
    Create(settings).Error; err != nil {
    return nil, errs.Write("seo_settings.upsert", err)
  }
  return sr.GetByBusiness(ctx, tx, settings.BusinessID)
}
