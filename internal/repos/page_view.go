package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type PageViewRepo interface {
  Create(ctx context.Context, tx *gorm.DB, view *types.PageView) (*types.PageView, error)
  CountByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) (int64, error)
}

type pageViewRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPageViewRepo(db *gorm.DB, baseLog *logger.Logger) PageViewRepo {
  repoLog := baseLog.With("repo", "PageViewRepo")
  return &pageViewRepo{db: db, log: repoLog}
}

func (pr *pageViewRepo) Create(ctx context.Context, tx *gorm.DB, view *types.PageView) (*types.PageView, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if view == nil {
    return nil, errs.InvalidArgumentf("page view required")
  }
  if view.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if view.ID == uuid.Nil {
    view.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Create(view).Error; err != nil {
    return nil, errs.Write("page_view.create", err)
  }
  return view, nil
}

func (pr *pageViewRepo) CountByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.PageView{}).
    Where("business_id = ?", businessID).
    Count(&count).Error; err != nil {
    return 0, errs.Read("page_view.count", err)
  }
  return count, nil
}
