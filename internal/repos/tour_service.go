package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type TourServiceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, service *types.TourService) (*types.TourService, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TourService, error)
  ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) ([]*types.TourService, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.TourService, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type tourServiceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTourServiceRepo(db *gorm.DB, baseLog *logger.Logger) TourServiceRepo {
  repoLog := baseLog.With("repo", "TourServiceRepo")
  return &tourServiceRepo{db: db, log: repoLog}
}

func (tr *tourServiceRepo) Create(ctx context.Context, tx *gorm.DB, service *types.TourService) (*types.TourService, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if service == nil {
    return nil, errs.InvalidArgumentf("service required")
  }
  if service.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if service.ID == uuid.Nil {
    service.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Create(service).Error; err != nil {
    return nil, errs.Write("tour_service.create", err)
  }
  return service, nil
}

func (tr *tourServiceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TourService, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var result types.TourService
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("tour_service.get", err)
  }
  return &result, nil
}

func (tr *tourServiceRepo) ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) ([]*types.TourService, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.TourService
  if businessID == uuid.Nil {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("business_id = ?", businessID).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, errs.Read("tour_service.list", err)
  }
  return results, nil
}

func (tr *tourServiceRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.TourService, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if updates == nil {
    updates = map[string]interface{}{}
  }
  updates["updated_at"] = time.Now().UTC()
  res := transaction.WithContext(ctx).
    Model(&types.TourService{}).
    Where("id = ?", id).
    Updates(updates)
  if res.Error != nil {
    return nil, errs.Write("tour_service.update", res.Error)
  }
  if res.RowsAffected == 0 {
    return nil, errs.ErrNotFound
  }
  return tr.GetByID(ctx, tx, id)
}

func (tr *tourServiceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  res := transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.TourService{})
  if res.Error != nil {
    return errs.Write("tour_service.delete", res.Error)
  }
  if res.RowsAffected == 0 {
    return errs.ErrNotFound
  }
  return nil
}
