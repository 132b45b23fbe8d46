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

type BusinessRepo interface {
  Create(ctx context.Context, tx *gorm.DB, business *types.Business) (*types.Business, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Business, error)
  GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Business, error)
  ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Business, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Business, error)
  Nearest(ctx context.Context, tx *gorm.DB, lat, lon float64, limit int) ([]*types.Business, error)
}

type businessRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBusinessRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRepo {
  repoLog := baseLog.With("repo", "BusinessRepo")
  return &businessRepo{db: db, log: repoLog}
}

func (br *businessRepo) Create(ctx context.Context, tx *gorm.DB, business *types.Business) (*types.Business, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if business == nil {
    return nil, errs.InvalidArgumentf("business required")
  }
  if business.ID == uuid.Nil {
    business.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Create(business).Error; err != nil {
    return nil, errs.Write("business.create", err)
  }
  return business, nil
}

func (br *businessRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Business, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var result types.Business
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("business.get", err)
  }
  return &result, nil
}

func (br *businessRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Business, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var result types.Business
  if err := transaction.WithContext(ctx).
    Where("slug = ?", slug).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("business.get_by_slug", err)
  }
  return &result, nil
}

func (br *businessRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Business, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Business
  if err := transaction.WithContext(ctx).
    Where("owner_id = ?", ownerID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, errs.Read("business.list_by_owner", err)
  }
  return results, nil
}

func (br *businessRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Business, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if updates == nil {
    updates = map[string]interface{}{}
  }
  updates["updated_at"] = time.Now().UTC()
  res := transaction.WithContext(ctx).
    Model(&types.Business{}).
    Where("id = ?", id).
    Updates(updates)
  if res.Error != nil {
    return nil, errs.Write("business.update", res.Error)
  }
  if res.RowsAffected == 0 {
    return nil, errs.ErrNotFound
  }
  return br.GetByID(ctx, tx, id)
}

// Nearest orders by a planar distance approximation; good enough at
// city scale without a geospatial index.
func (br *businessRepo) Nearest(ctx context.Context, tx *gorm.DB, lat, lon float64, limit int) ([]*types.Business, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if limit <= 0 {
    limit = 10
  }
  var results []*types.Business
  if err := transaction.WithContext(ctx).
    Clauses(clause.OrderBy{Expression: clause.Expr{
      SQL:                "((latitude - ?) * (latitude - ?)) + ((longitude - ?) * (longitude - ?))",
      Vars:               []interface{}{lat, lat, lon, lon},
      WithoutParentheses: true,
    }}).
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, errs.Read("business.nearest", err)
  }
  return results, nil
}
