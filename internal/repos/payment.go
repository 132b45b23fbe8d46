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

type PaymentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error)
  GetByIntentID(ctx context.Context, tx *gorm.DB, intentID string) (*types.Payment, error)
  ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, limit int) ([]*types.Payment, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*types.Payment, error)
}

type paymentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
  repoLog := baseLog.With("repo", "PaymentRepo")
  return &paymentRepo{db: db, log: repoLog}
}

func (pr *paymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if payment == nil {
    return nil, errs.InvalidArgumentf("payment required")
  }
  if payment.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if payment.ID == uuid.Nil {
    payment.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Create(payment).Error; err != nil {
    return nil, errs.Write("payment.create", err)
  }
  return payment, nil
}

func (pr *paymentRepo) GetByIntentID(ctx context.Context, tx *gorm.DB, intentID string) (*types.Payment, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Payment
  if err := transaction.WithContext(ctx).
    Where("provider_intent_id = ?", intentID).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("payment.get_by_intent", err)
  }
  return &result, nil
}

func (pr *paymentRepo) ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, limit int) ([]*types.Payment, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Payment
  if businessID == uuid.Nil {
    return results, nil
  }
  q := transaction.WithContext(ctx).
    Where("business_id = ?", businessID).
    Order("created_at desc")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, errs.Read("payment.list", err)
  }
  return results, nil
}

func (pr *paymentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*types.Payment, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.Payment{}).
    Where("id = ?", id).
    Updates(map[string]interface{}{
      "status":     status,
      "updated_at": time.Now().UTC(),
    })
  if res.Error != nil {
    return nil, errs.Write("payment.update_status", res.Error)
  }
  if res.RowsAffected == 0 {
    return nil, errs.ErrNotFound
  }
  var result types.Payment
  if err := transaction.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
    return nil, errs.Read("payment.get", err)
  }
  return &result, nil
}
