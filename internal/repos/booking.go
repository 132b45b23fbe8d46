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

// BookingFilter narrows List. Zero values mean "no constraint".
type BookingFilter struct {
  Status      string
  From        time.Time
  To          time.Time
  Limit       int
  Ascending   bool
}

type BookingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Booking, error)
  ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, filter BookingFilter) ([]*types.Booking, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*types.Booking, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type bookingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
  repoLog := baseLog.With("repo", "BookingRepo")
  return &bookingRepo{db: db, log: repoLog}
}

func (br *bookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if booking == nil {
    return nil, errs.InvalidArgumentf("booking required")
  }
  if booking.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if booking.ID == uuid.Nil {
    booking.ID = uuid.New()
  }

  if err := transaction.WithContext(ctx).Create(booking).Error; err != nil {
    return nil, errs.Write("booking.create", err)
  }
  return booking, nil
}

func (br *bookingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var result types.Booking
  if err := transaction.WithContext(ctx).
    Preload("Service").
    Where("id = ?", id).
    First(&result).Error; err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, errs.ErrNotFound
    }
    return nil, errs.Read("booking.get", err)
  }
  return &result, nil
}

func (br *bookingRepo) ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, filter BookingFilter) ([]*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Booking
  if businessID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).
    Preload("Service").
    Where("business_id = ?", businessID)
  if filter.Status != "" {
    q = q.Where("status = ?", filter.Status)
  }
  if !filter.From.IsZero() {
    q = q.Where("starts_at >= ?", filter.From)
  }
  if !filter.To.IsZero() {
    q = q.Where("starts_at <= ?", filter.To)
  }
  if filter.Ascending {
    q = q.Order("created_at asc")
  } else {
    q = q.Order("created_at desc")
  }
  if filter.Limit > 0 {
    q = q.Limit(filter.Limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, errs.Read("booking.list", err)
  }
  return results, nil
}

func (br *bookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  updates := map[string]interface{}{
    "status":     status,
    "updated_at": time.Now().UTC(),
  }
  res := transaction.WithContext(ctx).
    Model(&types.Booking{}).
    Where("id = ?", id).
    Updates(updates)
  if res.Error != nil {
    return nil, errs.Write("booking.update_status", res.Error)
  }
  if res.RowsAffected == 0 {
    return nil, errs.ErrNotFound
  }
  return br.GetByID(ctx, tx, id)
}

func (br *bookingRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  res := transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Booking{})
  if res.Error != nil {
    return errs.Write("booking.delete", res.Error)
  }
  if res.RowsAffected == 0 {
    return errs.ErrNotFound
  }
  return nil
}
