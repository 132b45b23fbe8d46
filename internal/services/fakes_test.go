package services

import (
  "context"
  "encoding/json"
  "fmt"
  "sync"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type fakeBookingRepo struct {
  mu       sync.Mutex
  bookings map[uuid.UUID]*types.Booking
  failWith error
}

func newFakeBookingRepo() *fakeBookingRepo {
  return &fakeBookingRepo{bookings: map[uuid.UUID]*types.Booking{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *types.Booking) (*types.Booking, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  if booking.ID == uuid.Nil {
    booking.ID = uuid.New()
  }
  booking.CreatedAt = time.Now().UTC()
  booking.UpdatedAt = booking.CreatedAt
  clone := *booking
  f.bookings[booking.ID] = &clone
  return booking, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Booking, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  b, ok := f.bookings[id]
  if !ok {
    return nil, errs.ErrNotFound
  }
  clone := *b
  return &clone, nil
}

func (f *fakeBookingRepo) ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, filter repos.BookingFilter) ([]*types.Booking, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  var out []*types.Booking
  for _, b := range f.bookings {
    if b.BusinessID == businessID {
      clone := *b
      out = append(out, &clone)
    }
  }
  return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*types.Booking, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  b, ok := f.bookings[id]
  if !ok {
    return nil, errs.ErrNotFound
  }
  b.Status = status
  b.UpdatedAt = time.Now().UTC()
  clone := *b
  return &clone, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return f.failWith
  }
  if _, ok := f.bookings[id]; !ok {
    return errs.ErrNotFound
  }
  delete(f.bookings, id)
  return nil
}

type fakePaymentRepo struct {
  mu       sync.Mutex
  payments map[uuid.UUID]*types.Payment
  failWith error
}

func newFakePaymentRepo() *fakePaymentRepo {
  return &fakePaymentRepo{payments: map[uuid.UUID]*types.Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  if payment.ID == uuid.Nil {
    payment.ID = uuid.New()
  }
  clone := *payment
  f.payments[payment.ID] = &clone
  return payment, nil
}

func (f *fakePaymentRepo) GetByIntentID(ctx context.Context, tx *gorm.DB, intentID string) (*types.Payment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  for _, p := range f.payments {
    if p.ProviderIntentID == intentID {
      clone := *p
      return &clone, nil
    }
  }
  return nil, errs.ErrNotFound
}

func (f *fakePaymentRepo) ListByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, limit int) ([]*types.Payment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.Payment
  for _, p := range f.payments {
    if p.BusinessID == businessID {
      clone := *p
      out = append(out, &clone)
    }
  }
  return out, nil
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*types.Payment, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if f.failWith != nil {
    return nil, f.failWith
  }
  p, ok := f.payments[id]
  if !ok {
    return nil, errs.ErrNotFound
  }
  p.Status = status
  clone := *p
  return &clone, nil
}

type fakeBusinessRepo struct {
  businesses map[uuid.UUID]*types.Business
}

func newFakeBusinessRepo(businesses ...*types.Business) *fakeBusinessRepo {
  f := &fakeBusinessRepo{businesses: map[uuid.UUID]*types.Business{}}
  for _, b := range businesses {
    f.businesses[b.ID] = b
  }
  return f
}

func (f *fakeBusinessRepo) Create(ctx context.Context, tx *gorm.DB, business *types.Business) (*types.Business, error) {
  if business.ID == uuid.Nil {
    business.ID = uuid.New()
  }
  f.businesses[business.ID] = business
  return business, nil
}

func (f *fakeBusinessRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Business, error) {
  b, ok := f.businesses[id]
  if !ok {
    return nil, errs.ErrNotFound
  }
  return b, nil
}

func (f *fakeBusinessRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Business, error) {
  for _, b := range f.businesses {
    if b.Slug == slug {
      return b, nil
    }
  }
  return nil, errs.ErrNotFound
}

func (f *fakeBusinessRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Business, error) {
  var out []*types.Business
  for _, b := range f.businesses {
    if b.OwnerID == ownerID {
      out = append(out, b)
    }
  }
  return out, nil
}

func (f *fakeBusinessRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Business, error) {
  b, ok := f.businesses[id]
  if !ok {
    return nil, errs.ErrNotFound
  }
  if v, ok := updates["logo_bucket_key"].(string); ok {
    b.LogoBucketKey = v
  }
  if v, ok := updates["logo_url"].(string); ok {
    b.LogoURL = v
  }
  return b, nil
}

func (f *fakeBusinessRepo) Nearest(ctx context.Context, tx *gorm.DB, lat, lon float64, limit int) ([]*types.Business, error) {
  var out []*types.Business
  for _, b := range f.businesses {
    out = append(out, b)
  }
  return out, nil
}

type fakePageViewRepo struct {
  count    int64
  failWith error
}

func (f *fakePageViewRepo) Create(ctx context.Context, tx *gorm.DB, view *types.PageView) (*types.PageView, error) {
  f.count++
  return view, nil
}

func (f *fakePageViewRepo) CountByBusiness(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) (int64, error) {
  if f.failWith != nil {
    return 0, f.failWith
  }
  return f.count, nil
}

type fakeFnClient struct {
  calls    []string
  bodies   []any
  response json.RawMessage
  failWith error
}

func (f *fakeFnClient) Invoke(ctx context.Context, name string, body any) (json.RawMessage, error) {
  f.calls = append(f.calls, name)
  f.bodies = append(f.bodies, body)
  if f.failWith != nil {
    return nil, f.failWith
  }
  if f.response != nil {
    return f.response, nil
  }
  return json.RawMessage(`{}`), nil
}

var errBackendDown = fmt.Errorf("backend unavailable")
