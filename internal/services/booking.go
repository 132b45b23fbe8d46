package services

import (
  "context"
  "encoding/json"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/livequery"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

const TableBooking = "booking"

var validBookingStatuses = map[string]bool{
  types.BookingStatusPending:   true,
  types.BookingStatusConfirmed: true,
  types.BookingStatusCompleted: true,
  types.BookingStatusCancelled: true,
}

type BookingService interface {
  ListBookings(ctx context.Context, businessID uuid.UUID, filter repos.BookingFilter) ([]*types.Booking, error)
  CreateBooking(ctx context.Context, booking *types.Booking) (*types.Booking, error)
  UpdateBookingStatus(ctx context.Context, businessID, bookingID uuid.UUID, status string) (*types.Booking, error)
  DeleteBooking(ctx context.Context, businessID, bookingID uuid.UUID) error
  NewFeedView(ctx context.Context, businessID uuid.UUID) (*livequery.View[[]*types.Booking], func())
  WatchBookings(businessID uuid.UUID) *realtime.Subscription
}

type bookingService struct {
  db          *gorm.DB
  log         *logger.Logger
  bookingRepo repos.BookingRepo
  hub         *realtime.Hub
}

func NewBookingService(db *gorm.DB, log *logger.Logger, bookingRepo repos.BookingRepo, hub *realtime.Hub) BookingService {
  serviceLog := log.With("service", "BookingService")
  return &bookingService{db: db, log: serviceLog, bookingRepo: bookingRepo, hub: hub}
}

func (bs *bookingService) ListBookings(ctx context.Context, businessID uuid.UUID, filter repos.BookingFilter) ([]*types.Booking, error) {
  if businessID == uuid.Nil {
    return []*types.Booking{}, nil
  }
  return bs.bookingRepo.ListByBusiness(ctx, nil, businessID, filter)
}

func (bs *bookingService) CreateBooking(ctx context.Context, booking *types.Booking) (*types.Booking, error) {
  if booking == nil {
    return nil, errs.InvalidArgumentf("booking required")
  }
  if booking.BusinessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if booking.CustomerName == "" {
    return nil, errs.InvalidArgumentf("customer name required")
  }
  if booking.Status == "" {
    booking.Status = types.BookingStatusPending
  }
  if !validBookingStatuses[booking.Status] {
    return nil, errs.InvalidArgumentf("unknown booking status %q", booking.Status)
  }

  created, err := bs.bookingRepo.Create(ctx, nil, booking)
  if err != nil {
    return nil, err
  }
  bs.publish(ctx, realtime.EventInsert, created, nil)
  return created, nil
}

func (bs *bookingService) UpdateBookingStatus(ctx context.Context, businessID, bookingID uuid.UUID, status string) (*types.Booking, error) {
  if businessID == uuid.Nil || bookingID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id and booking id required")
  }
  if !validBookingStatuses[status] {
    return nil, errs.InvalidArgumentf("unknown booking status %q", status)
  }

  prior, err := bs.bookingRepo.GetByID(ctx, nil, bookingID)
  if err != nil {
    return nil, err
  }
  if prior.BusinessID != businessID {
    return nil, errs.ErrNotFound
  }

  updated, err := bs.bookingRepo.UpdateStatus(ctx, nil, bookingID, status)
  if err != nil {
    return nil, err
  }
  bs.publish(ctx, realtime.EventUpdate, updated, prior)
  return updated, nil
}

func (bs *bookingService) DeleteBooking(ctx context.Context, businessID, bookingID uuid.UUID) error {
  if businessID == uuid.Nil || bookingID == uuid.Nil {
    return errs.InvalidArgumentf("business id and booking id required")
  }

  prior, err := bs.bookingRepo.GetByID(ctx, nil, bookingID)
  if err != nil {
    return err
  }
  if prior.BusinessID != businessID {
    return errs.ErrNotFound
  }

  if err := bs.bookingRepo.Delete(ctx, nil, bookingID); err != nil {
    return err
  }
  bs.publish(ctx, realtime.EventDelete, nil, prior)
  return nil
}

// NewFeedView materializes a reverse-chronological live feed of the
// business's bookings. The returned teardown releases the subscription
// and the view together.
func (bs *bookingService) NewFeedView(ctx context.Context, businessID uuid.UUID) (*livequery.View[[]*types.Booking], func()) {
  coll := livequery.Collection[*types.Booking]{
    Order: livequery.OrderPrepend,
    Key:   func(b *types.Booking) uuid.UUID { return b.ID },
  }
  view := livequery.NewView(
    bs.log,
    func(ctx context.Context, subjectID uuid.UUID) ([]*types.Booking, error) {
      return bs.bookingRepo.ListByBusiness(ctx, nil, subjectID, repos.BookingFilter{})
    },
    livequery.WithEmpty[[]*types.Booking]([]*types.Booking{}),
    livequery.WithReducer(func(data []*types.Booking, ev realtime.ChangeEvent) []*types.Booking {
      return coll.Apply(data, ev)
    }),
  )
  view.SetSubject(ctx, businessID)

  sub := bs.hub.Subscribe(TableBooking, businessID)
  view.Consume(ctx, sub)

  teardown := func() {
    sub.Unsubscribe()
    view.Close()
  }
  return view, teardown
}

// WatchBookings hands out a raw hub subscription for callers that
// bridge events onward themselves, like the SSE stream.
func (bs *bookingService) WatchBookings(businessID uuid.UUID) *realtime.Subscription {
  return bs.hub.Subscribe(TableBooking, businessID)
}

func (bs *bookingService) publish(ctx context.Context, eventType realtime.EventType, newRec, oldRec *types.Booking) {
  if bs.hub == nil {
    return
  }
  ev := realtime.ChangeEvent{Type: eventType, Table: TableBooking}
  if newRec != nil {
    ev.SubjectID = newRec.BusinessID
    ev.RecordID = newRec.ID
    if raw, err := json.Marshal(newRec); err == nil {
      ev.New = raw
    }
  }
  if oldRec != nil {
    if ev.SubjectID == uuid.Nil {
      ev.SubjectID = oldRec.BusinessID
    }
    if ev.RecordID == uuid.Nil {
      ev.RecordID = oldRec.ID
    }
    if raw, err := json.Marshal(oldRec); err == nil {
      ev.Old = raw
    }
  }
  bs.hub.Publish(ctx, ev)
}
