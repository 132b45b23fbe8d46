package services

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

func newBookingFixture(t *testing.T) (BookingService, *fakeBookingRepo, *realtime.Hub) {
  t.Helper()
  log := newTestLogger(t)
  repo := newFakeBookingRepo()
  hub := realtime.NewHub(log)
  return NewBookingService(nil, log, repo, hub), repo, hub
}

func waitFor(t *testing.T, check func() bool) {
  t.Helper()
  deadline := time.Now().Add(2 * time.Second)
  for time.Now().Before(deadline) {
    if check() {
      return
    }
    time.Sleep(5 * time.Millisecond)
  }
  t.Fatalf("condition not reached before deadline")
}

func TestCreateBookingValidation(t *testing.T) {
  svc, repo, _ := newBookingFixture(t)
  businessID := uuid.New()

  cases := []struct {
    name    string
    booking *types.Booking
  }{
    {"nil booking", nil},
    {"missing business", &types.Booking{CustomerName: "Jon"}},
    {"missing customer name", &types.Booking{BusinessID: businessID}},
    {"unknown status", &types.Booking{BusinessID: businessID, CustomerName: "Jon", Status: "archived"}},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      _, err := svc.CreateBooking(context.Background(), tc.booking)
      if !errors.Is(err, errs.ErrInvalidArgument) {
        t.Fatalf("want invalid argument, got %v", err)
      }
    })
  }
  if len(repo.bookings) != 0 {
    t.Fatalf("rejected bookings must not be stored, got %d", len(repo.bookings))
  }
}

func TestCreateBookingDefaultsAndPublishes(t *testing.T) {
  svc, _, hub := newBookingFixture(t)
  businessID := uuid.New()

  sub := hub.Subscribe(TableBooking, businessID)
  defer sub.Unsubscribe()

  created, err := svc.CreateBooking(context.Background(), &types.Booking{
    BusinessID:   businessID,
    CustomerName: "Bjork",
    Amount:       4200,
  })
  if err != nil {
    t.Fatalf("create booking: %v", err)
  }
  if created.Status != types.BookingStatusPending {
    t.Fatalf("status default: want=%s got=%s", types.BookingStatusPending, created.Status)
  }

  select {
  case ev := <-sub.C:
    if ev.Type != realtime.EventInsert || ev.Table != TableBooking || ev.RecordID != created.ID {
      t.Fatalf("unexpected event: %+v", ev)
    }
  default:
    t.Fatalf("expected an insert event")
  }
}

func TestUpdateBookingStatusChecksOwnership(t *testing.T) {
  svc, repo, _ := newBookingFixture(t)
  owner := uuid.New()

  created, err := repo.Create(context.Background(), nil, &types.Booking{
    BusinessID:   owner,
    CustomerName: "Siggi",
    Status:       types.BookingStatusPending,
  })
  if err != nil {
    t.Fatalf("seed booking: %v", err)
  }

  _, err = svc.UpdateBookingStatus(context.Background(), uuid.New(), created.ID, types.BookingStatusConfirmed)
  if !errors.Is(err, errs.ErrNotFound) {
    t.Fatalf("foreign business must see not found, got %v", err)
  }
  if repo.bookings[created.ID].Status != types.BookingStatusPending {
    t.Fatalf("status must be unchanged")
  }

  updated, err := svc.UpdateBookingStatus(context.Background(), owner, created.ID, types.BookingStatusConfirmed)
  if err != nil {
    t.Fatalf("owner update: %v", err)
  }
  if updated.Status != types.BookingStatusConfirmed {
    t.Fatalf("status: want=%s got=%s", types.BookingStatusConfirmed, updated.Status)
  }
}

func TestDeleteBookingPublishesDelete(t *testing.T) {
  svc, repo, hub := newBookingFixture(t)
  owner := uuid.New()

  created, err := repo.Create(context.Background(), nil, &types.Booking{
    BusinessID:   owner,
    CustomerName: "Elin",
    Status:       types.BookingStatusPending,
  })
  if err != nil {
    t.Fatalf("seed booking: %v", err)
  }

  sub := hub.Subscribe(TableBooking, owner)
  defer sub.Unsubscribe()

  if err := svc.DeleteBooking(context.Background(), owner, created.ID); err != nil {
    t.Fatalf("delete: %v", err)
  }
  if _, ok := repo.bookings[created.ID]; ok {
    t.Fatalf("booking must be removed")
  }

  select {
  case ev := <-sub.C:
    if ev.Type != realtime.EventDelete || ev.RecordID != created.ID {
      t.Fatalf("unexpected event: %+v", ev)
    }
  default:
    t.Fatalf("expected a delete event")
  }
}

func TestFeedViewTracksBookingChanges(t *testing.T) {
  svc, repo, _ := newBookingFixture(t)
  owner := uuid.New()

  if _, err := repo.Create(context.Background(), nil, &types.Booking{
    BusinessID:   owner,
    CustomerName: "Hildur",
    Status:       types.BookingStatusPending,
  }); err != nil {
    t.Fatalf("seed booking: %v", err)
  }

  view, teardown := svc.NewFeedView(context.Background(), owner)
  defer teardown()

  waitFor(t, func() bool {
    snap := view.Snapshot()
    return !snap.Loading && len(snap.Data) == 1
  })

  created, err := svc.CreateBooking(context.Background(), &types.Booking{
    BusinessID:   owner,
    CustomerName: "Kari",
  })
  if err != nil {
    t.Fatalf("create booking: %v", err)
  }

  waitFor(t, func() bool {
    snap := view.Snapshot()
    return len(snap.Data) == 2 && snap.Data[0].ID == created.ID
  })

  if _, err := svc.UpdateBookingStatus(context.Background(), owner, created.ID, types.BookingStatusCompleted); err != nil {
    t.Fatalf("update status: %v", err)
  }
  waitFor(t, func() bool {
    snap := view.Snapshot()
    return len(snap.Data) == 2 && snap.Data[0].Status == types.BookingStatusCompleted
  })

  if err := svc.DeleteBooking(context.Background(), owner, created.ID); err != nil {
    t.Fatalf("delete booking: %v", err)
  }
  waitFor(t, func() bool {
    return len(view.Snapshot().Data) == 1
  })
}

func TestFeedViewIgnoresOtherBusinesses(t *testing.T) {
  svc, _, _ := newBookingFixture(t)
  owner := uuid.New()

  view, teardown := svc.NewFeedView(context.Background(), owner)
  defer teardown()

  waitFor(t, func() bool {
    return !view.Snapshot().Loading
  })

  if _, err := svc.CreateBooking(context.Background(), &types.Booking{
    BusinessID:   uuid.New(),
    CustomerName: "Gunnar",
  }); err != nil {
    t.Fatalf("create booking: %v", err)
  }

  time.Sleep(50 * time.Millisecond)
  if got := len(view.Snapshot().Data); got != 0 {
    t.Fatalf("other business events must not reach the feed, got %d rows", got)
  }
}

func TestListBookingsEmptySubject(t *testing.T) {
  svc, _, _ := newBookingFixture(t)
  rows, err := svc.ListBookings(context.Background(), uuid.Nil, repos.BookingFilter{})
  if err != nil {
    t.Fatalf("list: %v", err)
  }
  if len(rows) != 0 {
    t.Fatalf("want empty, got %d", len(rows))
  }
}
