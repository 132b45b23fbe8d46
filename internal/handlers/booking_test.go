package handlers

import (
  "context"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/WeBoost/aurora-backend/internal/livequery"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/services"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type fakeBookingService struct {
  listBusinessID uuid.UUID
  listFilter     repos.BookingFilter
  listResult     []*types.Booking
  created        *types.Booking
}

func (f *fakeBookingService) ListBookings(ctx context.Context, businessID uuid.UUID, filter repos.BookingFilter) ([]*types.Booking, error) {
  f.listBusinessID = businessID
  f.listFilter = filter
  return f.listResult, nil
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, booking *types.Booking) (*types.Booking, error) {
  if booking.ID == uuid.Nil {
    booking.ID = uuid.New()
  }
  f.created = booking
  return booking, nil
}

func (f *fakeBookingService) UpdateBookingStatus(ctx context.Context, businessID, bookingID uuid.UUID, status string) (*types.Booking, error) {
  return &types.Booking{ID: bookingID, BusinessID: businessID, Status: status}, nil
}

func (f *fakeBookingService) DeleteBooking(ctx context.Context, businessID, bookingID uuid.UUID) error {
  return nil
}

func (f *fakeBookingService) NewFeedView(ctx context.Context, businessID uuid.UUID) (*livequery.View[[]*types.Booking], func()) {
  return nil, func() {}
}

func (f *fakeBookingService) WatchBookings(businessID uuid.UUID) *realtime.Subscription {
  return nil
}

var _ services.BookingService = (*fakeBookingService)(nil)

func bookingTestRouter(svc services.BookingService, businessID uuid.UUID) *gin.Engine {
  gin.SetMode(gin.TestMode)
  handler := NewBookingHandler(svc, nil)
  router := gin.New()
  scoped := router.Group("/", func(c *gin.Context) {
    c.Set(middleware.ContextBusinessID, businessID)
    c.Next()
  })
  scoped.GET("/bookings", handler.List)
  return router
}

func TestBookingListParsesFilter(t *testing.T) {
  svc := &fakeBookingService{listResult: []*types.Booking{}}
  businessID := uuid.New()
  router := bookingTestRouter(svc, businessID)

  from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
  to := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
  url := "/bookings?status=confirmed&limit=25&order=asc" +
    "&from=" + from.Format(time.RFC3339) +
    "&to=" + to.Format(time.RFC3339)

  rec := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, url, nil)
  router.ServeHTTP(rec, req)

  if rec.Code != http.StatusOK {
    t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
  }
  if svc.listBusinessID != businessID {
    t.Fatalf("business id: want=%s got=%s", businessID, svc.listBusinessID)
  }
  filter := svc.listFilter
  if filter.Status != "confirmed" || filter.Limit != 25 || !filter.Ascending {
    t.Fatalf("filter wrong: %+v", filter)
  }
  if !filter.From.Equal(from) || !filter.To.Equal(to) {
    t.Fatalf("date range wrong: from=%v to=%v", filter.From, filter.To)
  }
}

func TestBookingListDefaultsToZeroFilter(t *testing.T) {
  svc := &fakeBookingService{listResult: []*types.Booking{}}
  router := bookingTestRouter(svc, uuid.New())

  rec := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
  router.ServeHTTP(rec, req)

  if rec.Code != http.StatusOK {
    t.Fatalf("status: want=%d got=%d", http.StatusOK, rec.Code)
  }
  filter := svc.listFilter
  if filter.Status != "" || filter.Limit != 0 || filter.Ascending {
    t.Fatalf("expected zero filter, got %+v", filter)
  }
  if !filter.From.IsZero() || !filter.To.IsZero() {
    t.Fatalf("expected open date range, got from=%v to=%v", filter.From, filter.To)
  }
}
