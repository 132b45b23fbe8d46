package services

import (
  "context"
  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/aggregates"
  "github.com/WeBoost/aurora-backend/internal/livequery"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
)

// Dashboard is the aggregate snapshot served to the analytics page.
type Dashboard struct {
  Stats       aggregates.BookingStats     `json:"stats"`
  TopServices []aggregates.ServiceRevenue `json:"top_services"`
  PageViews   int64                       `json:"page_views"`
}

type AnalyticsService interface {
  GetDashboard(ctx context.Context, businessID uuid.UUID) (Dashboard, error)
  NewDashboardView(ctx context.Context, businessID uuid.UUID) (*livequery.View[Dashboard], func())
}

type analyticsService struct {
  db           *gorm.DB
  log          *logger.Logger
  bookingRepo  repos.BookingRepo
  pageViewRepo repos.PageViewRepo
  hub          *realtime.Hub
  topN         int
}

func NewAnalyticsService(db *gorm.DB, log *logger.Logger, bookingRepo repos.BookingRepo, pageViewRepo repos.PageViewRepo, hub *realtime.Hub, topN int) AnalyticsService {
  serviceLog := log.With("service", "AnalyticsService")
  if topN <= 0 {
    topN = 5
  }
  return &analyticsService{
    db:           db,
    log:          serviceLog,
    bookingRepo:  bookingRepo,
    pageViewRepo: pageViewRepo,
    hub:          hub,
    topN:         topN,
  }
}

// GetDashboard reads bookings and page views concurrently and derives
// the aggregates synchronously from the result set.
func (as *analyticsService) GetDashboard(ctx context.Context, businessID uuid.UUID) (Dashboard, error) {
  dashboard := Dashboard{TopServices: []aggregates.ServiceRevenue{}}
  if businessID == uuid.Nil {
    return dashboard, nil
  }

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    bookings, err := as.bookingRepo.ListByBusiness(gctx, nil, businessID, repos.BookingFilter{})
    if err != nil {
      return err
    }
    dashboard.Stats = aggregates.ComputeBookingStats(bookings)
    dashboard.TopServices = aggregates.TopServicesByRevenue(bookings, as.topN)
    return nil
  })
  g.Go(func() error {
    views, err := as.pageViewRepo.CountByBusiness(gctx, nil, businessID)
    if err != nil {
      return err
    }
    dashboard.PageViews = views
    return nil
  })
  if err := g.Wait(); err != nil {
    return Dashboard{TopServices: []aggregates.ServiceRevenue{}}, err
  }
  return dashboard, nil
}

// NewDashboardView refreshes the whole dashboard on any booking change
// event rather than patching aggregates incrementally.
func (as *analyticsService) NewDashboardView(ctx context.Context, businessID uuid.UUID) (*livequery.View[Dashboard], func()) {
  view := livequery.NewView(
    as.log,
    func(ctx context.Context, subjectID uuid.UUID) (Dashboard, error) {
      return as.GetDashboard(ctx, subjectID)
    },
    livequery.WithEmpty[Dashboard](Dashboard{TopServices: []aggregates.ServiceRevenue{}}),
  )
  view.SetSubject(ctx, businessID)

  sub := as.hub.Subscribe(TableBooking, businessID)
  view.Consume(ctx, sub)

  teardown := func() {
    sub.Unsubscribe()
    view.Close()
  }
  return view, teardown
}
