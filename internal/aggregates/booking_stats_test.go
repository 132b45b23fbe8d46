package aggregates

import (
	"fmt"
	"testing"

	"github.com/WeBoost/aurora-backend/internal/types"
)

func booking(status string, amount int64, serviceName string) *types.Booking {
	b := &types.Booking{Status: status, Amount: amount}
	if serviceName != "" {
		b.Service = &types.TourService{Name: serviceName}
	}
	return b
}

func TestComputeBookingStats(t *testing.T) {
	got := ComputeBookingStats([]*types.Booking{
		booking(types.BookingStatusCompleted, 10000, ""),
		booking(types.BookingStatusPending, 5000, ""),
	})
	if got.Total != 2 {
		t.Fatalf("total: want=2 got=%d", got.Total)
	}
	if got.Completed != 1 {
		t.Fatalf("completed: want=1 got=%d", got.Completed)
	}
	if got.Revenue != 10000 {
		t.Fatalf("revenue: want=10000 got=%d", got.Revenue)
	}
	if got.AverageValue != 10000 {
		t.Fatalf("average: want=10000 got=%d", got.AverageValue)
	}
}

func TestComputeBookingStatsEmpty(t *testing.T) {
	got := ComputeBookingStats(nil)
	if got.Total != 0 || got.Completed != 0 || got.Revenue != 0 || got.AverageValue != 0 {
		t.Fatalf("empty stats: want zeros got %+v", got)
	}
}

func TestComputeBookingStatsOnlyCompletedCountTowardRevenue(t *testing.T) {
	got := ComputeBookingStats([]*types.Booking{
		booking(types.BookingStatusCompleted, 4000, ""),
		booking(types.BookingStatusCompleted, 2000, ""),
		booking(types.BookingStatusConfirmed, 9000, ""),
		booking(types.BookingStatusCancelled, 800, ""),
	})
	if got.Total != 4 {
		t.Fatalf("total: want=4 got=%d", got.Total)
	}
	if got.Revenue != 6000 {
		t.Fatalf("revenue: want=6000 got=%d", got.Revenue)
	}
	if got.AverageValue != 3000 {
		t.Fatalf("average: want=3000 got=%d", got.AverageValue)
	}
}

func TestTopServicesByRevenueTruncatesToN(t *testing.T) {
	var bookings []*types.Booking
	// 6 distinct services, revenue 1000..6000
	for i := 1; i <= 6; i++ {
		name := fmt.Sprintf("tour-%d", i)
		bookings = append(bookings, booking(types.BookingStatusCompleted, int64(i*1000), name))
	}
	got := TopServicesByRevenue(bookings, 5)
	if len(got) != 5 {
		t.Fatalf("groups: want=5 got=%d", len(got))
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i].Revenue < got[i+1].Revenue {
			t.Fatalf("not sorted descending at %d: %+v", i, got)
		}
	}
	if got[0].ServiceName != "tour-6" {
		t.Fatalf("top group: want=tour-6 got=%s", got[0].ServiceName)
	}
	for _, g := range got {
		if g.ServiceName == "tour-1" {
			t.Fatalf("lowest group should have been excluded: %+v", got)
		}
	}
}

func TestTopServicesByRevenueCountsAllStatusesButSumsCompleted(t *testing.T) {
	got := TopServicesByRevenue([]*types.Booking{
		booking(types.BookingStatusCompleted, 3000, "glacier-hike"),
		booking(types.BookingStatusPending, 9000, "glacier-hike"),
		booking(types.BookingStatusCompleted, 1000, "whale-watch"),
	}, 5)
	if len(got) != 2 {
		t.Fatalf("groups: want=2 got=%d", len(got))
	}
	if got[0].ServiceName != "glacier-hike" || got[0].Bookings != 2 || got[0].Revenue != 3000 {
		t.Fatalf("glacier-hike group wrong: %+v", got[0])
	}
	if got[1].ServiceName != "whale-watch" || got[1].Bookings != 1 || got[1].Revenue != 1000 {
		t.Fatalf("whale-watch group wrong: %+v", got[1])
	}
}

func TestTopServicesByRevenueSkipsBookingsWithoutService(t *testing.T) {
	got := TopServicesByRevenue([]*types.Booking{
		booking(types.BookingStatusCompleted, 3000, ""),
	}, 5)
	if len(got) != 0 {
		t.Fatalf("groups: want=0 got=%d", len(got))
	}
}
