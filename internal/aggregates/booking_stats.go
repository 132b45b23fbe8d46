package aggregates

import (
	"sort"

	"github.com/WeBoost/aurora-backend/internal/types"
)

// BookingStats is the derived dashboard view of a business's bookings.
// It is never persisted; every fetch recomputes it from the raw rows.
type BookingStats struct {
	Total        int   `json:"total"`
	Completed    int   `json:"completed"`
	Revenue      int64 `json:"revenue"`
	AverageValue int64 `json:"average_value"`
}

// ServiceRevenue is one group of the top-services breakdown.
type ServiceRevenue struct {
	ServiceName string `json:"service_name"`
	Bookings    int    `json:"bookings"`
	Revenue     int64  `json:"revenue"`
}

// ComputeBookingStats counts all bookings but only completed ones
// contribute to revenue. AverageValue is 0 when nothing completed yet.
func ComputeBookingStats(bookings []*types.Booking) BookingStats {
	stats := BookingStats{}
	for _, b := range bookings {
		if b == nil {
			continue
		}
		stats.Total++
		if b.Status == types.BookingStatusCompleted {
			stats.Completed++
			stats.Revenue += b.Amount
		}
	}
	if stats.Completed > 0 {
		stats.AverageValue = stats.Revenue / int64(stats.Completed)
	}
	return stats
}

// TopServicesByRevenue groups bookings by service name, accumulates a
// booking count and completed revenue per group, sorts by revenue
// descending (name ascending as tiebreak so output is deterministic)
// and truncates to n groups.
func TopServicesByRevenue(bookings []*types.Booking, n int) []ServiceRevenue {
	byName := map[string]*ServiceRevenue{}
	for _, b := range bookings {
		if b == nil || b.Service == nil {
			continue
		}
		name := b.Service.Name
		group, ok := byName[name]
		if !ok {
			group = &ServiceRevenue{ServiceName: name}
			byName[name] = group
		}
		group.Bookings++
		if b.Status == types.BookingStatusCompleted {
			group.Revenue += b.Amount
		}
	}
	out := make([]ServiceRevenue, 0, len(byName))
	for _, group := range byName {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ServiceName < out[j].ServiceName
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
