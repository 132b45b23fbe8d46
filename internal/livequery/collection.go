package livequery

import (
	"github.com/google/uuid"

	"github.com/WeBoost/aurora-backend/internal/realtime"
)

// Order decides where inserted records land. Reverse-chronological
// feeds prepend, chronological ones append; a feed picks one and
// sticks with it.
type Order int

const (
	OrderPrepend Order = iota
	OrderAppend
)

// Collection patches an in-memory record slice from change events.
// Applying the same event twice leaves the slice identical to applying
// it once.
type Collection[T any] struct {
	Order Order
	Key   func(T) uuid.UUID
}

// Apply returns the records after ev. INSERT of an already-present key
// replaces it in place instead of duplicating; UPDATE of a missing key,
// DELETE of a missing key, and events missing the payload they need
// are no-ops.
func (c Collection[T]) Apply(records []T, ev realtime.ChangeEvent) []T {
	switch ev.Type {
	case realtime.EventInsert, realtime.EventUpdate:
		if len(ev.New) == 0 {
			return records
		}
		var rec T
		if err := ev.DecodeNew(&rec); err != nil {
			return records
		}
		key := c.Key(rec)
		for i := range records {
			if c.Key(records[i]) == key {
				out := make([]T, len(records))
				copy(out, records)
				out[i] = rec
				return out
			}
		}
		if ev.Type == realtime.EventUpdate {
			return records
		}
		if c.Order == OrderPrepend {
			out := make([]T, 0, len(records)+1)
			out = append(out, rec)
			return append(out, records...)
		}
		out := make([]T, len(records), len(records)+1)
		copy(out, records)
		return append(out, rec)
	case realtime.EventDelete:
		key := ev.RecordID
		if key == uuid.Nil {
			if len(ev.Old) == 0 {
				return records
			}
			var old T
			if err := ev.DecodeOld(&old); err != nil {
				return records
			}
			key = c.Key(old)
		}
		for i := range records {
			if c.Key(records[i]) == key {
				out := make([]T, 0, len(records)-1)
				out = append(out, records[:i]...)
				return append(out, records[i+1:]...)
			}
		}
		return records
	default:
		return records
	}
}
