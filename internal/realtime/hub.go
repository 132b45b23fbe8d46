package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/WeBoost/aurora-backend/internal/logger"
)

// Subscription is one live, filtered view of the change stream. Events
// arrive on C; Unsubscribe detaches it and closes C. Unsubscribe is
// idempotent, and events published after it returns are never
// delivered.
type Subscription struct {
	ID        uuid.UUID
	Table     string
	SubjectID uuid.UUID
	C         chan ChangeEvent

	hub  *Hub
	once sync.Once
}

func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.C)
	})
}

// Hub fans change events out to subscriptions. Filtering happens here:
// a subscription only sees events for its table whose subject id
// matches. A Bus can be attached to relay events between instances.
type Hub struct {
	mu   sync.RWMutex
	log  *logger.Logger
	subs map[string]map[*Subscription]bool
	bus  Bus
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:  log.With("component", "RealtimeHub"),
		subs: make(map[string]map[*Subscription]bool),
	}
}

// AttachBus wires a cross-instance bus into the hub. Remote events are
// fanned out locally; local publishes are forwarded to the bus.
func (h *Hub) AttachBus(ctx context.Context, bus Bus) error {
	h.mu.Lock()
	h.bus = bus
	h.mu.Unlock()
	return bus.StartForwarder(ctx, h.dispatch)
}

// Subscribe registers interest in one table scoped to one subject id.
func (h *Hub) Subscribe(table string, subjectID uuid.UUID) *Subscription {
	sub := &Subscription{
		ID:        uuid.New(),
		Table:     table,
		SubjectID: subjectID,
		C:         make(chan ChangeEvent, 16),
		hub:       h,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[table]
	if !ok {
		set = make(map[*Subscription]bool)
		h.subs[table] = set
	}
	set[sub] = true
	h.log.Debug("subscription added", "table", table, "subscription_id", sub.ID)
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.Table]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.Table)
		}
	}
}

// Publish fans an event out locally and, when a bus is attached,
// relays it to other instances. Slow consumers are skipped rather than
// blocked on; the subscriber re-fetches on its next event anyway.
func (h *Hub) Publish(ctx context.Context, ev ChangeEvent) {
	h.dispatch(ev)
	h.mu.RLock()
	bus := h.bus
	h.mu.RUnlock()
	if bus != nil {
		if err := bus.Publish(ctx, ev); err != nil {
			h.log.Warn("bus publish failed", "table", ev.Table, "error", err)
		}
	}
}

func (h *Hub) dispatch(ev ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[ev.Table] {
		if sub.SubjectID != uuid.Nil && sub.SubjectID != ev.SubjectID {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			h.log.Warn("subscription buffer full, dropping event",
				"table", ev.Table, "subscription_id", sub.ID, "event_type", ev.Type)
		}
	}
}
