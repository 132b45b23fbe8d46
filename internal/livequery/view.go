package livequery

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/WeBoost/aurora-backend/internal/logger"
	"github.com/WeBoost/aurora-backend/internal/realtime"
)

// Fetcher reads and aggregates the remote state for one subject.
type Fetcher[T any] func(ctx context.Context, subjectID uuid.UUID) (T, error)

// Reducer patches the current data from a single change event. Views
// without a reducer re-run their fetcher on every event instead;
// incremental aggregate patching is easy to get wrong and refetching
// is always correct.
type Reducer[T any] func(data T, ev realtime.ChangeEvent) T

// View owns one Snapshot per scope. All mutation goes through the
// view's own fetcher, reducer and Close; nothing else touches its
// state. A generation counter implements the stale-response guard: a
// fetch started for an old subject (or superseded by a newer fetch)
// has its result discarded instead of overwriting newer state.
type View[T any] struct {
	mu      sync.Mutex
	log     *logger.Logger
	fetch   Fetcher[T]
	reduce  Reducer[T]
	empty   T
	subject uuid.UUID
	gen     uint64
	state   State
	snap    Snapshot[T]
	closed  bool
}

type viewConfig[T any] struct {
	reduce Reducer[T]
	empty  T
}

type ViewOption[T any] func(*viewConfig[T])

// WithReducer makes the view patch incrementally instead of refetching
// on every change event.
func WithReducer[T any](r Reducer[T]) ViewOption[T] {
	return func(c *viewConfig[T]) { c.reduce = r }
}

// WithEmpty sets the default exposed while Idle and before the first
// fetch resolves.
func WithEmpty[T any](empty T) ViewOption[T] {
	return func(c *viewConfig[T]) { c.empty = empty }
}

func NewView[T any](log *logger.Logger, fetch Fetcher[T], opts ...ViewOption[T]) *View[T] {
	cfg := viewConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &View[T]{
		log:    log.With("component", "LiveView"),
		fetch:  fetch,
		reduce: cfg.reduce,
		empty:  cfg.empty,
		state:  StateIdle,
		snap:   Snapshot[T]{Data: cfg.empty},
	}
}

// SetSubject rescopes the view. A nil subject short-circuits to Idle
// with the empty default and no request. Any in-flight fetch for the
// previous subject is invalidated before the new one starts.
func (v *View[T]) SetSubject(ctx context.Context, subjectID uuid.UUID) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.gen++
	v.subject = subjectID
	if subjectID == uuid.Nil {
		v.state = StateIdle
		v.snap = Snapshot[T]{Data: v.empty}
		v.mu.Unlock()
		return
	}
	gen := v.gen
	v.state = StateLoading
	v.snap.Loading = true
	v.snap.Err = nil
	v.mu.Unlock()

	go v.load(ctx, subjectID, gen)
}

// Refresh re-runs the fetcher for the current subject. A refresh
// started earlier and still in flight is superseded.
func (v *View[T]) Refresh(ctx context.Context) {
	v.mu.Lock()
	if v.closed || v.subject == uuid.Nil {
		v.mu.Unlock()
		return
	}
	v.gen++
	gen := v.gen
	subject := v.subject
	v.state = StateLoading
	v.snap.Loading = true
	v.snap.Err = nil
	v.mu.Unlock()

	go v.load(ctx, subject, gen)
}

func (v *View[T]) load(ctx context.Context, subjectID uuid.UUID, gen uint64) {
	data, err := v.fetch(ctx, subjectID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		// Stale resolution: the subject changed (or a newer fetch
		// started) while this one was in flight.
		return
	}
	v.snap.Loading = false
	if err != nil {
		v.state = StateFailed
		v.snap.Err = err
		v.log.Warn("fetch failed", "subject_id", subjectID, "error", err)
		return
	}
	v.state = StateReady
	v.snap.Data = data
	v.snap.Err = nil
}

// Apply feeds one change event into the view. Events for a different
// subject are ignored. With a reducer configured the data is patched
// in place; otherwise the event only triggers a refetch.
func (v *View[T]) Apply(ctx context.Context, ev realtime.ChangeEvent) {
	v.mu.Lock()
	if v.closed || v.subject == uuid.Nil || ev.SubjectID != v.subject {
		v.mu.Unlock()
		return
	}
	if v.reduce != nil {
		v.snap.Data = v.reduce(v.snap.Data, ev)
		v.state = StateReady
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()
	v.Refresh(ctx)
}

// Consume drains a subscription into Apply until its channel closes.
// Call Unsubscribe on the subscription to stop; the view itself stays
// usable.
func (v *View[T]) Consume(ctx context.Context, sub *realtime.Subscription) {
	go func() {
		for ev := range sub.C {
			v.Apply(ctx, ev)
		}
	}()
}

// Snapshot returns a copy of the current snapshot.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// State returns the view's lifecycle state.
func (v *View[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Close detaches the view; later events, fetch resolutions and subject
// changes are all no-ops.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
}
