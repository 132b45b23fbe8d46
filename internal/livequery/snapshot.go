package livequery

// State is the lifecycle of a view. There is no terminal state: a view
// re-enters StateLoading on every subject change or refresh for as
// long as its scope lives.
//
//	Idle -> Loading -> Ready
//	               \-> Failed
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshot is the materialized {data, loading, error} triple exposed
// to consumers. Loading==true implies Err==nil. On a failed fetch Data
// keeps its previous value: stale-but-present beats blanking the UI.
type Snapshot[T any] struct {
	Data    T     `json:"data"`
	Loading bool  `json:"loading"`
	Err     error `json:"-"`
}
