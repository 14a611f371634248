// Package lifecycle tracks the state of asynchronous API operations.
// Every round-trip against the storefront API belongs to a category
// ("catalog/fetch", "favorites/mutate/<id>", ...); each category moves
// through Idle -> Pending -> Succeeded | Failed. A monotonically
// increasing generation per category discards results of superseded
// requests: when two requests for the same category overlap, only the
// most recently begun one may commit its result.
package lifecycle

import "sync"

type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is the consumer-visible view of one category. Value is the
// last successfully resolved result; Err the last failure reason.
type Snapshot[T any] struct {
	State State
	Value T
	Err   error
}

type entry[T any] struct {
	gen   uint64
	state State
	value T
	err   error
}

// Tracker holds request state per category. The zero value is not
// usable; construct with New.
type Tracker[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

func New[T any]() *Tracker[T] {
	return &Tracker[T]{
		entries: make(map[string]*entry[T]),
	}
}

// Begin marks the category Pending and returns the generation the
// caller must present to Resolve.
func (t *Tracker[T]) Begin(category string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[category]
	if e == nil {
		e = &entry[T]{}
		t.entries[category] = e
	}

	e.gen++
	e.state = Pending
	return e.gen
}

// Resolve commits the outcome of the request begun with gen. A stale
// generation is a no-op and returns false; the superseding request's
// resolution wins regardless of completion order.
func (t *Tracker[T]) Resolve(category string, gen uint64, value T, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[category]
	if e == nil || e.gen != gen {
		return false
	}

	if err != nil {
		e.state = Failed
		e.err = err
		return true
	}

	e.state = Succeeded
	e.value = value
	e.err = nil
	return true
}

// Get returns the current snapshot for a category; an unknown category
// reads as Idle.
func (t *Tracker[T]) Get(category string) Snapshot[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[category]
	if e == nil {
		var zero T
		return Snapshot[T]{State: Idle, Value: zero}
	}

	return Snapshot[T]{State: e.state, Value: e.value, Err: e.err}
}

// Reset drops a category back to Idle, forgetting any stored result.
// Pending resolutions against prior generations stay discarded.
func (t *Tracker[T]) Reset(category string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[category]
	if e == nil {
		return
	}

	e.gen++
	e.state = Idle
	var zero T
	e.value = zero
	e.err = nil
}
