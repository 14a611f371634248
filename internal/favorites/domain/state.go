// Package domain models the per-product favorite synchronization
// state. The server owns the favorite set; the client view flips
// optimistically on toggle and converges back to server truth through
// re-fetch, never through blind reverts.
package domain

type State int

const (
	Unfavorited State = iota
	PendingAdd
	Favorited
	PendingRemove
)

func (s State) String() string {
	switch s {
	case Unfavorited:
		return "unfavorited"
	case PendingAdd:
		return "pending-add"
	case Favorited:
		return "favorited"
	case PendingRemove:
		return "pending-remove"
	default:
		return "unknown"
	}
}

// Visible reports whether the product is currently shown as favorited.
// Optimistic pending states already display their target state.
func (s State) Visible() bool {
	return s == PendingAdd || s == Favorited
}

// Toggle returns the optimistic state entered when the user toggles
// from s, before the server round-trip resolves.
func (s State) Toggle() State {
	if s.Visible() {
		return PendingRemove
	}
	return PendingAdd
}

// Settle is the confirmed state after the server acknowledged the
// pending mutation.
func (s State) Settle() State {
	switch s {
	case PendingAdd:
		return Favorited
	case PendingRemove:
		return Unfavorited
	default:
		return s
	}
}
