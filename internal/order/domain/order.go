package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the server-reported order state. The client never mutates
// it; an administrative actor moves it forward through a separate
// channel and the client observes it by re-fetching.
type Status string

const (
	StatusReceived  Status = "Received"
	StatusPreparing Status = "Preparing"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
)

// Steps is the fixed progress scale shown to the user, in display
// order.
func Steps() []Status {
	return []Status{StatusReceived, StatusPreparing, StatusShipped, StatusDelivered}
}

var statusSteps = map[Status]int{
	StatusReceived:  0,
	StatusPreparing: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

// Step projects the status onto the zero-based progress scale.
// Unrecognized or absent statuses read as the first step, never as an
// out-of-range index.
func (s Status) Step() int {
	if step, ok := statusSteps[s]; ok {
		return step
	}
	return 0
}

func (s Status) Known() bool {
	_, ok := statusSteps[s]
	return ok
}

// Line is one ordered position: a product reference plus quantity.
type Line struct {
	ProductID string
	Name      string
	Quantity  int
}

// Order is read-only from the client's perspective. Total is the
// server's figure and is displayed as received, never recomputed.
type Order struct {
	ID        string
	Lines     []Line
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
}
