package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emrekoca/storefront/internal/cart/domain"
)

// OrderPlacer submits the entire cart as one atomic checkout payload.
// Lines are never transmitted incrementally.
type OrderPlacer interface {
	Place(ctx context.Context, lines []domain.Line) (Receipt, error)
}

// Receipt is the server's acknowledgment of a placed order.
type Receipt struct {
	OrderID   string
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
}
