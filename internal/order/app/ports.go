package app

import (
	"context"

	"github.com/emrekoca/storefront/internal/order/domain"
)

// OrderSource reads the signed-in user's own orders.
type OrderSource interface {
	ListMine(ctx context.Context) ([]domain.Order, error)
}

// AdminRepo is the back-office surface: every user's orders plus
// status transitions. Requires the privileged claim.
type AdminRepo interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.Status) error
}

// Credential exposes the opaque bearer token and the privileged claim
// decoded from it. Acquisition and storage live outside this module.
type Credential interface {
	Token() (string, bool)
	Privileged() bool
}
