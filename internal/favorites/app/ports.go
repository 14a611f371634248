package app

import (
	"context"

	catalog "github.com/emrekoca/storefront/internal/catalog/domain"
)

// FavoritesRepo is the server-side favorite set. Add and Remove are
// idempotent on the backend: re-adding a present id or removing an
// absent one does not error.
type FavoritesRepo interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
}

// ProductReader resolves favorite ids to product snapshots for the
// hydrated favorites view.
type ProductReader interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}
