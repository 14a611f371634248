package app

import (
	"context"

	"github.com/emrekoca/storefront/internal/catalog/domain"
)

// ProductSource is the read side of the remote catalog. List returns
// the full catalog; Get a single product by canonical id.
type ProductSource interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
}
