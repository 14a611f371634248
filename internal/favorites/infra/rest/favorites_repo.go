package rest

import (
	"context"
	"net/url"

	catalog "github.com/emrekoca/storefront/internal/catalog/domain"
	"github.com/emrekoca/storefront/pkg/api"
)

// favoriteDTO carries just the product reference; the backend returns
// favorite entries as thin records under either identifier field.
type favoriteDTO struct {
	PrimaryID string `json:"_id"`
	LegacyID  string `json:"id"`
}

type FavoritesRepo struct {
	client *api.Client
}

func NewFavoritesRepo(client *api.Client) *FavoritesRepo {
	return &FavoritesRepo{client: client}
}

func (r *FavoritesRepo) List(ctx context.Context) ([]string, error) {
	var dtos []favoriteDTO
	if err := r.client.Get(ctx, "/favorites", &dtos); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		id, ok := catalog.CanonicalID(dto.PrimaryID, dto.LegacyID)
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *FavoritesRepo) Add(ctx context.Context, productID string) error {
	return r.client.Post(ctx, "/favorites/"+url.PathEscape(productID), struct{}{}, nil)
}

func (r *FavoritesRepo) Remove(ctx context.Context, productID string) error {
	return r.client.Delete(ctx, "/favorites/"+url.PathEscape(productID))
}
