package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/emrekoca/storefront/internal/catalog/domain"
	"github.com/emrekoca/storefront/pkg/api"
)

// productDTO mirrors the wire shape. Identifiers arrive under either
// the primary or the legacy field depending on which backend component
// produced the record; records carrying neither are dropped.
type productDTO struct {
	PrimaryID    string          `json:"_id"`
	LegacyID     string          `json:"id"`
	Name         string          `json:"name"`
	Author       string          `json:"author"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Rating       float64         `json:"rating"`
	IsBestSeller bool            `json:"isBestSeller"`
	IsNewArrival bool            `json:"isNewArrival"`
}

func (d productDTO) toDomain() (domain.Product, bool) {
	id, ok := domain.CanonicalID(d.PrimaryID, d.LegacyID)
	if !ok {
		return domain.Product{}, false
	}

	return domain.Product{
		ID:           id,
		Name:         d.Name,
		Author:       d.Author,
		Category:     d.Category,
		Price:        d.Price,
		Stock:        d.Stock,
		Rating:       d.Rating,
		IsBestSeller: d.IsBestSeller,
		IsNewArrival: d.IsNewArrival,
	}, true
}

type ProductSource struct {
	client *api.Client
}

func NewProductSource(client *api.Client) *ProductSource {
	return &ProductSource{client: client}
}

func (s *ProductSource) List(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := s.client.Get(ctx, "/products", &dtos); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, ok := dto.toDomain()
		if !ok {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *ProductSource) Get(ctx context.Context, id string) (domain.Product, error) {
	var dto productDTO
	if err := s.client.Get(ctx, "/products/"+url.PathEscape(id), &dto); err != nil {
		return domain.Product{}, err
	}

	p, ok := dto.toDomain()
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: response carries no identifier", id)
	}
	return p, nil
}
