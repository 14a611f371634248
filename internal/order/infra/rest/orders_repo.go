package rest

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	cartapp "github.com/emrekoca/storefront/internal/cart/app"
	cartdomain "github.com/emrekoca/storefront/internal/cart/domain"
	catalog "github.com/emrekoca/storefront/internal/catalog/domain"
	"github.com/emrekoca/storefront/internal/order/domain"
	"github.com/emrekoca/storefront/pkg/api"
)

// Depending on whether the backend populated the reference, an order
// line's product arrives as a bare identifier string or as an embedded
// product record with the usual dual identifier fields.
type lineDTO struct {
	Product  json.RawMessage `json:"product"`
	Quantity int             `json:"quantity"`
}

type productRefDTO struct {
	PrimaryID string `json:"_id"`
	LegacyID  string `json:"id"`
	Name      string `json:"name"`
}

func (d lineDTO) toDomain() (domain.Line, bool) {
	var id string
	var name string

	var bare string
	if err := json.Unmarshal(d.Product, &bare); err == nil {
		id = bare
	} else {
		var ref productRefDTO
		if err := json.Unmarshal(d.Product, &ref); err != nil {
			return domain.Line{}, false
		}
		canonical, ok := catalog.CanonicalID(ref.PrimaryID, ref.LegacyID)
		if !ok {
			return domain.Line{}, false
		}
		id = canonical
		name = ref.Name
	}

	canonical, ok := catalog.CanonicalID(id, "")
	if !ok {
		return domain.Line{}, false
	}

	return domain.Line{ProductID: canonical, Name: name, Quantity: d.Quantity}, true
}

type orderDTO struct {
	PrimaryID string          `json:"_id"`
	LegacyID  string          `json:"id"`
	Products  []lineDTO       `json:"products"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (d orderDTO) toDomain() (domain.Order, bool) {
	id, ok := catalog.CanonicalID(d.PrimaryID, d.LegacyID)
	if !ok {
		return domain.Order{}, false
	}

	lines := make([]domain.Line, 0, len(d.Products))
	for _, l := range d.Products {
		line, ok := l.toDomain()
		if !ok {
			continue
		}
		lines = append(lines, line)
	}

	return domain.Order{
		ID:        id,
		Lines:     lines,
		Total:     d.Total,
		Status:    domain.Status(d.Status),
		CreatedAt: d.CreatedAt,
	}, true
}

type checkoutLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type checkoutPayload struct {
	Products []checkoutLine `json:"products"`
}

// OrdersRepo talks to the /orders endpoints: the user's own orders,
// checkout submission, and the administrative listing and status
// transitions.
type OrdersRepo struct {
	client *api.Client
}

func NewOrdersRepo(client *api.Client) *OrdersRepo {
	return &OrdersRepo{client: client}
}

func (r *OrdersRepo) ListMine(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, "/orders")
}

func (r *OrdersRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, "/orders/all")
}

func (r *OrdersRepo) list(ctx context.Context, path string) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := r.client.Get(ctx, path, &dtos); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, ok := dto.toDomain()
		if !ok {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrdersRepo) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	body := struct {
		Status string `json:"status"`
	}{Status: string(status)}

	return r.client.Put(ctx, "/orders/"+url.PathEscape(orderID), body, nil)
}

// Place submits the whole cart as one checkout payload and returns the
// server's acknowledgment. Implements the cart's OrderPlacer port.
func (r *OrdersRepo) Place(ctx context.Context, lines []cartdomain.Line) (cartapp.Receipt, error) {
	payload := checkoutPayload{Products: make([]checkoutLine, 0, len(lines))}
	for _, l := range lines {
		payload.Products = append(payload.Products, checkoutLine{
			Product:  l.ProductID,
			Quantity: l.Quantity,
		})
	}

	var dto orderDTO
	if err := r.client.Post(ctx, "/orders", payload, &dto); err != nil {
		return cartapp.Receipt{}, err
	}

	id, _ := catalog.CanonicalID(dto.PrimaryID, dto.LegacyID)
	return cartapp.Receipt{
		OrderID:   id,
		Status:    dto.Status,
		Total:     dto.Total,
		CreatedAt: dto.CreatedAt,
	}, nil
}
