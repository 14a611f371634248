package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/emrekoca/storefront/internal/cart/domain"
	catalog "github.com/emrekoca/storefront/internal/catalog/domain"
	"github.com/emrekoca/storefront/pkg/api"
)

var (
	ErrOutOfStock      = errors.New("product out of stock")
	ErrInvalidProduct  = errors.New("product has no identifier")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAuthRequired    = errors.New("sign-in required")
)

// Service owns the session-local cart. Mutations are synchronous and
// never touch the network; Checkout is the single server round-trip
// and the only operation allowed to clear the cart.
type Service struct {
	placer OrderPlacer
	tokens api.TokenSource

	mu   sync.Mutex
	cart *domain.Cart
}

func NewService(placer OrderPlacer, tokens api.TokenSource) *Service {
	if tokens == nil {
		tokens = api.Anonymous{}
	}

	return &Service{
		placer: placer,
		tokens: tokens,
		cart:   domain.New(),
	}
}

// Add puts quantity units of the product into the cart, taking the
// current price as the line's snapshot. Out-of-stock products are
// rejected with no state change.
func (s *Service) Add(p catalog.Product, quantity int) error {
	id, ok := catalog.CanonicalID(p.ID, "")
	if !ok {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !p.InStock() {
		return ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(id, p.Price, quantity)
	return nil
}

func (s *Service) Remove(productID string) {
	id, ok := catalog.CanonicalID(productID, "")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(id)
}

func (s *Service) SetQuantity(productID string, quantity int) {
	id, ok := catalog.CanonicalID(productID, "")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(id, quantity)
}

func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

func (s *Service) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// Checkout submits the whole cart as one payload. The cart is cleared
// only after the server acknowledged the order; any failure leaves the
// lines untouched so the user can retry.
func (s *Service) Checkout(ctx context.Context) (Receipt, error) {
	if _, ok := s.tokens.Token(); !ok {
		return Receipt{}, ErrAuthRequired
	}

	s.mu.Lock()
	lines := s.cart.Lines()
	s.mu.Unlock()

	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	receipt, err := s.placer.Place(ctx, lines)
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()
	return receipt, nil
}
