package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/emrekoca/storefront/internal/catalog/domain"
	"github.com/emrekoca/storefront/pkg/lifecycle"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyQuery   = errors.New("empty search query")
)

const fetchCategory = "catalog/fetch"

// Service caches the remote catalog and answers synchronous queries
// (search, filtered views) against the cached snapshot. The snapshot
// is replaced only by a successful Refresh; a failed fetch keeps the
// previous one so views degrade to stale data plus an error state.
type Service struct {
	source ProductSource
	track  *lifecycle.Tracker[int]

	mu       sync.RWMutex
	products []domain.Product
}

func NewService(source ProductSource) *Service {
	return &Service{
		source: source,
		track:  lifecycle.New[int](),
	}
}

// Refresh fetches the catalog and replaces the cached snapshot on
// success. A superseded fetch (another Refresh began meanwhile) does
// not touch the snapshot regardless of how it resolved.
func (s *Service) Refresh(ctx context.Context) error {
	gen := s.track.Begin(fetchCategory)

	products, err := s.source.List(ctx)
	if err != nil {
		s.track.Resolve(fetchCategory, gen, 0, err)
		return fmt.Errorf("refresh catalog: %w", err)
	}

	if !s.track.Resolve(fetchCategory, gen, len(products), nil) {
		return nil
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// State reports the lifecycle of the last catalog fetch, for loading
// and error indicators.
func (s *Service) State() lifecycle.Snapshot[int] {
	return s.track.Get(fetchCategory)
}

// Products returns the cached snapshot in catalog order.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product looks a product up in the cached snapshot.
func (s *Service) Product(id string) (domain.Product, bool) {
	canonical, ok := domain.CanonicalID(id, "")
	if !ok {
		return domain.Product{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == canonical {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Fetch retrieves a single product from the backend, bypassing the
// cache (product detail view).
func (s *Service) Fetch(ctx context.Context, id string) (domain.Product, error) {
	canonical, ok := domain.CanonicalID(id, "")
	if !ok {
		return domain.Product{}, ErrInvalidInput
	}
	return s.source.Get(ctx, canonical)
}

// Search filters the cached snapshot with a single case-insensitive
// substring predicate across name, author and category. The result
// preserves catalog order; no ranking, no tokenization. An empty or
// whitespace-only query is rejected and nothing changes.
func (s *Service) Search(query string) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Author), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// BestSellers returns the flagged subset in catalog order.
func (s *Service) BestSellers() []domain.Product {
	return s.filter(func(p domain.Product) bool { return p.IsBestSeller })
}

// NewArrivals returns the flagged subset in catalog order.
func (s *Service) NewArrivals() []domain.Product {
	return s.filter(func(p domain.Product) bool { return p.IsNewArrival })
}

// Categories lists distinct category names in first-seen order.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func (s *Service) filter(keep func(domain.Product) bool) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
