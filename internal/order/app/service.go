package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/emrekoca/storefront/internal/order/domain"
	"github.com/emrekoca/storefront/pkg/lifecycle"
)

var (
	ErrAuthRequired  = errors.New("sign-in required")
	ErrAdminRequired = errors.New("admin privileges required")
	ErrUnknownStatus = errors.New("unknown order status")
	ErrInvalidInput  = errors.New("invalid input")
)

const fetchCategory = "orders/fetch"

// Service mirrors the signed-in user's orders. Orders are created at
// checkout and only ever read here; a failed fetch keeps the previous
// snapshot with the tracker in Failed state.
type Service struct {
	source OrderSource
	creds  Credential
	track  *lifecycle.Tracker[int]

	mu     sync.RWMutex
	orders []domain.Order
}

func NewService(source OrderSource, creds Credential) *Service {
	return &Service{
		source: source,
		creds:  creds,
		track:  lifecycle.New[int](),
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	if _, ok := s.creds.Token(); !ok {
		return ErrAuthRequired
	}

	gen := s.track.Begin(fetchCategory)

	orders, err := s.source.ListMine(ctx)
	if err != nil {
		s.track.Resolve(fetchCategory, gen, 0, err)
		return fmt.Errorf("refresh orders: %w", err)
	}

	if !s.track.Resolve(fetchCategory, gen, len(orders), nil) {
		return nil
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// Orders returns the cached snapshot, newest first as delivered by
// the server.
func (s *Service) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Service) State() lifecycle.Snapshot[int] {
	return s.track.Get(fetchCategory)
}

// ClearLocal drops the cached orders; part of logout teardown.
func (s *Service) ClearLocal() {
	s.mu.Lock()
	s.orders = nil
	s.mu.Unlock()
	s.track.Reset(fetchCategory)
}
