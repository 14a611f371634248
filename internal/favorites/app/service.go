package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	catalog "github.com/emrekoca/storefront/internal/catalog/domain"
	"github.com/emrekoca/storefront/internal/favorites/domain"
	"github.com/emrekoca/storefront/pkg/api"
	"github.com/emrekoca/storefront/pkg/lifecycle"
)

var (
	ErrAuthRequired   = errors.New("sign-in required")
	ErrInvalidProduct = errors.New("product has no identifier")
)

const (
	fetchCategory = "favorites/fetch"

	maxHydrate = 10
)

func mutateCategory(productID string) string {
	return "favorites/mutate/" + productID
}

// Service mirrors the server-owned favorite set. Toggles flip the
// visible state before the round-trip resolves; a failed mutation
// triggers a full re-fetch of the authoritative set instead of a
// blind revert, so the mirror cannot diverge from the server after
// partial failures. Concurrent toggles on one product are independent
// requests; the per-product generation guard commits only the most
// recently issued one.
type Service struct {
	repo     FavoritesRepo
	products ProductReader
	tokens   api.TokenSource
	log      *slog.Logger

	fetches   *lifecycle.Tracker[[]string]
	mutations *lifecycle.Tracker[domain.State]

	mu     sync.Mutex
	states map[string]domain.State
}

func NewService(repo FavoritesRepo, products ProductReader, tokens api.TokenSource, log *slog.Logger) *Service {
	if tokens == nil {
		tokens = api.Anonymous{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		repo:      repo,
		products:  products,
		tokens:    tokens,
		log:       log,
		fetches:   lifecycle.New[[]string](),
		mutations: lifecycle.New[domain.State](),
		states:    make(map[string]domain.State),
	}
}

// Refresh replaces the local mirror with the server's authoritative
// set. Runs on session warm-up and after any failed mutation.
func (s *Service) Refresh(ctx context.Context) error {
	if _, ok := s.tokens.Token(); !ok {
		return ErrAuthRequired
	}

	gen := s.fetches.Begin(fetchCategory)

	ids, err := s.repo.List(ctx)
	if err != nil {
		s.fetches.Resolve(fetchCategory, gen, nil, err)
		return fmt.Errorf("refresh favorites: %w", err)
	}

	if !s.fetches.Resolve(fetchCategory, gen, ids, nil) {
		return nil
	}

	next := make(map[string]domain.State, len(ids))
	for _, raw := range ids {
		id, ok := catalog.CanonicalID(raw, "")
		if !ok {
			continue
		}
		next[id] = domain.Favorited
	}

	s.mu.Lock()
	s.states = next
	s.mu.Unlock()
	return nil
}

// Toggle favorites or unfavorites a product. The visible state flips
// immediately; the server call resolves afterwards. Unauthenticated
// callers are refused before any state change (the UI sends them to
// the login entry point).
func (s *Service) Toggle(ctx context.Context, productID string) error {
	id, ok := catalog.CanonicalID(productID, "")
	if !ok {
		return ErrInvalidProduct
	}
	if _, ok := s.tokens.Token(); !ok {
		return ErrAuthRequired
	}

	// Flip and take the generation under one lock so the visible
	// state and the request order cannot disagree.
	s.mu.Lock()
	pending := s.states[id].Toggle()
	s.states[id] = pending
	gen := s.mutations.Begin(mutateCategory(id))
	s.mu.Unlock()

	var err error
	if pending == domain.PendingAdd {
		err = s.repo.Add(ctx, id)
	} else {
		err = s.repo.Remove(ctx, id)
	}

	if !s.mutations.Resolve(mutateCategory(id), gen, pending.Settle(), err) {
		// A later toggle superseded this one; its resolution owns the
		// outcome and this result is discarded.
		return nil
	}

	if err != nil {
		s.log.Warn("favorite mutation failed, re-syncing",
			slog.String("product_id", id),
			slog.Any("err", err),
		)
		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			return errors.Join(fmt.Errorf("toggle favorite %s: %w", id, err), refreshErr)
		}
		return fmt.Errorf("toggle favorite %s: %w", id, err)
	}

	s.mu.Lock()
	s.states[id] = pending.Settle()
	if s.states[id] == domain.Unfavorited {
		delete(s.states, id)
	}
	s.mu.Unlock()
	return nil
}

// IsFavorite reports the visible state, optimistic pendings included.
func (s *Service) IsFavorite(productID string) bool {
	id, ok := catalog.CanonicalID(productID, "")
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id].Visible()
}

// Items lists the visibly favorited ids, sorted for stable display.
func (s *Service) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.states))
	for id, st := range s.states {
		if st.Visible() {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Service) Count() int {
	return len(s.Items())
}

// State exposes the lifecycle of the last authoritative fetch.
func (s *Service) State() lifecycle.Snapshot[[]string] {
	return s.fetches.Get(fetchCategory)
}

// ClearLocal drops the local mirror without touching the server; part
// of logout teardown.
func (s *Service) ClearLocal() {
	s.mu.Lock()
	s.states = make(map[string]domain.State)
	s.mu.Unlock()
	s.fetches.Reset(fetchCategory)
}

// Hydrate resolves the visible favorite ids to product snapshots.
// Products the catalog no longer knows are dropped rather than left
// as orphaned references.
func (s *Service) Hydrate(ctx context.Context) ([]catalog.Product, error) {
	ids := s.Items()
	if len(ids) == 0 {
		return nil, nil
	}

	found := make([]*catalog.Product, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxHydrate)

	for idx, id := range ids {
		idx, id := idx, id
		g.Go(func() error {
			p, err := s.products.Get(ctx, id)
			if err != nil {
				var apiErr *api.Error
				if errors.As(err, &apiErr) && apiErr.Kind == api.KindNotFound {
					return nil
				}
				return fmt.Errorf("hydrate favorite %s: %w", id, err)
			}
			found[idx] = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]catalog.Product, 0, len(found))
	for _, p := range found {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}
