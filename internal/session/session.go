// Package session ties the per-login client state together: the
// credential, the local cart, and the server-backed mirrors for
// catalog, favorites and orders. One Session lives from sign-in (or
// anonymous start) until logout; nothing here is ambient or global.
package session

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	cartapp "github.com/emrekoca/storefront/internal/cart/app"
	catalogapp "github.com/emrekoca/storefront/internal/catalog/app"
	favoritesapp "github.com/emrekoca/storefront/internal/favorites/app"
	orderapp "github.com/emrekoca/storefront/internal/order/app"
)

type Deps struct {
	Creds     *Store
	Catalog   *catalogapp.Service
	Cart      *cartapp.Service
	Favorites *favoritesapp.Service
	Orders    *orderapp.Service
	Admin     *orderapp.AdminService
	Log       *slog.Logger
}

type Session struct {
	Creds     *Store
	Catalog   *catalogapp.Service
	Cart      *cartapp.Service
	Favorites *favoritesapp.Service
	Orders    *orderapp.Service
	Admin     *orderapp.AdminService

	log *slog.Logger
}

func New(d Deps) *Session {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	return &Session{
		Creds:     d.Creds,
		Catalog:   d.Catalog,
		Cart:      d.Cart,
		Favorites: d.Favorites,
		Orders:    d.Orders,
		Admin:     d.Admin,
		log:       log,
	}
}

// Warmup performs the initial fetches: the catalog always, favorites
// and orders only when a credential is present. The fetches run in
// parallel and are independent; the first failure aborts the rest.
func (s *Session) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.Catalog.Refresh(ctx) })

	if _, ok := s.Creds.Token(); ok {
		g.Go(func() error { return s.Favorites.Refresh(ctx) })
		g.Go(func() error { return s.Orders.Refresh(ctx) })
	}

	return g.Wait()
}

// Logout tears the session state down: the cart and the local mirrors
// are dropped and the credential is forgotten. Server-side state is
// untouched.
func (s *Session) Logout() {
	s.Cart.Clear()
	s.Favorites.ClearLocal()
	s.Orders.ClearLocal()
	s.Creds.Clear()
	s.log.Info("session torn down")
}
