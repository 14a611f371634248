package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cartapp "github.com/emrekoca/storefront/internal/cart/app"
	catalogapp "github.com/emrekoca/storefront/internal/catalog/app"
	catalogrest "github.com/emrekoca/storefront/internal/catalog/infra/rest"
	favoritesapp "github.com/emrekoca/storefront/internal/favorites/app"
	favoritesrest "github.com/emrekoca/storefront/internal/favorites/infra/rest"
	orderapp "github.com/emrekoca/storefront/internal/order/app"
	orderrest "github.com/emrekoca/storefront/internal/order/infra/rest"
	"github.com/emrekoca/storefront/pkg/api"
)

// backend is a minimal in-memory stand-in for the storefront API.
type backend struct {
	mu        sync.Mutex
	favorites map[string]bool
	orders    []map[string]any
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte(`[
			{"_id":"A","name":"Atlas","author":"Mira Sel","category":"Reference","price":10,"stock":2},
			{"id":"B","name":"Bee","category":"Nature","price":5,"stock":0}
		]`))
	})

	mux.HandleFunc("/favorites", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]map[string]string, 0)
		for id := range b.favorites {
			out = append(out, map[string]string{"_id": id})
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("/favorites/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			b.mu.Lock()
			defer b.mu.Unlock()
			b.favorites[strings.TrimPrefix(r.URL.Path, "/favorites/")] = true
		case http.MethodDelete:
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.favorites, strings.TrimPrefix(r.URL.Path, "/favorites/"))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			b.mu.Lock()
			defer b.mu.Unlock()
			_ = json.NewEncoder(w).Encode(b.orders)
		case http.MethodPost:
			b.handleCreateOrder(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	return mux
}

func (b *backend) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Products []struct {
			Product  string `json:"product"`
			Quantity int    `json:"quantity"`
		} `json:"products"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	order := map[string]any{
		"_id":       "o1",
		"status":    "Received",
		"total":     20,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
	b.mu.Lock()
	b.orders = append(b.orders, order)
	b.mu.Unlock()
	_ = json.NewEncoder(w).Encode(order)
}

func newTestSession(t *testing.T, creds Credentials) (*Session, *backend) {
	t.Helper()

	b := &backend{favorites: map[string]bool{}}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	store := NewStore()
	store.Set(creds)

	client := api.NewClient(srv.URL, time.Second, store, nil)

	products := catalogrest.NewProductSource(client)
	favRepo := favoritesrest.NewFavoritesRepo(client)
	ordersRepo := orderrest.NewOrdersRepo(client)

	sess := New(Deps{
		Creds:     store,
		Catalog:   catalogapp.NewService(products),
		Cart:      cartapp.NewService(ordersRepo, store),
		Favorites: favoritesapp.NewService(favRepo, products, store, nil),
		Orders:    orderapp.NewService(ordersRepo, store),
		Admin:     orderapp.NewAdminService(ordersRepo, store),
	})
	return sess, b
}

func TestWarmupAnonymous(t *testing.T) {
	sess, _ := newTestSession(t, Credentials{})

	require.NoError(t, sess.Warmup(context.Background()))

	require.Len(t, sess.Catalog.Products(), 2)
	require.Empty(t, sess.Favorites.Items(), "anonymous warm-up must not fetch favorites")
}

func TestWarmupSignedIn(t *testing.T) {
	sess, b := newTestSession(t, Credentials{Token: "tok"})
	b.favorites["A"] = true

	require.NoError(t, sess.Warmup(context.Background()))

	require.Len(t, sess.Catalog.Products(), 2)
	require.Equal(t, []string{"A"}, sess.Favorites.Items())
	require.True(t, sess.Favorites.IsFavorite("A"))
}

func TestCheckoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t, Credentials{Token: "tok"})
	require.NoError(t, sess.Warmup(ctx))

	atlas, ok := sess.Catalog.Product("A")
	require.True(t, ok)
	require.NoError(t, sess.Cart.Add(atlas, 2))

	receipt, err := sess.Cart.Checkout(ctx)
	require.NoError(t, err)
	require.Equal(t, "o1", receipt.OrderID)
	require.Empty(t, sess.Cart.Lines(), "cart clears only after the server ack")

	require.NoError(t, sess.Orders.Refresh(ctx))
	orders := sess.Orders.Orders()
	require.Len(t, orders, 1)
	require.Equal(t, 0, orders[0].Status.Step())
}

func TestLogoutTeardown(t *testing.T) {
	ctx := context.Background()
	sess, b := newTestSession(t, Credentials{Token: "tok", Admin: true})
	b.favorites["A"] = true
	require.NoError(t, sess.Warmup(ctx))

	atlas, _ := sess.Catalog.Product("A")
	require.NoError(t, sess.Cart.Add(atlas, 1))

	sess.Logout()

	require.Empty(t, sess.Cart.Lines())
	require.Empty(t, sess.Favorites.Items())
	require.Empty(t, sess.Orders.Orders())
	if _, ok := sess.Creds.Token(); ok {
		t.Fatal("credential must be dropped on logout")
	}
	require.False(t, sess.Creds.Privileged())

	// Server state is untouched by a local logout.
	b.mu.Lock()
	defer b.mu.Unlock()
	require.True(t, b.favorites["A"])
}
