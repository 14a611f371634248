package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emrekoca/storefront/pkg/api"
)

func newSource(t *testing.T, handler http.HandlerFunc) *ProductSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProductSource(api.NewClient(srv.URL, time.Second, nil, nil))
}

func TestListNormalizesIdentifiers(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"_id":"p1","name":"Atlas","author":"Mira Sel","price":10.5,"stock":2},
			{"id":"p2","name":"Bee","category":"Nature","price":5,"stock":0},
			{"name":"Ghost","price":1}
		]`))
	})

	products, err := src.List(context.Background())
	require.NoError(t, err)

	// The record with neither identifier field is excluded, never an error.
	require.Len(t, products, 2)
	require.Equal(t, "p1", products[0].ID)
	require.Equal(t, "p2", products[1].ID)
	require.Equal(t, "10.5", products[0].Price.String())
	require.False(t, products[1].InStock())
}

func TestGetByID(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/p1", r.URL.Path)
		_, _ = w.Write([]byte(`{"_id":"p1","id":"p1-legacy","name":"Atlas","rating":4.5,"isBestSeller":true}`))
	})

	p, err := src.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID) // primary wins over legacy
	require.Equal(t, 4.5, p.Rating)
	require.True(t, p.IsBestSeller)
}

func TestGetWithoutIdentifier(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Nameless"}`))
	})

	_, err := src.Get(context.Background(), "p9")
	require.Error(t, err)
}
