package main

import (
	"context"
	"log/slog"
	"os"

	cartapp "github.com/emrekoca/storefront/internal/cart/app"
	catalogapp "github.com/emrekoca/storefront/internal/catalog/app"
	catalogrest "github.com/emrekoca/storefront/internal/catalog/infra/rest"
	favoritesapp "github.com/emrekoca/storefront/internal/favorites/app"
	favoritesrest "github.com/emrekoca/storefront/internal/favorites/infra/rest"
	orderapp "github.com/emrekoca/storefront/internal/order/app"
	orderrest "github.com/emrekoca/storefront/internal/order/infra/rest"
	"github.com/emrekoca/storefront/internal/session"
	"github.com/emrekoca/storefront/pkg/api"
	"github.com/emrekoca/storefront/pkg/config"
	"github.com/emrekoca/storefront/pkg/logger"
	"github.com/emrekoca/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	store := session.NewStore()
	if cfg.APIToken != "" {
		store.Set(session.Credentials{Token: cfg.APIToken, Admin: cfg.APIAdmin})
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, store, log)

	products := catalogrest.NewProductSource(client)
	favorites := favoritesrest.NewFavoritesRepo(client)
	orders := orderrest.NewOrdersRepo(client)

	sess := session.New(session.Deps{
		Creds:     store,
		Catalog:   catalogapp.NewService(products),
		Cart:      cartapp.NewService(orders, store),
		Favorites: favoritesapp.NewService(favorites, products, store, log),
		Orders:    orderapp.NewService(orders, store),
		Admin:     orderapp.NewAdminService(orders, store),
		Log:       log,
	})

	log.Info("warming up session", slog.String("base_url", cfg.APIBaseURL))
	if err := sess.Warmup(ctx); err != nil {
		log.Error("warm-up failed", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("catalog synced",
		slog.Int("products", len(sess.Catalog.Products())),
		slog.Int("best_sellers", len(sess.Catalog.BestSellers())),
		slog.Int("new_arrivals", len(sess.Catalog.NewArrivals())),
		slog.Any("categories", sess.Catalog.Categories()),
	)

	if _, ok := store.Token(); ok {
		log.Info("favorites synced", slog.Int("count", sess.Favorites.Count()))

		for _, o := range sess.Orders.Orders() {
			log.Info("order",
				slog.String("id", o.ID),
				slog.String("status", string(o.Status)),
				slog.Int("step", o.Status.Step()),
				slog.String("total", o.Total.String()),
				slog.Int("lines", len(o.Lines)),
			)
		}
	} else {
		log.Info("anonymous session; favorites and orders skipped")
	}

	log.Info("bye")
}
