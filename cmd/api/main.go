package main

import (
	"context"
	"log"
	"time"

	"storefront/internal/core/cache"
	"storefront/internal/core/config"
	"storefront/internal/core/logger"
	"storefront/internal/core/server"
	catalogadapter "storefront/internal/features/catalog/adapters"
	cataloghandler "storefront/internal/features/catalog/handler"
	catalogports "storefront/internal/features/catalog/ports"
	checkoutadapter "storefront/internal/features/checkout/adapters"
	"storefront/internal/features/session"
	sessionhandler "storefront/internal/features/session/handler"

	"go.uber.org/zap"
)

// @title Storefront API
// @version 1.0
// @description Shopping session API over a remote shop catalog: product previews, cart, two-step checkout and order submission.
// @contact.name API Support
// @contact.email support@storefront.local
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the catalog provider, optionally behind a Redis cache.
	var provider catalogports.CatalogProvider = catalogadapter.NewShopAPIAdapter(cfg.ShopAPI)

	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else if err := redisCache.Ping(context.Background()); err != nil {
			l.Warn("Redis unreachable, catalog cache disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			ttl := time.Duration(cfg.Cache.CatalogTTL) * time.Second
			provider = catalogadapter.NewCachedProvider(provider, redisCache, ttl)
			l.Info("Catalog cache enabled", zap.Duration("ttl", ttl))
		}
	}

	// Load the catalog once at startup. Sessions are seeded with this list;
	// a failure leaves an empty storefront but the service still comes up.
	catalog, err := provider.Products(context.Background())
	if err != nil {
		l.Error("Failed to load catalog, starting with an empty one", zap.Error(err))
	} else {
		l.Info("Catalog loaded", zap.Int("products", catalog.Total))
	}

	submitter := checkoutadapter.NewShopAPIAdapter(cfg.ShopAPI)
	manager := session.NewManager(catalog, submitter)

	catalogHdl := cataloghandler.NewCatalogHandler(provider)
	sessionHdl := sessionhandler.NewSessionHandler(manager)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/products", catalogHdl.ListProducts)
	srv.App.Get("/products/:id", catalogHdl.GetProduct)
	sessionHdl.RegisterRoutes(srv.App)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
