package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/tutienda/storefront/internal/api"
	"github.com/tutienda/storefront/internal/auth"
	"github.com/tutienda/storefront/internal/cart"
	"github.com/tutienda/storefront/internal/catalog"
	"github.com/tutienda/storefront/internal/checkout"
	"github.com/tutienda/storefront/internal/orders"
	"github.com/tutienda/storefront/internal/session"
	"github.com/tutienda/storefront/pkg/config"
	"github.com/tutienda/storefront/pkg/logger"
	"github.com/tutienda/storefront/pkg/storage"
	filestore "github.com/tutienda/storefront/pkg/storage/file"
	redisstore "github.com/tutienda/storefront/pkg/storage/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := newStore(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap snapshot store", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(ctx, "error closing snapshot store", err)
		}
	}()

	cartMgr, err := cart.NewManager(ctx, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart manager", err)
		os.Exit(1)
	}

	sessionMgr, err := session.NewManager(ctx, store, cartMgr, logg)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	client, err := api.New(cfg.Backend, logg, sessionMgr.Token)
	if err != nil {
		logg.Error(ctx, "failed to create backend client", err)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(client, cartMgr, logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	checkoutOpts := checkout.OptionsFromConfig(cfg.Checkout)
	orderSvc, err := orders.NewService(client, cartMgr, sessionMgr, checkoutOpts, logg)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	authSvc, err := auth.NewService(client, sessionMgr, logg)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	app := &cli{
		cfg:      cfg,
		logg:     logg,
		cart:     cartMgr,
		sessions: sessionMgr,
		backend:  client,
		catalog:  catalogSvc,
		orders:   orderSvc,
		auth:     authSvc,
	}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		logg.Error(ctx, "command failed", err)
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Backend == config.StorageBackendRedis {
		return redisstore.New(ctx, cfg.Redis)
	}
	return filestore.New(cfg.Storage.StateDir)
}
