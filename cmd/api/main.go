package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmancera/shopstream-backend/api/controllers"
	"github.com/dmancera/shopstream-backend/api/routes"
	"github.com/dmancera/shopstream-backend/internal/auth"
	"github.com/dmancera/shopstream-backend/internal/customers"
	"github.com/dmancera/shopstream-backend/internal/events"
	"github.com/dmancera/shopstream-backend/internal/products"
	"github.com/dmancera/shopstream-backend/internal/saleschannels"
	"github.com/dmancera/shopstream-backend/internal/sysconfig"
	"github.com/dmancera/shopstream-backend/internal/wishlist"
	"github.com/dmancera/shopstream-backend/pkg/auth/session"
	"github.com/dmancera/shopstream-backend/pkg/config"
	"github.com/dmancera/shopstream-backend/pkg/db"
	"github.com/dmancera/shopstream-backend/pkg/logger"
	"github.com/dmancera/shopstream-backend/pkg/metrics"
	"github.com/dmancera/shopstream-backend/pkg/migrate"
	"github.com/dmancera/shopstream-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	channelResolver, err := saleschannels.NewResolver(saleschannels.ResolverParams{
		Repo:     saleschannels.NewRepository(dbClient.DB()),
		Cache:    redisClient,
		CacheTTL: cfg.SalesChannel.CacheTTL,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sales channel resolver", err)
		os.Exit(1)
	}

	configService, err := sysconfig.NewService(sysconfig.ServiceParams{
		Repo:     sysconfig.NewRepository(dbClient.DB()),
		Cache:    redisClient,
		CacheTTL: cfg.SysConfig.CacheTTL,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create system config service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		CustomerRepo:   customers.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	dispatcher := events.NewDispatcher(logg)

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlist.NewRepository(dbClient.DB()),
		ProductRepo:  products.NewRepository(dbClient.DB()),
		Config:       configService,
		Notifier:     dispatcher,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			Metrics:         httpMetrics,
			Registry:        registry,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			ChannelResolver: channelResolver,
			AuthService:     authService,
			WishlistService: wishlistService,
			Pingers: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
