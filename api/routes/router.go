package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmancera/shopstream-backend/api/controllers"
	"github.com/dmancera/shopstream-backend/api/middleware"
	"github.com/dmancera/shopstream-backend/internal/auth"
	"github.com/dmancera/shopstream-backend/internal/wishlist"
	"github.com/dmancera/shopstream-backend/pkg/auth/session"
	"github.com/dmancera/shopstream-backend/pkg/config"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	"github.com/dmancera/shopstream-backend/pkg/logger"
	"github.com/dmancera/shopstream-backend/pkg/metrics"
	"github.com/dmancera/shopstream-backend/pkg/redis"
)

type channelResolver interface {
	Resolve(ctx context.Context, accessKey string) (*models.SalesChannel, error)
}

// Deps carries everything the router needs wired up. Keeping it as a
// struct avoids the constructor growing a positional parameter per
// service.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Metrics         *metrics.HTTPMetrics
	Registry        *prometheus.Registry
	Redis           *redis.Client
	SessionManager  session.AccessSessionChecker
	ChannelResolver channelResolver
	AuthService     auth.Service
	WishlistService wishlist.Service
	Pingers         map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
		middleware.Metrics(deps.Metrics),
	)

	loginPolicy := middleware.NewLoginRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/store-api", func(r chi.Router) {
		r.Use(middleware.SalesChannel(deps.ChannelResolver, logg))

		r.Get("/ping", controllers.StorePing())

		r.Route("/account", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AccountLogin(deps.AuthService, logg))
			r.Post("/refresh", controllers.AccountRefresh(deps.AuthService, logg))
			r.With(middleware.CustomerSession(cfg.JWT, deps.SessionManager, logg)).
				Post("/logout", controllers.AccountLogout(deps.AuthService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalCustomerSession(cfg.JWT, deps.SessionManager, logg))
			r.Get("/wishlist", controllers.WishlistLoad(deps.WishlistService, logg))
			r.Post("/wishlist", controllers.WishlistLoad(deps.WishlistService, logg))
			r.Post("/wishlist/product/{productId}", controllers.WishlistAddProduct(deps.WishlistService, logg))
			r.Delete("/wishlist/product/{productId}", controllers.WishlistRemoveProduct(deps.WishlistService, logg))
		})
	})

	return r
}
