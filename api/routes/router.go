package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cartforge/quote-service/api/controllers"
	"github.com/cartforge/quote-service/api/middleware"
	quotesvc "github.com/cartforge/quote-service/internal/quote"
	uploadsvc "github.com/cartforge/quote-service/internal/uploads"
	"github.com/cartforge/quote-service/pkg/config"
	"github.com/cartforge/quote-service/pkg/db"
	"github.com/cartforge/quote-service/pkg/logger"
	pkgredis "github.com/cartforge/quote-service/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	cartService quotesvc.Service,
	uploadService uploadsvc.Service,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var redisP pkgredis.Pinger
	var idempotencyStore pkgredis.IdempotencyStore
	if redisClient != nil {
		redisP = redisClient
		idempotencyStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(
			middleware.Session(cfg.JWT, logg),
			middleware.Idempotency(idempotencyStore, logg),
		).Post("/cart/items", controllers.SaveCartItem(cartService, logg))

		r.Get("/cart/items", controllers.GetCartItems(cartService, logg))

		r.With(middleware.Idempotency(idempotencyStore, logg)).
			Post("/uploads", controllers.Upload(uploadService, logg))
	})

	return r
}
