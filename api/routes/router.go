package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lumenfoto/studio-backend/api/controllers"
	"github.com/lumenfoto/studio-backend/api/middleware"
	"github.com/lumenfoto/studio-backend/internal/contracts"
	"github.com/lumenfoto/studio-backend/pkg/config"
	"github.com/lumenfoto/studio-backend/pkg/db"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/metrics"
	"github.com/lumenfoto/studio-backend/pkg/redis"
)

// CacheStore is the redis surface the HTTP layer needs: idempotent replays,
// rate-limit counters and readiness.
type CacheStore interface {
	redis.IdempotencyStore
	redis.Pinger
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache CacheStore,
	metricsHandler http.Handler,
	retrievalMetrics *metrics.RetrievalMetrics,
	contractsService contracts.Service,
	documentService controllers.DocumentGenerator,
	paymentsService controllers.PreferenceCreator,
	adminClaims controllers.AdminClaimer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{"db": dbP}
	if cache != nil {
		readiness["redis"] = cache
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	paymentsPolicy := middleware.NewRateLimitPolicy(
		"payments",
		cfg.RateLimit.PaymentsWindow,
		cfg.RateLimit.PaymentsIPLimit,
		cfg.RateLimit.PaymentsEmailLimit,
	)

	r.Route("/api/public", func(r chi.Router) {
		r.With(
			middleware.RateLimit(paymentsPolicy, cache, logg),
			middleware.Idempotency(cache, logg),
		).Post("/payments/preferences", controllers.PaymentPreferenceCreate(paymentsService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", controllers.ContractsList(contractsService, logg, retrievalMetrics))
			r.Get("/{contractId}/document", controllers.ContractDocument(contractsService, documentService, logg))
		})

		r.With(middleware.Idempotency(cache, logg)).Post("/admin-claims", controllers.AdminClaimAssign(adminClaims, logg))
	})

	return r
}
