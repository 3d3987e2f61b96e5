package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/wholesale-backend/api/controllers"
	"github.com/angelmondragon/wholesale-backend/api/middleware"
	"github.com/angelmondragon/wholesale-backend/internal/payouts"
	"github.com/angelmondragon/wholesale-backend/internal/pricing"
	"github.com/angelmondragon/wholesale-backend/internal/profit"
	"github.com/angelmondragon/wholesale-backend/pkg/config"
	"github.com/angelmondragon/wholesale-backend/pkg/db"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	pricingService pricing.Service,
	profitService profit.Service,
	payoutService payouts.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Get("/ping", controllers.Ping())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/quote", controllers.PricingQuote(pricingService, logg))
			r.Post("/validate-tiers", controllers.PricingValidateTiers(pricingService, logg))
		})

		r.Route("/orders/{orderId}", func(r chi.Router) {
			r.Post("/profit-report", controllers.GenerateProfitReport(profitService, logg))
			r.Get("/profit-report", controllers.GetProfitReport(profitService, logg))
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Post("/", controllers.GeneratePayout(payoutService, logg))
			r.Get("/", controllers.ListPayouts(payoutService, logg))
			r.Route("/{payoutId}", func(r chi.Router) {
				r.Get("/", controllers.GetPayout(payoutService, logg))
				r.Post("/approve", controllers.PayoutTransition(payoutService, enums.DistributionStatusApproved, logg))
				r.Post("/pay", controllers.PayoutTransition(payoutService, enums.DistributionStatusPaid, logg))
				r.Post("/reject", controllers.PayoutTransition(payoutService, enums.DistributionStatusRejected, logg))
			})
		})
	})

	return r
}
