package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thusongfs/thusong-backend/api/controllers"
	casecontrollers "github.com/thusongfs/thusong-backend/api/controllers/cases"
	rostercontrollers "github.com/thusongfs/thusong-backend/api/controllers/roster"
	"github.com/thusongfs/thusong-backend/api/middleware"
	"github.com/thusongfs/thusong-backend/internal/cases"
	"github.com/thusongfs/thusong-backend/internal/roster"
	"github.com/thusongfs/thusong-backend/pkg/config"
	"github.com/thusongfs/thusong-backend/pkg/logger"
	"github.com/thusongfs/thusong-backend/pkg/metrics"
	"github.com/thusongfs/thusong-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      controllers.Pinger
	RedisClient   *redis.Client
	CaseService   cases.Service
	RosterService roster.Service
	Registry      *prometheus.Registry
	HTTPMetrics   *metrics.HTTPMetrics
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(deps.Config.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.RedisClient))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Config.JWT, deps.Logger))
		r.Use(middleware.Idempotency(deps.RedisClient, deps.Logger))

		r.Route("/cases/{caseId}", func(r chi.Router) {
			r.Post("/roster", rostercontrollers.Assign(deps.RosterService, deps.Logger))
			r.Get("/roster", rostercontrollers.List(deps.RosterService, deps.Logger))
			r.Patch("/status", casecontrollers.UpdateStatus(deps.CaseService, deps.Logger))
			r.Patch("/funeral-time", casecontrollers.UpdateFuneralTime(deps.CaseService, deps.Logger))
		})

		r.Patch("/roster/{entryId}/status", rostercontrollers.UpdateEntryStatus(deps.RosterService, deps.Logger))
	})

	return r
}
