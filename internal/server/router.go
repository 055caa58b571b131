package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/config"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/handler"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	customers handler.CustomerHandler,
	properties handler.PropertyHandler,
	requests handler.RequestHandler,
	activities handler.ActivityHandler,
	sales handler.SaleHandler,
	dashboard handler.DashboardHandler,
	offices handler.OfficeHandler,
	agents handler.AgentHandler,
	dailyStats handler.DailyStatsHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// agent-level (agent/manager/admin)
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleAgent))
			customers.RegisterRoutes(ar)
			properties.RegisterRoutes(ar)
			requests.RegisterRoutes(ar)
			activities.RegisterRoutes(ar)
			sales.RegisterRoutes(ar)
			dashboard.RegisterRoutes(ar)
		})
		// manager-level (manager/admin)
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager))
			offices.RegisterRoutes(mr)
			agents.RegisterRoutes(mr)
		})
		// admin-only: the aggregation runs with service-role database
		// access, so only trusted operators may trigger it.
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleAdmin))
			dailyStats.RegisterRoutes(sr)
		})
	})

	return r
}
