package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hrmslite/hrms-backend/pkg/httputil"
	"github.com/hrmslite/hrms-backend/pkg/logger"
)

// HealthCheck reports the state of one dependency
type HealthCheck func(ctx context.Context) map[string]string

// RouterConfig carries everything the router needs besides the handlers
type RouterConfig struct {
	Service        string
	AllowedOrigins []string
	RequestTimeout time.Duration
	Health         map[string]HealthCheck
	Logger         *logger.Logger
}

// NewRouter mounts the HRMS API under /api plus /health
func NewRouter(cfg RouterConfig, employees *EmployeeHandler, attendance *AttendanceHandler, dashboard *DashboardHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(cfg.Logger))
	r.Use(httputil.Recoverer(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", healthHandler(cfg.Service, cfg.Health))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employees.List)
			r.Post("/", employees.Create)
			r.Get("/{id}", employees.Get)
			r.Delete("/{id}", employees.Delete)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendance.List)
			r.Post("/", attendance.Mark)
			r.Get("/stats/{employeeId}", attendance.Stats)
			r.Get("/{employeeId}", attendance.GetByEmployee)
		})

		r.Get("/dashboard/stats", dashboard.GetStats)
	})

	return r
}

func healthHandler(service string, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":  "healthy",
			"service": service,
		}
		for name, check := range checks {
			state := check(r.Context())
			if state["status"] == "down" {
				body["status"] = "degraded"
			}
			body[name] = state
		}
		httputil.JSON(w, http.StatusOK, body)
	}
}
