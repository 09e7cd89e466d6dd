package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/pos/internal/api/handler"
	mw "github.com/edvin/pos/internal/api/middleware"
	"github.com/edvin/pos/internal/config"
	"github.com/edvin/pos/internal/core"
)

//go:embed docs/openapi.json
var openapiJSON []byte

type Server struct {
	router     chi.Router
	logger     zerolog.Logger
	services   *core.Services
	pool       *pgxpool.Pool
	cfg        *config.Config
	categories []string
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config, categories []string) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		logger:     logger,
		services:   core.NewServices(pool, cfg.TaxRate),
		pool:       pool,
		cfg:        cfg,
		categories: categories,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// API documentation
	s.router.Get("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiJSON)
	})
	s.router.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(scalarHTML))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Orders
		order := handler.NewOrder(s.services.Order)
		r.Get("/orders", order.List)
		r.Post("/orders", order.Create)
		r.Get("/orders/status", order.StatusCounts)
		r.Get("/orders/{id}", order.Get)
		r.Patch("/orders/{id}", order.Update)
		r.Delete("/orders/{id}", order.Delete)

		// Menu catalog
		menuItem := handler.NewMenuItem(s.services.MenuItem, s.categories)
		r.Get("/menu-items", menuItem.List)
		r.Post("/menu-items", menuItem.Create)
		r.Get("/menu-items/categories", menuItem.Categories)
		r.Get("/menu-items/{id}", menuItem.Get)
		r.Patch("/menu-items/{id}", menuItem.Update)
		r.Delete("/menu-items/{id}", menuItem.Delete)

		// Billing
		billing := handler.NewBilling(s.services.Billing)
		r.Get("/billing", billing.List)
		r.Get("/billing/export", billing.Export)

		// Analytics
		analytics := handler.NewAnalytics(s.services.Analytics)
		r.Get("/analytics", analytics.Snapshot)

		// Dashboard
		dashboard := handler.NewDashboard(s.services.Dashboard)
		r.Get("/dashboard/metrics", dashboard.Metrics)
		r.Get("/dashboard/charts", dashboard.Charts)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Restaurant POS API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/docs/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
