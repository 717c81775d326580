// Package api provides the HTTP API server and handlers for the GEasy catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/geasyapp/geasy-server/internal/config"
	"github.com/geasyapp/geasy-server/internal/ratelimit"
	"github.com/geasyapp/geasy-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Catalog *service.CatalogService
	Planner *service.PlannerService
	Search  *service.SearchService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	config   *config.Config
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		config:   cfg,
		services: services,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCollegeRoutes()
	s.registerAreaRoutes()
	s.registerCourseRoutes()
	s.registerProfessorRoutes()
	s.registerReviewRoutes()
	s.registerPlannerRoutes()
	s.registerSearchRoutes()
	s.registerStatusRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.config.RateLimit.Enabled {
		limiter := ratelimit.New(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst)
		s.router.Use(RateLimitMiddleware(limiter, s.logger))
	}
}
