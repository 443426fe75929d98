// Package api provides the HTTP API server and handlers for the bookshelf server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/listenupapp/bookshelf-server/internal/ratelimit"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

const (
	apiTitle   = "Bookshelf API"
	apiVersion = "1.0.0"
)

// Options configures optional server behavior.
type Options struct {
	// CORSAllowedOrigins enables CORS for the listed origins. Empty disables CORS.
	CORSAllowedOrigins []string
	// RateLimiter limits /api requests per client IP. Nil disables rate limiting.
	RateLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		logger:   logger,
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig(apiTitle, apiVersion)
	humaConfig.Info.Description = "Personal library tracking with auto-tagging, recommendations, and share links."
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the underlying huma API.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack. Must run before routes are registered.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestMetrics)

	if len(opts.CORSAllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	if opts.RateLimiter != nil {
		s.router.Use(RateLimitMiddleware(opts.RateLimiter, s.logger))
	}
}

func (s *Server) registerRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerListRoutes()
	s.registerRecommendationRoutes()
	s.registerAutotagRoutes()
	s.registerShareRoutes()
	s.registerSearchRoutes()
}
