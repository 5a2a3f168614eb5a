// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"contentengine/internal/config"
	"contentengine/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// Dependencies carries the services the routes are built from.
type Dependencies struct {
	Provider    handlers.SnapshotProvider
	Analyzer    handlers.StrategyAnalyzer
	Competitors handlers.CompetitorSource
	TrendStream *handlers.TrendStream
	Log         *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Dependencies) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	trendingHandler := handlers.NewTrendingHandler(deps.Provider, deps.Log)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, deps.Provider, deps.Log)
	competitorHandler := handlers.NewCompetitorHandler(deps.Competitors, deps.Log)

	// Routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", trendingHandler.HealthCheck)
		r.Get("/trending", trendingHandler.GetTrending)
		r.Get("/cache/clear", trendingHandler.ClearCache)

		r.Post("/analyze", analyzeHandler.Analyze)
		r.Get("/strategy", analyzeHandler.GetStrategy)
		r.Get("/calendar", analyzeHandler.GetCalendar)

		r.Post("/competitors", competitorHandler.GetCompetitors)
	})

	// WebSocket endpoint for live snapshot updates
	if deps.TrendStream != nil {
		router.Get("/ws/trends", deps.TrendStream.Handler)
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// Router exposes the underlying handler. Used in tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
