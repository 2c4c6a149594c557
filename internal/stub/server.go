// Package stub serves the prediction backend contract over HTTP from the
// local estimator, sqlite history and heuristic chat responder.
package stub

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/autoprestige/autoprestige/internal/database/repository"
	"github.com/autoprestige/autoprestige/internal/llm"
	"github.com/autoprestige/autoprestige/internal/service"
)

// maxUpload bounds the multipart body kept in memory; the rest spills to disk.
const maxUpload = 32 << 20

// Config holds server configuration
type Config struct {
	Addr      string
	Log       zerolog.Logger
	DB        *sql.DB
	Pricer    service.Pricer
	Responder llm.Responder
	// ChatLimit throttles /chat across all clients; nil means unlimited.
	ChatLimit *rate.Limiter
	// Lang selects the detail texts and dashboard labels.
	Lang string
	Now  func() time.Time
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	server     *http.Server
	log        zerolog.Logger
	valuations *service.ValuationService
	ingest     *service.IngestService
	dashboard  *service.DashboardService
	responder  llm.Responder
	chatLimit  *rate.Limiter
	lang       string
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	log := cfg.Log.With().Str("component", "stub").Logger()
	repo := repository.NewHistoryRepo(cfg.DB)
	s := &Server{
		router:     chi.NewRouter(),
		log:        log,
		valuations: &service.ValuationService{History: repo, Pricer: cfg.Pricer, Log: log, Now: cfg.Now},
		ingest:     &service.IngestService{DB: cfg.DB, History: repo, Pricer: cfg.Pricer, Log: log, Now: cfg.Now},
		dashboard:  &service.DashboardService{History: repo, Lang: cfg.Lang, Now: cfg.Now},
		responder:  cfg.Responder,
		chatLimit:  cfg.ChatLimit,
		lang:       cfg.Lang,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, for httptest.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	// honours the client's X-Request-ID
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.StripSlashes)
	s.router.Use(s.loggingMiddleware)

	// the browser client talks to the backend cross-origin
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Post("/predict", s.handlePredict)
	s.router.Post("/predict-batch", s.handlePredictBatch)
	s.router.Get("/history", s.handleHistory)
	s.router.Get("/dashboard-stats", s.handleDashboardStats)
	s.router.With(s.limit(s.chatLimit)).Post("/chat", s.handleChat)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// limit answers 429 once l runs out of tokens.
func (s *Server) limit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				s.writeError(w, http.StatusTooManyRequests, DetailRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
