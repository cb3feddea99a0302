package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/briefgest/internal/config"
	"github.com/dgallion1/briefgest/internal/metrics"
	"github.com/dgallion1/briefgest/internal/pipeline"
	"github.com/dgallion1/briefgest/internal/stats"
	"github.com/dgallion1/briefgest/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for briefgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	metrics      *metrics.Metrics
	stats        *stats.ParseStats
	log          *slog.Logger
	cfg          config.Config
}

// Deps groups the collaborators a Server routes to. Metrics and Stats may be nil.
type Deps struct {
	Orchestrator *pipeline.Orchestrator
	Store        *store.Store
	Metrics      *metrics.Metrics
	Stats        *stats.ParseStats
}

// NewServer creates and configures the HTTP server.
func NewServer(deps Deps, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: deps.Orchestrator,
		store:        deps.Store,
		metrics:      deps.Metrics,
		stats:        deps.Stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Route("/api/briefs", func(r chi.Router) {
			r.Post("/parse", s.handleParse)
			r.Post("/", s.handleIngest)
			r.Post("/batch", s.handleBatchIngest)
			r.Get("/jobs/{jobID}", s.handleJobStatus)

			r.Get("/", s.handleListBriefs)
			r.Get("/{docID}", s.handleGetBrief)
			r.Get("/{docID}/export.xlsx", s.handleExportBrief)
			r.Delete("/{docID}", s.handleDeleteBrief)
		})
		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warn("health check: store unreachable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "store": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
