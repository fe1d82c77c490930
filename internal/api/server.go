package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/questgest/internal/config"
	"github.com/dgallion1/questgest/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API for on-demand question extraction.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner: runner,
		log:    log,
		cfg:    cfg,
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

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey))

		r.Post("/api/extract", s.handleExtract)
		r.Get("/api/stats/extract", s.handleExtractStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
