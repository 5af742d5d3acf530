package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/doccover/internal/config"
	"github.com/dgallion1/doccover/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for doccover.
type Server struct {
	router  chi.Router
	reports *report.Service
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(reports *report.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		reports: reports,
		log:     log,
		cfg:     cfg,
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

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DoccoverAPIKey, s.log))

		r.Get("/api/report", s.handleReport)
		r.Get("/api/report.md", s.handleReportMarkdown)
		r.Get("/api/forest/{kind}", s.handleForest)
		r.Get("/api/budgets", s.handleBudgets)
		r.Get("/api/splits", s.handleSplits)
		r.Post("/api/rescan", s.handleRescan)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
