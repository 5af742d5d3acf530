package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/doccover/internal/forest"
	"github.com/dgallion1/doccover/internal/report"
	"github.com/go-chi/chi/v5"
)

// handleReport returns the full analysis for the configured repository.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Current(r.Context())
	if err != nil {
		jsonError(w, "failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rep)
}

// handleReportMarkdown returns the human-readable summary.
func (s *Server) handleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Current(r.Context())
	if err != nil {
		jsonError(w, "failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(report.Markdown(rep)))
}

// handleForest returns one anchor family's coverage forest.
func (s *Server) handleForest(w http.ResponseWriter, r *http.Request) {
	kind := forest.Kind(chi.URLParam(r, "kind"))

	rep, err := s.reports.Current(r.Context())
	if err != nil {
		jsonError(w, "failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	kr, ok := rep.Kinds[kind]
	if !ok {
		jsonError(w, "unknown anchor kind: "+string(kind), http.StatusNotFound)
		return
	}
	writeJSON(w, kr.Forest)
}

// handleBudgets returns per-anchor budgets for every kind.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Current(r.Context())
	if err != nil {
		jsonError(w, "failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	out := make(map[forest.Kind]any, len(rep.Kinds))
	for kind, kr := range rep.Kinds {
		out[kind] = kr.Budget
	}
	writeJSON(w, out)
}

// handleSplits returns split analyses for anchors over budget.
func (s *Server) handleSplits(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Current(r.Context())
	if err != nil {
		jsonError(w, "failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	out := make(map[forest.Kind]any, len(rep.Kinds))
	for kind, kr := range rep.Kinds {
		out[kind] = kr.Splits
	}
	writeJSON(w, out)
}

// handleRescan forces a fresh scan of the repository.
func (s *Server) handleRescan(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Rebuild(r.Context())
	if err != nil {
		jsonError(w, "rescan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"digest":      rep.Digest,
		"total_files": rep.TotalFiles,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
