// internal/httpserver/routes_bench.go
//
// Read-only benchmark routes:
//   - GET /bench/summary → configurations ranked by failures, then mean attempts.
//
// Results are written by the "bench" command; the server only reads them.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/bench"
)

// mountBench registers all /bench routes.
func (s *Server) mountBench(r chi.Router) {
	r.Route("/bench", func(r chi.Router) {
		r.Get("/summary", s.handleBenchSummary)
	})
}

// handleBenchSummary returns up to ?limit= rows (default 20, max 100).
func (s *Server) handleBenchSummary(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_limit"})
			return
		}
		limit = min(n, 100)
	}

	rows, err := s.results.Summary(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("bench summary")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "db_error"})
		return
	}
	if rows == nil {
		rows = []bench.SummaryRow{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"configs": rows})
}
