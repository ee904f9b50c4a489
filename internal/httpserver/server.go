// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", "/strategies".
//   - Session endpoints: POST /session/new, /session/feedback, /session/reset,
//     DELETE /session/{id}.
//   - Scoring helper: POST /score.
//   - Benchmark summary (when a results store is configured): GET /bench/summary.
//
// Notes:
//   - Sessions live in the store; each request locks its session entry.
//   - Feedback arrives as text ("20110", "gybbg"); malformed feedback is a 400,
//     an exhausted candidate set a 422.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/bench"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/strategy"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// SessionFactory builds a session for the named strategy and scope. Empty
// names select the configured defaults.
type SessionFactory func(ctx context.Context, strategyName, scope string) (*solver.Session, error)

// Server bundles router, session store and dictionary.
type Server struct {
	r          *chi.Mux
	store      store.Store
	dict       *words.Dictionary
	newSession SessionFactory
	results    *bench.Store
}

// New constructs a Server, installs middleware, and registers routes.
// results may be nil, which leaves /bench/summary unmounted.
func New(st store.Store, dict *words.Dictionary, newSession SessionFactory, results *bench.Store) *Server {
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, newSession: newSession, results: results}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /session/new","POST /session/feedback","POST /session/reset","POST /score"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.dict.Len(), "length": s.dict.Length()})
	})
	s.r.Get("/strategies", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"strategies": strategy.Names(),
			"scopes":     []strategy.Scope{strategy.ScopeAll, strategy.ScopeFiltered},
			"decorators": []string{"+backfill"},
		})
	})

	// --- sessions ---
	s.r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Post("/feedback", s.handleFeedback)
		r.Post("/reset", s.handleReset)
		r.Delete("/{id}", s.handleDelete)
	})
	s.r.Post("/score", s.handleScore)

	if results != nil {
		s.mountBench(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Detail: r.URL.Path})
	})
	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SESSION -------------------------------------

type newReq struct {
	Strategy string `json:"strategy"`
	Scope    string `json:"scope"`
}
type newRes struct {
	SessionID string `json:"sessionId"`
	Config    string `json:"config"`
	Guess     string `json:"guess"`
	Remaining int    `json:"remaining"`
}

// handleNew creates a session and returns its opening guess.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
			return
		}
	}

	sess, err := s.newSession(r.Context(), req.Strategy, req.Scope)
	if err != nil {
		writeErr(w, err)
		return
	}
	guess, err := sess.Start(r.Context())
	if err != nil {
		_ = sess.Close()
		writeErr(w, err)
		return
	}
	id, err := s.store.Add(r.Context(), sess)
	if err != nil {
		_ = sess.Close()
		log.Error().Err(err).Msg("save session")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "save_failed"})
		return
	}
	log.Info().Str("session", id).Str("config", sess.Config()).Msg("session started")
	writeJSON(w, http.StatusOK, newRes{SessionID: id, Config: sess.Config(), Guess: guess, Remaining: sess.Remaining()})
}

type feedbackReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Feedback  string `json:"feedback"`
}
type feedbackRes struct {
	Guess     string `json:"guess,omitempty"` // next guess; empty once solved
	Solved    bool   `json:"solved"`
	Remaining int    `json:"remaining"`
	Round     int    `json:"round"`
}

// handleFeedback applies the driver's feedback and returns the next guess.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	e, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		writeErr(w, err)
		return
	}

	var res feedbackRes
	err = e.Do(func(sess *solver.Session) error {
		p, err := feedback.Parse(req.Feedback, sess.Dictionary().Length())
		if err != nil {
			return err
		}
		if err := sess.ApplyFeedback(req.Guess, p); err != nil {
			return err
		}
		res = feedbackRes{Solved: sess.IsSolved(p), Remaining: sess.Remaining(), Round: sess.Round()}
		if res.Solved {
			return nil
		}
		res.Guess, err = sess.ProposeGuess(r.Context())
		return err
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type sessionReq struct {
	SessionID string `json:"sessionId"`
}

// handleReset starts a new game in an existing session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	e, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		writeErr(w, err)
		return
	}
	var res newRes
	err = e.Do(func(sess *solver.Session) error {
		guess, err := sess.Start(r.Context())
		res = newRes{SessionID: e.ID, Config: sess.Config(), Guess: guess, Remaining: sess.Remaining()}
		return err
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDelete closes a session and flushes its decision tree.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ------------------------------- SCORE --------------------------------------

type scoreReq struct {
	Guess  string `json:"guess"`
	Answer string `json:"answer"`
}
type scoreRes struct {
	Feedback string `json:"feedback"` // one digit per letter: 0=absent, 1=present, 2=exact
	Solved   bool   `json:"solved"`
}

// handleScore scores a guess against a known answer.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	req.Guess = strings.ToLower(strings.TrimSpace(req.Guess))
	req.Answer = strings.ToLower(strings.TrimSpace(req.Answer))
	n := s.dict.Length()
	if len(req.Guess) != n || len(req.Answer) != n || !words.IsAlpha(req.Guess) || !words.IsAlpha(req.Answer) {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_word"})
		return
	}
	p := feedback.Score(req.Guess, req.Answer)
	writeJSON(w, http.StatusOK, scoreRes{Feedback: p.String(), Solved: feedback.Solved(p)})
}

// ------------------------------- small util --------------------------------

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain errors to HTTP statuses.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found"})
	case errors.Is(err, feedback.ErrMalformed):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "malformed_feedback", Detail: err.Error()})
	case errors.Is(err, strategy.ErrUnknown):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "unknown_strategy", Detail: err.Error()})
	case errors.Is(err, strategy.ErrUnknownScope):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "unknown_scope", Detail: err.Error()})
	case errors.Is(err, solver.ErrNoGuess):
		writeJSON(w, http.StatusUnprocessableEntity, errorRes{Error: "no_guess_available", Detail: err.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "internal"})
	}
}
