package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/bench"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/strategy"
	"github.com/robalobadob/wordle-solver/internal/tree"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var testWords = []string{"crane", "crate", "slate", "trace", "blimp", "grate", "irate", "prate"}

func newTestServer(t *testing.T, results *bench.Store) (*Server, *store.Memory) {
	t.Helper()
	dict, err := words.New(testWords)
	require.NoError(t, err)
	trees := tree.NewMemories("")
	t.Cleanup(func() { _ = trees.Close() })

	factory := func(ctx context.Context, name, scope string) (*solver.Session, error) {
		if name == "" {
			name = "entropy"
		}
		if scope == "" {
			scope = "filtered"
		}
		strat, err := strategy.New(name, strategy.DefaultOptions())
		if err != nil {
			return nil, err
		}
		sc, err := strategy.ParseScope(scope)
		if err != nil {
			return nil, err
		}
		return solver.New(ctx, dict, strat, sc, solver.WithTrees(trees.Open))
	}
	st := store.NewMemoryStore()
	t.Cleanup(func() { _ = st.Close() })
	return New(st, dict, factory, results), st
}

func do(t *testing.T, s *Server, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestHealthAndWords(t *testing.T) {
	s, _ := newTestServer(t, nil)

	var health map[string]bool
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil, &health))
	require.True(t, health["ok"])

	var counts map[string]int
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/debug/words", nil, &counts))
	require.Equal(t, map[string]int{"words": len(testWords), "length": 5}, counts)

	var notFound errorRes
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", nil, &notFound))
	require.Equal(t, "not_found", notFound.Error)
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/bench/summary", nil, nil))
}

func TestSessionSolvesGame(t *testing.T) {
	s, _ := newTestServer(t, nil)
	const answer = "prate"

	var started newRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/session/new", newReq{Strategy: "minimax", Scope: "all"}, &started))
	require.NotEmpty(t, started.SessionID)
	require.Equal(t, "minimax_all", started.Config)
	require.Equal(t, len(testWords), started.Remaining)

	guess := started.Guess
	for round := 1; round <= len(testWords); round++ {
		var res feedbackRes
		code := do(t, s, http.MethodPost, "/session/feedback", feedbackReq{
			SessionID: started.SessionID,
			Guess:     guess,
			Feedback:  feedback.Score(guess, answer).String(),
		}, &res)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, round, res.Round)
		if res.Solved {
			require.Empty(t, res.Guess)
			require.Equal(t, answer, guess)
			return
		}
		guess = res.Guess
	}
	t.Fatal("not solved")
}

func TestFeedbackErrors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	var started newRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/session/new", nil, &started))
	require.Equal(t, "entropy_filtered", started.Config)

	var e errorRes
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/session/feedback",
		feedbackReq{SessionID: started.SessionID, Guess: "crane", Feedback: "22"}, &e))
	require.Equal(t, "malformed_feedback", e.Error)

	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/session/feedback",
		feedbackReq{SessionID: started.SessionID, Guess: "crane", Feedback: "2x000"}, &e))
	require.Equal(t, "malformed_feedback", e.Error)

	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/session/feedback",
		feedbackReq{SessionID: "missing", Guess: "crane", Feedback: "00000"}, &e))

	// crane all-absent leaves only blimp; blimp all-absent leaves nothing.
	var res feedbackRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/session/feedback",
		feedbackReq{SessionID: started.SessionID, Guess: "crane", Feedback: "bbbbb"}, &res))
	require.Equal(t, "blimp", res.Guess)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, s, http.MethodPost, "/session/feedback",
		feedbackReq{SessionID: started.SessionID, Guess: "blimp", Feedback: "00000"}, &e))
	require.Equal(t, "no_guess_available", e.Error)

	// Reset starts over with the full dictionary.
	var reset newRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/session/reset", sessionReq{SessionID: started.SessionID}, &reset))
	require.Equal(t, started.Guess, reset.Guess)
	require.Equal(t, len(testWords), reset.Remaining)
}

func TestNewSessionErrors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	var e errorRes
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/session/new", newReq{Strategy: "oracle"}, &e))
	require.Equal(t, "unknown_strategy", e.Error)
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/session/new", newReq{Scope: "some"}, &e))
	require.Equal(t, "unknown_scope", e.Error)
}

func TestDeleteSession(t *testing.T) {
	s, st := newTestServer(t, nil)
	var started newRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/session/new", nil, &started))
	require.Equal(t, 1, st.Len())

	require.Equal(t, http.StatusOK, do(t, s, http.MethodDelete, "/session/"+started.SessionID, nil, nil))
	require.Zero(t, st.Len())
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/session/"+started.SessionID, nil, nil))
}

func TestScore(t *testing.T) {
	s, _ := newTestServer(t, nil)
	var res scoreRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/score", scoreReq{Guess: "speed", Answer: "erase"}, &res))
	require.Equal(t, scoreRes{Feedback: "10110"}, res)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/score", scoreReq{Guess: " CRANE", Answer: "Crane "}, &res))
	require.Equal(t, scoreRes{Feedback: "22222", Solved: true}, res)

	var e errorRes
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/score", scoreReq{Guess: "spee", Answer: "erase"}, &e))
	require.Equal(t, "invalid_word", e.Error)
}

func TestBenchSummary(t *testing.T) {
	ctx := context.Background()
	db, err := tree.OpenSQLite(filepath.Join(t.TempDir(), "bench.db"))
	require.NoError(t, err)
	defer db.Close()
	results, err := bench.NewStore(ctx, db.SQL())
	require.NoError(t, err)

	s, _ := newTestServer(t, results)
	var out struct {
		Configs []bench.SummaryRow `json:"configs"`
	}
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/bench/summary", nil, &out))
	require.Empty(t, out.Configs)

	require.NoError(t, results.Save(ctx, bench.Report{Config: "entropy_all", Results: []bench.Result{
		{Answer: "crane", Attempts: 2, Solved: true},
	}}))
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/bench/summary?limit=5", nil, &out))
	require.Equal(t, []bench.SummaryRow{{Config: "entropy_all", Games: 1, Mean: 2, Worst: 2}}, out.Configs)

	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/bench/summary?limit=x", nil, nil))
}
