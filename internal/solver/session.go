// internal/solver/session.go
//
// Solver session: one playthrough at a time against a shared dictionary.
// Responsibilities:
//   - Own the live candidate set and the confirmed-position value.
//   - Apply driver feedback after validating it (length, codes, guess).
//   - Produce guesses through the bound strategy, applying the shared edge
//     cases (empty set, one or two candidates left) and the first-guess memo.
//   - Route guess production through the decision tree when the strategy is
//     deterministic and the game follows the tree's own guesses.
//
// Notes:
//   - A Session is not safe for concurrent use; the Dictionary is.
//   - Rebinding to another strategy or scope starts a fresh game, drops the
//     memo and reopens the tree for the new configuration.
package solver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/candidates"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/strategy"
	"github.com/robalobadob/wordle-solver/internal/tree"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrNoGuess is returned by ProposeGuess when no candidate is left.
var ErrNoGuess = strategy.ErrNoGuess

// Option configures a Session.
type Option func(*Session)

// WithTrees memoizes guesses in the tree named by TreeName, opened through open.
func WithTrees(open tree.Opener) Option {
	return func(s *Session) { s.open = open }
}

// WithSeedGuess forces the opening guess of every game.
func WithSeedGuess(word string) Option {
	return func(s *Session) { s.seed = strings.ToLower(strings.TrimSpace(word)) }
}

// Session is the state of one game plus its strategy binding.
type Session struct {
	dict  *words.Dictionary
	strat strategy.Strategy
	scope strategy.Scope
	seed  string
	open  tree.Opener

	set       *candidates.Set
	confirmed candidates.Confirmed
	cursor    *tree.Cursor

	round    int
	last     feedback.Pattern // last applied feedback; nil before the first
	proposed string           // last guess handed out
	offPath  bool             // the driver played a guess the tree did not choose
	solved   bool
	first    string // first-guess memo
}

// New binds a session to strat and scope and prepares the first game.
// A tree that fails to open only disables memoization.
func New(ctx context.Context, dict *words.Dictionary, strat strategy.Strategy, scope strategy.Scope, opts ...Option) (*Session, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, words.ErrEmpty
	}
	s := &Session{dict: dict}
	for _, o := range opts {
		o(s)
	}
	if s.seed != "" && (len(s.seed) != dict.Length() || !words.IsAlpha(s.seed)) {
		return nil, fmt.Errorf("seed guess %q: want %d letters a-z", s.seed, dict.Length())
	}
	s.set = candidates.NewSet(dict)
	s.bind(ctx, strat, scope)
	return s, nil
}

// ----- Binding -----

func (s *Session) bind(ctx context.Context, strat strategy.Strategy, scope strategy.Scope) {
	s.strat, s.scope = strat, scope
	s.first = ""
	s.cursor = nil
	if s.open != nil && strat.Deterministic() {
		b, err := s.open(ctx, s.TreeName())
		if err != nil {
			log.Warn().Err(err).Str("tree", s.TreeName()).Msg("decision tree unavailable; computing guesses directly")
		} else {
			s.cursor = tree.NewCursor(b)
		}
	}
	s.Reset()
	log.Debug().Str("strategy", strat.Name()).Str("scope", string(scope)).Bool("tree", s.cursor != nil).Msg("session bound")
}

// Rebind switches to another strategy or scope. The current game is
// abandoned and the previous tree is closed.
func (s *Session) Rebind(ctx context.Context, strat strategy.Strategy, scope strategy.Scope) error {
	err := s.cursor.Close()
	s.bind(ctx, strat, scope)
	return err
}

// Config names the strategy configuration, e.g. "entropy_all" or
// "fixed2_filtered". Every option that changes a guess is part of it,
// including the seed guess.
func (s *Session) Config() string {
	name := tree.TableName(strategy.Key(s.strat), string(s.scope))
	if s.seed != "" {
		name += "_" + s.seed
	}
	return name
}

// TreeName is the decision tree's name: Config plus the dictionary
// fingerprint, so a tree never serves another word list.
func (s *Session) TreeName() string {
	return s.Config() + "_" + s.dict.Fingerprint()
}

// ----- Game flow -----

// Start begins a new game and returns its opening guess.
func (s *Session) Start(ctx context.Context) (string, error) {
	s.Reset()
	return s.ProposeGuess(ctx)
}

// Reset refills the candidate set for a new game. The first-guess memo survives.
func (s *Session) Reset() {
	s.set.Reset()
	s.confirmed = candidates.NewConfirmed(s.dict.Length())
	s.round = 0
	s.last = nil
	s.proposed = ""
	s.offPath = false
	s.solved = false
	s.cursor.Reset()
}

// ProposeGuess returns the next guess, or ErrNoGuess when the feedback so
// far rules out every dictionary word.
//
// Asking again before feedback is applied returns the same guess.
func (s *Session) ProposeGuess(ctx context.Context) (string, error) {
	if s.proposed != "" {
		return s.proposed, nil
	}
	var (
		guess string
		err   error
	)
	if s.offPath {
		guess, err = s.compute()
	} else {
		guess, err = s.cursor.Next(ctx, s.compute, s.last)
	}
	if err != nil {
		return "", err
	}
	s.proposed = guess
	return guess, nil
}

func (s *Session) compute() (string, error) {
	switch n := s.set.Len(); {
	case n == 0:
		return "", ErrNoGuess
	case n <= 2:
		w, _ := s.set.First()
		return w, nil
	}
	if s.round == 0 {
		if s.seed != "" {
			return s.seed, nil
		}
		if s.first != "" {
			return s.first, nil
		}
	}

	live := s.set.Words()
	p, err := s.strat.Propose(strategy.Input{
		Pool:       s.scope.Pool(s.dict, live),
		Candidates: live,
		Confirmed:  s.confirmed,
	})
	if err != nil {
		return "", err
	}
	if p.Confirmed != nil {
		s.confirmed = p.Confirmed
	}
	if s.round == 0 && s.strat.Deterministic() {
		s.first = p.Guess
	}
	return p.Guess, nil
}

// ApplyFeedback narrows the candidates with the driver's feedback for guess.
// Malformed input is rejected with a *feedback.ValidationError and leaves
// the session untouched.
func (s *Session) ApplyFeedback(guess string, p feedback.Pattern) error {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != s.dict.Length() || !words.IsAlpha(guess) {
		return &feedback.ValidationError{Field: "guess", Reason: fmt.Sprintf("want %d letters a-z, got %q", s.dict.Length(), guess)}
	}
	if err := p.Validate(s.dict.Length()); err != nil {
		return err
	}

	before := s.set.Len()
	s.confirmed = s.set.Filter(guess, p, s.confirmed)
	s.round++
	s.last = append(feedback.Pattern(nil), p...)
	s.solved = feedback.Solved(p)
	if guess != s.proposed {
		s.offPath = true
	}
	s.proposed = ""

	log.Debug().
		Str("guess", guess).
		Str("feedback", p.String()).
		Int("before", before).
		Int("after", s.set.Len()).
		Str("confirmed", s.confirmed.String()).
		Msg("feedback applied")
	return nil
}

// IsSolved reports whether p marks every position Exact.
func (s *Session) IsSolved(p feedback.Pattern) bool { return feedback.Solved(p) }

// Solved reports whether the last feedback applied was all Exact.
func (s *Session) Solved() bool { return s.solved }

// Close flushes and releases the decision tree.
func (s *Session) Close() error {
	err := s.cursor.Close()
	s.cursor = nil
	return err
}

// ----- Accessors -----

func (s *Session) Dictionary() *words.Dictionary { return s.dict }
func (s *Session) Strategy() strategy.Strategy { return s.strat }
func (s *Session) Scope() strategy.Scope { return s.scope }
func (s *Session) Remaining() int { return s.set.Len() }
func (s *Session) Round() int { return s.round }
func (s *Session) Candidates() []string { return s.set.Words() }
func (s *Session) Confirmed() candidates.Confirmed { return s.confirmed }

// TreeStats reports how the decision tree answered; zero without a tree.
func (s *Session) TreeStats() tree.Stats { return s.cursor.Stats() }
