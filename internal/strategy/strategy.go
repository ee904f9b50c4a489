// internal/strategy/strategy.go
//
// Guess-selection strategies.
//
// A Strategy only chooses a word. Filtering, the confirmed-position
// bookkeeping and the shared edge cases (empty or tiny candidate sets) live
// in the solver session, so every strategy combines with either pool scope
// without duplicating that logic.

package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/candidates"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var (
	// ErrNoGuess means the candidate set is empty: the feedback history is
	// inconsistent with every dictionary word.
	ErrNoGuess = errors.New("no guess available")
	// ErrUnknown is returned by New for names it does not recognize.
	ErrUnknown = errors.New("unknown strategy")
	// ErrUnknownScope is returned by ParseScope.
	ErrUnknownScope = errors.New("unknown scope")
)

// Input is what a strategy sees for one decision.
type Input struct {
	// Pool holds the words the strategy may choose from, per Scope.
	Pool []string
	// Candidates holds the live candidates in dictionary order. Never empty.
	Candidates []string
	// Confirmed is the session's confirmed-position value.
	Confirmed candidates.Confirmed
}

// Proposal is a strategy's decision. Confirmed carries any positions the
// strategy locked while inspecting the candidates.
type Proposal struct {
	Guess     string
	Confirmed candidates.Confirmed
}

// Strategy picks the next guess.
type Strategy interface {
	// Name identifies the strategy in logs and in New.
	Name() string
	// Deterministic reports whether equal inputs always give equal guesses.
	// Only deterministic strategies are memoized.
	Deterministic() bool
	Propose(in Input) (Proposal, error)
}

// keyer is implemented by strategies whose options change their guesses.
type keyer interface {
	Key() string
}

// Key names s together with every option that changes its guesses, e.g.
// "fixed2" or "frequency-w2". Strategies without such options key by Name.
func Key(s Strategy) string {
	if k, ok := s.(keyer); ok {
		return k.Key()
	}
	return s.Name()
}

// Scope selects the pool a strategy searches over.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeFiltered Scope = "filtered"
)

// ParseScope accepts "all" and "filtered".
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeAll:
		return ScopeAll, nil
	case ScopeFiltered:
		return ScopeFiltered, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Pool returns the words to search: the whole dictionary or the live candidates.
func (s Scope) Pool(dict *words.Dictionary, live []string) []string {
	if s == ScopeAll {
		return dict.Words()
	}
	return live
}

// Options tune the strategies built by New.
type Options struct {
	// Seed feeds the random baseline.
	Seed uint64
	// DiversityWeight is the per-unique-letter bonus of the frequency scorer.
	DiversityWeight float64
	// Divisor picks Fixed's index as len(candidates)/Divisor.
	Divisor int
}

// DefaultOptions mirrors the weights the heuristics were tuned with.
func DefaultOptions() Options {
	return Options{Seed: 1, DiversityWeight: 2, Divisor: 2}
}

const backfillSuffix = "+backfill"

var builders = map[string]func(Options) Strategy{
	"entropy":            func(Options) Strategy { return Entropy{} },
	"minimax":            func(Options) Strategy { return Minimax{} },
	"frequency":          func(o Options) Strategy { return Frequency{DiversityWeight: o.DiversityWeight} },
	"construct":          func(Options) Strategy { return Construct{} },
	"construct-distinct": func(Options) Strategy { return Construct{Distinct: true} },
	"random":             func(o Options) Strategy { return NewRandom(o.Seed) },
	"fixed":              func(o Options) Strategy { return Fixed{Divisor: o.Divisor} },
}

// New builds a strategy by name. A "+backfill" suffix wraps the named
// strategy with Backfill, e.g. "frequency+backfill".
func New(name string, opts Options) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	base, wrap := strings.CutSuffix(name, backfillSuffix)
	build, ok := builders[base]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	s := build(opts)
	if wrap {
		s = Backfill(s)
	}
	return s, nil
}

// Names lists the base strategy names New accepts, sorted.
func Names() []string {
	out := make([]string, 0, len(builders))
	for n := range builders {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
