package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/robalobadob/wordle-solver/internal/bench"
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/strategy"
	"github.com/robalobadob/wordle-solver/internal/tree"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func (a *app) bind(f *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}

func (a *app) dictionary() (*words.Dictionary, error) {
	d, err := words.Open(a.cfg.Words.File)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("words", d.Len()).Int("length", d.Length()).Msg("dictionary loaded")
	return d, nil
}

// trees opens the configured decision tree backend. The opener is nil for
// the "none" backend and when the database cannot be opened, so guesses are
// computed directly. The closer is always safe to call.
func (a *app) trees() (tree.Opener, func()) {
	switch a.cfg.Tree.Backend {
	case config.BackendNone:
		return nil, func() {}
	case config.BackendMemory:
		ms := tree.NewMemories(a.cfg.Tree.Snapshot)
		return ms.Open, closer(ms.Close, "close decision trees")
	default:
		db, err := tree.OpenSQLite(a.cfg.Tree.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", a.cfg.Tree.Path).Msg("decision trees unavailable; computing guesses directly")
			return nil, func() {}
		}
		return db.Open, closer(db.Close, "close decision trees")
	}
}

// results opens the benchmark results store. It returns nil when disabled
// or when the database cannot be opened.
func (a *app) results(ctx context.Context) (*bench.Store, func()) {
	if a.cfg.Bench.Results == "" {
		return nil, func() {}
	}
	db, err := tree.OpenSQLite(a.cfg.Bench.Results)
	if err != nil {
		log.Warn().Err(err).Str("path", a.cfg.Bench.Results).Msg("results store unavailable; not saving")
		return nil, func() {}
	}
	st, err := bench.NewStore(ctx, db.SQL())
	if err != nil {
		log.Warn().Err(err).Str("path", a.cfg.Bench.Results).Msg("results store unavailable; not saving")
		_ = db.Close()
		return nil, func() {}
	}
	return st, closer(db.Close, "close results")
}

// closer wraps a Close method for defer, logging its error.
func closer(fn func() error, msg string) func() {
	return func() {
		if err := fn(); err != nil {
			log.Error().Err(err).Msg(msg)
		}
	}
}

// session builds a session; empty names fall back to the configured ones.
func (a *app) session(ctx context.Context, dict *words.Dictionary, open tree.Opener, name, scope string) (*solver.Session, error) {
	if name == "" {
		name = a.cfg.Solver.Strategy
	}
	if scope == "" {
		scope = a.cfg.Solver.Scope
	}
	strat, err := strategy.New(name, a.cfg.Solver.StrategyOptions())
	if err != nil {
		return nil, err
	}
	sc, err := strategy.ParseScope(scope)
	if err != nil {
		return nil, err
	}

	var opts []solver.Option
	if open != nil {
		opts = append(opts, solver.WithTrees(open))
	}
	if a.cfg.Solver.SeedGuess != "" {
		opts = append(opts, solver.WithSeedGuess(a.cfg.Solver.SeedGuess))
	}
	return solver.New(ctx, dict, strat, sc, opts...)
}
