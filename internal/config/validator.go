package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-solver/internal/strategy"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config key (e.g., "solver.scope")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the Config and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{"log.level", c.Log.Level, "unknown log level"})
	}

	if _, err := strategy.New(c.Solver.Strategy, strategy.DefaultOptions()); err != nil {
		errs = append(errs, ValidationError{"solver.strategy", c.Solver.Strategy,
			"must be one of " + strings.Join(strategy.Names(), ", ") + ", optionally with +backfill"})
	}
	if _, err := strategy.ParseScope(c.Solver.Scope); err != nil {
		errs = append(errs, ValidationError{"solver.scope", c.Solver.Scope, "must be all or filtered"})
	}
	if c.Solver.DiversityWeight < 0 {
		errs = append(errs, ValidationError{"solver.diversity_weight", c.Solver.DiversityWeight, "must not be negative"})
	}
	if c.Solver.FixedDivisor < 1 {
		errs = append(errs, ValidationError{"solver.fixed_divisor", c.Solver.FixedDivisor, "must be at least 1"})
	}

	if !slices.Contains([]string{BackendSQLite, BackendMemory, BackendNone}, c.Tree.Backend) {
		errs = append(errs, ValidationError{"tree.backend", c.Tree.Backend, "must be sqlite, memory or none"})
	}
	if c.Tree.Backend == BackendSQLite && c.Tree.Path == "" {
		errs = append(errs, ValidationError{"tree.path", c.Tree.Path, "required for the sqlite backend"})
	}

	if c.Server.Port == "" {
		errs = append(errs, ValidationError{"server.port", c.Server.Port, "required"})
	}

	if c.Bench.MaxRounds < 1 {
		errs = append(errs, ValidationError{"bench.max_rounds", c.Bench.MaxRounds, "must be at least 1"})
	}
	if c.Bench.Sample < 0 {
		errs = append(errs, ValidationError{"bench.sample", c.Bench.Sample, "must not be negative"})
	}
	return errs
}

// StrategyOptions converts the solver settings for strategy.New.
func (c SolverConfig) StrategyOptions() strategy.Options {
	return strategy.Options{
		Seed:            c.RandomSeed,
		DiversityWeight: c.DiversityWeight,
		Divisor:         c.FixedDivisor,
	}
}
