package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, cfgFile string) (*Config, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v := viper.New()
	if err := Init(v, cfgFile); err != nil {
		return nil, err
	}
	return Load(v)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Empty(t, Default().Validate())
}

func TestEnvironment(t *testing.T) {
	t.Setenv("WORDLE_SOLVER_STRATEGY", "frequency+backfill")
	t.Setenv("WORDLE_SOLVER_SCOPE", "filtered")
	t.Setenv("WORDLE_BENCH_SAMPLE", "200")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "8080")
	t.Setenv("WORDS_FILE", "/tmp/words.txt")

	cfg, err := load(t, "")
	require.NoError(t, err)
	require.Equal(t, "frequency+backfill", cfg.Solver.Strategy)
	require.Equal(t, "filtered", cfg.Solver.Scope)
	require.Equal(t, 200, cfg.Bench.Sample)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "/tmp/words.txt", cfg.Words.File)
}

func TestPrefixedEnvWinsOverPlain(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORDLE_SERVER_PORT", "9090")

	cfg, err := load(t, "")
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  strategy: minimax
  seed_guess: slate
tree:
  backend: memory
  snapshot: /var/lib/trees
bench:
  max_rounds: 8
`), 0o644))

	cfg, err := load(t, path)
	require.NoError(t, err)
	require.Equal(t, "minimax", cfg.Solver.Strategy)
	require.Equal(t, "slate", cfg.Solver.SeedGuess)
	require.Equal(t, BackendMemory, cfg.Tree.Backend)
	require.Equal(t, "/var/lib/trees", cfg.Tree.Snapshot)
	require.Equal(t, 8, cfg.Bench.MaxRounds)
	require.Equal(t, "all", cfg.Solver.Scope, "unset keys keep defaults")

	_, err = load(t, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Solver.Strategy = "oracle"
	cfg.Solver.Scope = "some"
	cfg.Tree.Backend = "redis"
	cfg.Bench.MaxRounds = 0

	errs := cfg.Validate()
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	require.Equal(t, []string{"log.level", "solver.strategy", "solver.scope", "tree.backend", "bench.max_rounds"}, fields)
	require.Contains(t, ValidationErrors(errs).Error(), "5 validation errors")

	t.Setenv("WORDLE_TREE_BACKEND", "redis")
	_, err := load(t, "")
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
}
