// internal/config/config.go
//
// Runtime configuration.
//
// Sources, lowest precedence first:
//   - Defaults (Default / SetDefaults).
//   - An optional YAML/TOML/JSON file (wordle-solver.yaml in . or the config dir).
//   - Environment: WORDLE_<SECTION>_<KEY>, e.g. WORDLE_SOLVER_STRATEGY, plus the
//     plain names LOG_LEVEL, PORT and WORDS_FILE. A .env file is loaded by main.
//   - Command-line flags bound by the commands.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration tree.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Words  WordsConfig  `mapstructure:"words"`
	Solver SolverConfig `mapstructure:"solver"`
	Tree   TreeConfig   `mapstructure:"tree"`
	Server ServerConfig `mapstructure:"server"`
	Bench  BenchConfig  `mapstructure:"bench"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"` // human-readable console output instead of JSON
}

type WordsConfig struct {
	// File is a word list, one word per line. Empty uses the embedded list.
	File string `mapstructure:"file"`
}

type SolverConfig struct {
	Strategy        string  `mapstructure:"strategy"`
	Scope           string  `mapstructure:"scope"`
	SeedGuess       string  `mapstructure:"seed_guess"`
	DiversityWeight float64 `mapstructure:"diversity_weight"`
	RandomSeed      uint64  `mapstructure:"random_seed"`
	FixedDivisor    int     `mapstructure:"fixed_divisor"`
}

// TreeConfig selects where decision trees are kept.
type TreeConfig struct {
	Backend  string `mapstructure:"backend"`  // sqlite, memory or none
	Path     string `mapstructure:"path"`     // sqlite database file
	Snapshot string `mapstructure:"snapshot"` // directory of gob snapshots for the memory backend
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type BenchConfig struct {
	MaxRounds int    `mapstructure:"max_rounds"`
	Sample    int    `mapstructure:"sample"` // 0 plays every dictionary word
	Salt      string `mapstructure:"salt"`
	Results   string `mapstructure:"results"` // sqlite file for results; empty disables
}

// Tree backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Words: WordsConfig{},
		Solver: SolverConfig{
			Strategy:        "entropy",
			Scope:           "all",
			DiversityWeight: 2,
			RandomSeed:      1,
			FixedDivisor:    2,
		},
		Tree: TreeConfig{
			Backend:  BackendSQLite,
			Path:     filepath.Join("data", "tree.db"),
			Snapshot: filepath.Join("data", "trees"),
		},
		Server: ServerConfig{Port: "5175"},
		Bench: BenchConfig{
			MaxRounds: 12,
			Salt:      "wordle-solver",
			Results:   filepath.Join("data", "tree.db"),
		},
	}
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)

	v.SetDefault("words.file", d.Words.File)

	v.SetDefault("solver.strategy", d.Solver.Strategy)
	v.SetDefault("solver.scope", d.Solver.Scope)
	v.SetDefault("solver.seed_guess", d.Solver.SeedGuess)
	v.SetDefault("solver.diversity_weight", d.Solver.DiversityWeight)
	v.SetDefault("solver.random_seed", d.Solver.RandomSeed)
	v.SetDefault("solver.fixed_divisor", d.Solver.FixedDivisor)

	v.SetDefault("tree.backend", d.Tree.Backend)
	v.SetDefault("tree.path", d.Tree.Path)
	v.SetDefault("tree.snapshot", d.Tree.Snapshot)

	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("bench.max_rounds", d.Bench.MaxRounds)
	v.SetDefault("bench.sample", d.Bench.Sample)
	v.SetDefault("bench.salt", d.Bench.Salt)
	v.SetDefault("bench.results", d.Bench.Results)
}

// Init prepares v: defaults, environment, then the config file if present.
// cfgFile overrides the search path; a missing explicit file is an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("WORDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain names kept for existing deployments.
	_ = v.BindEnv("log.level", "WORDLE_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("server.port", "WORDLE_SERVER_PORT", "PORT")
	_ = v.BindEnv("words.file", "WORDLE_WORDS_FILE", "WORDS_FILE")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}
	v.SetConfigName("wordle-solver")
	v.AddConfigPath(".")
	v.AddConfigPath(Dir())
	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// Dir returns the user's config directory for this tool.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wordle-solver")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordle-solver"
	}
	return filepath.Join(home, ".config", "wordle-solver")
}
