// internal/cmd/root.go
//
// Command tree for the wordle-solver binary.
//
//   - serve    HTTP adapter over solver sessions.
//   - bench    play every (or a sample of) dictionary word and report attempts.
//   - suggest  replay a feedback history and print the next guess.
//   - play     referee one game against a known answer.
//
// Configuration is resolved once per invocation in PersistentPreRunE:
// defaults, config file, environment, then flags (see internal/config).
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle-solver/internal/config"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// NewRootCmd builds the full command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Word-guessing game solver with memoized strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(a.v, a.cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cfg.Log)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./wordle-solver.yaml or "+config.Dir()+")")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("words", "", "word list file (default: embedded list)")
	pf.StringP("strategy", "s", "", "strategy name, optionally with +backfill")
	pf.String("scope", "", "search scope: all or filtered")
	pf.String("seed-guess", "", "force the opening guess")
	pf.String("tree-backend", "", "decision tree backend: sqlite, memory or none")
	pf.String("tree-path", "", "sqlite decision tree file")
	pf.String("tree-snapshot", "", "snapshot directory for the memory backend")
	a.bind(pf.Lookup("log-level"), "log.level")
	a.bind(pf.Lookup("words"), "words.file")
	a.bind(pf.Lookup("strategy"), "solver.strategy")
	a.bind(pf.Lookup("scope"), "solver.scope")
	a.bind(pf.Lookup("seed-guess"), "solver.seed_guess")
	a.bind(pf.Lookup("tree-backend"), "tree.backend")
	a.bind(pf.Lookup("tree-path"), "tree.path")
	a.bind(pf.Lookup("tree-snapshot"), "tree.snapshot")

	root.AddCommand(
		newServeCmd(a),
		newBenchCmd(a),
		newSuggestCmd(a),
		newPlayCmd(a),
	)
	return root
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func setupLogging(c config.LogConfig) {
	if c.Level != "" {
		if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	}
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
