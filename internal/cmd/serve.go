package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

const (
	sessionIdle = 30 * time.Minute
	sweepEvery  = time.Minute
)

func newServeCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve solver sessions over HTTP",
		Long: `Serve solver sessions over HTTP.

Each session is one game: POST /session/new returns the opening guess and
POST /session/feedback applies the feedback for it and returns the next one.
Sessions idle for more than 30 minutes are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context())
		},
	}
	c.Flags().StringP("port", "p", "", "listen port")
	a.bind(c.Flags().Lookup("port"), "server.port")
	return c
}

func (a *app) runServe(ctx context.Context) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	open, closeTrees := a.trees()
	defer closeTrees()
	results, closeResults := a.results(ctx)
	defer closeResults()

	sessions := store.NewMemoryStore()
	defer closer(sessions.Close, "close sessions")()
	go sweep(ctx, sessions)

	factory := func(ctx context.Context, name, scope string) (*solver.Session, error) {
		return a.session(ctx, dict, open, name, scope)
	}
	srv := httpserver.New(sessions, dict, factory, results)

	addr := ":" + a.cfg.Server.Port
	log.Info().
		Str("addr", addr).
		Int("words", dict.Len()).
		Str("strategy", a.cfg.Solver.Strategy).
		Str("tree", a.cfg.Tree.Backend).
		Msg("listening")
	return srv.Start(ctx, addr)
}

func sweep(ctx context.Context, sessions *store.Memory) {
	t := time.NewTicker(sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Sweep(sessionIdle); n > 0 {
				log.Info().Int("sessions", n).Msg("dropped idle sessions")
			}
		}
	}
}
