package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

func newPlayCmd(a *app) *cobra.Command {
	var rows int
	c := &cobra.Command{
		Use:   "play <answer>",
		Short: "Watch the solver play against a known answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd.Context(), cmd.OutOrStdout(), args[0], rows)
		},
	}
	c.Flags().IntVar(&rows, "rows", game.DefaultRows, "guesses allowed (0 for unlimited)")
	return c
}

func (a *app) runPlay(ctx context.Context, out io.Writer, answer string, rows int) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	g, err := game.New(dict, answer, rows)
	if err != nil {
		return fmt.Errorf("%s: %w", answer, err)
	}
	g.AcceptAny = true

	open, closeTrees := a.trees()
	defer closeTrees()
	s, err := a.session(ctx, dict, open, "", "")
	if err != nil {
		return err
	}
	defer closer(s.Close, "close session")()

	for !g.Finished {
		guess, err := s.ProposeGuess(ctx)
		if errors.Is(err, solver.ErrNoGuess) {
			break
		}
		if err != nil {
			return err
		}
		marks, _, err := g.ApplyGuess(guess)
		if err != nil {
			return err
		}
		if err := s.ApplyFeedback(guess, marks); err != nil {
			return err
		}
		fmt.Fprintf(out, "%2d  %s  %s  %d left\n", len(g.Guesses), guess, marks, s.Remaining())
	}

	switch g.State() {
	case game.Won:
		fmt.Fprintf(out, "solved in %d\n", len(g.Guesses))
	case game.Lost:
		fmt.Fprintf(out, "lost, the answer was %s\n", g.Answer)
	default:
		fmt.Fprintln(out, "gave up: no candidates left")
	}
	return nil
}
