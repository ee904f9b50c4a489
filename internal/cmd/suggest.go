package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

// maxListed bounds how many remaining candidates suggest prints.
const maxListed = 12

var errNoMatch = errors.New("no dictionary word matches that history")

// move is one played guess and the feedback it received.
type move struct {
	guess string
	marks feedback.Pattern
}

func newSuggestCmd(a *app) *cobra.Command {
	var history string
	c := &cobra.Command{
		Use:   "suggest",
		Short: "Print the next guess for a game in progress",
		Long: `Replay the guesses and feedback of a game in progress and print the next
guess. History entries are guess:feedback pairs separated by commas, with
feedback written as digits (0 absent, 1 present, 2 exact) or as b/y/g.`,
		Example: `  wordle-solver suggest
  wordle-solver suggest --history crane:01020,doubt:bbgbb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSuggest(cmd.Context(), cmd.OutOrStdout(), history)
		},
	}
	c.Flags().StringVar(&history, "history", "", "guesses so far, e.g. crane:01020,doubt:00200")
	return c
}

// parseHistory decodes "guess:feedback,..." for words of length n.
func parseHistory(s string, n int) ([]move, error) {
	var moves []move
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		guess, marks, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("history entry %q: want guess:feedback", entry)
		}
		p, err := feedback.Parse(marks, n)
		if err != nil {
			return nil, fmt.Errorf("history entry %q: %w", entry, err)
		}
		moves = append(moves, move{guess: strings.TrimSpace(guess), marks: p})
	}
	return moves, nil
}

func (a *app) runSuggest(ctx context.Context, out io.Writer, history string) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	moves, err := parseHistory(history, dict.Length())
	if err != nil {
		return err
	}
	open, closeTrees := a.trees()
	defer closeTrees()

	s, err := a.session(ctx, dict, open, "", "")
	if err != nil {
		return err
	}
	defer closer(s.Close, "close session")()

	// While the history follows the session's own proposals, the replay
	// walks the decision tree instead of recomputing.
	following := true
	for _, m := range moves {
		if following {
			proposed, err := s.ProposeGuess(ctx)
			if errors.Is(err, solver.ErrNoGuess) {
				return errNoMatch
			}
			if err != nil {
				return err
			}
			following = proposed == strings.ToLower(m.guess)
		}
		if err := s.ApplyFeedback(m.guess, m.marks); err != nil {
			return err
		}
		if s.Solved() {
			fmt.Fprintf(out, "solved: %s\n", m.guess)
			return nil
		}
	}

	guess, err := s.ProposeGuess(ctx)
	if errors.Is(err, solver.ErrNoGuess) {
		return errNoMatch
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s  (%s, %d candidates left)\n", guess, s.Config(), s.Remaining())
	if left := s.Candidates(); len(left) <= maxListed {
		fmt.Fprintf(out, "  %s\n", strings.Join(left, " "))
	}
	if st := s.TreeStats(); st.Hits+st.Misses > 0 {
		fmt.Fprintf(out, "  tree: %d hits, %d misses\n", st.Hits, st.Misses)
	}
	return nil
}
