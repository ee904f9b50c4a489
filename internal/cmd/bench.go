package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/bench"
)

type benchFlags struct {
	progress bool
	json     bool
}

func newBenchCmd(a *app) *cobra.Command {
	var f benchFlags
	c := &cobra.Command{
		Use:   "bench [strategy...]",
		Short: "Play every dictionary word and report attempts per game",
		Long: `Play one game per dictionary word with each strategy and report the
distribution of attempts. With --sample N only N words are played, chosen
deterministically from the salt so runs stay comparable.

Results are saved to bench.results when set, and a summary of every
configuration benchmarked so far is printed at the end.`,
		Example: `  wordle-solver bench entropy minimax --scope all
  wordle-solver bench frequency+backfill --sample 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBench(cmd.Context(), cmd.OutOrStdout(), args, f)
		},
	}
	fl := c.Flags()
	fl.Int("sample", 0, "play only this many words (0 plays all)")
	fl.String("salt", "", "salt for choosing the sample")
	fl.Int("max-rounds", 0, "guesses allowed before a game counts as failed")
	fl.String("results", "", "sqlite file to save results to")
	fl.BoolVar(&f.progress, "progress", true, "show a progress bar on stderr")
	fl.BoolVar(&f.json, "json", false, "print reports as JSON")
	a.bind(fl.Lookup("sample"), "bench.sample")
	a.bind(fl.Lookup("salt"), "bench.salt")
	a.bind(fl.Lookup("max-rounds"), "bench.max_rounds")
	a.bind(fl.Lookup("results"), "bench.results")
	return c
}

func (a *app) runBench(ctx context.Context, out io.Writer, names []string, f benchFlags) error {
	if len(names) == 0 {
		names = []string{a.cfg.Solver.Strategy}
	}
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	open, closeTrees := a.trees()
	defer closeTrees()
	results, closeResults := a.results(ctx)
	defer closeResults()

	answers := dict.Words()
	if a.cfg.Bench.Sample > 0 {
		answers = bench.Sample(dict, a.cfg.Bench.Salt, a.cfg.Bench.Sample)
	}
	opts := bench.Options{MaxRounds: a.cfg.Bench.MaxRounds}
	if f.progress {
		opts.Progress = os.Stderr
	}

	for _, name := range names {
		s, err := a.session(ctx, dict, open, name, "")
		if err != nil {
			return err
		}
		rep, err := bench.Run(ctx, s, answers, opts)
		if cerr := s.Close(); cerr != nil {
			log.Warn().Err(cerr).Str("config", s.Config()).Msg("close session")
		}
		if err != nil {
			return err
		}
		if f.json {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
		} else {
			printReport(out, rep)
		}
		if results != nil {
			if err := results.Save(ctx, rep); err != nil {
				return fmt.Errorf("save %s: %w", rep.Config, err)
			}
		}
	}

	if results == nil || f.json {
		return nil
	}
	rows, err := results.Summary(ctx, 20)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nAll configurations:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIG\tGAMES\tMEAN\tFAILURES\tWORST")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%d\t%d\n", r.Config, r.Games, r.Mean, r.Failures, r.Worst)
	}
	return tw.Flush()
}

func printReport(out io.Writer, rep bench.Report) {
	fmt.Fprintf(out, "%s: %d games in %s, mean %.4f\n", rep.Config, rep.Games, rep.Duration.Round(time.Millisecond), rep.Mean)
	top := 0
	for _, n := range rep.Histogram {
		if n > top {
			top = n
		}
	}
	for _, k := range rep.Attempts() {
		n := rep.Histogram[k]
		bar := strings.Repeat("#", (n*40+top-1)/top)
		fmt.Fprintf(out, "  %2d  %-40s %d\n", k, bar, n)
	}
	if len(rep.Failures) > 0 {
		fmt.Fprintf(out, "  failed: %s\n", strings.Join(rep.Failures, " "))
	}
	if rep.Worst.Answer != "" {
		fmt.Fprintf(out, "  worst: %s (%s)\n", rep.Worst.Answer, strings.Join(rep.Worst.Guesses, " "))
	}
	if st := rep.Tree; st.Hits+st.Misses > 0 {
		fmt.Fprintf(out, "  tree: %d hits, %d misses, %d fallbacks\n", st.Hits, st.Misses, st.Fallbacks)
	}
}
