// internal/bench/bench.go
//
// Benchmark: plays a session against a list of answers and reports how many
// attempts each game took.
// Responsibilities:
//   - Referee every game with internal/game, feeding its scores back to the session.
//   - Count a game as failed when it runs out of rounds or of candidates.
//   - Aggregate a histogram of attempts, the mean, failures and the worst game.
//
// Notes:
//   - Attempts include the winning guess, so guessing right first time is 1.
//   - Cancellation is checked between games; a game in progress runs to completion.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/tree"
)

// DefaultMaxRounds bounds a single game.
const DefaultMaxRounds = 12

// Options tune a benchmark run.
type Options struct {
	// MaxRounds is the most guesses a game may take before it counts as failed.
	MaxRounds int
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Result is the outcome of one game.
type Result struct {
	Answer   string        `json:"answer"`
	Attempts int           `json:"attempts"`
	Solved   bool          `json:"solved"`
	Guesses  []string      `json:"guesses"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Report aggregates a run.
type Report struct {
	Config    string        `json:"config"`
	Games     int           `json:"games"`
	Histogram map[int]int   `json:"histogram"` // attempts → solved games
	Mean      float64       `json:"mean"`      // over solved games
	Failures  []string      `json:"failures"`
	Worst     Result        `json:"worst"`
	Duration  time.Duration `json:"duration"`
	Tree      tree.Stats    `json:"tree"`
	Results   []Result      `json:"-"`
}

// Attempts lists the histogram keys in ascending order.
func (r Report) Attempts() []int {
	out := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Run plays s once against every answer. On cancellation it returns the
// report so far together with the context's error.
func Run(ctx context.Context, s *solver.Session, answers []string, opts Options) (Report, error) {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	rep := Report{Config: s.Config(), Histogram: map[int]int{}}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(answers),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("bench "+rep.Config),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(opts.Progress) }),
		)
	}

	start := time.Now()
	solvedAttempts := 0
	for _, answer := range answers {
		if err := ctx.Err(); err != nil {
			rep.Duration = time.Since(start)
			rep.Tree = s.TreeStats()
			return rep, err
		}

		res, err := playOne(ctx, s, answer, opts.MaxRounds)
		if err != nil {
			return rep, fmt.Errorf("play %s: %w", answer, err)
		}
		rep.Results = append(rep.Results, res)
		rep.Games++
		if res.Solved {
			rep.Histogram[res.Attempts]++
			solvedAttempts += res.Attempts
		} else {
			rep.Failures = append(rep.Failures, answer)
		}
		if worse(res, rep.Worst) {
			rep.Worst = res
		}

		if bar != nil {
			if solved := rep.Games - len(rep.Failures); solved > 0 {
				bar.Describe(fmt.Sprintf("bench %s avg=%.4f", rep.Config, float64(solvedAttempts)/float64(solved)))
			}
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if solved := rep.Games - len(rep.Failures); solved > 0 {
		rep.Mean = float64(solvedAttempts) / float64(solved)
	}
	rep.Duration = time.Since(start)
	rep.Tree = s.TreeStats()

	log.Info().
		Str("config", rep.Config).
		Int("games", rep.Games).
		Float64("mean", rep.Mean).
		Int("failures", len(rep.Failures)).
		Int("tree_hits", rep.Tree.Hits).
		Dur("duration", rep.Duration).
		Msg("benchmark finished")
	return rep, nil
}

// playOne referees a single game. Running out of candidates or rounds is a
// failed game, not an error; any other error aborts the run.
func playOne(ctx context.Context, s *solver.Session, answer string, maxRounds int) (Result, error) {
	res := Result{Answer: answer}
	g, err := game.New(s.Dictionary(), answer, maxRounds)
	if err != nil {
		return res, err
	}
	g.AcceptAny = true

	start := time.Now()
	s.Reset()
	for !g.Finished {
		guess, err := s.ProposeGuess(ctx)
		if errors.Is(err, solver.ErrNoGuess) {
			log.Warn().Str("answer", answer).Strs("guesses", g.Guesses).Msg("no candidates left")
			break
		}
		if err != nil {
			return res, err
		}
		marks, _, err := g.ApplyGuess(guess)
		if err != nil {
			return res, err
		}
		if err := s.ApplyFeedback(guess, marks); err != nil {
			return res, err
		}
	}

	res.Guesses = g.Guesses
	res.Attempts = len(g.Guesses)
	res.Solved = g.Won
	res.Elapsed = time.Since(start)
	return res, nil
}

// worse orders failures before solved games, then more attempts first.
func worse(a, b Result) bool {
	if b.Answer == "" {
		return true
	}
	if a.Solved != b.Solved {
		return !a.Solved
	}
	return a.Attempts > b.Attempts
}
