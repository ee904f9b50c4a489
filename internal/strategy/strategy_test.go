package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/candidates"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var tenWords = []string{
	"crane", "slate", "trace", "crate", "react", "cater", "speed", "erase", "geese", "those",
}

func input(pool, cands []string) Input {
	return Input{Pool: pool, Candidates: cands, Confirmed: candidates.NewConfirmed(len(cands[0]))}
}

func TestEntropy(t *testing.T) {
	t.Run("two candidates never exceed one bit", func(t *testing.T) {
		cands := []string{"crane", "crate"}
		for _, g := range tenWords {
			require.LessOrEqual(t, Information(g, cands), 1.0+1e-12, g)
		}

		got, err := Entropy{}.Propose(input(cands, cands))
		require.NoError(t, err)
		require.Equal(t, "crane", got.Guess)
		require.InDelta(t, 1.0, Information(got.Guess, cands), 1e-12)
	})

	t.Run("first maximum wins", func(t *testing.T) {
		// slate, trace and react all split the ten words into singletons.
		got, err := Entropy{}.Propose(input(tenWords, tenWords))
		require.NoError(t, err)
		require.Equal(t, "slate", got.Guess)
		require.InDelta(t, math.Log2(10), Information("trace", tenWords), 1e-12)
	})

	t.Run("empty candidates", func(t *testing.T) {
		_, err := Entropy{}.Propose(Input{Pool: tenWords})
		require.ErrorIs(t, err, ErrNoGuess)
	})
}

func TestMinimax(t *testing.T) {
	got, err := Minimax{}.Propose(input(tenWords, tenWords))
	require.NoError(t, err)
	require.Equal(t, "slate", got.Guess)
	require.Equal(t, 1, WorstCase("slate", tenWords))

	small := []string{"bat", "cat", "hat", "mat", "bag", "tag"}
	got, err = Minimax{}.Propose(input(small, small))
	require.NoError(t, err)
	require.Equal(t, "bat", got.Guess)
	require.Equal(t, 3, WorstCase("bat", small))
}

func TestPartitionerSparse(t *testing.T) {
	// Longer than the dense pattern space; group sizes must still add up.
	long := []string{"abcdefghijkl", "abcdefghijkm", "bbcdefghijkl"}
	p := newPartitioner(12)
	require.Nil(t, p.dense)

	sum := 0
	for _, n := range p.split(long[0], long) {
		sum += n
	}
	require.Equal(t, len(long), sum)
	require.Equal(t, 1, WorstCase(long[0], long))
}

func TestFrequency(t *testing.T) {
	t.Run("picks the most frequent letters", func(t *testing.T) {
		got, err := Frequency{DiversityWeight: 2}.Propose(input(tenWords, tenWords))
		require.NoError(t, err)
		require.Equal(t, "crate", got.Guess)
		require.False(t, got.Confirmed.Any())
	})

	t.Run("locks single-letter positions", func(t *testing.T) {
		cands := []string{"crate", "grate", "irate", "orate", "prate"}
		got, err := Frequency{DiversityWeight: 2}.Propose(input(cands, cands))
		require.NoError(t, err)
		require.Equal(t, "crate", got.Guess)
		require.Equal(t, "_rate", got.Confirmed.String())
	})
}

func TestConstruct(t *testing.T) {
	t.Run("top letter per position", func(t *testing.T) {
		got, err := Construct{}.Propose(input(tenWords, tenWords))
		require.NoError(t, err)
		require.Equal(t, "crase", got.Guess)
	})

	cases := []struct {
		name     string
		cands    []string
		plain    string
		distinct string
	}{
		{"higher count keeps the letter", []string{"ab", "ac", "ba", "ca", "aa", "da"}, "aa", "ba"},
		{"equal counts go to the lower index", []string{"ab", "ba", "ac", "ca"}, "aa", "ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Construct{}.Propose(input(tc.cands, tc.cands))
			require.NoError(t, err)
			require.Equal(t, tc.plain, got.Guess)

			got, err = Construct{Distinct: true}.Propose(input(tc.cands, tc.cands))
			require.NoError(t, err)
			require.Equal(t, tc.distinct, got.Guess)
		})
	}

	t.Run("keeps confirmed letters", func(t *testing.T) {
		cands := []string{"crate", "grate", "irate"}
		in := input(cands, cands)
		in.Confirmed = in.Confirmed.Lock(4, 'e')
		got, err := Construct{Distinct: true}.Propose(in)
		require.NoError(t, err)
		require.Equal(t, "crate", got.Guess)
		require.Equal(t, "_rate", got.Confirmed.String())
	})
}

func TestBackfill(t *testing.T) {
	t.Run("overwrites confirmed slots with unused letters", func(t *testing.T) {
		cands := []string{"crate", "grate", "irate", "orate", "prate"}
		got, err := Backfill(Construct{}).Propose(input(cands, cands))
		require.NoError(t, err)
		require.Equal(t, "cgiop", got.Guess)
		require.Equal(t, "_rate", got.Confirmed.String())
	})

	t.Run("prefers the most frequent spare letter", func(t *testing.T) {
		cands := []string{"bat", "cat", "hat", "mat", "bag", "tag"}
		got, err := Backfill(Frequency{DiversityWeight: 2}).Propose(input(cands, cands))
		require.NoError(t, err)
		require.Equal(t, "bgt", got.Guess)
	})

	t.Run("no confirmed position leaves the guess alone", func(t *testing.T) {
		got, err := Backfill(Entropy{}).Propose(input(tenWords, tenWords))
		require.NoError(t, err)
		require.Equal(t, "slate", got.Guess)
	})

	require.Equal(t, "entropy+backfill", Backfill(Entropy{}).Name())
}

func TestBaselines(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		got, err := Fixed{Divisor: 2}.Propose(input(tenWords, tenWords))
		require.NoError(t, err)
		require.Equal(t, "cater", got.Guess)

		got, err = Fixed{}.Propose(input(tenWords, tenWords[:3]))
		require.NoError(t, err)
		require.Equal(t, "slate", got.Guess)
	})

	t.Run("random is seeded", func(t *testing.T) {
		a, b := NewRandom(7), NewRandom(7)
		require.False(t, a.Deterministic())
		for i := 0; i < 20; i++ {
			ga, err := a.Propose(input(tenWords, tenWords))
			require.NoError(t, err)
			gb, err := b.Propose(input(tenWords, tenWords))
			require.NoError(t, err)
			require.Equal(t, ga.Guess, gb.Guess)
			require.Contains(t, tenWords, ga.Guess)
		}
	})
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, DefaultOptions())
		require.NoError(t, err, name)
		require.Equal(t, name, s.Name())
	}

	s, err := New("Frequency+Backfill", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "frequency+backfill", s.Name())

	_, err = New("oracle", DefaultOptions())
	require.ErrorIs(t, err, ErrUnknown)
}

func TestKey(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want string
	}{
		{"entropy", DefaultOptions(), "entropy"},
		{"construct-distinct", DefaultOptions(), "construct-distinct"},
		{"fixed", DefaultOptions(), "fixed2"},
		{"fixed", Options{Divisor: 8}, "fixed8"},
		{"fixed", Options{}, "fixed2"},
		{"frequency", DefaultOptions(), "frequency-w2"},
		{"frequency", Options{DiversityWeight: 0.5}, "frequency-w0.5"},
		{"frequency+backfill", Options{DiversityWeight: 3}, "frequency-w3+backfill"},
		{"fixed+backfill", Options{Divisor: 4}, "fixed4+backfill"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			s, err := New(tc.name, tc.opts)
			require.NoError(t, err)
			require.Equal(t, tc.want, Key(s))
		})
	}
}

func TestScope(t *testing.T) {
	dict, err := words.New(tenWords)
	require.NoError(t, err)
	live := []string{"crane"}

	require.Equal(t, tenWords, ScopeAll.Pool(dict, live))
	require.Equal(t, live, ScopeFiltered.Pool(dict, live))

	s, err := ParseScope(" Filtered ")
	require.NoError(t, err)
	require.Equal(t, ScopeFiltered, s)
	_, err = ParseScope("some")
	require.ErrorIs(t, err, ErrUnknownScope)
}

// Every strategy's guess must be usable by the feedback engine.
func TestGuessesHaveWordLength(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name+"+backfill", DefaultOptions())
		require.NoError(t, err)
		got, err := s.Propose(input(tenWords, tenWords))
		require.NoError(t, err)
		require.Len(t, got.Guess, 5, name)
		require.Len(t, feedback.Score(got.Guess, "crane"), 5)
	}
}
