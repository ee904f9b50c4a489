package feedback

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var sampleWords = []string{
	"speed", "erase", "geese", "those", "llama", "hello", "crane", "eerie",
	"abbey", "babes", "label", "sassy", "asses", "error", "robot", "tacit",
}

func TestScore(t *testing.T) {
	cases := []struct {
		guess, target string
		want          string
	}{
		// s is present (ERASE has an s at index 3), both e's are present
		// because ERASE holds two unclaimed e's after pass 1.
		{"speed", "erase", "10110"},
		{"crane", "crane", "22222"},
		{"llama", "hello", "11000"},
		{"geese", "those", "00022"},
		{"eerie", "speed", "11000"},
		{"sassy", "asses", "11210"},
	}
	for _, tc := range cases {
		t.Run(tc.guess+"/"+tc.target, func(t *testing.T) {
			got := Score(tc.guess, tc.target)
			require.Equal(t, tc.want, got.String())
			require.Equal(t, got.Index(), ScoreIndex(tc.guess, tc.target),
				"ScoreIndex should agree with Score")
		})
	}
}

func TestScoreProperties(t *testing.T) {
	for _, g := range sampleWords {
		for _, target := range sampleWords {
			p := Score(g, target)

			exact := 0
			for i := range g {
				if g[i] == target[i] {
					exact++
				}
			}
			got := 0
			for _, m := range p {
				if m == Exact {
					got++
				}
			}
			require.Equal(t, exact, got, "exact marks for %s/%s", g, target)

			marked := map[byte]int{}
			for i, m := range p {
				if m != Absent {
					marked[g[i]]++
				}
			}
			for letter, n := range marked {
				occurrences := 0
				for i := range target {
					if target[i] == letter {
						occurrences++
					}
				}
				require.LessOrEqual(t, n, occurrences,
					"letter %c over-marked for %s/%s", letter, g, target)
			}
		}
	}
}

func TestConsistent(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, g := range sampleWords {
			for _, w := range sampleWords {
				require.True(t, Consistent(g, w, Score(g, w)), "%s/%s", g, w)
			}
		}
	})

	t.Run("rejects candidates with different feedback", func(t *testing.T) {
		for _, g := range sampleWords {
			for _, w1 := range sampleWords {
				p1 := Score(g, w1)
				for _, w2 := range sampleWords {
					if w1 == w2 || Score(g, w2).Equal(p1) {
						continue
					}
					require.False(t, Consistent(g, w2, p1), "guess %s, %s vs %s", g, w1, w2)
				}
			}
		}
	})

	t.Run("absent letter sitting in place would have been exact", func(t *testing.T) {
		// score("aa", "ab") is "20"; "01" must not match "ab".
		require.False(t, Consistent("aa", "ab", Pattern{Absent, Present}))
	})

	t.Run("length mismatch", func(t *testing.T) {
		require.False(t, Consistent("speed", "era", Score("speed", "erase")))
		require.False(t, Consistent("speed", "erase", Pattern{Exact}))
	})
}

func TestParse(t *testing.T) {
	t.Run("digits and letters", func(t *testing.T) {
		p, err := Parse("2 0 1 1 0", 5)
		require.NoError(t, err)
		require.Equal(t, "20110", p.String())

		p, err = Parse("GyB.-", 5)
		require.NoError(t, err)
		require.Equal(t, Pattern{Exact, Present, Absent, Absent, Absent}, p)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := Parse("2011", 5)
		require.ErrorIs(t, err, ErrMalformed)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "feedback", verr.Field)
	})

	t.Run("invalid code", func(t *testing.T) {
		_, err := Parse("20x10", 5)
		require.ErrorIs(t, err, ErrMalformed)
	})
}

func TestPatternHelpers(t *testing.T) {
	require.True(t, Solved(AllExact(5)))
	require.False(t, Solved(Pattern{Exact, Present}))
	require.False(t, Solved(nil))

	require.Equal(t, 0, Pattern{Absent, Absent}.Index())
	require.Equal(t, 8, Pattern{Exact, Exact}.Index())
	require.Equal(t, "", Pattern(nil).String())

	require.NoError(t, Pattern{Exact, Absent}.Validate(2))
	require.ErrorIs(t, Pattern{Exact, Mark(7)}.Validate(2), ErrMalformed)
	require.ErrorIs(t, Pattern{Exact}.Validate(2), ErrMalformed)
}
