package candidates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func testDict(t *testing.T) *words.Dictionary {
	t.Helper()
	d, err := words.New([]string{
		"crane", "slate", "trace", "crate", "react", "cater", "speed", "erase", "geese", "those",
	})
	require.NoError(t, err)
	return d
}

func TestSetFilter(t *testing.T) {
	t.Run("keeps exactly the consistent candidates", func(t *testing.T) {
		dict := testDict(t)
		s := NewSet(dict)
		p := feedback.Score("crane", "trace")

		s.Filter("crane", p, NewConfirmed(5))

		for _, w := range dict.Words() {
			require.Equal(t, feedback.Score("crane", w).Equal(p), s.Contains(w), w)
		}
		require.True(t, s.Contains("trace"))
	})

	t.Run("idempotent", func(t *testing.T) {
		dict := testDict(t)
		once := NewSet(dict)
		p := feedback.Score("slate", "crate")
		once.Filter("slate", p, NewConfirmed(5))

		twice := once.Clone()
		twice.Filter("slate", p, NewConfirmed(5))

		require.True(t, once.Equal(twice))
	})

	t.Run("monotonic", func(t *testing.T) {
		dict := testDict(t)
		for _, target := range dict.Words() {
			s := NewSet(dict)
			c := NewConfirmed(5)
			for _, guess := range []string{"speed", "those", "crane"} {
				before := s.Len()
				c = s.Filter(guess, feedback.Score(guess, target), c)
				require.LessOrEqual(t, s.Len(), before)
				require.True(t, s.Contains(target), "target %s must survive", target)
			}
		}
	})

	t.Run("locks exact positions", func(t *testing.T) {
		dict := testDict(t)
		s := NewSet(dict)
		c := s.Filter("crane", feedback.Score("crane", "crate"), NewConfirmed(5))
		require.Equal(t, "cra_e", c.String())
		require.Equal(t, 4, c.Count())

		// A later guess never unlocks a position.
		c = s.Filter("those", feedback.Score("those", "crate"), c)
		require.Equal(t, "cra_e", c.String())
	})
}

func TestSetIteration(t *testing.T) {
	dict := testDict(t)
	s := NewSet(dict)
	require.Equal(t, dict.Len(), s.Len())
	require.Equal(t, dict.Words(), s.Words())

	first, ok := s.First()
	require.True(t, ok)
	require.Equal(t, "crane", first)

	s.Filter("geese", feedback.Score("geese", "those"), NewConfirmed(5))
	require.Equal(t, []string{"those"}, s.Words())

	s.Filter("crane", feedback.Score("crane", "crate"), NewConfirmed(5))
	require.Equal(t, 0, s.Len())
	_, ok = s.First()
	require.False(t, ok)

	s.Reset()
	require.Equal(t, dict.Len(), s.Len())
}

func TestConfirmed(t *testing.T) {
	c := NewConfirmed(3)
	require.False(t, c.Any())

	c2 := c.Lock(1, 'x')
	require.False(t, c.Locked(1), "Lock must not mutate the receiver")
	require.True(t, c2.Locked(1))
	require.Equal(t, byte('x'), c2.Letter(1))

	c3 := c2.Lock(1, 'y')
	require.Equal(t, byte('x'), c3.Letter(1), "locked positions keep their letter")
	require.Equal(t, "_x_", c3.String())
}
