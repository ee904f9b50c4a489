// internal/candidates/set.go
//
// The live candidate set of one game.
//
// A Set is a bitset over dictionary indices: bit i is set while
// dictionary word i is still consistent with every feedback applied so far.
// Iteration follows dictionary order, so "first remaining candidate" is
// stable across runs. A Set is owned by a single session and is not safe for
// concurrent mutation; the dictionary behind it is shared read-only.

package candidates

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Set is the shrinking subset of the dictionary still in play.
type Set struct {
	dict *words.Dictionary
	live *bitset.BitSet
}

// NewSet returns a set holding the whole dictionary.
func NewSet(dict *words.Dictionary) *Set {
	s := &Set{dict: dict, live: bitset.New(uint(dict.Len()))}
	s.Reset()
	return s
}

// Reset refills the set with the whole dictionary.
func (s *Set) Reset() {
	s.live.ClearAll()
	for i := 0; i < s.dict.Len(); i++ {
		s.live.Set(uint(i))
	}
}

// Dictionary returns the dictionary the set indexes into.
func (s *Set) Dictionary() *words.Dictionary { return s.dict }

// Len is the number of live candidates.
func (s *Set) Len() int { return int(s.live.Count()) }

// Contains reports whether w is still a candidate.
func (s *Set) Contains(w string) bool {
	i := s.dict.Index(w)
	return i >= 0 && s.live.Test(uint(i))
}

// First returns the first live candidate in dictionary order.
func (s *Set) First() (string, bool) {
	i, ok := s.live.NextSet(0)
	if !ok {
		return "", false
	}
	return s.dict.At(int(i)), true
}

// Each calls fn for every candidate in dictionary order until fn returns false.
func (s *Set) Each(fn func(w string) bool) {
	for i, ok := s.live.NextSet(0); ok; i, ok = s.live.NextSet(i + 1) {
		if !fn(s.dict.At(int(i))) {
			return
		}
	}
}

// Words materializes the candidates in dictionary order.
func (s *Set) Words() []string {
	out := make([]string, 0, s.Len())
	s.Each(func(w string) bool {
		out = append(out, w)
		return true
	})
	return out
}

// Filter drops every candidate inconsistent with guess having produced p,
// and returns confirmed with the Exact positions of p locked in.
// Cost is O(|set| · L).
func (s *Set) Filter(guess string, p feedback.Pattern, confirmed Confirmed) Confirmed {
	for i, ok := s.live.NextSet(0); ok; i, ok = s.live.NextSet(i + 1) {
		if !feedback.Consistent(guess, s.dict.At(int(i)), p) {
			s.live.Clear(i)
		}
	}
	return confirmed.LockExact(guess, p)
}

// Clone returns an independent copy sharing the dictionary.
func (s *Set) Clone() *Set {
	return &Set{dict: s.dict, live: s.live.Clone()}
}

// Equal reports whether both sets hold the same candidates.
func (s *Set) Equal(o *Set) bool {
	return s.dict == o.dict && s.live.Equal(o.live)
}
