package candidates

import "github.com/robalobadob/wordle-solver/internal/feedback"

// Confirmed records the positions whose letter is known. A zero byte means
// unconfirmed. Values are never mutated in place: every update returns a
// copy, so the session that owns one can hand it to strategies freely.
type Confirmed []byte

// NewConfirmed returns an all-unconfirmed value for words of length n.
func NewConfirmed(n int) Confirmed { return make(Confirmed, n) }

// Locked reports whether position i is confirmed.
func (c Confirmed) Locked(i int) bool { return c[i] != 0 }

// Letter returns the confirmed letter at i, or 0.
func (c Confirmed) Letter(i int) byte { return c[i] }

// Any reports whether at least one position is confirmed.
func (c Confirmed) Any() bool { return c.Count() > 0 }

// Count is the number of confirmed positions.
func (c Confirmed) Count() int {
	n := 0
	for _, b := range c {
		if b != 0 {
			n++
		}
	}
	return n
}

// Lock confirms position i as letter b. Already locked positions keep their
// letter.
func (c Confirmed) Lock(i int, b byte) Confirmed {
	if c[i] != 0 {
		return c
	}
	out := c.clone()
	out[i] = b
	return out
}

// LockExact confirms every position marked Exact in p.
func (c Confirmed) LockExact(guess string, p feedback.Pattern) Confirmed {
	out := c
	for i, m := range p {
		if m == feedback.Exact {
			out = out.Lock(i, guess[i])
		}
	}
	return out
}

// String renders confirmed letters with '_' for open positions.
func (c Confirmed) String() string {
	b := make([]byte, len(c))
	for i, l := range c {
		if l == 0 {
			b[i] = '_'
		} else {
			b[i] = l
		}
	}
	return string(b)
}

func (c Confirmed) clone() Confirmed {
	out := make(Confirmed, len(c))
	copy(out, c)
	return out
}
