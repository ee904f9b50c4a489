package strategy

import (
	"strconv"

	"golang.org/x/exp/rand"
)

// Random picks a uniformly random live candidate. It is a benchmarking
// baseline and is never memoized.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string        { return "random" }
func (*Random) Deterministic() bool { return false }

func (r *Random) Propose(in Input) (Proposal, error) {
	if len(in.Candidates) == 0 {
		return Proposal{}, ErrNoGuess
	}
	return Proposal{Guess: in.Candidates[r.rng.Intn(len(in.Candidates))], Confirmed: in.Confirmed}, nil
}

// Fixed picks the live candidate at index len/Divisor.
type Fixed struct {
	Divisor int
}

func (Fixed) Name() string        { return "fixed" }
func (f Fixed) Key() string       { return "fixed" + strconv.Itoa(f.divisor()) }
func (Fixed) Deterministic() bool { return true }

func (f Fixed) Propose(in Input) (Proposal, error) {
	if len(in.Candidates) == 0 {
		return Proposal{}, ErrNoGuess
	}
	return Proposal{Guess: in.Candidates[len(in.Candidates)/f.divisor()], Confirmed: in.Confirmed}, nil
}

func (f Fixed) divisor() int {
	if f.Divisor < 1 {
		return 2
	}
	return f.Divisor
}
