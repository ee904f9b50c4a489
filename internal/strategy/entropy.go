package strategy

import "math"

// Entropy picks the guess whose feedback distribution over the candidates
// has maximal Shannon entropy (bits), i.e. the best expected information
// gain. Ties go to the first maximum in pool order.
type Entropy struct{}

func (Entropy) Name() string        { return "entropy" }
func (Entropy) Deterministic() bool { return true }

func (Entropy) Propose(in Input) (Proposal, error) {
	if len(in.Candidates) == 0 {
		return Proposal{}, ErrNoGuess
	}
	part := newPartitioner(len(in.Candidates[0]))
	total := float64(len(in.Candidates))

	best, bestH := "", math.Inf(-1)
	for _, g := range in.Pool {
		if h := entropy(part.split(g, in.Candidates), total); h > bestH {
			best, bestH = g, h
		}
	}
	return Proposal{Guess: best, Confirmed: in.Confirmed}, nil
}

// Information returns the entropy in bits of guess's feedback distribution
// over cands.
func Information(guess string, cands []string) float64 {
	if len(cands) == 0 {
		return 0
	}
	part := newPartitioner(len(guess))
	return entropy(part.split(guess, cands), float64(len(cands)))
}

func entropy(sizes []int, total float64) float64 {
	h := 0.0
	for _, n := range sizes {
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	return h
}
