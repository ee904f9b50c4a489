package strategy

// Minimax picks the guess whose largest feedback group is smallest, bounding
// the worst case instead of the expectation. Ties go to the first minimum in
// pool order.
type Minimax struct{}

func (Minimax) Name() string        { return "minimax" }
func (Minimax) Deterministic() bool { return true }

func (Minimax) Propose(in Input) (Proposal, error) {
	if len(in.Candidates) == 0 {
		return Proposal{}, ErrNoGuess
	}
	part := newPartitioner(len(in.Candidates[0]))

	best, bestWorst := "", len(in.Candidates)+1
	for _, g := range in.Pool {
		if worst := largest(part.split(g, in.Candidates)); worst < bestWorst {
			best, bestWorst = g, worst
		}
	}
	return Proposal{Guess: best, Confirmed: in.Confirmed}, nil
}

// WorstCase returns the size of the largest feedback group guess leaves over cands.
func WorstCase(guess string, cands []string) int {
	if len(cands) == 0 {
		return 0
	}
	return largest(newPartitioner(len(guess)).split(guess, cands))
}

func largest(sizes []int) int {
	m := 0
	for _, n := range sizes {
		m = max(m, n)
	}
	return m
}
