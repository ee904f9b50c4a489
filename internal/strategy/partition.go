package strategy

import "github.com/robalobadob/wordle-solver/internal/feedback"

// maxDense is the largest pattern space counted in a flat slice (3^10).
const maxDense = 59049

// partitioner groups candidates by the feedback a guess would receive and
// reports the group sizes. Buffers are reused across guesses of one search.
type partitioner struct {
	dense   []int
	touched []int
	sizes   []int
}

func newPartitioner(length int) *partitioner {
	p := &partitioner{}
	space := 1
	for i := 0; i < length && space <= maxDense; i++ {
		space *= 3
	}
	if space <= maxDense {
		p.dense = make([]int, space)
	}
	return p
}

// split returns the non-empty group sizes for guess over cands. The slice is
// only valid until the next call.
func (p *partitioner) split(guess string, cands []string) []int {
	p.sizes = p.sizes[:0]
	if p.dense == nil {
		groups := make(map[string]int)
		for _, w := range cands {
			groups[feedback.Score(guess, w).String()]++
		}
		for _, n := range groups {
			p.sizes = append(p.sizes, n)
		}
		return p.sizes
	}

	for _, w := range cands {
		k := feedback.ScoreIndex(guess, w)
		if p.dense[k] == 0 {
			p.touched = append(p.touched, k)
		}
		p.dense[k]++
	}
	for _, k := range p.touched {
		p.sizes = append(p.sizes, p.dense[k])
		p.dense[k] = 0
	}
	p.touched = p.touched[:0]
	return p.sizes
}
