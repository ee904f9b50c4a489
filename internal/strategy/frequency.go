// internal/strategy/frequency.go
//
// Letter-frequency heuristics.
//
// All variants start from the same per-position histograms built over the
// live candidates. Only unconfirmed positions are counted; a position whose
// histogram holds a single letter is locked as confirmed on the way, and the
// updated value is returned to the session with the proposal.
//
// Deterministic ordering:
//   - Letters with equal counts rank alphabetically.
//   - When two positions want the same letter, the higher count wins and
//     equal counts go to the lower position index.

package strategy

import (
	"sort"
	"strconv"

	"github.com/robalobadob/wordle-solver/internal/candidates"
)

const alphabet = 26

type histogram [alphabet]int

// letterCount is one ranked histogram entry.
type letterCount struct {
	letter byte
	count  int
}

// positionCounts histograms every unconfirmed position. Histograms of
// confirmed positions are left zero.
func positionCounts(cands []string, confirmed candidates.Confirmed) ([]histogram, candidates.Confirmed) {
	n := len(confirmed)
	hists := make([]histogram, n)
	for i := 0; i < n; i++ {
		if confirmed.Locked(i) {
			continue
		}
		for _, w := range cands {
			hists[i][w[i]-'a']++
		}
		if only, ok := single(hists[i]); ok {
			confirmed = confirmed.Lock(i, only)
			hists[i] = histogram{}
		}
	}
	return hists, confirmed
}

func single(h histogram) (byte, bool) {
	letter, seen := byte(0), 0
	for j, c := range h {
		if c > 0 {
			letter = byte('a' + j)
			seen++
		}
	}
	return letter, seen == 1
}

// ranked returns the non-zero entries of h, highest count first.
func ranked(h histogram) []letterCount {
	out := make([]letterCount, 0, alphabet)
	for j, c := range h {
		if c > 0 {
			out = append(out, letterCount{letter: byte('a' + j), count: c})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].count > out[b].count })
	return out
}

// Frequency scores every pool word by the positional frequency of its
// letters at unconfirmed positions, plus DiversityWeight per distinct letter,
// and takes the argmax (first maximum in pool order).
type Frequency struct {
	DiversityWeight float64
}

func (Frequency) Name() string        { return "frequency" }
func (Frequency) Deterministic() bool { return true }

func (f Frequency) Key() string {
	return "frequency-w" + strconv.FormatFloat(f.DiversityWeight, 'g', -1, 64)
}

func (f Frequency) Propose(in Input) (Proposal, error) {
	if len(in.Candidates) == 0 {
		return Proposal{}, ErrNoGuess
	}
	hists, confirmed := positionCounts(in.Candidates, in.Confirmed)

	best, bestScore := "", -1.0
	for _, w := range in.Pool {
		if s := f.score(w, hists, confirmed); s > bestScore {
			best, bestScore = w, s
		}
	}
	return Proposal{Guess: best, Confirmed: confirmed}, nil
}

func (f Frequency) score(w string, hists []histogram, confirmed candidates.Confirmed) float64 {
	total := 0
	var seen [alphabet]bool
	distinct := 0
	for i := 0; i < len(w); i++ {
		j := w[i] - 'a'
		if !confirmed.Locked(i) {
			total += hists[i][j]
		}
		if !seen[j] {
			seen[j] = true
			distinct++
		}
	}
	return float64(total) + f.DiversityWeight*float64(distinct)
}

// Construct builds a guess letter by letter from the per-position
// histograms instead of scoring dictionary words, so the guess need not be
// a dictionary word. Confirmed positions keep their letter.
//
// With Distinct set, two positions wanting the same letter are resolved
// greedily: the higher count keeps it (lower index on ties) and the loser
// advances to its next-best letter. A position that runs out of letters
// falls back to its top letter.
type Construct struct {
	Distinct bool
}

func (c Construct) Name() string {
	if c.Distinct {
		return "construct-distinct"
	}
	return "construct"
}

func (Construct) Deterministic() bool { return true }

func (c Construct) Propose(in Input) (Proposal, error) {
	if len(in.Candidates) == 0 {
		return Proposal{}, ErrNoGuess
	}
	hists, confirmed := positionCounts(in.Candidates, in.Confirmed)

	n := len(confirmed)
	ranks := make([][]letterCount, n)
	for i := 0; i < n; i++ {
		if !confirmed.Locked(i) {
			ranks[i] = ranked(hists[i])
		}
	}

	choice := make([]int, n)
	if c.Distinct {
		resolveConflicts(ranks, choice)
	}

	guess := make([]byte, n)
	for i := 0; i < n; i++ {
		switch {
		case confirmed.Locked(i):
			guess[i] = confirmed.Letter(i)
		case choice[i] < len(ranks[i]):
			guess[i] = ranks[i][choice[i]].letter
		default:
			guess[i] = ranks[i][0].letter
		}
	}
	return Proposal{Guess: string(guess), Confirmed: confirmed}, nil
}

// resolveConflicts advances choice until no two open positions pick the
// same letter or every conflicting position has run out of letters. Each
// round advances exactly one position, so it terminates.
func resolveConflicts(ranks [][]letterCount, choice []int) {
	for {
		owner := make(map[byte]int, len(ranks))
		loser := -1
		for i := 0; i < len(ranks) && loser < 0; i++ {
			if choice[i] >= len(ranks[i]) {
				continue
			}
			lc := ranks[i][choice[i]]
			j, taken := owner[lc.letter]
			if !taken {
				owner[lc.letter] = i
				continue
			}
			// j < i, so j keeps the letter on equal counts.
			if lc.count > ranks[j][choice[j]].count {
				loser = j
			} else {
				loser = i
			}
		}
		if loser < 0 {
			return
		}
		choice[loser]++
	}
}
