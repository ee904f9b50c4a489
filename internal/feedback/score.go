// internal/feedback/score.go
//
// The feedback engine and the constraint matcher.
//
// Both functions work on lowercase ASCII words (a–z) of equal length; the
// words package guarantees that for every dictionary entry and the solver
// validates driver-supplied guesses before they get here.

package feedback

const alphabet = 26

// maxStackLen bounds the words ScoreIndex handles without allocating.
const maxStackLen = 16

// Score implements the two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Exact.
//   - Count remaining (non-exact) target letters.
//
// Pass 2:
//   - For each non-exact guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// Exact+Present marks for a letter never exceed its count in target.
func Score(guess, target string) Pattern {
	p := make(Pattern, len(guess))
	score(guess, target, p)
	return p
}

// ScoreIndex is Score(guess, target).Index() without the allocation for
// ordinary word lengths. Strategies call it once per (pool word, candidate).
func ScoreIndex(guess, target string) int {
	if len(guess) > maxStackLen {
		return Score(guess, target).Index()
	}
	var buf [maxStackLen]Mark
	p := Pattern(buf[:len(guess)])
	score(guess, target, p)
	return p.Index()
}

func score(guess, target string, out Pattern) {
	var counts [alphabet]int
	n := len(guess)

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			out[i] = Exact
		} else {
			out[i] = Absent
			counts[target[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if out[i] == Exact {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			out[i] = Present
			counts[j]--
		}
	}
}

// Consistent reports whether candidate could be the target given that guess
// produced feedback p. It agrees with Score(guess, candidate).Equal(p) for
// every pattern Score can produce, but reads p directly so filtering never
// re-derives feedback.
//
// Rules are applied in order; the later ones depend on the residual letter
// counts left after the Exact positions are claimed:
//  1. Exact: candidate[i] == guess[i].
//  2. Present: candidate[i] != guess[i] and an unclaimed guess[i] remains (claim it).
//  3. Absent: candidate[i] != guess[i] and no unclaimed guess[i] remains.
func Consistent(guess, candidate string, p Pattern) bool {
	n := len(guess)
	if len(candidate) != n || len(p) != n {
		return false
	}

	var counts [alphabet]int
	for i := 0; i < n; i++ {
		if p[i] == Exact {
			if candidate[i] != guess[i] {
				return false
			}
			continue
		}
		counts[candidate[i]-'a']++
	}

	for i := 0; i < n; i++ {
		if p[i] != Present {
			continue
		}
		j := guess[i] - 'a'
		if candidate[i] == guess[i] || counts[j] == 0 {
			return false
		}
		counts[j]--
	}

	for i := 0; i < n; i++ {
		if p[i] != Absent {
			continue
		}
		// A matching letter here would have scored Exact.
		if candidate[i] == guess[i] || counts[guess[i]-'a'] > 0 {
			return false
		}
	}
	return true
}
