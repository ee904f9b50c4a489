// internal/game/game.go
//
// Referee for simulated games: holds the answer and scores guesses.
// Responsibilities:
//   - Validate guesses (length, alphabetic, in the dictionary).
//   - Score guesses with the two-pass feedback algorithm.
//   - Track state transitions: playing → won/lost.
//
// The solver never sees the answer; benchmarks and the CLI "play" command
// sit a Game between the session and the feedback it receives.
package game

import (
	"errors"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultRows is the classic six-guess limit.
const DefaultRows = 6

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrNotInList    = errors.New("not in word list")
)

// State is the coarse state of a game.
type State string

const (
	Playing State = "playing"
	Won     State = "won"
	Lost    State = "lost"
)

// Game holds the state of a single refereed game.
type Game struct {
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed; 0 means unlimited.
	Guesses  []string // Guesses made so far (lowercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	// AcceptAny skips the dictionary check, for strategies that construct
	// guesses letter by letter.
	AcceptAny bool

	dict *words.Dictionary
}

// New starts a game whose answer must be a dictionary word.
func New(dict *words.Dictionary, answer string, rows int) (*Game, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if !dict.Contains(answer) {
		return nil, ErrNotInList
	}
	return &Game{Answer: answer, Rows: rows, Guesses: []string{}, dict: dict}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// State transitions:
//   - If every mark is Exact → Finished = true, Won = true.
//   - Else if the number of guesses reaches Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (feedback.Pattern, State, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.dict.Length() || !words.IsAlpha(guess) {
		return nil, g.State(), ErrInvalidGuess
	}
	if !g.AcceptAny && !g.dict.Contains(guess) {
		return nil, g.State(), ErrNotInList
	}

	marks := feedback.Score(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if feedback.Solved(marks) {
		g.Finished, g.Won = true, true
	} else if g.Rows > 0 && len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return Won
		}
		return Lost
	}
	return Playing
}
