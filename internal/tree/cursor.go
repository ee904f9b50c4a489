// internal/tree/cursor.go
//
// Cursor: walks one game through a decision tree.

package tree

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// Stats counts how a cursor answered.
type Stats struct {
	Hits      int // guesses replayed from the tree
	Misses    int // guesses computed and inserted
	Fallbacks int // guesses computed because the backend failed
}

// Cursor walks one game through a tree, remembering the current node.
//
// A nil *Cursor is valid and always computes directly. When the backend
// fails, the cursor logs once, stops consulting it until the next game and
// keeps answering through compute: the tree is an optimization, never a
// dependency.
type Cursor struct {
	backend  Backend
	current  int64
	disabled bool
	stats    Stats
}

// NewCursor returns a cursor positioned before the root.
func NewCursor(b Backend) *Cursor {
	return &Cursor{backend: b}
}

// Next returns the guess for the next step of the game.
//
//   - p == nil starts a new game: the root guess is looked up.
//   - Otherwise the child of the current node labeled p is looked up.
//
// On a hit the stored guess is returned without calling compute. On a miss
// compute runs, its guess is stored under the current node and the cursor
// moves to the new node. Errors from compute are returned as-is and nothing
// is stored.
func (c *Cursor) Next(ctx context.Context, compute func() (string, error), p feedback.Pattern) (string, error) {
	if c == nil {
		return compute()
	}
	if p == nil {
		c.current = RootParent
		c.disabled = false
	}
	if c.disabled {
		c.stats.Fallbacks++
		return compute()
	}

	parent, label := c.current, p.String()
	node, ok, err := c.backend.Child(ctx, parent, label)
	if err != nil {
		return c.fallback(err, compute)
	}
	if ok {
		c.current = node.ID
		c.stats.Hits++
		log.Debug().Str("tree", c.backend.Name()).Str("label", label).Str("guess", node.Guess).Msg("tree hit")
		return node.Guess, nil
	}

	guess, err := compute()
	if err != nil {
		return "", err
	}
	node, err = c.backend.Insert(ctx, parent, label, guess)
	if err != nil {
		c.disable(err)
		c.stats.Fallbacks++
		return guess, nil
	}
	c.current = node.ID
	c.stats.Misses++
	log.Debug().Str("tree", c.backend.Name()).Str("label", label).Str("guess", node.Guess).Msg("tree insert")
	return node.Guess, nil
}

func (c *Cursor) fallback(err error, compute func() (string, error)) (string, error) {
	c.disable(err)
	c.stats.Fallbacks++
	return compute()
}

func (c *Cursor) disable(err error) {
	c.disabled = true
	log.Warn().Err(err).Str("tree", c.backend.Name()).Msg("decision tree unavailable; computing guesses directly")
}

// Reset positions the cursor before the root for a new game.
func (c *Cursor) Reset() {
	if c == nil {
		return
	}
	c.current = RootParent
	c.disabled = false
}

// Stats returns the counters accumulated since the cursor was created.
func (c *Cursor) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return c.stats
}

// Backend returns the tree the cursor walks.
func (c *Cursor) Backend() Backend {
	if c == nil {
		return nil
	}
	return c.backend
}

// Close flushes and closes the backend.
func (c *Cursor) Close() error {
	if c == nil {
		return nil
	}
	return c.backend.Close()
}
