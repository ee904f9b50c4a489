// internal/tree/tree.go
//
// Persistent memoization of computed guesses ("decision tree").
//
// Every node records the guess computed after a specific path of feedback
// labels from the start of a game. Lookups are keyed by (parent id, label)
// and each parent has at most one child per label, so a fixed strategy
// configuration always replays the same guess for the same history.
//
// Backends:
//   - SQLite (sqlite.go): one table per strategy configuration.
//   - Memory (memory.go): map-backed, optionally snapshotted to a gob file.

package tree

import (
	"context"
	"errors"
	"strings"
)

// RootParent is the parent id of the root node. Stored ids start at 1.
const RootParent int64 = 0

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("tree: backend closed")

// Node is one memoized decision.
type Node struct {
	ID     int64
	Parent int64  // RootParent for the root
	Label  string // feedback label leading here; "" for the root
	Guess  string
}

// Backend stores nodes. Implementations must keep (parent, label) unique:
// inserting an existing key returns the stored node unchanged.
type Backend interface {
	// Name identifies the strategy configuration the tree belongs to.
	Name() string
	// Child looks up the node reached from parent by label.
	Child(ctx context.Context, parent int64, label string) (Node, bool, error)
	// Insert adds a node under parent, or returns the existing one.
	Insert(ctx context.Context, parent int64, label, guess string) (Node, error)
	// Len counts stored nodes.
	Len(ctx context.Context) (int, error)
	// Flush makes every inserted node durable.
	Flush() error
	// Close flushes and releases the backend.
	Close() error
}

// TableName derives the per-configuration tree name, e.g. "entropy_all".
func TableName(strategy, scope string) string {
	return strings.ToLower(strategy) + "_" + strings.ToLower(scope)
}

// Opener returns the backend for a named tree. Sessions call it whenever
// they are bound to a strategy configuration.
type Opener func(ctx context.Context, name string) (Backend, error)
