// internal/tree/memory.go
//
// In-memory implementation of Backend.
//
// Characteristics:
//   - Nodes live in a slice indexed by id-1; edges in a (parent, label) map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Optionally snapshotted to a gob file: OpenMemory restores it and Flush
//     rewrites it atomically (temp file + rename). Without a snapshot path the
//     tree is lost when the process exits.

package tree

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type edge struct {
	parent int64
	label  string
}

// Memory is a map-backed tree.
type Memory struct {
	mu       sync.RWMutex
	name     string
	nodes    []Node
	edges    map[edge]int64
	snapshot string
	dirty    bool
	closed   bool
}

// NewMemory returns an empty, unsnapshotted tree.
func NewMemory(name string) *Memory {
	return &Memory{name: name, edges: make(map[edge]int64)}
}

// OpenMemory returns a tree backed by the gob snapshot at path, restoring
// it if the file exists.
func OpenMemory(name, path string) (*Memory, error) {
	m := NewMemory(name)
	m.snapshot = path

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var nodes []Node
	if err := gob.NewDecoder(f).Decode(&nodes); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	for i, n := range nodes {
		if n.ID != int64(i+1) {
			return nil, fmt.Errorf("decode snapshot %s: node %d has id %d", path, i+1, n.ID)
		}
		m.edges[edge{n.Parent, n.Label}] = n.ID
	}
	m.nodes = nodes
	return m, nil
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Child(_ context.Context, parent int64, label string) (Node, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Node{}, false, ErrClosed
	}
	id, ok := m.edges[edge{parent, label}]
	if !ok {
		return Node{}, false, nil
	}
	return m.nodes[id-1], true, nil
}

func (m *Memory) Insert(_ context.Context, parent int64, label, guess string) (Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Node{}, ErrClosed
	}
	if id, ok := m.edges[edge{parent, label}]; ok {
		return m.nodes[id-1], nil
	}
	if parent != RootParent && (parent < 1 || parent > int64(len(m.nodes))) {
		return Node{}, fmt.Errorf("insert %s: unknown parent %d", m.name, parent)
	}
	n := Node{ID: int64(len(m.nodes) + 1), Parent: parent, Label: label, Guess: guess}
	m.nodes = append(m.nodes, n)
	m.edges[edge{parent, label}] = n.ID
	m.dirty = true
	return n, nil
}

func (m *Memory) Len(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes), nil
}

// Flush writes the snapshot if anything changed since the last flush.
func (m *Memory) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == "" || !m.dirty {
		return nil
	}

	dir := filepath.Dir(m.snapshot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(m.snapshot)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(m.nodes); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), m.snapshot); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *Memory) Close() error {
	err := m.Flush()
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return err
}

// ----- Shared memory trees -----

// Memories hands out one Memory per tree name, so sessions bound to the
// same configuration share nodes. Snapshots go to <dir>/<name>.gob; an
// empty dir keeps every tree in memory only.
type Memories struct {
	mu    sync.Mutex
	dir   string
	trees map[string]*Memory
}

func NewMemories(dir string) *Memories {
	return &Memories{dir: dir, trees: make(map[string]*Memory)}
}

// Open is an Opener. Closing the returned tree flushes it; the tree itself
// stays open until Memories.Close.
func (ms *Memories) Open(_ context.Context, name string) (Backend, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if m, ok := ms.trees[name]; ok {
		return borrowed{m}, nil
	}
	var (
		m   *Memory
		err error
	)
	if ms.dir == "" {
		m = NewMemory(name)
	} else if m, err = OpenMemory(name, filepath.Join(ms.dir, name+".gob")); err != nil {
		return nil, err
	}
	ms.trees[name] = m
	return borrowed{m}, nil
}

// Close flushes and closes every tree handed out.
func (ms *Memories) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	var errs []error
	for name, m := range ms.trees {
		if err := m.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	ms.trees = make(map[string]*Memory)
	return errors.Join(errs...)
}

// borrowed is a shared tree whose Close only flushes.
type borrowed struct{ *Memory }

func (b borrowed) Close() error { return b.Flush() }
