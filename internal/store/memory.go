// internal/store/memory.go
//
// In-memory registry of solver sessions for the HTTP adapter.
//
// Characteristics:
//   - Sessions keyed by a random hex ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Entry serializes access to its session, which is not safe for
//     concurrent use on its own.
//   - State is lost when the process restarts; decision trees are not.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for solver sessions.
type Store interface {
	// Add registers s and returns its new ID.
	Add(ctx context.Context, s *solver.Session) (string, error)

	// Get retrieves a session entry by ID.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete closes and forgets a session.
	Delete(ctx context.Context, id string) error
}

// Entry guards one session.
type Entry struct {
	ID string

	mu      sync.Mutex
	session *solver.Session
	touched time.Time
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(s *solver.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()
	return fn(e.session)
}

func (e *Entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

// Memory is the map-based Store implementation.
type Memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*Entry // keyed by Entry.ID
}

var _ Store = (*Memory)(nil)

// NewMemoryStore constructs an empty registry.
func NewMemoryStore() *Memory {
	return &Memory{sessions: make(map[string]*Entry)}
}

func (m *Memory) Add(_ context.Context, s *solver.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := randomID()
	for m.sessions[id] != nil {
		id = randomID()
	}
	m.sessions[id] = &Entry{ID: id, session: s, touched: time.Now()}
	return id, nil
}

func (m *Memory) Get(_ context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return e.Do(func(s *solver.Session) error { return s.Close() })
}

// Len counts registered sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than maxIdle and returns how many
// were removed.
func (m *Memory) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var stale []*Entry
	for id, e := range m.sessions {
		if e.idleSince().Before(cutoff) {
			stale = append(stale, e)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, e := range stale {
		if err := e.Do(func(s *solver.Session) error { return s.Close() }); err != nil {
			log.Warn().Err(err).Str("session", e.ID).Msg("close idle session")
		}
	}
	return len(stale)
}

// Close closes every session.
func (m *Memory) Close() error {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Entry)
	m.mu.Unlock()

	var errs []error
	for _, e := range all {
		if err := e.Do(func(s *solver.Session) error { return s.Close() }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
