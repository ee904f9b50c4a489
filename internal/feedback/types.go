// internal/feedback/types.go
//
// Core type definitions for guess feedback.
// Defines:
//   - Mark: per-letter result of a guess (exact/present/absent).
//   - Pattern: the ordered marks for a whole guess.
//   - The text label codec used by the decision tree and by drivers.

package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values double as the digits of a pattern's text label:
//   - 2 "exact":   letter is correct and in the correct position.
//   - 1 "present": letter exists in the target but in a different position.
//   - 0 "absent":  letter has no unclaimed occurrence in the target.
type Mark uint8

const (
	Absent Mark = iota
	Present
	Exact
)

func (m Mark) String() string {
	switch m {
	case Exact:
		return "exact"
	case Present:
		return "present"
	case Absent:
		return "absent"
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// Pattern is the feedback for a whole guess, one Mark per position.
type Pattern []Mark

// ErrMalformed is wrapped by every ValidationError.
var ErrMalformed = errors.New("malformed feedback")

// ValidationError reports driver input rejected before it reaches filtering.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrMalformed, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrMalformed }

// String encodes the pattern as its text label, one digit per position ("20110").
// The empty pattern encodes as "", which is the label of the tree root.
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, m := range p {
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}

// Index returns the pattern as a base-3 number, first position most significant.
// Distinct patterns of the same length have distinct indexes.
func (p Pattern) Index() int {
	idx := 0
	for _, m := range p {
		idx = idx*3 + int(m)
	}
	return idx
}

// Equal reports whether both patterns carry the same marks.
func (p Pattern) Equal(o Pattern) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Solved reports whether every mark is Exact.
func Solved(p Pattern) bool {
	if len(p) == 0 {
		return false
	}
	for _, m := range p {
		if m != Exact {
			return false
		}
	}
	return true
}

// AllExact returns the winning pattern for words of length n.
func AllExact(n int) Pattern {
	p := make(Pattern, n)
	for i := range p {
		p[i] = Exact
	}
	return p
}

// Parse decodes a driver-supplied pattern of exactly n positions.
//
// Accepted characters (case-insensitive):
//   - '2', 'g'            → Exact
//   - '1', 'y'            → Present
//   - '0', 'b', '.', '-'  → Absent
//
// Spaces and commas between positions are ignored so "2 0 1 1 0" parses too.
func Parse(s string, n int) (Pattern, error) {
	p := make(Pattern, 0, n)
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', ',':
			continue
		case '2', 'g':
			p = append(p, Exact)
		case '1', 'y':
			p = append(p, Present)
		case '0', 'b', '.', '-':
			p = append(p, Absent)
		default:
			return nil, &ValidationError{Field: "feedback", Reason: fmt.Sprintf("invalid code %q", r)}
		}
	}
	if len(p) != n {
		return nil, &ValidationError{Field: "feedback", Reason: fmt.Sprintf("got %d codes, want %d", len(p), n)}
	}
	return p, nil
}

// Validate checks a pattern built in memory by a driver.
func (p Pattern) Validate(n int) error {
	if len(p) != n {
		return &ValidationError{Field: "feedback", Reason: fmt.Sprintf("got %d codes, want %d", len(p), n)}
	}
	for i, m := range p {
		if m > Exact {
			return &ValidationError{Field: "feedback", Reason: fmt.Sprintf("invalid code %d at position %d", m, i)}
		}
	}
	return nil
}
