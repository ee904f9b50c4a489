// internal/words/words.go
//
// Provides dictionary management for the guessing engine.
//
// Responsibilities:
//   - Load a word list from a file or fall back to the embedded default.
//   - Normalize entries (trim, lowercase) and keep insertion order.
//   - Enforce the dictionary invariants: unique words, one shared length.
//
// A Dictionary is read-only once built. Sessions hold it by pointer and
// address words by index, so it is never copied wholesale.

package words

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/assets"
)

var (
	// ErrEmpty is returned when no usable word was loaded.
	ErrEmpty = errors.New("words: dictionary is empty")
	// ErrLength is returned when entries disagree on word length.
	ErrLength = errors.New("words: mixed word lengths")
)

// Dictionary is an ordered list of unique words of one length.
type Dictionary struct {
	words  []string
	index  map[string]int
	length int
	fp     string
}

// New builds a dictionary from already normalized words.
// Duplicates are dropped (first occurrence wins).
func New(list []string) (*Dictionary, error) {
	d := &Dictionary{index: make(map[string]int, len(list))}
	for _, w := range list {
		if _, dup := d.index[w]; dup {
			continue
		}
		if d.length == 0 {
			d.length = len(w)
		} else if len(w) != d.length {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrLength, w, len(w), d.length)
		}
		d.index[w] = len(d.words)
		d.words = append(d.words, w)
	}
	if len(d.words) == 0 {
		return nil, ErrEmpty
	}
	d.fp = fingerprint(d.words)
	return d, nil
}

// fingerprint hashes the ordered word list. Order matters: it decides which
// candidate comes first.
func fingerprint(list []string) string {
	h := sha256.New()
	for _, w := range list {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:4])
}

// Load reads one word per line. Blank lines and '#' comments are skipped;
// lines that are not purely alphabetic are dropped with a warning.
func Load(r io.Reader) (*Dictionary, error) {
	var out []string
	skipped := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isAlpha(w) {
			skipped++
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("dropped non-alphabetic dictionary lines")
	}
	return New(out)
}

// LoadFile loads a dictionary from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// Default returns the embedded dictionary, loaded once.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		f, err := assets.Words()
		if err != nil {
			defaultErr = err
			return
		}
		defer f.Close()
		defaultDict, defaultErr = Load(f)
	})
	return defaultDict, defaultErr
}

// Open loads path, or the embedded default when path is empty.
func Open(path string) (*Dictionary, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Len is the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Length is the shared word length.
func (d *Dictionary) Length() int { return d.length }

// At returns the i-th word in load order.
func (d *Dictionary) At(i int) string { return d.words[i] }

// Index returns the position of w, or -1.
func (d *Dictionary) Index(w string) int {
	if i, ok := d.index[w]; ok {
		return i
	}
	return -1
}

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.index[w]
	return ok
}

// Words returns the words in load order. The slice is shared; callers must
// not modify it.
func (d *Dictionary) Words() []string { return d.words }

// Fingerprint is a short hash of the ordered word list, e.g. "3f9a01c2".
// Equal lists give equal fingerprints.
func (d *Dictionary) Fingerprint() string { return d.fp }

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool { return isAlpha(s) }

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
