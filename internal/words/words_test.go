package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("normalizes and keeps order", func(t *testing.T) {
		d, err := Load(strings.NewReader("# header\nCrane\n  slate \n\ncrane\nab1de\ntrace\n"))
		require.NoError(t, err)
		require.Equal(t, []string{"crane", "slate", "trace"}, d.Words())
		require.Equal(t, 5, d.Length())
		require.Equal(t, 1, d.Index("slate"))
		require.Equal(t, -1, d.Index("ab1de"))
		require.True(t, d.Contains("trace"))
	})

	t.Run("mixed lengths", func(t *testing.T) {
		_, err := Load(strings.NewReader("crane\nslates\n"))
		require.ErrorIs(t, err, ErrLength)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Load(strings.NewReader("# nothing\n\n"))
		require.ErrorIs(t, err, ErrEmpty)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\nbcd\n"), 0o644))

	d, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	require.Equal(t, "bcd", d.At(1))

	_, err = Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	d, err := Open("")
	require.NoError(t, err)
	require.Equal(t, 5, d.Length())
	require.Greater(t, d.Len(), 1000)
	require.True(t, d.Contains("crane"))

	again, err := Default()
	require.NoError(t, err)
	require.Same(t, d, again)
}

func TestFingerprint(t *testing.T) {
	a, err := New([]string{"crane", "slate"})
	require.NoError(t, err)
	b, err := New([]string{"crane", "slate", "crane"})
	require.NoError(t, err)
	swapped, err := New([]string{"slate", "crane"})
	require.NoError(t, err)
	other, err := New([]string{"crane", "slats"})
	require.NoError(t, err)

	require.Len(t, a.Fingerprint(), 8)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), swapped.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), other.Fingerprint())
}
