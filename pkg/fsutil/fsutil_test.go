package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Bohemian Rhapsody", "Bohemian Rhapsody"},
		{"slashes", "AC/DC", "ACDC"},
		{"all illegal chars", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"empty", "", ""},
		{"unicode kept", "Café del Mar 雨", "Café del Mar 雨"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	assert.Len(t, Sanitize(long), 200)

	// Truncation counts runes, not bytes.
	longUnicode := strings.Repeat("雨", 300)
	assert.Equal(t, strings.Repeat("雨", 200), Sanitize(longUnicode))
}

func TestTrackFilename(t *testing.T) {
	assert.Equal(t, "Back in Black - ACDC.mp3", TrackFilename("Back in Black", "AC/DC"))
	assert.Equal(t, " - .mp3", TrackFilename("", ""))
}

func TestCoverFilename(t *testing.T) {
	assert.Equal(t, "Back in Black - ACDC_cover.jpg", CoverFilename("Back in Black", "AC/DC"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mp3")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))

	// Directories do not count as files.
	assert.False(t, FileExists(dir))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	require.NoError(t, EnsureDir(dir))
}
