package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates storage with valid path", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := New(tmpDir)

		require.NoError(t, err)
		assert.Equal(t, tmpDir, storage.Root())
		_, err = os.Stat(tmpDir)
		assert.NoError(t, err)
	})

	t.Run("creates nested root", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "a", "b")

		storage, err := New(nested)

		require.NoError(t, err)
		_, err = os.Stat(storage.Root())
		assert.NoError(t, err)
	})

	t.Run("cleans dirty root path", func(t *testing.T) {
		tmpDir := t.TempDir()
		dirty := filepath.Join(tmpDir, "media", "..", "media")

		storage, err := New(dirty)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "media"), storage.Root())
	})
}

func TestNormalize(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain filename", input: "sunset.jpg", expected: "sunset.jpg"},
		{name: "app subdirectory", input: "travel/sunset.jpg", expected: filepath.Join("travel", "sunset.jpg")},
		{name: "redundant segments collapse", input: "travel/./a/../sunset.jpg", expected: filepath.Join("travel", "sunset.jpg")},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "parent escape", input: "../../etc/passwd", wantErr: true},
		{name: "nested parent escape", input: "travel/../../etc/passwd", wantErr: true},
		{name: "absolute path", input: "/etc/passwd", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rel, err := storage.Normalize(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsafeFilename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rel)
		})
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := New(tmpDir)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "travel"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "travel", "sunset.jpg"), []byte("img"), 0644))

	assert.True(t, storage.Exists(filepath.Join("travel", "sunset.jpg")))
	assert.False(t, storage.Exists(filepath.Join("travel", "missing.jpg")))
	// A directory is not a servable file.
	assert.False(t, storage.Exists("travel"))
}

func TestAbs(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := New(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "travel", "sunset.jpg"), storage.Abs(filepath.Join("travel", "sunset.jpg")))
}
