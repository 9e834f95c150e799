package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "manifest.yaml")
		require.NoError(t, writeFileAtomic(filename, []byte("run: 1"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "run: 1", string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "manifest.yaml")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0644))
		require.NoError(t, writeFileAtomic(filename, []byte("overwritten"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "a.yaml"), []byte("a"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), e.Name())
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		err := writeFileAtomic(filepath.Join(t.TempDir(), "missing", "a.yaml"), []byte("a"), 0644)
		assert.Error(t, err)
	})
}

func TestManifest(t *testing.T) {
	type manifest struct {
		RunID   string         `yaml:"run_id"`
		Records map[string]int `yaml:"records"`
	}
	root := filepath.Join(t.TempDir(), "data")

	path, err := WriteManifest(root, manifest{RunID: "r1", Records: map[string]int{"shift/100": 10}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ManifestName), path)

	var got manifest
	require.NoError(t, ReadManifest(root, &got))
	assert.Equal(t, "r1", got.RunID)
	assert.Equal(t, 10, got.Records["shift/100"])
}
