package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ciphergen/pkg/core"
)

func TestPath(t *testing.T) {
	p := Path("data", core.Hill, 100)
	assert.Equal(t, filepath.Join("data", "Hill Cipher", "text_length_100.txt"), p)

	e, err := ParsePath(p)
	require.NoError(t, err)
	assert.Equal(t, core.Hill, e.Cipher)
	assert.Equal(t, 100, e.Length)

	e, err = ParsePath(VariantPath("data", core.Vigenere, FixedKeyVariant, 300))
	require.NoError(t, err)
	assert.Equal(t, core.Vigenere, e.Cipher)
	assert.Equal(t, FixedKeyVariant, e.Variant)
	assert.Equal(t, 300, e.Length)

	_, err = ParsePath(filepath.Join("data", "Hill Cipher", "notes.txt"))
	assert.Error(t, err)
	_, err = ParsePath(filepath.Join("data", "Enigma", "text_length_100.txt"))
	assert.ErrorIs(t, err, core.ErrUnknownCipher)
	_, err = ParsePath(filepath.Join("data", "Hill Cipher", "text_length_x.txt"))
	assert.ErrorIs(t, err, core.ErrInvalidLength)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		Path(root, core.Shift, 100),
		Path(root, core.Shift, 200),
		Path(root, core.Playfair, 100),
		filepath.Join(root, "Playfair Cipher", "readme.txt"),
		filepath.Join(root, "Unknown", "text_length_5.txt"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, nil, 0644))
	}

	all, err := Discover(root, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, e := range all {
		assert.True(t, strings.HasPrefix(e.Path, root))
	}

	shift, err := Discover(root, "Shift Cipher/*.txt")
	require.NoError(t, err)
	require.Len(t, shift, 2)
	assert.Equal(t, 100, shift[0].Length)
	assert.Equal(t, 200, shift[1].Length)

	_, err = Discover(root, "[")
	assert.Error(t, err)
}
