package dataset

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ciphergen/pkg/core"
)

func TestFormat(t *testing.T) {
	line := Format(core.Record{Ciphertext: "khoorzruog", Key: "3", Offset: 120})
	assert.Equal(t, "khoorzruog key: 3, reading from line 120\n", line)

	hill := Format(core.Record{Ciphertext: "abcd", Key: "3 3 2 5 ", Offset: 7})
	assert.Equal(t, "abcd key: 3 3 2 5 , reading from line 7\n", hill)
}

func TestParse(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		in := core.Record{Ciphertext: "cabed", Key: "2 0 1 4 3", Offset: 44999}
		out, err := Parse(Format(in))
		require.NoError(t, err)
		assert.Equal(t, "cabed", out.Ciphertext)
		assert.Equal(t, "2 0 1 4 3", out.Key)
		assert.Equal(t, 44999, out.Offset)
		assert.Equal(t, 5, out.Length)
	})

	t.Run("Key Containing Comma", func(t *testing.T) {
		out, err := Parse("abc key: a, b, reading from line 3")
		require.NoError(t, err)
		assert.Equal(t, "a, b", out.Key)
	})

	malformed := []string{
		"abc",
		"ABC key: 3, reading from line 1",
		" key: 3, reading from line 1",
		"abc key: 3",
		"abc key: 3, reading from line x",
	}
	for _, line := range malformed {
		_, err := Parse(line)
		assert.ErrorIs(t, err, core.ErrMalformedRecord, line)
	}
}

func TestReader(t *testing.T) {
	data := "abc key: 1, reading from line 1\n\nbcd key: 2, reading from line 2"
	r := NewReader(strings.NewReader(data), core.Shift)

	var got []core.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, rec)
	}
	require.Len(t, got, 2)
	assert.Equal(t, core.Shift, got[0].Cipher)
	assert.Equal(t, "bcd", got[1].Ciphertext)
	assert.Equal(t, 2, got[1].Offset)

	_, err := NewReader(strings.NewReader("garbage\n"), core.Shift).Next()
	assert.ErrorIs(t, err, core.ErrMalformedRecord)
}

func TestFeatures(t *testing.T) {
	f, err := Features("aabzq", 4)
	require.NoError(t, err)
	assert.Equal(t, 2, f[0])
	assert.Equal(t, 1, f[1])
	assert.Equal(t, 1, f[25])
	assert.Equal(t, 0, f['q'-'a'])

	n := f.Normalized()
	assert.InDelta(t, 0.5, n[0], 1e-9)

	_, err = Features("abc", 4)
	assert.ErrorIs(t, err, core.ErrInvalidLength)

	s, err := Extract(core.Record{Cipher: core.Hill, Ciphertext: "zz"}, 2)
	require.NoError(t, err)
	assert.Equal(t, core.Hill, s.Label)
	assert.Equal(t, 2, s.Features[25])
}
