package cipher

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ciphergen/pkg/core"
)

var plainGrid = mustGrid(core.PlayfairAlphabet)

func mustGrid(phrase string) core.PlayfairKey {
	k, err := core.PlayfairKeyFromPhrase(phrase)
	if err != nil {
		panic(err)
	}
	return k
}

func randomText(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + r.IntN(26))
	}
	return string(b)
}

func TestFor(t *testing.T) {
	for _, c := range core.AllCiphers() {
		e, err := For(c)
		require.NoError(t, err)
		assert.Equal(t, c, e.Cipher())
	}
	_, err := For("enigma")
	assert.ErrorIs(t, err, core.ErrUnknownCipher)
}

func TestShift(t *testing.T) {
	e := ShiftEngine{}

	ct, err := e.Encrypt("helloworld", core.ShiftKey(3))
	require.NoError(t, err)
	assert.Equal(t, "khoorzruog", ct)

	ct, err = e.Encrypt("xyz", core.ShiftKey(3))
	require.NoError(t, err)
	assert.Equal(t, "abc", ct)

	t.Run("Round Trip Every Key And Letter", func(t *testing.T) {
		for k := 1; k <= 25; k++ {
			for c := byte('a'); c <= 'z'; c++ {
				ct, err := e.Encrypt(string(c), core.ShiftKey(k))
				require.NoError(t, err)
				pt, err := e.Decrypt(ct, core.ShiftKey(k))
				require.NoError(t, err)
				assert.Equal(t, string(c), pt)
			}
		}
	})

	t.Run("Invalid Keys", func(t *testing.T) {
		for _, k := range []core.ShiftKey{0, 26, -1} {
			_, err := e.Encrypt("abc", k)
			assert.ErrorIs(t, err, core.ErrInvalidKey)
		}
		_, err := e.Encrypt("abc", core.VigenereKey("KEY"))
		assert.ErrorIs(t, err, core.ErrInvalidKey)
		_, err = e.Encrypt("abc", nil)
		assert.ErrorIs(t, err, core.ErrInvalidKey)
	})

	t.Run("Rejects Unnormalized Text", func(t *testing.T) {
		_, err := e.Encrypt("Hello", core.ShiftKey(1))
		assert.ErrorIs(t, err, ErrNotNormalized)
	})
}

func TestColumnar(t *testing.T) {
	e := ColumnarEngine{}

	t.Run("Single Row", func(t *testing.T) {
		ct, err := e.Encrypt("abcde", core.ColumnarKey{Order: []int{2, 0, 1, 4, 3}})
		require.NoError(t, err)
		assert.Equal(t, "cabed", ct)
	})

	t.Run("One Indexed Labels", func(t *testing.T) {
		k, err := core.ColumnarKeyFromLabels([]int{3, 1, 2, 5, 4})
		require.NoError(t, err)
		ct, err := e.Encrypt("abcdefghij", k)
		require.NoError(t, err)
		assert.Equal(t, "cabedhfgji", ct)
	})

	t.Run("Drops Partial Row", func(t *testing.T) {
		ct, err := e.Encrypt("abcdefg", core.ColumnarKey{Order: []int{2, 0, 1, 4, 3}})
		require.NoError(t, err)
		assert.Equal(t, "cabed", ct)
	})

	t.Run("Round Trip", func(t *testing.T) {
		r := rand.New(rand.NewPCG(3, 4))
		for _, c := range []int{5, 10, 15} {
			order := r.Perm(c)
			key := core.ColumnarKey{Order: order}
			pt := randomText(r, c*20)
			ct, err := e.Encrypt(pt, key)
			require.NoError(t, err)
			back, err := e.Decrypt(ct, key)
			require.NoError(t, err)
			assert.Equal(t, pt, back)

			// decrypting is encrypting with the inverse permutation
			viaInverse, err := e.Encrypt(ct, key.Inverse())
			require.NoError(t, err)
			assert.Equal(t, pt, viaInverse)
		}
	})

	t.Run("Invalid Permutation", func(t *testing.T) {
		_, err := e.Encrypt("abcde", core.ColumnarKey{Order: []int{0, 0, 1, 2, 3}})
		assert.ErrorIs(t, err, core.ErrInvalidKey)
		_, err = e.Encrypt("abcde", core.ColumnarKey{})
		assert.ErrorIs(t, err, core.ErrInvalidKey)
	})
}

func TestVigenere(t *testing.T) {
	e := VigenereEngine{}

	ct, err := e.Encrypt("attackatdawn", core.VigenereKey("LEMON"))
	require.NoError(t, err)
	assert.Equal(t, "lxfopvefrnhr", ct)

	t.Run("Square Rows Are Caesar Shifts", func(t *testing.T) {
		sq := Square()
		assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", string(sq[0][:]))
		assert.Equal(t, "bcdefghijklmnopqrstuvwxyza", string(sq[1][:]))
		assert.Equal(t, "zabcdefghijklmnopqrstuvwxy", string(sq[25][:]))
	})

	t.Run("Round Trip Any Key Length", func(t *testing.T) {
		r := rand.New(rand.NewPCG(5, 6))
		for n := 1; n <= 25; n++ {
			key := core.VigenereKey(strings.ToUpper(randomText(r, n)))
			pt := randomText(r, 300)
			ct, err := e.Encrypt(pt, key)
			require.NoError(t, err)
			back, err := e.Decrypt(ct, key)
			require.NoError(t, err)
			assert.Equal(t, pt, back)
		}
	})

	t.Run("Empty Key", func(t *testing.T) {
		_, err := e.Encrypt("abc", core.VigenereKey(""))
		assert.ErrorIs(t, err, core.ErrInvalidKey)
	})
}

func TestPlayfair(t *testing.T) {
	e := PlayfairEngine{}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"repeated letters split", "hello", "jcmwmk"},
		{"same row", "ab", "bc"},
		{"same row wraps", "ea", "ab"},
		{"same column", "af", "fk"},
		{"same column wraps", "ez", "je"},
		{"q read as x", "qu", "zs"},
		{"odd trailing letter padded", "abc", "bchc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := e.Encrypt(tt.input, plainGrid)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ct)
		})
	}

	t.Run("Digraphs", func(t *testing.T) {
		assert.Equal(t, []string{"he", "lx", "lo"}, Digraphs("hello"))
		assert.Equal(t, []string{"ax", "ax", "ax"}, Digraphs("aaa"))
		assert.Empty(t, Digraphs(""))
	})

	t.Run("Round Trip Recovers Prepared Text", func(t *testing.T) {
		r := rand.New(rand.NewPCG(8, 9))
		for i := 0; i < 20; i++ {
			pt := randomText(r, 200)
			ct, err := e.Encrypt(pt, plainGrid)
			require.NoError(t, err)
			assert.NotContains(t, ct, "q")
			assert.GreaterOrEqual(t, len(ct), len(pt))

			back, err := e.Decrypt(ct, plainGrid)
			require.NoError(t, err)
			want := strings.ReplaceAll(strings.Join(Digraphs(pt), ""), "q", "x")
			assert.Equal(t, want, back)
		}
	})

	t.Run("Malformed Grid", func(t *testing.T) {
		bad := plainGrid
		bad.Grid[0][0] = 'b'
		_, err := e.Encrypt("ab", bad)
		assert.ErrorIs(t, err, core.ErrInvalidKey)

		bad = plainGrid
		bad.Grid[4][4] = 'q'
		_, err = e.Encrypt("ab", bad)
		assert.ErrorIs(t, err, core.ErrInvalidKey)
	})

	t.Run("Odd Ciphertext", func(t *testing.T) {
		_, err := e.Decrypt("abc", plainGrid)
		assert.ErrorIs(t, err, core.ErrInvalidLength)
	})
}

func TestHill(t *testing.T) {
	e := HillEngine{}
	key := core.HillKey{Size: 3, M: [][]int{{6, 24, 1}, {13, 16, 10}, {20, 17, 15}}}

	ct, err := e.Encrypt("act", key)
	require.NoError(t, err)
	assert.Equal(t, "poh", ct)

	pt, err := e.Decrypt(ct, key)
	require.NoError(t, err)
	assert.Equal(t, "act", pt)

	t.Run("Partial Block", func(t *testing.T) {
		_, err := e.Encrypt("actx", key)
		assert.ErrorIs(t, err, core.ErrInsufficientPlaintext)
	})

	t.Run("Singular Key", func(t *testing.T) {
		_, err := e.Encrypt("ab", core.HillKey{Size: 2, M: [][]int{{2, 4}, {1, 2}}})
		assert.ErrorIs(t, err, core.ErrInvalidKey)
		_, err = e.Encrypt("ab", core.HillKey{Size: 2, M: [][]int{{13, 0}, {0, 1}}})
		assert.ErrorIs(t, err, core.ErrInvalidKey)
	})

	t.Run("Entries Out Of Range", func(t *testing.T) {
		_, err := e.Encrypt("ab", core.HillKey{Size: 2, M: [][]int{{27, 0}, {0, 1}}})
		assert.ErrorIs(t, err, core.ErrInvalidKey)
	})
}

func TestEncryptN(t *testing.T) {
	t.Run("Truncates Playfair", func(t *testing.T) {
		ct, err := EncryptN(PlayfairEngine{}, "hello", plainGrid, 5)
		require.NoError(t, err)
		assert.Equal(t, "jcmwm", ct)
	})

	t.Run("Playfair Odd Length Reads One More Letter", func(t *testing.T) {
		_, err := EncryptN(PlayfairEngine{}, "abcdefg", plainGrid, 7)
		assert.ErrorIs(t, err, core.ErrInsufficientPlaintext)

		full, err := PlayfairEngine{}.Encrypt("abcdefgk", plainGrid)
		require.NoError(t, err)
		ct, err := EncryptN(PlayfairEngine{}, "abcdefgk", plainGrid, 7)
		require.NoError(t, err)
		assert.Equal(t, full[:7], ct)
	})

	t.Run("Playfair Sample Length Always Suffices", func(t *testing.T) {
		r := rand.New(rand.NewPCG(10, 11))
		for n := 1; n < 60; n++ {
			text := randomText(r, SampleLength(core.Playfair, n))
			ct, err := EncryptN(PlayfairEngine{}, text, plainGrid, n)
			require.NoError(t, err, "n=%d", n)

			padded, err := PlayfairEngine{}.Encrypt(text, plainGrid)
			require.NoError(t, err)
			assert.Equal(t, padded[:n], ct, "n=%d", n)
		}
	})

	t.Run("Sample Length", func(t *testing.T) {
		assert.Equal(t, 102, SampleLength(core.Playfair, 101))
		assert.Equal(t, 100, SampleLength(core.Playfair, 100))
		assert.Equal(t, 101, SampleLength(core.Hill, 101))
	})

	t.Run("Columnar Short Output", func(t *testing.T) {
		_, err := EncryptN(ColumnarEngine{}, "abcdefg", core.ColumnarKey{Order: []int{0, 1, 2, 3, 4}}, 7)
		assert.ErrorIs(t, err, core.ErrInsufficientPlaintext)
	})
}
