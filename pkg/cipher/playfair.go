package cipher

import (
	"fmt"
	"strings"

	"github.com/aretw0/ciphergen/pkg/core"
)

// Filler splits repeated-letter digraphs, pads an odd trailing letter and
// stands in for 'q', which the grid omits.
const Filler = 'x'

// PlayfairEngine encrypts digraphs against a 5x5 grid.
//
// A pair of identical letters emits the first letter with Filler and carries
// the second into the next pair, so the ciphertext may be longer than the
// plaintext (never shorter). Line boundaries play no part.
type PlayfairEngine struct{}

func (PlayfairEngine) Cipher() core.Cipher { return core.Playfair }

type cell struct{ row, col int }

// locate indexes the grid by letter; each letter appears exactly once in a
// valid key.
func locate(k core.PlayfairKey) [26]cell {
	var pos [26]cell
	for r, row := range k.Grid {
		for c, ch := range row {
			pos[ch-'a'] = cell{r, c}
		}
	}
	pos['q'-'a'] = pos[Filler-'a']
	return pos
}

// Digraphs splits normalized text into the pairs the engine encrypts,
// inserting Filler between repeated letters and after an odd trailing one.
// 'q' is kept here and only remapped at lookup.
func Digraphs(text string) []string {
	return digraphs(text, true)
}

// digraphs drops an unpaired trailing letter when pad is false.
func digraphs(text string, pad bool) []string {
	pairs := make([]string, 0, len(text)/2+1)
	var first byte
	have := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case !have:
			first, have = c, true
		case first == c:
			pairs = append(pairs, string([]byte{first, Filler}))
			first = c
		default:
			pairs = append(pairs, string([]byte{first, c}))
			have = false
		}
	}
	if have && pad {
		pairs = append(pairs, string([]byte{first, Filler}))
	}
	return pairs
}

func (e PlayfairEngine) Encrypt(plaintext string, key core.Key) (string, error) {
	return e.encrypt(plaintext, key, true)
}

func (e PlayfairEngine) encryptStrict(plaintext string, key core.Key) (string, error) {
	return e.encrypt(plaintext, key, false)
}

func (e PlayfairEngine) encrypt(plaintext string, key core.Key, pad bool) (string, error) {
	k, err := keyAs[core.PlayfairKey](core.Playfair, key)
	if err != nil {
		return "", err
	}
	if err := checkText(plaintext); err != nil {
		return "", err
	}
	pos := locate(k)
	var b strings.Builder
	b.Grow(len(plaintext) + len(plaintext)/4 + 2)
	for _, p := range digraphs(plaintext, pad) {
		x, y := substitute(&k, pos[p[0]-'a'], pos[p[1]-'a'], 1)
		b.WriteByte(x)
		b.WriteByte(y)
	}
	return b.String(), nil
}

// Decrypt inverts the grid rules. The result is the prepared digraph text:
// fillers stay in place and every 'q' reads as 'x'.
func (e PlayfairEngine) Decrypt(ciphertext string, key core.Key) (string, error) {
	k, err := keyAs[core.PlayfairKey](core.Playfair, key)
	if err != nil {
		return "", err
	}
	if err := checkText(ciphertext); err != nil {
		return "", err
	}
	if len(ciphertext)%2 != 0 {
		return "", fmt.Errorf("%w: playfair ciphertext has odd length %d", core.ErrInvalidLength, len(ciphertext))
	}
	if strings.IndexByte(ciphertext, 'q') >= 0 {
		return "", fmt.Errorf("%w: playfair ciphertext contains 'q'", ErrNotNormalized)
	}
	pos := locate(k)
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += 2 {
		out[i], out[i+1] = substitute(&k, pos[ciphertext[i]-'a'], pos[ciphertext[i+1]-'a'], -1)
	}
	return string(out), nil
}

// substitute applies the grid rules; dir is +1 to encrypt and -1 to decrypt.
func substitute(k *core.PlayfairKey, a, b cell, dir int) (byte, byte) {
	switch {
	case a.row == b.row:
		return k.Grid[a.row][wrap5(a.col+dir)], k.Grid[b.row][wrap5(b.col+dir)]
	case a.col == b.col:
		return k.Grid[wrap5(a.row+dir)][a.col], k.Grid[wrap5(b.row+dir)][b.col]
	default:
		return k.Grid[a.row][b.col], k.Grid[b.row][a.col]
	}
}

func wrap5(i int) int {
	return (i%5 + 5) % 5
}
