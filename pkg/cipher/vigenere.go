package cipher

import (
	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
)

// Table is the Vigenère square: row r is the alphabet rotated left by r.
type Table [alphabet.Size][alphabet.Size]byte

var (
	square  = newSquare()
	inverse = square.Inverse()
)

func newSquare() Table {
	var t Table
	for row := 0; row < alphabet.Size; row++ {
		for col := 0; col < alphabet.Size; col++ {
			t[row][col] = alphabet.FromIndex(row + col)
		}
	}
	return t
}

// Square returns a copy of the generated Vigenère square.
func Square() Table { return square }

// Inverse returns the decryption table: Inverse()[row][c] is the plaintext
// letter that row maps to c.
func (t Table) Inverse() Table {
	var inv Table
	for row := 0; row < alphabet.Size; row++ {
		for col := 0; col < alphabet.Size; col++ {
			inv[row][alphabet.Index(t[row][col])] = alphabet.FromIndex(col)
		}
	}
	return inv
}

// VigenereEngine looks every letter up in the square, with the key letter
// selecting the row. The key index advances once per letter and wraps.
type VigenereEngine struct{}

func (VigenereEngine) Cipher() core.Cipher { return core.Vigenere }

func (e VigenereEngine) Encrypt(plaintext string, key core.Key) (string, error) {
	return e.apply(plaintext, key, &square)
}

func (e VigenereEngine) Decrypt(ciphertext string, key core.Key) (string, error) {
	return e.apply(ciphertext, key, &inverse)
}

func (e VigenereEngine) apply(s string, key core.Key, t *Table) (string, error) {
	k, err := keyAs[core.VigenereKey](core.Vigenere, key)
	if err != nil {
		return "", err
	}
	if err := checkText(s); err != nil {
		return "", err
	}
	out := make([]byte, len(s))
	ki := 0
	for i := 0; i < len(s); i++ {
		row := int(k[ki] - 'A')
		out[i] = t[row][alphabet.Index(s[i])]
		ki++
		if ki == len(k) {
			ki = 0
		}
	}
	return string(out), nil
}
