package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/ciphergen/pkg/modmat"
)

// Key is the variant key type: one concrete implementation per cipher.
type Key interface {
	// Cipher returns the scheme this key belongs to.
	Cipher() Cipher
	// Describe renders the key the way dataset records label it.
	Describe() string
	// Validate checks the key against its cipher's key domain.
	Validate() error
}

// ShiftKey is the rotation amount of a shift cipher, in [1,25].
type ShiftKey int

func (k ShiftKey) Cipher() Cipher   { return Shift }
func (k ShiftKey) Describe() string { return strconv.Itoa(int(k)) }

func (k ShiftKey) Validate() error {
	if k < 1 || k > 25 {
		return fmt.Errorf("%w: shift %d outside [1,25]", ErrInvalidKey, int(k))
	}
	return nil
}

// ColumnarKey is a 0-indexed column permutation: Order[i] is the source column
// read in position i.
type ColumnarKey struct {
	Order []int
}

// ColumnarKeyFromLabels builds a key from 1-indexed column labels, e.g. (3,1,2,5,4).
func ColumnarKeyFromLabels(labels []int) (ColumnarKey, error) {
	order := make([]int, len(labels))
	for i, l := range labels {
		order[i] = l - 1
	}
	k := ColumnarKey{Order: order}
	if err := k.Validate(); err != nil {
		return ColumnarKey{}, err
	}
	return k, nil
}

func (k ColumnarKey) Cipher() Cipher { return Columnar }

// Columns returns the column count C.
func (k ColumnarKey) Columns() int { return len(k.Order) }

func (k ColumnarKey) Describe() string { return joinInts(k.Order) }

func (k ColumnarKey) Validate() error {
	if len(k.Order) == 0 {
		return fmt.Errorf("%w: empty column permutation", ErrInvalidKey)
	}
	seen := make([]bool, len(k.Order))
	for _, c := range k.Order {
		if c < 0 || c >= len(k.Order) || seen[c] {
			return fmt.Errorf("%w: %v is not a permutation of [0,%d)", ErrInvalidKey, k.Order, len(k.Order))
		}
		seen[c] = true
	}
	return nil
}

// Inverse returns the permutation that undoes k.
func (k ColumnarKey) Inverse() ColumnarKey {
	inv := make([]int, len(k.Order))
	for i, c := range k.Order {
		inv[c] = i
	}
	return ColumnarKey{Order: inv}
}

// VigenereKey is a non-empty sequence of uppercase letters.
type VigenereKey string

// NewVigenereKey uppercases s and validates the result.
func NewVigenereKey(s string) (VigenereKey, error) {
	k := VigenereKey(strings.ToUpper(strings.TrimSpace(s)))
	return k, k.Validate()
}

func (k VigenereKey) Cipher() Cipher   { return Vigenere }
func (k VigenereKey) Describe() string { return string(k) }

func (k VigenereKey) Validate() error {
	if len(k) == 0 {
		return fmt.Errorf("%w: empty vigenere key", ErrInvalidKey)
	}
	for i := 0; i < len(k); i++ {
		if k[i] < 'A' || k[i] > 'Z' {
			return fmt.Errorf("%w: vigenere key %q has non-letter at %d", ErrInvalidKey, string(k), i)
		}
	}
	return nil
}

// PlayfairAlphabet is the 25-letter alphabet of a Playfair grid ('q' removed).
const PlayfairAlphabet = "abcdefghijklmnoprstuvwxyz"

// PlayfairKey is a 5x5 grid holding every letter of PlayfairAlphabet once.
type PlayfairKey struct {
	Grid [5][5]byte
}

// PlayfairKeyFromPhrase packs a 25-letter phrase row-major into a grid.
func PlayfairKeyFromPhrase(phrase string) (PlayfairKey, error) {
	var k PlayfairKey
	if len(phrase) != 25 {
		return k, fmt.Errorf("%w: playfair phrase has %d letters, want 25", ErrInvalidKey, len(phrase))
	}
	for i := 0; i < 25; i++ {
		k.Grid[i/5][i%5] = phrase[i]
	}
	return k, k.Validate()
}

func (k PlayfairKey) Cipher() Cipher { return Playfair }

// Phrase returns the grid letters read row-major.
func (k PlayfairKey) Phrase() string {
	var b strings.Builder
	b.Grow(25)
	for _, row := range k.Grid {
		b.Write(row[:])
	}
	return b.String()
}

func (k PlayfairKey) Describe() string { return k.Phrase() }

func (k PlayfairKey) Validate() error {
	var seen [26]bool
	for r, row := range k.Grid {
		for c, ch := range row {
			if ch < 'a' || ch > 'z' || ch == 'q' {
				return fmt.Errorf("%w: playfair grid has %q at (%d,%d)", ErrInvalidKey, ch, r, c)
			}
			if seen[ch-'a'] {
				return fmt.Errorf("%w: playfair grid repeats %q", ErrInvalidKey, ch)
			}
			seen[ch-'a'] = true
		}
	}
	return nil
}

// HillKey is a Size x Size matrix over Z/26 that must be invertible.
type HillKey struct {
	Size int
	M    [][]int
}

func (k HillKey) Cipher() Cipher { return Hill }

// Describe lists the entries row-major, each followed by a space.
func (k HillKey) Describe() string {
	var b strings.Builder
	for _, row := range k.M {
		for _, v := range row {
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (k HillKey) Validate() error {
	if k.Size < 1 || len(k.M) != k.Size {
		return fmt.Errorf("%w: hill matrix has %d rows, want %d", ErrInvalidKey, len(k.M), k.Size)
	}
	for i, row := range k.M {
		if len(row) != k.Size {
			return fmt.Errorf("%w: hill matrix row %d has %d entries, want %d", ErrInvalidKey, i, len(row), k.Size)
		}
		for _, v := range row {
			if v < 0 || v > 25 {
				return fmt.Errorf("%w: hill entry %d outside [0,25]", ErrInvalidKey, v)
			}
		}
	}
	if !modmat.Invertible26(k.M) {
		return fmt.Errorf("%w: hill matrix determinant %d is not a unit mod 26", ErrInvalidKey, modmat.Det26(k.M))
	}
	return nil
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
