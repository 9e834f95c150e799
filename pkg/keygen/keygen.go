// Package keygen builds random keys for every cipher from an injectable,
// seedable random source.
//
// A Generator is not safe for concurrent use: give every worker its own.
package keygen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/modmat"
)

// DefaultVigenereKey is the fixed key of the reproducible single-run mode.
const DefaultVigenereKey = "VIGENERECIPHER"

// Generator produces keys and corpus offsets.
type Generator struct {
	rng  *rand.Rand
	opts options
}

// New returns a generator seeded with seed.
func New(seed uint64, opts ...Option) *Generator {
	return NewWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), opts...)
}

// NewWithSource returns a generator drawing from src.
func NewWithSource(src rand.Source, opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{rng: rand.New(src), opts: o}
}

// Shift returns a uniform shift in [1,25].
func (g *Generator) Shift() core.ShiftKey {
	return core.ShiftKey(1 + g.rng.IntN(25))
}

// Columnar picks a column count from the menu that divides length and returns
// a uniformly random permutation of that many columns.
func (g *Generator) Columnar(length int) (core.ColumnarKey, error) {
	c, err := g.pick(g.opts.columnSizes, length)
	if err != nil {
		return core.ColumnarKey{}, err
	}
	return core.ColumnarKey{Order: g.rng.Perm(c)}, nil
}

// Vigenere returns a key of uniform length in the configured range filled
// with uniform uppercase letters, or the fixed key when one is configured.
func (g *Generator) Vigenere() core.VigenereKey {
	if g.opts.fixedVigenere != "" {
		return core.VigenereKey(g.opts.fixedVigenere)
	}
	n := g.opts.vigenereMin + g.rng.IntN(g.opts.vigenereMax-g.opts.vigenereMin+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + g.rng.IntN(26))
	}
	return core.VigenereKey(b)
}

// FixedVigenere returns the reproducible single-run key.
func FixedVigenere() core.VigenereKey {
	return core.VigenereKey(DefaultVigenereKey)
}

// DefaultColumnarLabels is the 1-indexed column order of the single-run mode.
var DefaultColumnarLabels = []int{3, 1, 2, 5, 4}

// FixedColumnar returns the reproducible single-run columnar key.
func FixedColumnar() core.ColumnarKey {
	k, err := core.ColumnarKeyFromLabels(DefaultColumnarLabels)
	if err != nil {
		panic(err)
	}
	return k
}

// Playfair builds a grid from a random seed phrase of 7 to 35 letters:
// duplicates removed keeping first occurrence, the unused letters appended in
// alphabetical order, then 'q' removed.
func (g *Generator) Playfair() core.PlayfairKey {
	n := 7 + g.rng.IntN(29)
	seed := make([]byte, n)
	for i := range seed {
		seed[i] = byte('a' + g.rng.IntN(26))
	}
	k, err := core.PlayfairKeyFromPhrase(PlayfairPhrase(string(seed)))
	if err != nil {
		// PlayfairPhrase always yields a permutation of core.PlayfairAlphabet.
		panic(err)
	}
	return k
}

// PlayfairPhrase turns a lowercase seed phrase into the 25-letter grid phrase.
func PlayfairPhrase(seed string) string {
	var used [26]bool
	var b strings.Builder
	b.Grow(26)
	add := func(c byte) {
		if c < 'a' || c > 'z' || used[c-'a'] {
			return
		}
		used[c-'a'] = true
		if c != 'q' {
			b.WriteByte(c)
		}
	}
	for i := 0; i < len(seed); i++ {
		add(seed[i])
	}
	for c := byte('a'); c <= 'z'; c++ {
		add(c)
	}
	return b.String()
}

// Hill picks a matrix size from the menu that divides length and
// rejection-samples uniform matrices until one is invertible mod 26.
// It gives up with core.ErrKeyGenerationExhausted after the configured number
// of attempts.
func (g *Generator) Hill(length int) (core.HillKey, error) {
	size, err := g.pick(g.opts.hillSizes, length)
	if err != nil {
		return core.HillKey{}, err
	}
	for attempt := 0; attempt < g.opts.maxHillAttempts; attempt++ {
		m := make([][]int, size)
		for i := range m {
			m[i] = make([]int, size)
			for j := range m[i] {
				m[i][j] = g.rng.IntN(26)
			}
		}
		if modmat.Invertible26(m) {
			return core.HillKey{Size: size, M: m}, nil
		}
	}
	return core.HillKey{}, fmt.Errorf("%w: no invertible %dx%d matrix in %d attempts",
		core.ErrKeyGenerationExhausted, size, size, g.opts.maxHillAttempts)
}

// For generates a key appropriate for c and a text of the given length.
func (g *Generator) For(c core.Cipher, length int) (core.Key, error) {
	switch c {
	case core.Shift:
		return g.Shift(), nil
	case core.Columnar:
		return g.Columnar(length)
	case core.Vigenere:
		return g.Vigenere(), nil
	case core.Playfair:
		return g.Playfair(), nil
	case core.Hill:
		return g.Hill(length)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownCipher, string(c))
	}
}

// Offset returns a uniform corpus line offset in [1,max], or 0 when max < 1.
func (g *Generator) Offset(max int) int {
	if max < 1 {
		return 0
	}
	return 1 + g.rng.IntN(max)
}

// Sizes returns the entries of menu that divide length.
func Sizes(menu []int, length int) []int {
	var out []int
	for _, s := range menu {
		if s > 0 && length > 0 && length%s == 0 {
			out = append(out, s)
		}
	}
	return out
}

func (g *Generator) pick(menu []int, length int) (int, error) {
	sizes := Sizes(menu, length)
	if len(sizes) == 0 {
		return 0, fmt.Errorf("%w: %d is not a multiple of any of %v", core.ErrInvalidLength, length, menu)
	}
	return sizes[g.rng.IntN(len(sizes))], nil
}

// Supports reports whether keys for c can be generated at this length.
func (g *Generator) Supports(c core.Cipher, length int) bool {
	switch c {
	case core.Columnar:
		return len(Sizes(g.opts.columnSizes, length)) > 0
	case core.Hill:
		return len(Sizes(g.opts.hillSizes, length)) > 0
	default:
		return length > 0 && slices.Contains(core.AllCiphers(), c)
	}
}
