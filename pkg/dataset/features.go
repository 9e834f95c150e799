package dataset

import (
	"fmt"

	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
)

// Frequencies is a 26-letter count vector, index 0 = 'a'.
type Frequencies [alphabet.Size]int

// Sample is one feature vector with its class label.
type Sample struct {
	Label    core.Cipher
	Features Frequencies
}

// Features counts the letters of the first prefix ciphertext characters.
// It fails when the ciphertext is shorter than prefix.
func Features(ciphertext string, prefix int) (Frequencies, error) {
	var f Frequencies
	if prefix <= 0 || len(ciphertext) < prefix {
		return f, fmt.Errorf("%w: ciphertext has %d letters, prefix %d", core.ErrInvalidLength, len(ciphertext), prefix)
	}
	for i := 0; i < prefix; i++ {
		c := ciphertext[i]
		if c < 'a' || c > 'z' {
			return f, fmt.Errorf("%w: non-letter %q at %d", core.ErrMalformedRecord, c, i)
		}
		f[alphabet.Index(c)]++
	}
	return f, nil
}

// Normalized returns the counts as relative frequencies.
func (f Frequencies) Normalized() [alphabet.Size]float64 {
	var out [alphabet.Size]float64
	total := 0
	for _, n := range f {
		total += n
	}
	if total == 0 {
		return out
	}
	for i, n := range f {
		out[i] = float64(n) / float64(total)
	}
	return out
}

// Extract turns a record into a labeled sample over its first prefix letters.
func Extract(r core.Record, prefix int) (Sample, error) {
	f, err := Features(r.Ciphertext, prefix)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Label: r.Cipher, Features: f}, nil
}
