// Package core holds the domain types shared by every ciphergen component:
// cipher identities, keys, dataset records and the error taxonomy.
package core

import (
	"fmt"
	"strings"
)

// Cipher identifies one of the classical encryption schemes.
type Cipher string

const (
	Shift    Cipher = "shift"
	Columnar Cipher = "columnar"
	Vigenere Cipher = "vigenere"
	Playfair Cipher = "playfair"
	Hill     Cipher = "hill"
)

// AllCiphers returns every supported cipher in a stable order.
func AllCiphers() []Cipher {
	return []Cipher{Shift, Columnar, Vigenere, Playfair, Hill}
}

// ParseCipher resolves a cipher from its identifier or display name.
func ParseCipher(s string) (Cipher, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCiphers() {
		if norm == string(c) || norm == strings.ToLower(c.DisplayName()) {
			return c, nil
		}
	}
	if norm == "transposition" || norm == "columnar-transposition" {
		return Columnar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCipher, s)
}

// DisplayName is the human readable name, also used as the dataset directory name.
func (c Cipher) DisplayName() string {
	switch c {
	case Shift:
		return "Shift Cipher"
	case Columnar:
		return "Columnar Transposition Cipher"
	case Vigenere:
		return "Vigenere Cipher"
	case Playfair:
		return "Playfair Cipher"
	case Hill:
		return "Hill Cipher"
	default:
		return string(c)
	}
}

func (c Cipher) String() string { return string(c) }

// Valid reports whether c is one of the supported ciphers.
func (c Cipher) Valid() bool {
	for _, known := range AllCiphers() {
		if c == known {
			return true
		}
	}
	return false
}

// Record is one labeled ciphertext line of a dataset file.
type Record struct {
	Cipher     Cipher
	Length     int    // requested text length
	Ciphertext string // letters only, len == Length
	Key        string // cipher specific key description
	Offset     int    // corpus line the plaintext was read from
}

// Progress reports how far a single (cipher, length) batch has advanced.
type Progress struct {
	Cipher Cipher
	Length int
	Done   int
	Total  int
}

// String implements fmt.Stringer (and lifecycle.Event).
func (p Progress) String() string {
	return fmt.Sprintf("%s/%d: %d/%d", p.Cipher, p.Length, p.Done, p.Total)
}

// Complete reports whether every iteration of the batch was written.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Done >= p.Total
}
