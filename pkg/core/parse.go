package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseKey reads a key back from its Describe form and validates it.
// Columnar keys are read 0-indexed, as they are described.
func ParseKey(c Cipher, desc string) (Key, error) {
	switch c {
	case Shift:
		n, err := strconv.Atoi(strings.TrimSpace(desc))
		if err != nil {
			return nil, fmt.Errorf("%w: shift %q: %v", ErrInvalidKey, desc, err)
		}
		k := ShiftKey(n)
		return k, k.Validate()
	case Columnar:
		order, err := parseInts(desc)
		if err != nil {
			return nil, err
		}
		k := ColumnarKey{Order: order}
		return k, k.Validate()
	case Vigenere:
		return NewVigenereKey(desc)
	case Playfair:
		return PlayfairKeyFromPhrase(strings.ToLower(strings.TrimSpace(desc)))
	case Hill:
		vals, err := parseInts(desc)
		if err != nil {
			return nil, err
		}
		size := 0
		for size*size < len(vals) {
			size++
		}
		if size == 0 || size*size != len(vals) {
			return nil, fmt.Errorf("%w: %d hill entries do not form a square matrix", ErrInvalidKey, len(vals))
		}
		m := make([][]int, size)
		for i := range m {
			m[i] = vals[i*size : (i+1)*size]
		}
		k := HillKey{Size: size, M: m}
		return k, k.Validate()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, string(c))
	}
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidKey, f)
		}
		out[i] = v
	}
	return out, nil
}
