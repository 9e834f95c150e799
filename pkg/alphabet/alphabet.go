// Package alphabet reduces raw text to the 26-letter lowercase alphabet every
// cipher engine works over.
//
// A rune is kept when it is a Unicode letter whose canonical decomposition
// starts with an ASCII letter; it is then lowercased. Accented Latin letters
// fold to their base letter ("é" -> "e"). Everything else, including letters
// with no ASCII base, is dropped.
package alphabet

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Size is the number of letters in the alphabet.
const Size = 26

// Letter maps r to its normalized lowercase ASCII letter.
func Letter(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r), true
	case r >= 'A' && r <= 'Z':
		return byte(r) + ('a' - 'A'), true
	case r < utf8.RuneSelf || !unicode.IsLetter(r):
		return 0, false
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	if base == r || base >= utf8.RuneSelf {
		return 0, false
	}
	return Letter(base)
}

// Normalize returns the letters of s, lowercased, in order.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for c := range Seq(s) {
		b.WriteByte(c)
	}
	return b.String()
}

// Seq lazily yields the normalized letters of s.
func Seq(s string) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, r := range s {
			if c, ok := Letter(r); ok {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Index returns the 0..25 position of a lowercase letter.
func Index(c byte) int { return int(c - 'a') }

// FromIndex returns the lowercase letter at position i (taken mod 26).
func FromIndex(i int) byte {
	i %= Size
	if i < 0 {
		i += Size
	}
	return byte('a' + i)
}

// IsLower reports whether every byte of s is in a..z.
func IsLower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Stream yields normalized letters from an underlying reader, one at a time.
// It keeps no state beyond the reader position.
type Stream struct {
	r *bufio.Reader
}

// NewStream wraps r. A *bufio.Reader is used as is.
func NewStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Stream{r: br}
}

// Next returns the next letter, or io.EOF when the reader is drained.
func (s *Stream) Next() (byte, error) {
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if c, ok := Letter(r); ok {
			return c, nil
		}
	}
}
