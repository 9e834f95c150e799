// Package dataset defines the line format of dataset files and the feature
// contract the classification side reads them through.
//
// A record is one line:
//
//	<ciphertext> key: <key description>, reading from line <offset>
//
// The (cipher, length) label is not part of the line; it comes from the file
// the line lives in.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
)

const (
	keyMarker    = " key:"
	offsetMarker = ", reading from line "
)

// Format renders r as a single newline-terminated line.
func Format(r core.Record) string {
	var b strings.Builder
	b.Grow(len(r.Ciphertext) + len(r.Key) + 40)
	b.WriteString(r.Ciphertext)
	b.WriteString(keyMarker)
	b.WriteByte(' ')
	b.WriteString(r.Key)
	b.WriteString(offsetMarker)
	b.WriteString(strconv.Itoa(r.Offset))
	b.WriteByte('\n')
	return b.String()
}

// Parse reads one line back into a record. Cipher and Length are left for the
// caller, except that Length defaults to the ciphertext length.
func Parse(line string) (core.Record, error) {
	line = strings.TrimRight(line, "\r\n")

	ct, rest, ok := strings.Cut(line, keyMarker)
	if !ok {
		return core.Record{}, fmt.Errorf("%w: missing key marker", core.ErrMalformedRecord)
	}
	if ct == "" || !alphabet.IsLower(ct) {
		return core.Record{}, fmt.Errorf("%w: ciphertext is not letters only", core.ErrMalformedRecord)
	}

	i := strings.LastIndex(rest, offsetMarker)
	if i < 0 {
		return core.Record{}, fmt.Errorf("%w: missing offset marker", core.ErrMalformedRecord)
	}
	offset, err := strconv.Atoi(rest[i+len(offsetMarker):])
	if err != nil {
		return core.Record{}, fmt.Errorf("%w: bad offset: %w", core.ErrMalformedRecord, err)
	}

	return core.Record{
		Length:     len(ct),
		Ciphertext: ct,
		Key:        strings.TrimPrefix(rest[:i], " "),
		Offset:     offset,
	}, nil
}

// Reader iterates over the records of a dataset stream.
type Reader struct {
	br     *bufio.Reader
	cipher core.Cipher
	line   int
}

// NewReader reads records labeled with cipher.
func NewReader(r io.Reader, cipher core.Cipher) *Reader {
	return &Reader{br: bufio.NewReader(r), cipher: cipher}
}

// Next returns the next record or io.EOF. Blank lines are skipped.
func (r *Reader) Next() (core.Record, error) {
	for {
		text, err := r.br.ReadString('\n')
		if text == "" && err != nil {
			return core.Record{}, err
		}
		r.line++
		if strings.TrimSpace(text) == "" {
			if err != nil {
				return core.Record{}, err
			}
			continue
		}
		rec, perr := Parse(text)
		if perr != nil {
			return core.Record{}, fmt.Errorf("line %d: %w", r.line, perr)
		}
		rec.Cipher = r.cipher
		if err != nil && !errors.Is(err, io.EOF) {
			return rec, err
		}
		return rec, nil
	}
}
