// Package corpus draws fixed-length plaintext samples from a line-oriented
// natural-language text source.
package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
)

// Source supplies independent read handles over the same immutable corpus.
// Every caller owns and closes the handle it opens.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the corpus from a file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	return f, nil
}

// StringSource serves an in-memory corpus.
type StringSource string

func (s StringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

// Sample is exactly Length lowercase letters read starting at line Offset.
type Sample struct {
	Text   string
	Offset int
}

// Read skips offset whole lines of r, then collects normalized letters line by
// line until length letters are gathered. A corpus that ends first yields
// core.ErrExhaustedCorpus, never a short sample.
func Read(r io.Reader, offset, length int) (Sample, error) {
	if length <= 0 {
		return Sample{}, fmt.Errorf("%w: %d", core.ErrInvalidLength, length)
	}
	if offset < 0 {
		return Sample{}, fmt.Errorf("negative offset %d", offset)
	}

	br := bufio.NewReader(r)
	for i := 0; i < offset; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return Sample{}, fmt.Errorf("%w: corpus has %d lines, offset %d", core.ErrExhaustedCorpus, i, offset)
			}
			return Sample{}, err
		}
	}

	buf := make([]byte, 0, length)
	for len(buf) < length {
		line, err := br.ReadString('\n')
		for c := range alphabet.Seq(line) {
			buf = append(buf, c)
			if len(buf) == length {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Sample{}, err
		}
	}

	if len(buf) < length {
		return Sample{}, fmt.Errorf("%w: collected %d of %d letters from line %d",
			core.ErrExhaustedCorpus, len(buf), length, offset)
	}
	return Sample{Text: string(buf), Offset: offset}, nil
}

// Sampler draws samples from a Source, opening a fresh handle per sample.
type Sampler struct {
	src Source
}

// NewSampler binds a sampler to src.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Sample reads length letters starting at line offset.
func (s *Sampler) Sample(ctx context.Context, offset, length int) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	rc, err := s.src.Open()
	if err != nil {
		return Sample{}, err
	}
	defer rc.Close()
	return Read(rc, offset, length)
}

// CountLines returns the number of lines in the corpus. A final line without a
// trailing newline still counts.
func (s *Sampler) CountLines(ctx context.Context) (int, error) {
	rc, err := s.src.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	n := 0
	for {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			n++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
	}
}
