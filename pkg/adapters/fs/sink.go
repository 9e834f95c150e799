package fs

import (
	"context"

	"github.com/aretw0/ciphergen/pkg/core"
)

// Sink implements core.Sink with one text file per (cipher, length) under Root.
// Ciphers listed in Variants write into that variant's subdirectory.
type Sink struct {
	Root       string
	FlushEvery int
	Variants   map[core.Cipher]string
}

// NewSink creates a filesystem sink rooted at root.
func NewSink(root string, flushEvery int) *Sink {
	return &Sink{Root: root, FlushEvery: flushEvery}
}

// Open truncates and opens the dataset file for (c, length).
func (s *Sink) Open(ctx context.Context, c core.Cipher, length int) (core.RecordWriter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Create(VariantPath(s.Root, c, s.Variants[c], length), s.FlushEvery)
}

var _ core.Sink = (*Sink)(nil)
