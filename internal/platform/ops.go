package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/ciphergen/pkg/adapters/fs"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/dataset"
)

// FileCheck is the verification result of one dataset file.
type FileCheck struct {
	fs.Entry
	Records  int
	Problems []string
}

// OK reports whether the file passed every check.
func (c FileCheck) OK() bool { return len(c.Problems) == 0 }

// maxProblems caps the problems recorded per file.
const maxProblems = 20

// Verify checks every dataset file under root matching pattern: each line
// parses, the ciphertext has exactly the file's length, the key is valid for
// the file's cipher, and (when expected > 0) the file holds expected records.
func Verify(ctx context.Context, root, pattern string, expected int) ([]FileCheck, error) {
	entries, err := fs.Discover(root, pattern)
	if err != nil {
		return nil, err
	}

	checks := make([]FileCheck, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return checks, err
		}
		c, err := verifyFile(e)
		if err != nil {
			return checks, err
		}
		if expected > 0 && c.Records != expected {
			c.Problems = append(c.Problems, fmt.Sprintf("has %d records, want %d", c.Records, expected))
		}
		checks = append(checks, c)
	}
	return checks, nil
}

func verifyFile(e fs.Entry) (FileCheck, error) {
	c := FileCheck{Entry: e}
	f, err := os.Open(e.Path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	problem := func(format string, args ...any) {
		if len(c.Problems) < maxProblems {
			c.Problems = append(c.Problems, fmt.Sprintf(format, args...))
		}
	}

	r := dataset.NewReader(f, e.Cipher)
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, core.ErrMalformedRecord) {
			c.Records++
			problem("record %d: %v", c.Records, err)
			continue
		}
		if err != nil {
			return c, err
		}
		c.Records++
		if len(rec.Ciphertext) != e.Length {
			problem("record %d: ciphertext has %d letters, want %d", c.Records, len(rec.Ciphertext), e.Length)
		}
		if _, err := core.ParseKey(e.Cipher, rec.Key); err != nil {
			problem("record %d: %v", c.Records, err)
		}
	}
	return c, nil
}
