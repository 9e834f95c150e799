package fs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/dataset"
)

// DefaultFlushEvery is how many records a Writer buffers before flushing.
const DefaultFlushEvery = 100

// Writer appends records to one dataset file. It is owned by a single batch
// worker and is not safe for concurrent use.
type Writer struct {
	path       string
	f          *os.File
	w          *bufio.Writer
	count      int
	flushEvery int
}

// Create truncates (or creates) the dataset file at path, creating parent
// directories as needed.
func Create(path string, flushEvery int) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create dataset directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset file: %w", err)
	}
	if flushEvery <= 0 {
		flushEvery = DefaultFlushEvery
	}
	return &Writer{path: path, f: f, w: bufio.NewWriter(f), flushEvery: flushEvery}, nil
}

// Path returns the file being written.
func (w *Writer) Path() string { return w.path }

// Count returns the number of records appended so far.
func (w *Writer) Count() int { return w.count }

// Append writes one record line.
func (w *Writer) Append(r core.Record) error {
	if _, err := w.w.WriteString(dataset.Format(r)); err != nil {
		return fmt.Errorf("failed to append record to %s: %w", w.path, err)
	}
	w.count++
	if w.count%w.flushEvery == 0 {
		return w.Flush()
	}
	return nil
}

// Flush pushes buffered records to the file.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	return nil
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	ferr := w.Flush()
	if err := w.f.Close(); err != nil && ferr == nil {
		ferr = fmt.Errorf("failed to close %s: %w", w.path, err)
	}
	return ferr
}

// CountRecords returns the number of non-empty lines in a dataset file.
func CountRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, _, err := countLines(f, false)
	return n, err
}

// countLines counts non-blank lines in r. It also returns the number of bytes
// up to and including the last newline; with partialAware set, an unterminated
// final line is neither counted nor consumed so it is picked up on the next
// call once the writer finishes it.
func countLines(r io.Reader, partialAware bool) (lines int, consumed int64, err error) {
	br := bufio.NewReader(r)
	var pending int64
	content := false
	for {
		chunk, err := br.ReadSlice('\n')
		pending += int64(len(chunk))
		if len(bytes.TrimSpace(chunk)) > 0 {
			content = true
		}
		switch {
		case err == nil:
			if content {
				lines++
			}
			consumed += pending
			pending, content = 0, false
		case errors.Is(err, bufio.ErrBufferFull):
			// long line, keep reading
		case errors.Is(err, io.EOF):
			if content && !partialAware {
				lines++
			}
			return lines, consumed, nil
		default:
			return lines, consumed, err
		}
	}
}
