package core

import "context"

// RecordWriter appends records to one dataset. It is owned by a single batch
// worker for its lifetime.
type RecordWriter interface {
	// Append persists one record after any previously appended ones.
	Append(r Record) error

	// Close flushes and releases the dataset. Records appended before a failed
	// Close may or may not be persisted.
	Close() error
}

// Sink defines where datasets are written. Adhering to this interface keeps
// the orchestrator independent of the storage (files, memory, ...).
type Sink interface {
	// Open creates (or truncates) the dataset for (cipher, length).
	Open(ctx context.Context, c Cipher, length int) (RecordWriter, error)
}
