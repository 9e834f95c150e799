// Package batch runs one dataset generation task per (cipher, length) on a
// bounded worker pool.
package batch

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/aretw0/ciphergen/pkg/core"
)

// DefaultIterations is the number of records per dataset file.
const DefaultIterations = 10000

// DefaultMaxOffset is the upper bound of the random corpus line offset.
const DefaultMaxOffset = 45000

// DefaultLengths are the plaintext lengths of a full generation run.
var DefaultLengths = []int{100, 200, 300, 500, 1000}

// Plan describes a generation run: every cipher crossed with every length.
type Plan struct {
	Ciphers    []core.Cipher
	Lengths    []int
	Iterations int
	MaxOffset  int
}

// Task is one independent unit of work: a single dataset file.
type Task struct {
	Cipher     core.Cipher
	Length     int
	Iterations int
}

// ID returns the stable "cipher/length" identity of the task.
func (t Task) ID() string {
	return string(t.Cipher) + "/" + strconv.Itoa(t.Length)
}

// seed derives the task's random seed from the run seed and its identity, so
// results do not depend on scheduling order.
func (t Task) seed(base uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(t.ID()))
	return base ^ h.Sum64()
}

// Validate checks the plan's shape. Lengths the key domains cannot serve are
// reported per task at run time.
func (p Plan) Validate() error {
	var errs []error
	if len(p.Ciphers) == 0 {
		errs = append(errs, errors.New("plan has no ciphers"))
	}
	if len(p.Lengths) == 0 {
		errs = append(errs, errors.New("plan has no lengths"))
	}
	if p.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", p.Iterations))
	}
	for _, c := range p.Ciphers {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", core.ErrUnknownCipher, string(c)))
		}
	}
	for _, n := range p.Lengths {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%w: %d", core.ErrInvalidLength, n))
		}
	}
	return errors.Join(errs...)
}

// Tasks expands the plan, cipher-major.
func (p Plan) Tasks() []Task {
	tasks := make([]Task, 0, len(p.Ciphers)*len(p.Lengths))
	for _, c := range p.Ciphers {
		for _, n := range p.Lengths {
			tasks = append(tasks, Task{Cipher: c, Length: n, Iterations: p.Iterations})
		}
	}
	return tasks
}

// BatchError reports the failure of a single task.
type BatchError struct {
	Cipher core.Cipher
	Length int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %s/%d failed: %v", e.Cipher, e.Length, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
