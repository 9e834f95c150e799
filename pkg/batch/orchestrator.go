package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/ciphergen/pkg/cipher"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/corpus"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

// Orchestrator runs generation plans. The corpus is shared read-only; every
// task owns its generator and its writer.
type Orchestrator struct {
	sampler *corpus.Sampler
	sink    core.Sink
	opts    options

	mu     sync.RWMutex
	runID  string
	states map[string]*TaskState
}

// New creates an Orchestrator reading plaintext from src and writing to sink.
func New(src corpus.Source, sink core.Sink, opts ...Option) *Orchestrator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Orchestrator{
		sampler: corpus.NewSampler(src),
		sink:    sink,
		opts:    o,
		states:  make(map[string]*TaskState),
	}
}

// Run executes every task of the plan on the worker pool and waits for all of
// them. A failing task does not stop the others; the returned error joins the
// *BatchError of every failed task. The report is complete either way.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (Report, error) {
	if err := plan.Validate(); err != nil {
		return Report{}, err
	}

	seed := o.opts.seed
	if !o.opts.seeded {
		seed = rand.Uint64()
	}

	maxOffset := plan.MaxOffset
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}
	if o.opts.boundOffsets {
		lines, err := o.sampler.CountLines(ctx)
		if err != nil {
			return Report{}, fmt.Errorf("failed to scan corpus: %w", err)
		}
		if lines-1 < maxOffset {
			o.opts.logger.Debug("clamping max offset to corpus size", "max_offset", maxOffset, "lines", lines)
			maxOffset = max(lines-1, 0)
		}
	}

	tasks := plan.Tasks()
	report := Report{
		RunID:      uuid.NewString(),
		Seed:       seed,
		Iterations: plan.Iterations,
		MaxOffset:  maxOffset,
		Started:    time.Now().UTC(),
		Tasks:      make([]TaskReport, len(tasks)),
	}

	o.mu.Lock()
	o.runID = report.RunID
	o.states = make(map[string]*TaskState, len(tasks))
	for _, t := range tasks {
		o.states[t.ID()] = newTaskState(t)
	}
	o.mu.Unlock()

	o.opts.logger.Info("run started",
		"run_id", report.RunID,
		"tasks", len(tasks),
		"workers", o.opts.workers,
		"iterations", plan.Iterations,
		"seed", seed,
	)

	g := new(errgroup.Group)
	g.SetLimit(o.opts.workers)
	for i, t := range tasks {
		g.Go(func() error {
			report.Tasks[i] = o.RunTask(ctx, t, t.seed(seed), maxOffset)
			return nil
		})
	}
	_ = g.Wait()

	report.Finished = time.Now().UTC()

	var errs []error
	for _, tr := range report.Tasks {
		if tr.err != nil {
			errs = append(errs, tr.err)
		}
	}
	o.opts.logger.Info("run finished",
		"run_id", report.RunID,
		"failed", len(errs),
		"duration", report.Finished.Sub(report.Started),
	)
	return report, errors.Join(errs...)
}

// RunTask produces one dataset. Errors are carried in the report as a
// *BatchError; records written before a failure are kept.
func (o *Orchestrator) RunTask(ctx context.Context, t Task, seed uint64, maxOffset int) TaskReport {
	start := time.Now()
	rep := TaskReport{Cipher: t.Cipher, Length: t.Length}
	logger := o.opts.logger.With("cipher", t.Cipher, "length", t.Length)

	fail := func(err error) TaskReport {
		rep.Seconds = time.Since(start).Seconds()
		rep.err = &BatchError{Cipher: t.Cipher, Length: t.Length, Err: err}
		rep.Error = rep.err.Error()
		o.update(t, func(s *TaskState) {
			s.Status = StatusFailed
			s.Error = rep.Error
		})
		logger.Error("batch failed", "records", rep.Records, "error", err)
		return rep
	}

	engine, err := cipher.For(t.Cipher)
	if err != nil {
		return fail(err)
	}
	gen := keygen.New(seed, o.opts.keygen...)
	if !gen.Supports(t.Cipher, t.Length) {
		return fail(fmt.Errorf("%w: no key size of %s divides %d", core.ErrInvalidLength, t.Cipher, t.Length))
	}

	w, err := o.sink.Open(ctx, t.Cipher, t.Length)
	if err != nil {
		return fail(err)
	}

	o.update(t, func(s *TaskState) { s.Status = StatusRunning })
	logger.Info("batch started", "iterations", t.Iterations)

	every := o.opts.progressEvery
	if every <= 0 {
		every = max(t.Iterations/100, 1)
	}

	for i := 0; i < t.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			w.Close()
			return fail(err)
		}
		rec, retries, err := o.iterate(ctx, gen, engine, t, maxOffset)
		rep.Retries += retries
		if err != nil {
			w.Close()
			return fail(fmt.Errorf("iteration %d: %w", i+1, err))
		}
		if err := w.Append(rec); err != nil {
			w.Close()
			return fail(err)
		}
		rep.Records++
		o.update(t, func(s *TaskState) {
			s.Done = rep.Records
			s.Retries = rep.Retries
		})
		if rep.Records%every == 0 || rep.Records == t.Iterations {
			o.publish(ctx, core.Progress{Cipher: t.Cipher, Length: t.Length, Done: rep.Records, Total: t.Iterations})
		}
	}

	if err := w.Close(); err != nil {
		return fail(err)
	}
	rep.Seconds = time.Since(start).Seconds()
	o.update(t, func(s *TaskState) { s.Status = StatusDone })
	logger.Info("batch finished", "records", rep.Records, "retries", rep.Retries, "seconds", rep.Seconds)
	return rep
}

// iterate draws a key and an offset, samples, and encrypts. Recoverable
// failures are retried with fresh parameters.
func (o *Orchestrator) iterate(ctx context.Context, gen *keygen.Generator, engine cipher.Engine, t Task, maxOffset int) (core.Record, int, error) {
	var lastErr error
	for attempt := 0; attempt <= o.opts.maxRetries; attempt++ {
		rec, err := o.attempt(ctx, gen, engine, t, maxOffset)
		if err == nil {
			return rec, attempt, nil
		}
		if !core.Recoverable(err) {
			return core.Record{}, attempt, err
		}
		lastErr = err
		o.opts.logger.Debug("retrying iteration",
			"cipher", t.Cipher,
			"length", t.Length,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return core.Record{}, o.opts.maxRetries, fmt.Errorf("gave up after %d attempts: %w", o.opts.maxRetries+1, lastErr)
}

func (o *Orchestrator) attempt(ctx context.Context, gen *keygen.Generator, engine cipher.Engine, t Task, maxOffset int) (core.Record, error) {
	key, err := gen.For(t.Cipher, t.Length)
	if err != nil {
		return core.Record{}, err
	}
	offset := gen.Offset(maxOffset)
	sample, err := o.sampler.Sample(ctx, offset, cipher.SampleLength(t.Cipher, t.Length))
	if err != nil {
		return core.Record{}, err
	}
	ct, err := cipher.EncryptN(engine, sample.Text, key, t.Length)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Cipher:     t.Cipher,
		Length:     t.Length,
		Ciphertext: ct,
		Key:        key.Describe(),
		Offset:     sample.Offset,
	}, nil
}

func (o *Orchestrator) publish(ctx context.Context, p core.Progress) {
	if o.opts.progress == nil {
		return
	}
	select {
	case o.opts.progress <- p:
	case <-ctx.Done():
	}
}

func (o *Orchestrator) update(t Task, fn func(*TaskState)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.states[t.ID()]
	if !ok {
		s = newTaskState(t)
		o.states[t.ID()] = s
	}
	fn(s)
}

func (o *Orchestrator) snapshot() []TaskState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]TaskState, 0, len(o.states))
	for _, s := range o.states {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b TaskState) int {
		if a.Cipher != b.Cipher {
			if a.Cipher < b.Cipher {
				return -1
			}
			return 1
		}
		return a.Length - b.Length
	})
	return out
}
