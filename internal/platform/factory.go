package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/ciphergen/pkg/adapters/fs"
	"github.com/aretw0/ciphergen/pkg/batch"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/corpus"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

// Runner is a fully wired generation run.
type Runner struct {
	Orchestrator *batch.Orchestrator
	Plan         batch.Plan
	Output       string

	logger   *slog.Logger
	manifest bool
	lock     bool
	variants map[core.Cipher]string

	lockTimeout time.Duration
}

// runner, err := platform.New("brown.txt", "./data", platform.WithIterations(100))
// Output is resolved through the dev sandbox unless WithDevSafety(false).
func New(corpusPath, output string, opts ...Option) (*Runner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if info, err := os.Stat(corpusPath); err != nil {
		return nil, fmt.Errorf("corpus unavailable: %w", err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("corpus %s is a directory", corpusPath)
	}

	plan := batch.Plan{
		Ciphers:    o.ciphers,
		Lengths:    o.lengths,
		Iterations: o.iterations,
		MaxOffset:  o.maxOffset,
	}
	if len(plan.Ciphers) == 0 {
		plan.Ciphers = core.AllCiphers()
	}
	if len(plan.Lengths) == 0 {
		plan.Lengths = batch.DefaultLengths
	}
	if plan.Iterations <= 0 {
		plan.Iterations = batch.DefaultIterations
	}
	if plan.MaxOffset <= 0 {
		plan.MaxOffset = batch.DefaultMaxOffset
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	resolved := ResolveOutputPath(output, o.devSafety && IsDevRun())
	if resolved != output {
		o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "output", resolved)
	}

	variants := make(map[core.Cipher]string)
	for _, c := range plan.Ciphers {
		if keygen.Fixed(c, o.keygen...) {
			variants[c] = fs.FixedKeyVariant
		}
	}

	sink := o.sink
	manifest := o.manifest
	lock := sink == nil
	if sink == nil {
		fsSink := fs.NewSink(resolved, o.flushEvery)
		fsSink.Variants = variants
		sink = fsSink
	} else {
		manifest = false
	}

	bopts := []batch.Option{
		batch.WithLogger(o.logger),
		batch.WithWorkers(o.workers),
		batch.WithKeygenOptions(o.keygen...),
	}
	if o.seeded {
		bopts = append(bopts, batch.WithSeed(o.seed))
	}
	if o.maxRetries >= 0 {
		bopts = append(bopts, batch.WithMaxRetries(o.maxRetries))
	}
	if o.progress != nil {
		bopts = append(bopts, batch.WithProgress(o.progress))
	}

	return &Runner{
		Orchestrator: batch.New(corpus.FileSource{Path: corpusPath}, sink, bopts...),
		Plan:         plan,
		Output:       resolved,
		logger:       o.logger,
		manifest:     manifest,
		lock:         lock,
		variants:     variants,
		lockTimeout:  o.lockTimeout,
	}, nil
}

// Run executes the plan and writes the manifest. Task failures are returned
// joined; the manifest is written regardless so partial runs are documented.
// The output root is locked for the duration of the run.
func (r *Runner) Run(ctx context.Context) (batch.Report, error) {
	if r.lock {
		lockCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.lockTimeout > 0 {
			lockCtx, cancel = context.WithTimeout(ctx, r.lockTimeout)
		}
		unlock, err := fs.Lock(lockCtx, r.Output, r.logger)
		cancel()
		if err != nil {
			return batch.Report{}, err
		}
		defer unlock()
	}

	report, runErr := r.Orchestrator.Run(ctx, r.Plan)
	if report.RunID == "" || !r.manifest {
		return report, runErr
	}

	path, err := fs.WriteManifest(r.Output, report)
	if err != nil {
		return report, errors.Join(runErr, fmt.Errorf("failed to write manifest: %w", err))
	}
	r.logger.Info("manifest written", "path", path)
	return report, runErr
}

// Targets lists the dataset files the plan produces, for progress watching.
func (r *Runner) Targets() []fs.Target {
	tasks := r.Plan.Tasks()
	out := make([]fs.Target, len(tasks))
	for i, t := range tasks {
		out[i] = fs.Target{Cipher: t.Cipher, Variant: r.variants[t.Cipher], Length: t.Length, Total: t.Iterations}
	}
	return out
}
