package batch

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

type options struct {
	logger        *slog.Logger
	workers       int
	seed          uint64
	seeded        bool
	maxRetries    int
	progress      chan<- core.Progress
	progressEvery int
	boundOffsets  bool
	keygen        []keygen.Option
}

// Option defines a functional option for configuring the Orchestrator.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:      runtime.NumCPU(),
		maxRetries:   10,
		boundOffsets: true,
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets the size of the worker pool.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSeed makes the run reproducible. Without it a random seed is drawn and
// reported.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithMaxRetries bounds the attempts spent on a single iteration after
// recoverable failures (exhausted corpus, invalid key, ...).
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithProgress publishes progress events on ch. Sends block until received or
// the run is cancelled; the channel is not closed by the orchestrator.
func WithProgress(ch chan<- core.Progress) Option {
	return func(o *options) {
		o.progress = ch
	}
}

// WithProgressEvery sets how many records a task writes between progress events.
// Defaults to one percent of the iterations.
func WithProgressEvery(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.progressEvery = n
		}
	}
}

// WithOffsetBound toggles clamping the plan's MaxOffset to the corpus line count.
func WithOffsetBound(enabled bool) Option {
	return func(o *options) {
		o.boundOffsets = enabled
	}
}

// WithKeygenOptions configures the key domains of every task's generator.
func WithKeygenOptions(opts ...keygen.Option) Option {
	return func(o *options) {
		o.keygen = append(o.keygen, opts...)
	}
}
