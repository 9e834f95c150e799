package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

// options holds the internal configuration of a generation run.
type options struct {
	logger     *slog.Logger
	seed       uint64
	seeded     bool
	workers    int
	iterations int
	lengths    []int
	ciphers    []core.Cipher
	maxOffset  int
	maxRetries int
	flushEvery int
	keygen     []keygen.Option
	progress   chan<- core.Progress
	sink       core.Sink
	manifest   bool
	devSafety  bool

	lockTimeout time.Duration
}

// Option defines a functional option for configuring a run.
type Option func(*options)

// defaultOptions returns the default configuration: the full generation run.
func defaultOptions() *options {
	return &options{
		maxRetries: -1,
		manifest:   true,
		devSafety:  true,
	}
}

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed makes the run reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithWorkers sets the worker pool size. Zero means one worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithIterations sets the number of records per dataset file.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// WithLengths sets the plaintext lengths to generate.
func WithLengths(lengths ...int) Option {
	return func(o *options) {
		o.lengths = lengths
	}
}

// WithCiphers restricts the run to the given ciphers.
func WithCiphers(ciphers ...core.Cipher) Option {
	return func(o *options) {
		o.ciphers = ciphers
	}
}

// WithMaxOffset sets the upper bound of the random corpus line offset.
func WithMaxOffset(n int) Option {
	return func(o *options) {
		o.maxOffset = n
	}
}

// WithMaxRetries bounds the retries of a single iteration.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// WithFlushEvery flushes dataset files every n records. Zero flushes on close only.
func WithFlushEvery(n int) Option {
	return func(o *options) {
		o.flushEvery = n
	}
}

// WithKeygen configures the key domains.
func WithKeygen(opts ...keygen.Option) Option {
	return func(o *options) {
		o.keygen = append(o.keygen, opts...)
	}
}

// WithProgress publishes progress events on ch.
func WithProgress(ch chan<- core.Progress) Option {
	return func(o *options) {
		o.progress = ch
	}
}

// WithSink injects a custom dataset sink. The manifest is only written for
// the default filesystem sink.
func WithSink(sink core.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithManifest toggles writing manifest.yaml after the run.
func WithManifest(enabled bool) Option {
	return func(o *options) {
		o.manifest = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`: output outside the temp directory is redirected into it.
// Enabled by default.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithLockTimeout bounds the wait for the output root lock held by another
// run. Zero waits until the run's context is done.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}
