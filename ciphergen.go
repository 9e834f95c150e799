package ciphergen

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/ciphergen/internal/platform"
	"github.com/aretw0/ciphergen/pkg/batch"
	"github.com/aretw0/ciphergen/pkg/cipher"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

// --- Types ---

// Cipher identifies a classical cipher.
type Cipher = core.Cipher

// Key is a cipher key.
type Key = core.Key

// Record is one dataset line.
type Record = core.Record

// Runner is a wired generation run.
type Runner = platform.Runner

// Report summarizes a run.
type Report = batch.Report

// Config is the YAML run file.
type Config = platform.Config

// FileCheck is the verification result of one dataset file.
type FileCheck = platform.FileCheck

// --- Configuration ---

// Option defines a functional option for configuring a run.
type Option = platform.Option

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSeed makes the run reproducible.
func WithSeed(seed uint64) Option {
	return platform.WithSeed(seed)
}

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return platform.WithWorkers(n)
}

// WithIterations sets the number of records per dataset file.
func WithIterations(n int) Option {
	return platform.WithIterations(n)
}

// WithLengths sets the plaintext lengths to generate.
func WithLengths(lengths ...int) Option {
	return platform.WithLengths(lengths...)
}

// WithCiphers restricts the run to the given ciphers.
func WithCiphers(ciphers ...Cipher) Option {
	return platform.WithCiphers(ciphers...)
}

// WithMaxOffset sets the upper bound of the random corpus line offset.
func WithMaxOffset(n int) Option {
	return platform.WithMaxOffset(n)
}

// WithMaxRetries bounds the retries of a single iteration.
func WithMaxRetries(n int) Option {
	return platform.WithMaxRetries(n)
}

// WithFlushEvery flushes dataset files every n records.
func WithFlushEvery(n int) Option {
	return platform.WithFlushEvery(n)
}

// WithKeygen configures the key domains.
func WithKeygen(opts ...keygen.Option) Option {
	return platform.WithKeygen(opts...)
}

// WithProgress publishes progress events on ch.
func WithProgress(ch chan<- core.Progress) Option {
	return platform.WithProgress(ch)
}

// WithSink injects a custom dataset sink.
func WithSink(sink core.Sink) Option {
	return platform.WithSink(sink)
}

// WithManifest toggles writing manifest.yaml after the run.
func WithManifest(enabled bool) Option {
	return platform.WithManifest(enabled)
}

// WithDevSafety controls the `go run` output sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLockTimeout bounds the wait for an output root locked by another run.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// --- Factory ---

// New wires a generation run over the corpus at corpusPath writing under output.
func New(corpusPath, output string, opts ...Option) (*Runner, error) {
	return platform.New(corpusPath, output, opts...)
}

// LoadConfig reads a YAML run file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// ErrConfigNotFound is returned by FindConfig when no run file exists.
var ErrConfigNotFound = platform.ErrConfigNotFound

// ParseCiphers resolves a list of cipher names.
func ParseCiphers(names []string) ([]Cipher, error) {
	return platform.ParseCiphers(names)
}

// FindConfig looks upwards from startDir for a ciphergen.yaml.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// --- Operations ---

// Encrypt encrypts normalized plaintext with key.
func Encrypt(plaintext string, key Key) (string, error) {
	e, err := cipher.For(key.Cipher())
	if err != nil {
		return "", err
	}
	return e.Encrypt(plaintext, key)
}

// Decrypt inverts Encrypt.
func Decrypt(ciphertext string, key Key) (string, error) {
	e, err := cipher.For(key.Cipher())
	if err != nil {
		return "", err
	}
	return e.Decrypt(ciphertext, key)
}

// ParseKey reads a key from its dataset description.
func ParseKey(c Cipher, desc string) (Key, error) {
	return core.ParseKey(c, desc)
}

// Verify checks the dataset files under root.
func Verify(ctx context.Context, root, pattern string, expected int) ([]FileCheck, error) {
	return platform.Verify(ctx, root, pattern, expected)
}

// --- Safety & Utils ---

// ResolveOutputPath determines where datasets are written based on safety rules.
func ResolveOutputPath(userPath string, sandbox bool) string {
	return platform.ResolveOutputPath(userPath, sandbox)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
