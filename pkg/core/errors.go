package core

import "errors"

// Common errors.
var (
	// ErrExhaustedCorpus means the corpus ended before the requested number of
	// letters was collected. Recoverable by sampling at another offset.
	ErrExhaustedCorpus = errors.New("corpus exhausted before requested length")

	// ErrInvalidKey means a key violates its cipher's algebraic constraint.
	ErrInvalidKey = errors.New("invalid key")

	// ErrKeyGenerationExhausted means rejection sampling ran out of attempts.
	ErrKeyGenerationExhausted = errors.New("key generation exhausted")

	// ErrInsufficientPlaintext means an engine needs more letters than it was given.
	ErrInsufficientPlaintext = errors.New("insufficient plaintext")

	ErrUnknownCipher   = errors.New("unknown cipher")
	ErrInvalidLength   = errors.New("invalid text length")
	ErrMalformedRecord = errors.New("malformed dataset record")
)

// Recoverable reports whether a failed iteration may be retried with fresh
// random parameters.
func Recoverable(err error) bool {
	return errors.Is(err, ErrExhaustedCorpus) ||
		errors.Is(err, ErrInvalidKey) ||
		errors.Is(err, ErrKeyGenerationExhausted) ||
		errors.Is(err, ErrInsufficientPlaintext)
}
