package keygen

import (
	"strings"

	"github.com/aretw0/ciphergen/pkg/core"
)

// options holds the key domain configuration of a Generator.
type options struct {
	columnSizes     []int
	hillSizes       []int
	vigenereMin     int
	vigenereMax     int
	fixedVigenere   string
	maxHillAttempts int
}

// Option defines a functional option for configuring a Generator.
type Option func(*options)

func defaultOptions() options {
	return options{
		columnSizes:     []int{5, 10, 15},
		hillSizes:       []int{2, 5, 10},
		vigenereMin:     5,
		vigenereMax:     25,
		maxHillAttempts: 1000,
	}
}

// WithColumnSizes sets the menu of columnar transposition widths.
func WithColumnSizes(sizes ...int) Option {
	return func(o *options) {
		if len(sizes) > 0 {
			o.columnSizes = sizes
		}
	}
}

// WithHillSizes sets the menu of Hill matrix sizes.
func WithHillSizes(sizes ...int) Option {
	return func(o *options) {
		if len(sizes) > 0 {
			o.hillSizes = sizes
		}
	}
}

// WithVigenereLength sets the inclusive key length range. Invalid ranges are ignored.
func WithVigenereLength(min, max int) Option {
	return func(o *options) {
		if min >= 1 && max >= min {
			o.vigenereMin, o.vigenereMax = min, max
		}
	}
}

// WithFixedVigenere makes every Vigenère key the given literal (uppercase).
// An empty key restores random keys.
func WithFixedVigenere(key string) Option {
	return func(o *options) {
		o.fixedVigenere = strings.ToUpper(strings.TrimSpace(key))
	}
}

// WithMaxHillAttempts bounds the Hill rejection sampling loop.
func WithMaxHillAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxHillAttempts = n
		}
	}
}

// Fixed reports whether a Generator built with opts always returns the same
// key for c.
func Fixed(c core.Cipher, opts ...Option) bool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return c == core.Vigenere && o.fixedVigenere != ""
}
