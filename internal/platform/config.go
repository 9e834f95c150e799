package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

// Config is the YAML run file. Zero values mean "use the default"; command
// line flags override file values.
type Config struct {
	Corpus     string    `yaml:"corpus"`
	Output     string    `yaml:"output"`
	Seed       *uint64   `yaml:"seed,omitempty"`
	Workers    int       `yaml:"workers,omitempty"`
	Iterations int       `yaml:"iterations,omitempty"`
	Lengths    []int     `yaml:"lengths,omitempty"`
	Ciphers    []string  `yaml:"ciphers,omitempty"`
	MaxOffset  int       `yaml:"max_offset,omitempty"`
	MaxRetries *int      `yaml:"max_retries,omitempty"`
	FlushEvery int       `yaml:"flush_every,omitempty"`
	Keys       KeyConfig `yaml:"keys,omitempty"`
}

// KeyConfig configures the key domains.
type KeyConfig struct {
	ColumnSizes     []int  `yaml:"column_sizes,omitempty"`
	HillSizes       []int  `yaml:"hill_sizes,omitempty"`
	VigenereMin     int    `yaml:"vigenere_min,omitempty"`
	VigenereMax     int    `yaml:"vigenere_max,omitempty"`
	FixedVigenere   string `yaml:"fixed_vigenere,omitempty"`
	MaxHillAttempts int    `yaml:"max_hill_attempts,omitempty"`
}

// LoadConfig reads a run file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML run file. An empty document yields the zero Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Options converts the file into run options.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if c.Seed != nil {
		opts = append(opts, WithSeed(*c.Seed))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	if c.Iterations > 0 {
		opts = append(opts, WithIterations(c.Iterations))
	}
	if len(c.Lengths) > 0 {
		opts = append(opts, WithLengths(c.Lengths...))
	}
	if len(c.Ciphers) > 0 {
		ciphers, err := ParseCiphers(c.Ciphers)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCiphers(ciphers...))
	}
	if c.MaxOffset > 0 {
		opts = append(opts, WithMaxOffset(c.MaxOffset))
	}
	if c.MaxRetries != nil {
		opts = append(opts, WithMaxRetries(*c.MaxRetries))
	}
	if c.FlushEvery > 0 {
		opts = append(opts, WithFlushEvery(c.FlushEvery))
	}

	var kg []keygen.Option
	if len(c.Keys.ColumnSizes) > 0 {
		kg = append(kg, keygen.WithColumnSizes(c.Keys.ColumnSizes...))
	}
	if len(c.Keys.HillSizes) > 0 {
		kg = append(kg, keygen.WithHillSizes(c.Keys.HillSizes...))
	}
	if c.Keys.VigenereMin > 0 || c.Keys.VigenereMax > 0 {
		if c.Keys.VigenereMin < 1 || c.Keys.VigenereMax < c.Keys.VigenereMin {
			return nil, fmt.Errorf("invalid vigenere key length range [%d,%d]", c.Keys.VigenereMin, c.Keys.VigenereMax)
		}
		kg = append(kg, keygen.WithVigenereLength(c.Keys.VigenereMin, c.Keys.VigenereMax))
	}
	if c.Keys.FixedVigenere != "" {
		if _, err := core.NewVigenereKey(c.Keys.FixedVigenere); err != nil {
			return nil, err
		}
		kg = append(kg, keygen.WithFixedVigenere(c.Keys.FixedVigenere))
	}
	if c.Keys.MaxHillAttempts > 0 {
		kg = append(kg, keygen.WithMaxHillAttempts(c.Keys.MaxHillAttempts))
	}
	if len(kg) > 0 {
		opts = append(opts, WithKeygen(kg...))
	}

	return opts, nil
}

// ParseCiphers resolves a list of cipher names.
func ParseCiphers(names []string) ([]core.Cipher, error) {
	out := make([]core.Cipher, 0, len(names))
	for _, n := range names {
		c, err := core.ParseCipher(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
