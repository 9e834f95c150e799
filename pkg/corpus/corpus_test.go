package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ciphergen/pkg/core"
)

const text = "The Fulton County Grand Jury said Friday\n" +
	"an investigation of Atlanta's recent primary election\n" +
	"produced no evidence that any irregularities took place.\n"

func TestRead(t *testing.T) {
	t.Run("From Start", func(t *testing.T) {
		s, err := Read(strings.NewReader(text), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, "thefultonc", s.Text)
		assert.Equal(t, 0, s.Offset)
	})

	t.Run("Skips Lines", func(t *testing.T) {
		s, err := Read(strings.NewReader(text), 1, 12)
		require.NoError(t, err)
		assert.Equal(t, "aninvestigat", s.Text)
		assert.Equal(t, 1, s.Offset)
	})

	t.Run("Spans Lines", func(t *testing.T) {
		s, err := Read(strings.NewReader(text), 0, 40)
		require.NoError(t, err)
		assert.Len(t, s.Text, 40)
		assert.True(t, strings.HasPrefix(s.Text, "thefultoncountygrandjurysaidfriday"+"aninve"))
	})

	t.Run("Exhausted After Offset", func(t *testing.T) {
		_, err := Read(strings.NewReader(text), 2, 1000)
		assert.ErrorIs(t, err, core.ErrExhaustedCorpus)
	})

	t.Run("Offset Beyond End", func(t *testing.T) {
		_, err := Read(strings.NewReader(text), 10, 5)
		assert.ErrorIs(t, err, core.ErrExhaustedCorpus)
	})

	t.Run("Exact Fit Without Trailing Newline", func(t *testing.T) {
		s, err := Read(strings.NewReader("ab\ncd"), 0, 4)
		require.NoError(t, err)
		assert.Equal(t, "abcd", s.Text)
	})

	t.Run("Invalid Length", func(t *testing.T) {
		_, err := Read(strings.NewReader(text), 0, 0)
		assert.ErrorIs(t, err, core.ErrInvalidLength)
	})

	t.Run("Long Line", func(t *testing.T) {
		long := strings.Repeat("abc ", 100000)
		s, err := Read(strings.NewReader(long), 0, 250000)
		require.NoError(t, err)
		assert.Len(t, s.Text, 250000)
	})
}

func TestSampler(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	s := NewSampler(FileSource{Path: path})

	n, err := s.CountLines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	sample, err := s.Sample(ctx, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, "produced", sample.Text)

	// every call opens an independent handle
	again, err := s.Sample(ctx, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, sample, again)

	_, err = NewSampler(FileSource{Path: filepath.Join(t.TempDir(), "missing")}).Sample(ctx, 0, 1)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Sample(cancelled, 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStringSource_CountLines(t *testing.T) {
	n, err := NewSampler(StringSource("a\nb\nc")).CountLines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
