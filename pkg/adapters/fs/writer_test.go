package fs

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ciphergen/pkg/core"
)

func TestWriter(t *testing.T) {
	path := Path(t.TempDir(), core.Shift, 10)

	w, err := Create(path, 3)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, w.Append(core.Record{Ciphertext: "khoorzruog", Key: "3", Offset: i + 1}))
	}
	assert.Equal(t, 10, w.Count())
	require.NoError(t, w.Close())

	n, err := CountRecords(path)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "khoorzruog key: 3, reading from line 1\n"))

	t.Run("Create Truncates", func(t *testing.T) {
		w, err := Create(path, 0)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		n, err := CountRecords(path)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestCountLines_Partial(t *testing.T) {
	n, consumed, err := countLines(strings.NewReader("a\n\nb\nhalf"), true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(5), consumed)

	n, _, err = countLines(strings.NewReader("a\n\nb\nhalf"), false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	long := strings.Repeat("x", 10000) + "\n"
	n, consumed, err = countLines(strings.NewReader(long), true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(len(long)), consumed)
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	watcher := NewWatcher(root, 20*time.Millisecond, nil)
	events, err := watcher.Watch(ctx, []Target{{Cipher: core.Vigenere, Length: 50, Total: 5}})
	require.NoError(t, err)

	st, ok := watcher.State().(WatcherState)
	require.True(t, ok)
	assert.True(t, st.Active)
	assert.Equal(t, 1, st.Files)
	assert.Equal(t, "progress-watcher", watcher.ComponentType())

	w, err := Create(Path(root, core.Vigenere, 50), 1)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Append(core.Record{Ciphertext: "abc", Key: "KEY", Offset: i}))
	}
	require.NoError(t, w.Close())

	var last core.Progress
	for p := range events {
		last = p
		if p.Complete() {
			cancel()
		}
	}
	assert.Equal(t, core.Vigenere, last.Cipher)
	assert.Equal(t, 5, last.Done)
	assert.True(t, last.Complete())
}

func TestWatcher_ExistingFiles(t *testing.T) {
	root := t.TempDir()
	w, err := Create(Path(root, core.Shift, 100), 0)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		require.NoError(t, w.Append(core.Record{Ciphertext: "abc", Key: "3", Offset: i}))
	}
	require.NoError(t, w.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	watcher := NewWatcher(root, 20*time.Millisecond, nil)
	events, err := watcher.Watch(ctx, []Target{
		{Cipher: core.Shift, Length: 100, Total: 2},
		{Cipher: core.Hill, Length: 100, Total: 2},
	})
	require.NoError(t, err)

	select {
	case p, ok := <-events:
		require.True(t, ok, "watcher stopped before reporting the existing file")
		assert.Equal(t, core.Shift, p.Cipher)
		assert.Equal(t, 2, p.Done)
		assert.True(t, p.Complete())
	case <-ctx.Done():
		t.Fatal("no progress for a file written before the watch started")
	}
}
