package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ciphergen/pkg/core"
)

func TestSource_Bridges(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := make(chan core.Progress, 2)
	in <- core.Progress{Cipher: core.Shift, Length: 100, Done: 5, Total: 10}
	in <- core.Progress{Cipher: core.Shift, Length: 100, Done: 10, Total: 10}
	close(in)

	src := NewSource(in)
	require.NoError(t, src.Start(ctx))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"shift/100: 5/10", "shift/100: 10/10"}, got)
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := NewSource(make(chan core.Progress))
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("source did not stop after cancel")
	}
}
