package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcluded(t *testing.T) {
	w := &Watcher{exclude: []string{"include/os/header-only", ""}}
	assert.True(t, w.excluded("/repo/include/os/header-only/kernel.hpp"))
	assert.False(t, w.excluded("/repo/include/os/kernel.hpp"))
}

func TestWatcherFiresOnceAfterBurst(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 8)

	w, err := New([]string{dir}, nil, 50*time.Millisecond, func() {
		fired <- struct{}{}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// A burst of writes inside one debounce window.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hpp"), []byte("x"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never fired")
	}

	// The burst was debounced into a single callback.
	select {
	case <-fired:
		t.Fatal("watcher fired more than once for one burst")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
