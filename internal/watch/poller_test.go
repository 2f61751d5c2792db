package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestPollerNilCallback(t *testing.T) {
	p := NewPoller("x.md", time.Millisecond)
	assert.ErrorIs(t, p.Run(context.Background(), nil), ErrNoCallback)
}

func TestPollerFiresImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	writeDoc(t, path, "v1")

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(path, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, func(context.Context) error {
			fired.Add(1)
			return nil
		})
	}()

	assert.Eventually(t, func() bool { return fired.Load() >= 1 },
		time.Second, 10*time.Millisecond, "first callback fires without waiting for a change")

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollerDetectsModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	writeDoc(t, path, "v1")

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPoller(path, 20*time.Millisecond)
	go func() {
		_ = p.Run(ctx, func(context.Context) error {
			fired.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// Ensure the mtime actually advances on coarse-grained filesystems.
	writeDoc(t, path, "v2")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.Eventually(t, func() bool { return fired.Load() >= 2 },
		2*time.Second, 10*time.Millisecond, "modification triggers a recompute")
}

func TestPollerCallbackErrorStopsLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	writeDoc(t, path, "v1")

	boom := errors.New("boom")
	p := NewPoller(path, time.Millisecond)
	err := p.Run(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestPollerToleratesMissingFile(t *testing.T) {
	// The document may not exist yet; the poller still fires the initial
	// callback and keeps polling until it shows up or ctx ends.
	path := filepath.Join(t.TempDir(), "not-yet.md")

	var fired atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	p := NewPoller(path, 10*time.Millisecond)
	err := p.Run(ctx, func(context.Context) error {
		fired.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDefaultInterval(t *testing.T) {
	p := NewPoller("plan.md", 0)
	assert.Equal(t, DefaultInterval, p.interval)
}
