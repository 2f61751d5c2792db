package batch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessor(t *testing.T) {
	t.Run("valid size", func(t *testing.T) {
		p, err := NewProcessor[int](50)
		require.NoError(t, err)
		assert.Equal(t, 50, p.BatchSize())
	})

	t.Run("invalid sizes", func(t *testing.T) {
		for _, size := range []int{0, -1, MaxBatchSize + 1} {
			_, err := NewProcessor[int](size)
			assert.ErrorIs(t, err, ErrInvalidBatchSize, "size %d", size)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		p := NewProcessorWithDefaults[string]()
		assert.Equal(t, DefaultBatchSize, p.BatchSize())
	})
}

func TestProcess(t *testing.T) {
	items := make([]int, 250)
	for i := range items {
		items[i] = i
	}

	t.Run("visits every item in order", func(t *testing.T) {
		p, err := NewProcessor[int](100)
		require.NoError(t, err)

		var seen []int
		err = p.Process(context.Background(), items, func(_ context.Context, chunk []int, _ int) error {
			seen = append(seen, chunk...)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, items, seen)
	})

	t.Run("uneven final batch", func(t *testing.T) {
		p, err := NewProcessor[int](100)
		require.NoError(t, err)

		var sizes []int
		err = p.Process(context.Background(), items, func(_ context.Context, chunk []int, _ int) error {
			sizes = append(sizes, len(chunk))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{100, 100, 50}, sizes)
	})

	t.Run("empty items", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		err := p.Process(context.Background(), nil, func(_ context.Context, _ []int, _ int) error {
			return nil
		})
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("nil callback", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		err := p.Process(context.Background(), items, nil)
		assert.ErrorIs(t, err, ErrNilCallback)
	})

	t.Run("callback error stops the run", func(t *testing.T) {
		p, err := NewProcessor[int](100)
		require.NoError(t, err)

		boom := errors.New("boom")
		calls := 0
		err = p.Process(context.Background(), items, func(_ context.Context, _ []int, idx int) error {
			calls++
			if idx == 1 {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, calls)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewProcessorWithDefaults[int]()
		err := p.Process(ctx, items, func(_ context.Context, _ []int, _ int) error {
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProcessConcurrent(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}

	t.Run("visits every item exactly once", func(t *testing.T) {
		p, err := NewProcessor[int](64)
		require.NoError(t, err)

		var mu sync.Mutex
		counts := make(map[int]int)
		err = p.ProcessConcurrent(context.Background(), items,
			func(_ context.Context, chunk []int, _ int) error {
				mu.Lock()
				defer mu.Unlock()
				for _, v := range chunk {
					counts[v]++
				}
				return nil
			}, 8)
		require.NoError(t, err)

		require.Len(t, counts, len(items))
		for v, n := range counts {
			assert.Equal(t, 1, n, "item %d", v)
		}
	})

	t.Run("first error cancels", func(t *testing.T) {
		p, err := NewProcessor[int](64)
		require.NoError(t, err)

		boom := errors.New("boom")
		err = p.ProcessConcurrent(context.Background(), items,
			func(_ context.Context, _ []int, idx int) error {
				if idx == 3 {
					return boom
				}
				return nil
			}, 4)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("non-positive concurrency degrades to one", func(t *testing.T) {
		p, err := NewProcessor[int](64)
		require.NoError(t, err)
		err = p.ProcessConcurrent(context.Background(), items,
			func(_ context.Context, _ []int, _ int) error { return nil }, 0)
		assert.NoError(t, err)
	})
}

func TestProgressReporting(t *testing.T) {
	items := make([]int, 130)
	p, err := NewProcessor[int](50)
	require.NoError(t, err)

	var processed []int
	p = p.WithProgress(func(progress *Progress) {
		processed = append(processed, progress.Processed())
	})

	err = p.Process(context.Background(), items, func(_ context.Context, _ []int, _ int) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{50, 100, 130}, processed)
}

func TestProgress(t *testing.T) {
	progress := NewProgress(200, 2)
	assert.Equal(t, 200, progress.Total())
	assert.Zero(t, progress.PercentComplete())
	assert.False(t, progress.IsComplete())

	progress.AddProcessed(100)
	assert.InDelta(t, 50.0, progress.PercentComplete(), 1e-9)

	progress.AddProcessed(100)
	assert.True(t, progress.IsComplete())
	assert.Equal(t, 200, progress.Processed())
}

func TestProgressZeroItems(t *testing.T) {
	progress := NewProgress(0, 0)
	assert.Zero(t, progress.PercentComplete())
	assert.True(t, progress.IsComplete())
}
