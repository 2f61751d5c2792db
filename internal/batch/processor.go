// Package batch provides a generic fixed-size batch processor used to fan
// simulation trials out across workers. Batches can run sequentially or with
// a bounded concurrency, and a progress callback reports completion for UI
// and logging consumers.
package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch sizing limits.
const (
	// DefaultBatchSize is the default number of items per batch.
	DefaultBatchSize = 100

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 10_000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 10000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Callback processes a single batch of items. batchIndex is zero-based.
type Callback[T any] func(ctx context.Context, batch []T, batchIndex int) error

// ProgressFunc is invoked after each batch completes. Implementations must
// be safe for concurrent use when batches run concurrently.
type ProgressFunc func(progress *Progress)

// Processor splits a slice into fixed-size batches and runs a callback over
// them. The zero value is not usable; construct with NewProcessor.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressFunc
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with the default batch size.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgress sets the progress callback and returns the processor for
// chaining.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Process runs the callback over each batch sequentially, stopping at the
// first error or when ctx is canceled.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}

	bounds := p.bounds(len(items))
	progress := NewProgress(len(items), len(bounds))

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk := items[b[0]:b[1]]
		if err := callback(ctx, chunk, i); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}

		progress.AddProcessed(len(chunk))
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}

	return nil
}

// ProcessConcurrent runs batches with at most maxConcurrency in flight.
// The first batch error cancels the remaining batches.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	bounds := p.bounds(len(items))
	progress := NewProgress(len(items), len(bounds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, b := range bounds {
		chunk := items[b[0]:b[1]]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := callback(gctx, chunk, i); err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			progress.AddProcessed(len(chunk))
			if p.onProgress != nil {
				p.onProgress(progress)
			}
			return nil
		})
	}

	return g.Wait()
}

// bounds returns [start, end) index pairs covering totalItems.
func (p *Processor[T]) bounds(totalItems int) [][2]int {
	total := totalItems / p.batchSize
	if totalItems%p.batchSize > 0 {
		total++
	}

	out := make([][2]int, total)
	for i := range out {
		start := i * p.batchSize
		end := start + p.batchSize
		if end > totalItems {
			end = totalItems
		}
		out[i] = [2]int{start, end}
	}
	return out
}
