package batch

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Progress tracks completion of a batch run. All methods are safe for
// concurrent use.
type Progress struct {
	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	startTime        time.Time

	mu sync.RWMutex
}

// NewProgress creates a progress tracker for the given totals.
func NewProgress(totalItems, totalBatches int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		startTime:    time.Now(),
	}
}

// AddProcessed records the completion of one batch of the given size.
func (p *Progress) AddProcessed(items int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += items
	p.processedBatches++
}

// Processed returns the number of items completed so far.
func (p *Progress) Processed() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedItems
}

// Total returns the total number of items in the run.
func (p *Progress) Total() int {
	return p.totalItems
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}

// IsComplete reports whether every item has been processed.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedItems >= p.totalItems
}

// Elapsed returns the time since the run started.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// ItemsPerSecond returns the observed processing rate.
func (p *Progress) ItemsPerSecond() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	elapsed := time.Since(p.startTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(p.processedItems) / elapsed
}
