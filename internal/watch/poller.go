// Package watch turns modification-time changes of the parameter document
// into recompute events. The core model never touches the filesystem; this
// poller is the explicit external trigger source feeding it.
package watch

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/chargefleet/chargefleet/internal/logging"
)

// DefaultInterval is the poll cadence used when none is configured.
const DefaultInterval = 2 * time.Second

// ErrNoCallback is returned when Run is started without a callback.
var ErrNoCallback = errors.New("watch callback cannot be nil")

// Callback receives recompute triggers. The first call fires immediately on
// start; subsequent calls fire when the watched file's mtime advances.
type Callback func(ctx context.Context) error

// Poller watches one file's modification time.
type Poller struct {
	path     string
	interval time.Duration
	lastMod  time.Time
}

// NewPoller creates a poller for path. Non-positive intervals use
// DefaultInterval.
func NewPoller(path string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{path: path, interval: interval}
}

// Run fires the callback once immediately, then on every observed mtime
// advance, until ctx is canceled. A missing or unreadable file is logged
// and skipped rather than treated as fatal: the document may be mid-save.
// Callback errors stop the loop and are returned.
func (p *Poller) Run(ctx context.Context, callback Callback) error {
	if callback == nil {
		return ErrNoCallback
	}
	log := logging.FromContext(ctx)

	if info, err := os.Stat(p.path); err == nil {
		p.lastMod = info.ModTime()
	}
	if err := callback(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(p.path)
			if err != nil {
				log.Warn().
					Str("component", "watch").
					Str("path", p.path).
					Err(err).
					Msg("cannot stat watched document")
				continue
			}
			if !info.ModTime().After(p.lastMod) {
				continue
			}
			p.lastMod = info.ModTime()

			log.Info().
				Str("component", "watch").
				Str("path", p.path).
				Time("modified", info.ModTime()).
				Msg("document changed, recomputing")

			if err := callback(ctx); err != nil {
				return err
			}
		}
	}
}
