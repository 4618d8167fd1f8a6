package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
)

// SessionStore is what the sweeper needs from the storefront session store.
type SessionStore interface {
	// Sweep drops sessions idle since before cutoff and returns how many
	// were removed.
	Sweep(cutoff time.Time) int
	Len() int
}

// SessionSweeper periodically evicts idle storefront sessions.
type SessionSweeper struct {
	interval time.Duration
	idle     time.Duration
	store    SessionStore
	now      func() time.Time
	log      *zerolog.Logger
}

func NewSessionSweeper(interval, idle time.Duration, store SessionStore, logger *zerolog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	l := logging.OrNop(logger).With().Str("component", "SessionSweeper").Logger()
	return &SessionSweeper{
		interval: interval,
		idle:     idle,
		store:    store,
		now:      time.Now,
		log:      &l,
	}
}

func (w *SessionSweeper) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("idle", w.idle).Msg("Starting session sweeper")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping session sweeper")
			return ctx.Err()
		case <-ticker.C:
			w.SweepOnce()
		}
	}
}

// SweepOnce runs a single eviction pass and returns the number removed.
func (w *SessionSweeper) SweepOnce() int {
	n := w.store.Sweep(w.now().Add(-w.idle))
	metrics.SetSessionsActive(w.store.Len())
	if n > 0 {
		w.log.Info().Int("count", n).Msg("idle sessions evicted")
	}
	return n
}
