package sched

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"premium-store/internal/infra/metrics"
)

// PoolStater is satisfied by *pgxpool.Pool.
type PoolStater interface {
	Stat() *pgxpool.Stat
}

// ReportPoolStats publishes connection pool gauges every interval until ctx
// is done.
func ReportPoolStats(ctx context.Context, pool PoolStater, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		publishPoolStats(pool)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func publishPoolStats(pool PoolStater) {
	s := pool.Stat()
	metrics.SetDBPoolStats(s.TotalConns(), s.IdleConns(), s.AcquiredConns())
}
