package worker

import (
	"context"
	"time"

	"github.com/JMURv/club-auth/internal/config"
	metrics "github.com/JMURv/club-auth/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type SessionSweeper interface {
	DeleteStaleSessions(ctx context.Context, retention time.Duration) (int64, error)
}

// Cleanup periodically removes terminal session rows past the retention
// window. Runs are independent and idempotent, a failed run is logged
// and retried on the next tick.
type Cleanup struct {
	store     SessionSweeper
	interval  time.Duration
	retention time.Duration
}

func New(store SessionSweeper, conf config.CleanupConfig) *Cleanup {
	return &Cleanup{
		store:     store,
		interval:  conf.Interval,
		retention: conf.Retention,
	}
}

func (c *Cleanup) Start(ctx context.Context) {
	zap.L().Info(
		"Starting session cleanup worker",
		zap.Duration("interval", c.interval),
		zap.Duration("retention", c.retention),
	)

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Session cleanup worker stopped")
			return
		case <-t.C:
			c.run(ctx)
		}
	}
}

func (c *Cleanup) run(ctx context.Context) {
	const op = "sessions.cleanup.worker"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	deleted, err := c.store.DeleteStaleSessions(ctx, c.retention)
	metrics.ObserveCleanup(deleted, err)
	if err != nil {
		span.SetTag("error", true)
		zap.L().Error("failed to delete stale sessions", zap.String("op", op), zap.Error(err))
		return
	}

	if deleted > 0 {
		zap.L().Info(
			"deleted stale sessions",
			zap.String("op", op),
			zap.Int64("count", deleted),
		)
	}
}
