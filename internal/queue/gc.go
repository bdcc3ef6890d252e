package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// purgeTimeout bounds a single purge pass.
const purgeTimeout = 2 * time.Minute

// GarbageCollector periodically drops dead-lettered schedule jobs that have
// aged past the retention window, so a stalled consumer cannot grow the DLQ
// without bound.
type GarbageCollector struct {
	purger    DLQPurger
	logger    *zap.Logger
	interval  time.Duration
	retention time.Duration
}

// NewGarbageCollector wires a collector around purger. A nil purger makes
// every pass a no-op, which lets callers construct one unconditionally.
func NewGarbageCollector(purger DLQPurger, logger *zap.Logger, interval, retention time.Duration) *GarbageCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GarbageCollector{
		purger:    purger,
		logger:    logger,
		interval:  interval,
		retention: retention,
	}
}

// Start runs purge passes on the configured interval until ctx is cancelled.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	ticker := time.NewTicker(gc.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := gc.collect(ctx); err != nil {
				gc.logger.Error("dlq_purge_failed", zap.Error(err))
			}
		}
	}
}

func (gc *GarbageCollector) collect(ctx context.Context) error {
	if gc.purger == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()
	n, err := gc.purger.PurgeOlderThan(ctx, gc.retention)
	if err != nil {
		return fmt.Errorf("DLQ purge: %w", err)
	}
	if n > 0 {
		gc.logger.Info("dlq_purged",
			zap.Int("messages", n),
			zap.Duration("retention", gc.retention),
		)
	}
	return nil
}
