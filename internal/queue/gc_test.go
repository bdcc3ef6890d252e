package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPurger struct {
	calls     int
	retention time.Duration
	purged    int
	err       error
}

func (p *recordingPurger) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	p.calls++
	p.retention = retention
	return p.purged, p.err
}

func TestGarbageCollector_NilPurgerIsNoOp(t *testing.T) {
	t.Parallel()

	gc := NewGarbageCollector(nil, zap.NewNop(), time.Minute, 24*time.Hour)
	if err := gc.collect(context.Background()); err != nil {
		t.Errorf("collect with nil purger: %v", err)
	}
}

func TestGarbageCollector_PassesRetentionAndLogsPurge(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	purger := &recordingPurger{purged: 3}
	gc := NewGarbageCollector(purger, zap.New(core), time.Minute, 24*time.Hour)

	if err := gc.collect(context.Background()); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if purger.calls != 1 {
		t.Errorf("PurgeOlderThan called %d times, want 1", purger.calls)
	}
	if purger.retention != 24*time.Hour {
		t.Errorf("retention = %v, want 24h", purger.retention)
	}

	entries := logs.FilterMessage("dlq_purged").All()
	if len(entries) != 1 {
		t.Fatalf("got %d dlq_purged entries, want 1", len(entries))
	}
	if n := entries[0].ContextMap()["messages"]; n != int64(3) {
		t.Errorf("logged messages = %v, want 3", n)
	}
}

func TestGarbageCollector_NothingPurgedStaysQuiet(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	gc := NewGarbageCollector(&recordingPurger{}, zap.New(core), time.Minute, time.Hour)

	if err := gc.collect(context.Background()); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("empty purge produced %d log entries", logs.Len())
	}
}

func TestGarbageCollector_PurgerErrorSurfaces(t *testing.T) {
	t.Parallel()

	gc := NewGarbageCollector(&recordingPurger{err: errors.New("channel closed")}, zap.NewNop(), time.Minute, time.Hour)
	if err := gc.collect(context.Background()); err == nil {
		t.Error("expected error from collect")
	}
}

func TestGarbageCollector_StartStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	gc := NewGarbageCollector(&recordingPurger{}, zap.NewNop(), 24*time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := gc.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}
