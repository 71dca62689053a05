// FilePath: internal/monitor/scheduler.go
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/alerts"
	"github.com/campuscompass/parkhub/internal/parking"
	"github.com/campuscompass/parkhub/internal/repository"
)

// Scheduler periodically triggers the alert engine's evaluation pass,
// independent of any caller lifecycle. Start is idempotent (a second call
// while running is a no-op), Stop cancels the timer before its next tick,
// and a pass still in flight causes the overlapping tick to be skipped
// rather than stacking concurrent passes.
type Scheduler struct {
	engine  *alerts.Engine
	svc     *parking.Service
	history repository.HistoryRepository

	retention time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool

	inFlight atomic.Bool
	passes   atomic.Int64
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(engine *alerts.Engine, svc *parking.Service, history repository.HistoryRepository, retention time.Duration) *Scheduler {
	return &Scheduler{
		engine:    engine,
		svc:       svc,
		history:   history,
		retention: retention,
	}
}

// Start triggers one immediate evaluation pass and then re-triggers every
// intervalMinutes. Calling Start while running does not create a second
// timer.
func (s *Scheduler) Start(intervalMinutes int) {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}
	s.startEvery(time.Duration(intervalMinutes) * time.Minute)
}

func (s *Scheduler) startEvery(interval time.Duration) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		nuts.L.Warnf("[Scheduler] Already running, ignoring start request")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	nuts.L.Infof("[Scheduler] Monitoring every %s", interval)
	go s.run(ctx, interval)
}

// Stop cancels the timer. Elapsed time after Stop produces no further
// passes. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.cancel = nil
	s.running = false
	nuts.L.Infof("[Scheduler] Monitoring stopped")
}

// IsRunning reports whether the timer is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Passes reports how many evaluation passes have completed.
func (s *Scheduler) Passes() int64 {
	return s.passes.Load()
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration) {
	s.pass(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pass(ctx)
		}
	}
}

func (s *Scheduler) pass(ctx context.Context) {
	// Skip the tick when the previous pass has not finished.
	if !s.inFlight.CompareAndSwap(false, true) {
		nuts.L.Warnf("[Scheduler] Previous evaluation pass still running, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	s.engine.EvaluateAll(ctx)
	s.retain(ctx)
	s.passes.Add(1)
}

// retain prunes crowd reports that fell out of the recency window and
// history samples past the retention horizon.
func (s *Scheduler) retain(ctx context.Context) {
	s.svc.PruneUpdates(ctx)
	if s.retention <= 0 {
		return
	}
	if _, err := s.history.DeleteOlderThan(ctx, time.Now().Add(-s.retention)); err != nil {
		nuts.L.Warnf("[Scheduler] History retention cleanup failed: %v", err)
	}
}
