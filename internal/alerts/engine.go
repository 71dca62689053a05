// FilePath: internal/alerts/engine.go
package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/config"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/parking"
	"github.com/campuscompass/parkhub/internal/prediction"
)

// Engine owns the per-lot alert thresholds and evaluates current and
// predicted occupancy against them. Thresholds live on the engine instance
// (injected into the scheduler), not in process-wide state; entries persist
// for the process lifetime with no deletion state.
type Engine struct {
	svc       *parking.Service
	predictor *prediction.Predictor
	notifier  Notifier
	cfg       config.ParkingConfig
	events    *nuts.EventEmitter

	mu         sync.RWMutex
	thresholds map[string]models.AlertThreshold

	permissionGranted bool
}

// NewEngine creates the alert engine.
func NewEngine(svc *parking.Service, predictor *prediction.Predictor, notifier Notifier, cfg config.ParkingConfig) *Engine {
	return &Engine{
		svc:        svc,
		predictor:  predictor,
		notifier:   notifier,
		cfg:        cfg,
		events:     nuts.NewEventEmitter(),
		thresholds: make(map[string]models.AlertThreshold),
	}
}

// Initialize requests notification permission from the dispatcher and
// reports whether it was granted. Denial is tolerated, never raised.
func (e *Engine) Initialize(ctx context.Context) bool {
	granted, err := e.notifier.RequestPermission(ctx)
	if err != nil {
		nuts.L.Warnf("[AlertEngine] Notification permission request failed: %v", err)
		granted = false
	}
	e.mu.Lock()
	e.permissionGranted = granted
	e.mu.Unlock()
	nuts.L.Infof("[AlertEngine] Notification permission granted: %t", granted)
	return granted
}

// SetThreshold creates or overwrites the threshold entry for a lot.
// Repeated calls are last-write-wins.
func (e *Engine) SetThreshold(lotID string, threshold float64, enabled bool) {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 100 {
		threshold = 100
	}
	e.mu.Lock()
	e.thresholds[lotID] = models.AlertThreshold{
		LotID:     lotID,
		Threshold: threshold,
		Enabled:   enabled,
	}
	e.mu.Unlock()
}

// SetEnabled flips monitoring for a lot, lazily creating a default-threshold
// entry if none exists.
func (e *Engine) SetEnabled(lotID string, enabled bool) {
	e.mu.Lock()
	entry, ok := e.thresholds[lotID]
	if !ok {
		entry = models.AlertThreshold{
			LotID:     lotID,
			Threshold: e.cfg.DefaultAlertThreshold,
		}
	}
	entry.Enabled = enabled
	e.thresholds[lotID] = entry
	e.mu.Unlock()
}

// GetThreshold returns the lot's entry, or the disabled default when none
// has been set (without creating one).
func (e *Engine) GetThreshold(lotID string) models.AlertThreshold {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if entry, ok := e.thresholds[lotID]; ok {
		return entry
	}
	return models.AlertThreshold{
		LotID:     lotID,
		Threshold: e.cfg.DefaultAlertThreshold,
	}
}

// ThresholdCount reports the number of stored entries.
func (e *Engine) ThresholdCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.thresholds)
}

// EvaluateAll runs one alerting pass over the whole catalog. Lot fetching
// degrades internally to seed values, so the pass always completes; a
// failure to dispatch one notification never aborts the rest.
func (e *Engine) EvaluateAll(ctx context.Context) {
	for _, lot := range e.svc.GetLots(ctx) {
		entry := e.GetThreshold(lot.ID)
		if !entry.Enabled {
			continue
		}
		occupancy := lot.Occupancy()
		if occupancy < entry.Threshold {
			continue
		}
		e.dispatch(ctx, models.Notification{
			Title:     "Parking alert: " + lot.Name,
			Body:      fmt.Sprintf("%s is %.0f%% full (threshold %.0f%%).", lot.Name, occupancy, entry.Threshold),
			LotID:     lot.ID,
			Kind:      models.NotificationThreshold,
			CreatedAt: time.Now(),
		})
	}
}

// SendPredictiveAlert forecasts occupancy minutesAhead from now and
// dispatches only when the forecast meets the lot's threshold (default when
// unset). Everything else, including prediction failure, is a silent no-op.
func (e *Engine) SendPredictiveAlert(ctx context.Context, lotID string, minutesAhead int) {
	target := time.Now().Add(time.Duration(minutesAhead) * time.Minute)
	forecast, err := e.predictor.Predict(ctx, lotID, target)
	if err != nil {
		nuts.L.Warnf("[AlertEngine] Predictive alert skipped for lot %s: %v", lotID, err)
		return
	}

	entry := e.GetThreshold(lotID)
	if forecast.PredictedOccupancy < entry.Threshold {
		return
	}

	e.dispatch(ctx, models.Notification{
		Title: "Parking forecast",
		Body: fmt.Sprintf("Lot %s is expected to reach %.0f%% occupancy in %d minutes.",
			lotID, forecast.PredictedOccupancy, minutesAhead),
		LotID:     lotID,
		Kind:      models.NotificationPredictive,
		CreatedAt: time.Now(),
	})
}

// CheckRapidFillUp inspects the recent report window and alerts when spots
// are disappearing faster than the configured rate. Fewer than two
// qualifying reports means no signal and no alert.
func (e *Engine) CheckRapidFillUp(ctx context.Context, lotID string) {
	updates, err := e.svc.RecentUpdates(ctx, lotID, e.cfg.RapidFillWindow)
	if err != nil {
		nuts.L.Warnf("[AlertEngine] Rapid-fill check skipped for lot %s: %v", lotID, err)
		return
	}
	if len(updates) < 2 {
		return
	}

	earliest := updates[0]
	latest := updates[len(updates)-1]
	minutes := latest.Timestamp.Sub(earliest.Timestamp).Minutes()
	if minutes <= 0 {
		return
	}

	rate := float64(earliest.AvailableSpots-latest.AvailableSpots) / minutes
	if rate <= e.cfg.RapidFillRate {
		return
	}

	e.dispatch(ctx, models.Notification{
		Title: "Lot filling up fast",
		Body: fmt.Sprintf("Lot %s is losing %.1f spots/minute; only %d spots were last reported.",
			lotID, rate, latest.AvailableSpots),
		LotID:     lotID,
		Kind:      models.NotificationRapidFill,
		CreatedAt: time.Now(),
	})
}

// OnAlert registers a callback invoked after each dispatched notification.
func (e *Engine) OnAlert(handler func(n models.Notification)) {
	e.events.On("alert.dispatched", "alert_handler", func(n models.Notification) {
		handler(n)
	})
}

func (e *Engine) dispatch(ctx context.Context, n models.Notification) {
	if err := e.notifier.Schedule(ctx, n); err != nil {
		// Alert delivery is best-effort; log and move on.
		nuts.L.Warnf("[AlertEngine] Failed to dispatch %s alert for lot %s: %v", n.Kind, n.LotID, err)
		return
	}
	e.events.Emit("alert.dispatched", n)
}
