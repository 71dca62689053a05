// FilePath: internal/parking/service.reporting.go
package parking

import (
	"context"
	"math"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/models"
)

// ReportAvailability accepts a crowd report of observed free spots for a
// lot. Out-of-range counts and unknown lots are rejected at the boundary
// (returns false, no write). Storage failures also come back as false and
// never propagate. Confidence is assigned at write time; recency decay is
// applied when the log is folded at read time.
func (s *Service) ReportAvailability(ctx context.Context, lotID string, availableSpots int, reporterID string) bool {
	lot, ok := s.catalog.Get(lotID)
	if !ok {
		nuts.L.Warnf("[ParkingService] Rejected report for unknown lot %s", lotID)
		return false
	}
	if availableSpots < 0 || availableSpots > lot.TotalSpots {
		nuts.L.Warnf("[ParkingService] Rejected out-of-range report for lot %s: %d (total %d)",
			lotID, availableSpots, lot.TotalSpots)
		return false
	}
	if reporterID == "" {
		reporterID = models.AnonymousReporter
	}

	now := time.Now()
	update := &models.ParkingUpdate{
		ID:             nuts.NID("pu", 12),
		LotID:          lotID,
		AvailableSpots: availableSpots,
		ReportedBy:     reporterID,
		Timestamp:      now,
		Confidence:     1.0,
	}

	if err := s.updates.Append(ctx, update); err != nil {
		nuts.L.Errorf("[ParkingService] Failed to persist report for lot %s: %v", lotID, err)
		return false
	}

	// Derived training sample for the historical model. This is a secondary
	// write: losing it degrades future predictions, not the report itself.
	occupancy := (1 - float64(availableSpots)/float64(lot.TotalSpots)) * 100
	record := &models.ParkingHistoryRecord{
		ID:           nuts.NID("ph", 12),
		LotID:        lotID,
		DayOfWeek:    int(now.Weekday()),
		Hour:         now.Hour(),
		OccupancyPct: occupancy,
		Timestamp:    now,
	}
	if err := s.history.Append(ctx, record); err != nil {
		nuts.L.Warnf("[ParkingService] Failed to append history record for lot %s: %v", lotID, err)
	}

	return true
}

// GetLots returns the catalog with each lot's AvailableSpots overwritten by
// the recency-weighted consensus of retained reports. Lots without
// qualifying reports keep their seed value; storage errors degrade to the
// seed as well. Never errors.
func (s *Service) GetLots(ctx context.Context) []models.ParkingLot {
	lots := s.catalog.Lots()
	for i := range lots {
		spots, lastUpdated, sampleCount := s.aggregateLot(ctx, &lots[i])
		if sampleCount == 0 {
			continue
		}
		lots[i].AvailableSpots = spots
		lots[i].LastUpdated = lastUpdated
	}
	return lots
}

// GetLot returns a single lot with aggregation applied. The unknown-lot case
// is the one surfaced failure in this engine.
func (s *Service) GetLot(ctx context.Context, lotID string) (models.ParkingLot, error) {
	lot, ok := s.catalog.Get(lotID)
	if !ok {
		return models.ParkingLot{}, errors.NewNotFoundError("parking lot not found: "+lotID, nil)
	}
	spots, lastUpdated, sampleCount := s.aggregateLot(ctx, &lot)
	if sampleCount > 0 {
		lot.AvailableSpots = spots
		lot.LastUpdated = lastUpdated
	}
	return lot, nil
}

// RecentUpdates returns the retained reports for a lot inside the given
// window, oldest first.
func (s *Service) RecentUpdates(ctx context.Context, lotID string, window time.Duration) ([]models.ParkingUpdate, error) {
	return s.updates.ListRecent(ctx, lotID, time.Now().Add(-window))
}

// PruneUpdates drops reports that fell out of the recency window.
func (s *Service) PruneUpdates(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.RecencyWindow)
	for _, lot := range s.catalog.Lots() {
		if err := s.updates.PruneBefore(ctx, lot.ID, cutoff); err != nil {
			nuts.L.Warnf("[ParkingService] Failed to prune updates for lot %s: %v", lot.ID, err)
		}
	}
}

// aggregateLot folds the retained report log into a consensus spot count:
// a weighted mean with weight exp(-age/halfLife) so recent reports dominate.
func (s *Service) aggregateLot(ctx context.Context, lot *models.ParkingLot) (spots int, lastUpdated time.Time, sampleCount int) {
	now := time.Now()
	updates, err := s.updates.ListRecent(ctx, lot.ID, now.Add(-s.cfg.RecencyWindow))
	if err != nil {
		nuts.L.Warnf("[ParkingService] Aggregation read failed for lot %s, using seed value: %v", lot.ID, err)
		return 0, time.Time{}, 0
	}
	if len(updates) == 0 {
		return 0, time.Time{}, 0
	}

	var weightedSum, weightTotal float64
	for _, u := range updates {
		age := now.Sub(u.Timestamp)
		if age < 0 {
			age = 0
		}
		weight := math.Exp(-age.Seconds()/s.cfg.RecencyHalfLife.Seconds()) * u.Confidence
		weightedSum += weight * float64(u.AvailableSpots)
		weightTotal += weight
		if u.Timestamp.After(lastUpdated) {
			lastUpdated = u.Timestamp
		}
	}
	if weightTotal <= 0 {
		return 0, time.Time{}, 0
	}

	consensus := int(math.Round(weightedSum / weightTotal))
	if consensus < 0 {
		consensus = 0
	}
	if consensus > lot.TotalSpots {
		consensus = lot.TotalSpots
	}
	return consensus, lastUpdated, len(updates)
}
