// FilePath: internal/prediction/predictor.go
package prediction

import (
	"context"
	"math"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/config"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/parking"
)

// historySampleLimit bounds how many samples one day/hour slot contributes.
const historySampleLimit = 500

// Predictor forecasts lot occupancy by blending the live aggregate baseline
// with the historical day-of-week/hour pattern model. It is a heuristic, not
// a trained model: sparse history silently degrades to the baseline.
type Predictor struct {
	svc *parking.Service
	cfg config.ParkingConfig
}

// New creates a predictor over the parking service.
func New(svc *parking.Service, cfg config.ParkingConfig) *Predictor {
	return &Predictor{svc: svc, cfg: cfg}
}

// Predict forecasts occupancy for a lot at the target time. An unknown lot
// is the one failure surfaced to the caller; history trouble never is.
func (p *Predictor) Predict(ctx context.Context, lotID string, target time.Time) (*models.Prediction, error) {
	lot, err := p.svc.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	occupancy := lot.Occupancy()
	confidence := p.cfg.BaselineConfidence

	records, err := p.svc.History().ListByDayHour(ctx, lotID, int(target.Weekday()), target.Hour(), historySampleLimit)
	if err != nil {
		nuts.L.Warnf("[Predictor] History lookup failed for lot %s, using baseline only: %v", lotID, err)
		records = nil
	}

	if len(records) >= p.cfg.MinHistorySamples {
		var sum float64
		for _, r := range records {
			sum += r.OccupancyPct
		}
		historicalMean := sum / float64(len(records))

		// The historical model's share grows with sample count and
		// dominates when samples are abundant.
		weight := float64(len(records)) / float64(len(records)+p.cfg.MinHistorySamples)
		occupancy = weight*historicalMean + (1-weight)*occupancy
		confidence = math.Min(1.0, p.cfg.BaselineConfidence+float64(len(records))/100)
	}

	occupancy = math.Max(0, math.Min(100, occupancy))

	return &models.Prediction{
		LotID:              lotID,
		PredictedOccupancy: occupancy,
		Confidence:         confidence,
		Timestamp:          target,
		Recommendation:     recommendationFor(occupancy),
	}, nil
}

// PredictForTimeSlots forecasts each requested slot independently,
// preserving input order. An unknown lot fails the whole batch; no slot is
// silently dropped.
func (p *Predictor) PredictForTimeSlots(ctx context.Context, lotID string, times []time.Time) ([]*models.Prediction, error) {
	predictions := make([]*models.Prediction, 0, len(times))
	for _, t := range times {
		prediction, err := p.Predict(ctx, lotID, t)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	return predictions, nil
}

// ConfidenceLevel buckets a confidence score for display. Band lower bounds
// are inclusive.
func ConfidenceLevel(confidence float64) models.ConfidenceLevel {
	switch {
	case confidence >= 0.8:
		return models.ConfidenceHigh
	case confidence >= 0.6:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func recommendationFor(occupancy float64) string {
	switch {
	case occupancy < 50:
		return "Plenty of spots expected."
	case occupancy < 75:
		return "Moderate demand expected; arriving a little early helps."
	case occupancy < 90:
		return "Filling up; keep a backup lot in mind."
	default:
		return "Likely full; consider an alternative lot."
	}
}
