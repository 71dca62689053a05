// FilePath: internal/models/models.prediction.go
package models

import "time"

// ConfidenceLevel buckets a 0-1 confidence score for display.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Prediction is an on-demand occupancy forecast for a lot. Timestamp is the
// target time the prediction is for, not the time of computation. Predictions
// are ephemeral and never persisted as authoritative state.
type Prediction struct {
	LotID              string    `json:"lot_id"`
	PredictedOccupancy float64   `json:"predicted_occupancy"` // 0-100
	Confidence         float64   `json:"confidence"`          // 0-1
	Timestamp          time.Time `json:"timestamp"`
	Recommendation     string    `json:"recommendation"`
}
