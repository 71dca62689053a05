// FilePath: internal/models/models.update.go
package models

import "time"

// AnonymousReporter is the default identity attached to crowd reports that
// arrive without one.
const AnonymousReporter = "anonymous"

// ParkingUpdate is a single crowd report of observed availability for a lot.
// Updates are immutable once created and retained append-only within the
// recency window.
type ParkingUpdate struct {
	ID             string    `json:"id"`
	LotID          string    `json:"lot_id"`
	AvailableSpots int       `json:"available_spots"`
	ReportedBy     string    `json:"reported_by"`
	Timestamp      time.Time `json:"timestamp"`
	Confidence     float64   `json:"confidence"` // 0-1, assigned at write time
}

// ParkingHistoryRecord is the derived training sample persisted alongside
// each report, keyed by day-of-week and hour for the historical model.
type ParkingHistoryRecord struct {
	ID           string    `json:"id" db:"id"`
	LotID        string    `json:"lot_id" db:"lot_id"`
	DayOfWeek    int       `json:"day_of_week" db:"day_of_week"` // 0-6, 0=Sunday
	Hour         int       `json:"hour" db:"hour"`               // 0-23
	OccupancyPct float64   `json:"occupancy_pct" db:"occupancy_pct"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}
