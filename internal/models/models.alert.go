// FilePath: internal/models/models.alert.go
package models

import "time"

// AlertThreshold configures alerting for one lot. Entries live for the
// process lifetime; there is no deletion state, only enabled/disabled.
type AlertThreshold struct {
	LotID     string  `json:"lot_id"`
	Threshold float64 `json:"threshold"` // occupancy percentage, 0-100
	Enabled   bool    `json:"enabled"`
}

// NotificationKind distinguishes why an alert fired.
type NotificationKind string

const (
	NotificationThreshold  NotificationKind = "threshold"
	NotificationPredictive NotificationKind = "predictive"
	NotificationRapidFill  NotificationKind = "rapid_fill"
)

// Notification is a best-effort, fire-and-forget alert payload handed to the
// platform dispatcher.
type Notification struct {
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	LotID     string           `json:"lot_id"`
	Kind      NotificationKind `json:"kind"`
	CreatedAt time.Time        `json:"created_at"`
}
