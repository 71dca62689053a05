// FilePath: internal/models/models.vehicle.go
package models

import "time"

// ParkedVehicle records where a single user left their car. Written on
// "I parked here", read or cleared on demand.
type ParkedVehicle struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	LotID      string    `json:"lot_id"`
	SpotNumber string    `json:"spot_number,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	ParkedAt   time.Time `json:"parked_at"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
}
