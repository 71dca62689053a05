// FilePath: internal/models/models.lot.go
package models

import "time"

// LotType categorizes a parking lot
type LotType string

const (
	LotTypeStudent  LotType = "student"
	LotTypeStaff    LotType = "staff"
	LotTypeVisitor  LotType = "visitor"
	LotTypeMixed    LotType = "mixed"
	LotTypeResident LotType = "resident"
)

// ParkingLot is a static catalog entity. AvailableSpots and LastUpdated are
// the only fields mutated at runtime, exclusively by the aggregation engine.
type ParkingLot struct {
	ID             string         `json:"id" db:"id" yaml:"id"`
	Name           string         `json:"name" db:"name" yaml:"name"`
	Latitude       float64        `json:"latitude" db:"latitude" yaml:"latitude"`
	Longitude      float64        `json:"longitude" db:"longitude" yaml:"longitude"`
	TotalSpots     int            `json:"total_spots" db:"total_spots" yaml:"total_spots"`
	AvailableSpots int            `json:"available_spots" db:"available_spots" yaml:"available_spots"`
	Type           LotType        `json:"type" db:"type" yaml:"type"`
	IsAccessible   bool           `json:"is_accessible" db:"is_accessible" yaml:"is_accessible"`
	OperatingHours OperatingHours `json:"operating_hours" yaml:"operating_hours"`
	PeakHours      []PeakHour     `json:"peak_hours" yaml:"peak_hours"`
	LastUpdated    time.Time      `json:"last_updated" db:"last_updated" yaml:"-"`
}

// OperatingHours is a weekly open/close schedule keyed by weekday (0=Sunday).
type OperatingHours struct {
	Weekdays string `json:"weekdays" yaml:"weekdays"`
	Weekends string `json:"weekends" yaml:"weekends"`
}

// PeakHour marks a recurring busy window for a lot.
type PeakHour struct {
	DayOfWeek        int `json:"day_of_week" yaml:"day_of_week"` // 0-6, 0=Sunday
	StartHour        int `json:"start_hour" yaml:"start_hour"`
	EndHour          int `json:"end_hour" yaml:"end_hour"`
	AverageOccupancy int `json:"average_occupancy" yaml:"average_occupancy"` // 0-100
}

// Occupancy returns the occupancy percentage implied by the lot's current
// available-spot count.
func (l *ParkingLot) Occupancy() float64 {
	if l.TotalSpots <= 0 {
		return 0
	}
	return (1 - float64(l.AvailableSpots)/float64(l.TotalSpots)) * 100
}
