// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campuscompass/parkhub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// UpdateRepository stores the append-only crowd report log per lot. Reports
// within a lot are monotonically non-decreasing in timestamp; pruning drops
// old reports but never reorders them.
type UpdateRepository interface {
	Append(ctx context.Context, update *models.ParkingUpdate) error
	// ListRecent returns updates for the lot with Timestamp >= since, in
	// ascending timestamp order.
	ListRecent(ctx context.Context, lotID string, since time.Time) ([]models.ParkingUpdate, error)
	// PruneBefore drops updates older than cutoff from the retained window.
	PruneBefore(ctx context.Context, lotID string, cutoff time.Time) error
}

// HistoryRepository stores the derived day-of-week/hour training set for the
// prediction engine.
type HistoryRepository interface {
	Append(ctx context.Context, record *models.ParkingHistoryRecord) error
	ListByDayHour(ctx context.Context, lotID string, dayOfWeek, hour, limit int) ([]models.ParkingHistoryRecord, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// VehicleRepository stores at most one parked-vehicle record per user.
type VehicleRepository interface {
	Save(ctx context.Context, vehicle *models.ParkedVehicle) error
	Get(ctx context.Context, userID string) (*models.ParkedVehicle, error)
	Clear(ctx context.Context, userID string) error
}
