// FilePath: internal/parking/service.vehicles.go
package parking

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/repository"
)

// SaveVehicle records where a user parked. The lot must exist; everything
// else defaults.
func (s *Service) SaveVehicle(ctx context.Context, vehicle *models.ParkedVehicle) error {
	if vehicle == nil || vehicle.LotID == "" {
		return errors.NewValidationError("vehicle location requires a lot id", nil)
	}
	lot, ok := s.catalog.Get(vehicle.LotID)
	if !ok {
		return errors.NewNotFoundError("parking lot not found: "+vehicle.LotID, nil)
	}

	if vehicle.UserID == "" {
		vehicle.UserID = models.AnonymousReporter
	}
	if vehicle.ID == "" {
		vehicle.ID = nuts.NID("veh", 12)
	}
	if vehicle.ParkedAt.IsZero() {
		vehicle.ParkedAt = time.Now()
	}
	if vehicle.Latitude == 0 && vehicle.Longitude == 0 {
		vehicle.Latitude = lot.Latitude
		vehicle.Longitude = lot.Longitude
	}

	if err := s.vehicles.Save(ctx, vehicle); err != nil {
		return errors.NewStorageError("failed to save vehicle location", err)
	}
	nuts.L.Infof("[ParkingService] Saved vehicle location for %s in lot %s", vehicle.UserID, vehicle.LotID)
	return nil
}

// GetVehicle returns the user's parked-vehicle record.
func (s *Service) GetVehicle(ctx context.Context, userID string) (*models.ParkedVehicle, error) {
	if userID == "" {
		userID = models.AnonymousReporter
	}
	vehicle, err := s.vehicles.Get(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, errors.NewNotFoundError("no parked vehicle for user", err)
	}
	if err != nil {
		return nil, errors.NewStorageError("failed to read vehicle location", err)
	}
	return vehicle, nil
}

// ClearVehicle removes the user's parked-vehicle record.
func (s *Service) ClearVehicle(ctx context.Context, userID string) error {
	if userID == "" {
		userID = models.AnonymousReporter
	}
	if err := s.vehicles.Clear(ctx, userID); err != nil {
		return errors.NewStorageError("failed to clear vehicle location", err)
	}
	return nil
}
