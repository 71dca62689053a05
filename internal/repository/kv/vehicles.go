// FilePath: internal/repository/kv/vehicles.go
package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/repository"
	"github.com/campuscompass/parkhub/internal/storage"
)

const vehicleKeyPrefix = "parking:vehicle:"

// VehicleRepo persists the single parked-vehicle record per user in the
// fallback-capable store.
type VehicleRepo struct {
	store storage.Store
}

// NewVehicleRepository creates a store-backed vehicle location repository.
func NewVehicleRepository(store storage.Store) *VehicleRepo {
	return &VehicleRepo{store: store}
}

func vehicleKey(userID string) string {
	return vehicleKeyPrefix + userID
}

func (r *VehicleRepo) Save(ctx context.Context, vehicle *models.ParkedVehicle) error {
	if vehicle == nil || vehicle.UserID == "" {
		return repository.ErrInvalidInput
	}
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, vehicleKey(vehicle.UserID), data)
}

func (r *VehicleRepo) Get(ctx context.Context, userID string) (*models.ParkedVehicle, error) {
	data, err := r.store.Read(ctx, vehicleKey(userID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var vehicle models.ParkedVehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepo) Clear(ctx context.Context, userID string) error {
	return r.store.Remove(ctx, vehicleKey(userID))
}
