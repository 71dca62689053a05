// FilePath: internal/parking/service.go
package parking

import (
	"github.com/campuscompass/parkhub/internal/catalog"
	"github.com/campuscompass/parkhub/internal/config"
	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/repository"
)

// Service is the reporting and aggregation engine. It owns the crowd report
// log, derives the recency-weighted consensus availability per lot, and
// keeps the static catalog as the degradation floor when storage is out.
type Service struct {
	catalog  *catalog.Catalog
	updates  repository.UpdateRepository
	history  repository.HistoryRepository
	vehicles repository.VehicleRepository
	cfg      config.ParkingConfig
}

// New creates the parking service.
func New(
	cat *catalog.Catalog,
	updates repository.UpdateRepository,
	history repository.HistoryRepository,
	vehicles repository.VehicleRepository,
	cfg config.ParkingConfig,
) *Service {
	return &Service{
		catalog:  cat,
		updates:  updates,
		history:  history,
		vehicles: vehicles,
		cfg:      cfg,
	}
}

// Validate checks if all required dependencies are initialized
func (s *Service) Validate() error {
	if s.catalog == nil {
		return ErrMissingDependency("catalog")
	}
	if s.updates == nil {
		return ErrMissingDependency("updates")
	}
	if s.history == nil {
		return ErrMissingDependency("history")
	}
	if s.vehicles == nil {
		return ErrMissingDependency("vehicles")
	}
	return nil
}

// Catalog exposes the seed catalog to collaborators (prediction, alerts).
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// History exposes the history repository to the prediction engine.
func (s *Service) History() repository.HistoryRepository {
	return s.history
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
