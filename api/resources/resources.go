// FilePath: api/resources/resources.go
package resources

import (
	"github.com/campuscompass/parkhub/internal/alerts"
	"github.com/campuscompass/parkhub/internal/monitor"
	"github.com/campuscompass/parkhub/internal/parking"
	"github.com/campuscompass/parkhub/internal/prediction"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Lots        *LotHandlers
	Predictions *PredictionHandlers
	Alerts      *AlertHandlers
	Vehicles    *VehicleHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *parking.Service, predictor *prediction.Predictor, engine *alerts.Engine, scheduler *monitor.Scheduler) *Resources {
	return &Resources{
		Lots:        &LotHandlers{svc: svc},
		Predictions: &PredictionHandlers{predictor: predictor},
		Alerts:      &AlertHandlers{engine: engine, scheduler: scheduler},
		Vehicles:    &VehicleHandlers{svc: svc},
	}
}
