// FilePath: api/resources/api.resource.vehicles.go
package resources

import (
	"encoding/json"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/parking"
)

// VehicleHandlers encapsulates the parked-vehicle HTTP handlers
type VehicleHandlers struct {
	svc *parking.Service
}

type saveVehicleRequest struct {
	LotID      string  `json:"lot_id"`
	SpotNumber string  `json:"spot_number"`
	Notes      string  `json:"notes"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// @Summary Save a parked-vehicle location
// @Description Record "I parked here" for a user (anonymous by default)
// @Tags vehicle
// @Accept json
// @Produce json
// @Param user_id query string false "User ID"
// @Param vehicle body saveVehicleRequest true "Vehicle location"
// @Success 201 {object} models.ParkedVehicle
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /vehicle [put]
func (h *VehicleHandlers) SaveVehicle(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req saveVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	vehicle := &models.ParkedVehicle{
		UserID:     r.URL.Query().Get("user_id"),
		LotID:      req.LotID,
		SpotNumber: req.SpotNumber,
		Notes:      req.Notes,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	if err := h.svc.SaveVehicle(r.Context(), vehicle); err != nil {
		respondWithError(w, asAPIError(err, "failed to save vehicle location").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, vehicle)
}

// @Summary Get the parked-vehicle location
// @Tags vehicle
// @Produce json
// @Param user_id query string false "User ID"
// @Success 200 {object} models.ParkedVehicle
// @Failure 404 {object} errors.APIError
// @Router /vehicle [get]
func (h *VehicleHandlers) GetVehicle(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	vehicle, err := h.svc.GetVehicle(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to read vehicle location").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, vehicle)
}

// @Summary Clear the parked-vehicle location
// @Tags vehicle
// @Produce json
// @Param user_id query string false "User ID"
// @Success 204 "cleared"
// @Router /vehicle [delete]
func (h *VehicleHandlers) ClearVehicle(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.svc.ClearVehicle(r.Context(), r.URL.Query().Get("user_id")); err != nil {
		respondWithError(w, asAPIError(err, "failed to clear vehicle location").WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
