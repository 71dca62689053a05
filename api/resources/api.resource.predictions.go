// FilePath: api/resources/api.resource.predictions.go
package resources

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/prediction"
)

// PredictionHandlers encapsulates the forecast HTTP handlers
type PredictionHandlers struct {
	predictor *prediction.Predictor
}

type predictionResponse struct {
	*models.Prediction
	ConfidenceLevel models.ConfidenceLevel `json:"confidence_level"`
}

// @Summary Predict lot occupancy
// @Description Forecast occupancy for a lot at a target time (default now)
// @Tags predictions
// @Produce json
// @Param id path string true "Lot ID"
// @Param time query string false "Target time (RFC3339)"
// @Success 200 {object} predictionResponse
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /lots/{id}/prediction [get]
func (h *PredictionHandlers) GetPrediction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lotID := vars["id"]
	requestID := nuts.NID("req", 12)

	target := time.Now()
	if raw := r.URL.Query().Get("time"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(w, errors.NewValidationError("time must be RFC3339", err).WithRequestID(requestID))
			return
		}
		target = parsed
	}

	forecast, err := h.predictor.Predict(r.Context(), lotID, target)
	if err != nil {
		respondWithError(w, asAPIError(err, "prediction failed").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, predictionResponse{
		Prediction:      forecast,
		ConfidenceLevel: prediction.ConfidenceLevel(forecast.Confidence),
	})
}

// @Summary Predict lot occupancy for multiple slots
// @Description Forecast occupancy for each requested time, preserving order
// @Tags predictions
// @Produce json
// @Param id path string true "Lot ID"
// @Param times query []string true "Target times (RFC3339, repeated)"
// @Success 200 {array} predictionResponse
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /lots/{id}/predictions [get]
func (h *PredictionHandlers) GetPredictions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lotID := vars["id"]
	requestID := nuts.NID("req", 12)

	raw := r.URL.Query()["times"]
	if len(raw) == 0 {
		respondWithError(w, errors.NewValidationError("at least one times query parameter is required", nil).WithRequestID(requestID))
		return
	}
	times := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			respondWithError(w, errors.NewValidationError("times must be RFC3339", err).WithRequestID(requestID))
			return
		}
		times = append(times, parsed)
	}

	forecasts, err := h.predictor.PredictForTimeSlots(r.Context(), lotID, times)
	if err != nil {
		respondWithError(w, asAPIError(err, "prediction failed").WithRequestID(requestID))
		return
	}

	out := make([]predictionResponse, 0, len(forecasts))
	for _, forecast := range forecasts {
		out = append(out, predictionResponse{
			Prediction:      forecast,
			ConfidenceLevel: prediction.ConfidenceLevel(forecast.Confidence),
		})
	}
	respondWithJSON(w, http.StatusOK, out)
}

// asAPIError passes typed errors through and wraps anything else.
func asAPIError(err error, msg string) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr
	}
	return errors.NewInternalError(msg, err)
}
