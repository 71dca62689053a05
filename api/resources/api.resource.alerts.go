// FilePath: api/resources/api.resource.alerts.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/alerts"
	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/monitor"
)

// AlertHandlers encapsulates alert configuration and monitoring control
type AlertHandlers struct {
	engine    *alerts.Engine
	scheduler *monitor.Scheduler
}

type thresholdRequest struct {
	Threshold float64 `json:"threshold"`
	Enabled   bool    `json:"enabled"`
}

type enabledRequest struct {
	Enabled bool `json:"enabled"`
}

type monitoringRequest struct {
	IntervalMinutes int `json:"interval_minutes"`
}

// @Summary Get a lot's alert threshold
// @Tags alerts
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} models.AlertThreshold
// @Router /lots/{id}/alert [get]
func (h *AlertHandlers) GetThreshold(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	respondWithJSON(w, http.StatusOK, h.engine.GetThreshold(vars["id"]))
}

// @Summary Set a lot's alert threshold
// @Description Create or overwrite the alert entry for a lot (last write wins)
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path string true "Lot ID"
// @Param threshold body thresholdRequest true "Threshold configuration"
// @Success 200 {object} models.AlertThreshold
// @Failure 400 {object} errors.APIError
// @Router /lots/{id}/alert [put]
func (h *AlertHandlers) SetThreshold(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lotID := vars["id"]
	requestID := nuts.NID("req", 12)

	var req thresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Threshold < 0 || req.Threshold > 100 {
		respondWithError(w, errors.NewValidationError("threshold must be within [0,100]", nil).WithRequestID(requestID))
		return
	}

	h.engine.SetThreshold(lotID, req.Threshold, req.Enabled)
	respondWithJSON(w, http.StatusOK, h.engine.GetThreshold(lotID))
}

// @Summary Enable or disable alerts for a lot
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path string true "Lot ID"
// @Param enabled body enabledRequest true "Enabled flag"
// @Success 200 {object} models.AlertThreshold
// @Failure 400 {object} errors.APIError
// @Router /lots/{id}/alert/enabled [post]
func (h *AlertHandlers) SetEnabled(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lotID := vars["id"]
	requestID := nuts.NID("req", 12)

	var req enabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	h.engine.SetEnabled(lotID, req.Enabled)
	respondWithJSON(w, http.StatusOK, h.engine.GetThreshold(lotID))
}

// @Summary Initialize alert delivery
// @Description Request notification permission from the platform dispatcher
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /alerts/initialize [post]
func (h *AlertHandlers) Initialize(w http.ResponseWriter, r *http.Request) {
	granted := h.engine.Initialize(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]bool{"granted": granted})
}

// @Summary Start background monitoring
// @Description Trigger an immediate evaluation pass, then repeat on the interval
// @Tags monitoring
// @Accept json
// @Produce json
// @Param interval body monitoringRequest true "Interval in minutes"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.APIError
// @Router /monitoring/start [post]
func (h *AlertHandlers) StartMonitoring(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req monitoringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.IntervalMinutes <= 0 {
		respondWithError(w, errors.NewValidationError("interval_minutes must be positive", nil).WithRequestID(requestID))
		return
	}

	h.scheduler.Start(req.IntervalMinutes)
	respondWithJSON(w, http.StatusOK, map[string]bool{"running": h.scheduler.IsRunning()})
}

// @Summary Stop background monitoring
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /monitoring/stop [post]
func (h *AlertHandlers) StopMonitoring(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Stop()
	respondWithJSON(w, http.StatusOK, map[string]bool{"running": h.scheduler.IsRunning()})
}

// @Summary Monitoring status
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]any
// @Router /monitoring/status [get]
func (h *AlertHandlers) MonitoringStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"running": h.scheduler.IsRunning(),
		"passes":  h.scheduler.Passes(),
	})
}
