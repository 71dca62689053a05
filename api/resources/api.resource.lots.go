// FilePath: api/resources/api.resource.lots.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/parking"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// LotHandlers encapsulates the lot-related HTTP handlers
type LotHandlers struct {
	svc *parking.Service
}

type reportRequest struct {
	AvailableSpots int    `json:"available_spots"`
	ReportedBy     string `json:"reported_by"`
}

type nearestQuery struct {
	Lat float64 `schema:"lat,required"`
	Lng float64 `schema:"lng,required"`
}

// @Summary List parking lots
// @Description Get the lot catalog with crowd-aggregated availability
// @Tags lots
// @Produce json
// @Success 200 {array} models.ParkingLot
// @Router /lots [get]
func (h *LotHandlers) ListLots(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.svc.GetLots(r.Context()))
}

// @Summary Find the nearest available lot
// @Description Get the closest lot with free spots to the given coordinate
// @Tags lots
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} models.ParkingLot
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /lots/nearest [get]
func (h *LotHandlers) NearestLot(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q nearestQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("lat and lng query parameters are required", err).WithRequestID(requestID))
		return
	}

	lots := h.svc.GetLots(r.Context())
	nearest := h.svc.FindNearestAvailable(q.Lat, q.Lng, lots)
	if nearest == nil {
		respondWithError(w, errors.NewNotFoundError("no lot with available spots", nil).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, nearest)
}

// @Summary List accessible lots
// @Description Get lots offering accessible parking
// @Tags lots
// @Produce json
// @Success 200 {array} models.ParkingLot
// @Router /lots/accessible [get]
func (h *LotHandlers) AccessibleLots(w http.ResponseWriter, r *http.Request) {
	lots := h.svc.GetLots(r.Context())
	respondWithJSON(w, http.StatusOK, h.svc.GetAccessibleLots(lots))
}

// @Summary Report availability
// @Description Submit a crowd report of observed free spots for a lot
// @Tags lots
// @Accept json
// @Produce json
// @Param id path string true "Lot ID"
// @Param report body reportRequest true "Observed availability"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} errors.APIError
// @Router /lots/{id}/reports [post]
func (h *LotHandlers) ReportAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lotID := vars["id"]
	requestID := nuts.NID("req", 12)

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if ok := h.svc.ReportAvailability(r.Context(), lotID, req.AvailableSpots, req.ReportedBy); !ok {
		respondWithError(w, errors.NewValidationError("report rejected", nil).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusAccepted, map[string]bool{"accepted": true})
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
