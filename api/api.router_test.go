// FilePath: api/api.router_test.go
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompass/parkhub/internal/alerts"
	"github.com/campuscompass/parkhub/internal/catalog"
	"github.com/campuscompass/parkhub/internal/config"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/monitor"
	"github.com/campuscompass/parkhub/internal/parking"
	"github.com/campuscompass/parkhub/internal/prediction"
	"github.com/campuscompass/parkhub/internal/repository"
	"github.com/campuscompass/parkhub/internal/repository/kv"
	"github.com/campuscompass/parkhub/internal/storage"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	cfg := config.ParkingConfig{
		RecencyHalfLife:       10 * time.Minute,
		RecencyWindow:         2 * time.Hour,
		RapidFillWindow:       30 * time.Minute,
		RapidFillRate:         2.0,
		DefaultAlertThreshold: 90,
		MinHistorySamples:     10,
		BaselineConfidence:    0.5,
	}
	store := storage.NewMemoryStore()
	svc := parking.New(cat, kv.NewUpdateRepository(store), repository.DisabledHistory(), kv.NewVehicleRepository(store), cfg)
	predictor := prediction.New(svc, cfg)
	engine := alerts.NewEngine(svc, predictor, alerts.NewLogNotifier(), cfg)
	scheduler := monitor.NewScheduler(engine, svc, repository.DisabledHistory(), 0)
	t.Cleanup(scheduler.Stop)
	return NewRouter(svc, predictor, engine, scheduler)
}

func doJSON(t *testing.T, router *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListLots(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lots []models.ParkingLot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lots))
	assert.Len(t, lots, 5)
}

func TestReportAvailabilityAccepted(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/lots/lot-library/reports",
		map[string]any{"available_spots": 20, "reported_by": "user-1"})
	require.Equal(t, http.StatusAccepted, rec.Code)

	// The consensus is now visible in the catalog listing.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/lots", nil)
	var lots []models.ParkingLot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lots))
	for _, lot := range lots {
		if lot.ID == "lot-library" {
			assert.Equal(t, 20, lot.AvailableSpots)
		}
	}
}

func TestReportAvailabilityRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/lots/lot-library/reports",
		map[string]any{"available_spots": 9999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/lots/lot-ghost/reports",
		map[string]any{"available_spots": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearestLot(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots/nearest?lat=40.44101&lng=-79.94561", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lot models.ParkingLot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lot))
	assert.Equal(t, "lot-library", lot.ID)
}

func TestNearestLotMissingCoordinates(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots/nearest", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccessibleLots(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots/accessible", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lots []models.ParkingLot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lots))
	require.Len(t, lots, 3)
	for _, lot := range lots {
		assert.True(t, lot.IsAccessible)
	}
}

func TestGetPrediction(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots/lot-library/prediction", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		models.Prediction
		ConfidenceLevel models.ConfidenceLevel `json:"confidence_level"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "lot-library", resp.LotID)
	assert.Equal(t, models.ConfidenceLow, resp.ConfidenceLevel)
	assert.NotEmpty(t, resp.Recommendation)
}

func TestGetPredictions(t *testing.T) {
	router := newTestRouter(t)
	path := "/api/v1/lots/lot-library/predictions" +
		"?times=2026-09-07T08:00:00Z&times=2026-09-07T12:00:00Z"
	rec := doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		models.Prediction
		ConfidenceLevel models.ConfidenceLevel `json:"confidence_level"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.True(t, resp[0].Timestamp.Before(resp[1].Timestamp), "input order preserved")
}

func TestGetPredictionsRequiresTimes(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots/lot-library/predictions", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPredictionUnknownLot(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/lots/lot-ghost/prediction", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertThresholdLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/lots/lot-north/alert",
		map[string]any{"threshold": 85, "enabled": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/lots/lot-north/alert", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry models.AlertThreshold
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.InDelta(t, 85, entry.Threshold, 0.001)
	assert.True(t, entry.Enabled)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/lots/lot-north/alert/enabled",
		map[string]any{"enabled": false})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.False(t, entry.Enabled)
}

func TestAlertThresholdOutOfRange(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPut, "/api/v1/lots/lot-north/alert",
		map[string]any{"threshold": 150, "enabled": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInitializeAlerts(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/alerts/initialize", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["granted"])
}

func TestMonitoringStatusAndStop(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/monitoring/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, false, status["running"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/monitoring/stop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStartMonitoringRejectsBadInterval(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/monitoring/start",
		map[string]any{"interval_minutes": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVehicleEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/vehicle?user_id=user-7",
		map[string]any{"lot_id": "lot-north", "spot_number": "B12"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/vehicle?user_id=user-7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vehicle models.ParkedVehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vehicle))
	assert.Equal(t, "lot-north", vehicle.LotID)
	assert.Equal(t, "B12", vehicle.SpotNumber)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/vehicle?user_id=user-7", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/vehicle?user_id=user-7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
