package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/api/resources"
	"github.com/campuscompass/parkhub/internal/alerts"
	"github.com/campuscompass/parkhub/internal/monitor"
	"github.com/campuscompass/parkhub/internal/parking"
	"github.com/campuscompass/parkhub/internal/prediction"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *parking.Service, predictor *prediction.Predictor, engine *alerts.Engine, scheduler *monitor.Scheduler) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc, predictor, engine, scheduler),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Lots
	lots := api.PathPrefix("/lots").Subrouter()
	lots.HandleFunc("", r.resources.Lots.ListLots).Methods(http.MethodGet)
	lots.HandleFunc("/nearest", r.resources.Lots.NearestLot).Methods(http.MethodGet)
	lots.HandleFunc("/accessible", r.resources.Lots.AccessibleLots).Methods(http.MethodGet)
	lots.HandleFunc("/{id}/reports", r.resources.Lots.ReportAvailability).Methods(http.MethodPost)
	lots.HandleFunc("/{id}/prediction", r.resources.Predictions.GetPrediction).Methods(http.MethodGet)
	lots.HandleFunc("/{id}/predictions", r.resources.Predictions.GetPredictions).Methods(http.MethodGet)
	lots.HandleFunc("/{id}/alert", r.resources.Alerts.GetThreshold).Methods(http.MethodGet)
	lots.HandleFunc("/{id}/alert", r.resources.Alerts.SetThreshold).Methods(http.MethodPut)
	lots.HandleFunc("/{id}/alert/enabled", r.resources.Alerts.SetEnabled).Methods(http.MethodPost)

	// Alerts and monitoring
	api.HandleFunc("/alerts/initialize", r.resources.Alerts.Initialize).Methods(http.MethodPost)
	api.HandleFunc("/monitoring/start", r.resources.Alerts.StartMonitoring).Methods(http.MethodPost)
	api.HandleFunc("/monitoring/stop", r.resources.Alerts.StopMonitoring).Methods(http.MethodPost)
	api.HandleFunc("/monitoring/status", r.resources.Alerts.MonitoringStatus).Methods(http.MethodGet)

	// Parked vehicle
	api.HandleFunc("/vehicle", r.resources.Vehicles.SaveVehicle).Methods(http.MethodPut)
	api.HandleFunc("/vehicle", r.resources.Vehicles.GetVehicle).Methods(http.MethodGet)
	api.HandleFunc("/vehicle", r.resources.Vehicles.ClearVehicle).Methods(http.MethodDelete)

	// Health
	api.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

// Handler wraps the router with request logging and permissive CORS for the
// mobile clients.
func (r *Router) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.CombinedLoggingHandler(logWriter{}, cors(r.router))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// logWriter routes access log lines into the service logger.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	nuts.L.Infof("[Access] %s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
