// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/api"
	"github.com/campuscompass/parkhub/internal/alerts"
	"github.com/campuscompass/parkhub/internal/catalog"
	"github.com/campuscompass/parkhub/internal/config"
	"github.com/campuscompass/parkhub/internal/database"
	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/monitor"
	"github.com/campuscompass/parkhub/internal/monitoring"
	"github.com/campuscompass/parkhub/internal/parking"
	"github.com/campuscompass/parkhub/internal/prediction"
	"github.com/campuscompass/parkhub/internal/repository"
	"github.com/campuscompass/parkhub/internal/repository/kv"
	"github.com/campuscompass/parkhub/internal/repository/postgres"
	"github.com/campuscompass/parkhub/internal/storage"
)

// notificationTopic is the remote pub/sub channel mobile clients listen on.
const notificationTopic = "parkhub.notifications"

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	scheduler  *monitor.Scheduler
	engine     *alerts.Engine
	monitoring *monitoring.Service
	remote     *storage.RedisStore
	historyDB  database.DB
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
	}
}

// Start wires the parking engines and begins listening for requests
func (s *Server) Start() error {
	cat, err := catalog.Load(s.config.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load lot catalog: %w", err)
	}
	nuts.L.Infof("[Server] Loaded catalog with %d lots", cat.Len())

	// Remote store in front of the always-available local cache.
	s.remote = storage.NewRedisStore(s.config.Redis)
	store := storage.NewFallbackStore(s.remote, storage.NewMemoryStore())

	history := s.initHistoryRepository()

	updates := kv.NewUpdateRepository(store)
	vehicles := kv.NewVehicleRepository(store)

	svc := parking.New(cat, updates, history, vehicles, s.config.Parking)
	if err := svc.Validate(); err != nil {
		return err
	}

	predictor := prediction.New(svc, s.config.Parking)

	notifier := alerts.NewPubSubNotifier(s.remote, notificationTopic, alerts.NewLogNotifier())
	s.engine = alerts.NewEngine(svc, predictor, notifier, s.config.Parking)
	s.engine.Initialize(context.Background())

	s.monitoring = monitoring.NewService(monitoring.Config{
		PrometheusEndpoint: s.config.Monitoring.PrometheusEndpoint,
	})
	s.setupAlertHandlers()

	s.scheduler = monitor.NewScheduler(s.engine, svc, history, s.config.Parking.HistoryRetention)
	s.scheduler.Start(int(s.config.Parking.MonitorInterval.Minutes()))

	router := api.NewRouter(svc, predictor, s.engine, s.scheduler)
	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      router.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// initHistoryRepository connects the history database. The service stays up
// without it; predictions then run on the baseline model alone.
func (s *Server) initHistoryRepository() repository.HistoryRepository {
	db, err := database.NewPostgresDB(s.config.Database.History)
	if err != nil {
		nuts.L.Warnf("[Server] History database unavailable, predictions degrade to baseline: %v", err)
		return repository.DisabledHistory()
	}
	repo, err := postgres.NewHistoryRepository(db)
	if err != nil {
		nuts.L.Warnf("[Server] History schema init failed, predictions degrade to baseline: %v", err)
		db.Close()
		return repository.DisabledHistory()
	}
	s.historyDB = db
	return repo
}

// setupAlertHandlers records dispatched notifications as monitored events.
func (s *Server) setupAlertHandlers() {
	s.engine.OnAlert(func(n models.Notification) {
		s.monitoring.RecordEvent("alert_dispatched", map[string]string{
			"lot_id": n.LotID,
			"kind":   string(n.Kind),
		})
	})
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	s.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.historyDB != nil {
		if err := s.historyDB.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing history database: %v", err)
		}
	}
	if err := s.remote.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing remote store: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}
