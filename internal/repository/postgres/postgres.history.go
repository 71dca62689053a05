// FilePath: internal/repository/postgres/postgres.history.go
package postgres

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/database"
	"github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/models"
)

// HistoryRepo is the append-only training set of occupancy samples keyed by
// lot, day-of-week and hour.
type HistoryRepo struct {
	PostgresBaseRepo
}

func NewHistoryRepository(db database.DB) (*HistoryRepo, error) {
	repo := &HistoryRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *HistoryRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS parking_history (
			id TEXT PRIMARY KEY,
			lot_id TEXT NOT NULL,
			day_of_week SMALLINT NOT NULL,
			hour SMALLINT NOT NULL,
			occupancy_pct DOUBLE PRECISION NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parking_history_lot_slot
			ON parking_history(lot_id, day_of_week, hour, timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_parking_history_timestamp
			ON parking_history(timestamp)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewStorageError("failed to initialize history schema", err)
		}
	}
	return nil
}

func (r *HistoryRepo) Append(ctx context.Context, record *models.ParkingHistoryRecord) error {
	query := `
		INSERT INTO parking_history (
			id, lot_id, day_of_week, hour, occupancy_pct, timestamp
		) VALUES (
			:id, :lot_id, :day_of_week, :hour, :occupancy_pct, :timestamp
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, record)
	if err != nil {
		return errors.NewStorageError("failed to append history record", err)
	}
	return nil
}

func (r *HistoryRepo) ListByDayHour(ctx context.Context, lotID string, dayOfWeek, hour, limit int) ([]models.ParkingHistoryRecord, error) {
	records := []models.ParkingHistoryRecord{}
	query := `
		SELECT * FROM parking_history
		WHERE lot_id = $1 AND day_of_week = $2 AND hour = $3
		ORDER BY timestamp DESC
		LIMIT $4`

	err := r.db.GetDB().SelectContext(ctx, &records, query, lotID, dayOfWeek, hour, limit)
	if err != nil {
		return nil, errors.NewStorageError("failed to list history records", err)
	}
	return records, nil
}

func (r *HistoryRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM parking_history WHERE timestamp < $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, before)
	if err != nil {
		return 0, errors.NewStorageError("failed to delete old history records", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("failed to get rows affected", err)
	}
	if rows > 0 {
		nuts.L.Infof("[HistoryRepo] Deleted %d history records older than %s", rows, before.Format(time.RFC3339))
	}
	return rows, nil
}
