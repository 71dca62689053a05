// FilePath: internal/repository/postgres/postgres.history_test.go
package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompass/parkhub/internal/database"
	apierrors "github.com/campuscompass/parkhub/internal/errors"
	"github.com/campuscompass/parkhub/internal/models"
)

func setupHistoryMock(t *testing.T) (*HistoryRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	// Schema initialization runs in the constructor.
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS parking_history").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_parking_history_lot_slot").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_parking_history_timestamp").WillReturnResult(sqlmock.NewResult(0, 0))

	repo, err := NewHistoryRepository(database.WrapDB(sqlx.NewDb(sqlDB, "postgres")))
	require.NoError(t, err)

	return repo, mock, func() { sqlDB.Close() }
}

func TestNewHistoryRepositoryInitializesSchema(t *testing.T) {
	_, mock, cleanup := setupHistoryMock(t)
	defer cleanup()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewHistoryRepositorySchemaFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS parking_history").
		WillReturnError(errors.New("permission denied"))

	_, err = NewHistoryRepository(database.WrapDB(sqlx.NewDb(sqlDB, "postgres")))
	require.Error(t, err)
	assert.True(t, apierrors.IsStorage(err))
}

func TestHistoryRepoAppend(t *testing.T) {
	repo, mock, cleanup := setupHistoryMock(t)
	defer cleanup()

	record := &models.ParkingHistoryRecord{
		ID:           "ph_test0001",
		LotID:        "lot-north",
		DayOfWeek:    1,
		Hour:         9,
		OccupancyPct: 88.5,
		Timestamp:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO parking_history").
		WithArgs(record.ID, record.LotID, record.DayOfWeek, record.Hour, record.OccupancyPct, record.Timestamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Append(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepoAppendFailure(t *testing.T) {
	repo, mock, cleanup := setupHistoryMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO parking_history").
		WillReturnError(errors.New("connection reset"))

	err := repo.Append(context.Background(), &models.ParkingHistoryRecord{ID: "ph_x", LotID: "lot-north"})
	require.Error(t, err)
	assert.True(t, apierrors.IsStorage(err))
}

func TestHistoryRepoListByDayHour(t *testing.T) {
	repo, mock, cleanup := setupHistoryMock(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "lot_id", "day_of_week", "hour", "occupancy_pct", "timestamp"}).
		AddRow("ph_b", "lot-north", 1, 9, 91.0, now).
		AddRow("ph_a", "lot-north", 1, 9, 87.0, now.Add(-7*24*time.Hour))

	mock.ExpectQuery("SELECT \\* FROM parking_history").
		WithArgs("lot-north", 1, 9, 500).
		WillReturnRows(rows)

	records, err := repo.ListByDayHour(context.Background(), "lot-north", 1, 9, 500)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ph_b", records[0].ID, "newest first")
	assert.InDelta(t, 91.0, records[0].OccupancyPct, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepoListByDayHourEmpty(t *testing.T) {
	repo, mock, cleanup := setupHistoryMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM parking_history").
		WithArgs("lot-unseen", 2, 14, 500).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "day_of_week", "hour", "occupancy_pct", "timestamp"}))

	records, err := repo.ListByDayHour(context.Background(), "lot-unseen", 2, 14, 500)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRepoDeleteOlderThan(t *testing.T) {
	repo, mock, cleanup := setupHistoryMock(t)
	defer cleanup()

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	mock.ExpectExec("DELETE FROM parking_history").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	rows, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 42, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepoDeleteOlderThanFailure(t *testing.T) {
	repo, mock, cleanup := setupHistoryMock(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM parking_history").
		WillReturnError(errors.New("deadlock detected"))

	_, err := repo.DeleteOlderThan(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, apierrors.IsStorage(err))
}
