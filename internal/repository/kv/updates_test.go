// FilePath: internal/repository/kv/updates_test.go
package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/repository"
	"github.com/campuscompass/parkhub/internal/storage"
)

func update(lotID string, spots int, ts time.Time) *models.ParkingUpdate {
	return &models.ParkingUpdate{
		ID:             "pu_" + ts.Format("150405.000"),
		LotID:          lotID,
		AvailableSpots: spots,
		ReportedBy:     models.AnonymousReporter,
		Timestamp:      ts,
		Confidence:     1.0,
	}
}

func TestUpdateRepoAppendAndListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(storage.NewMemoryStore())
	now := time.Now()

	require.NoError(t, repo.Append(ctx, update("lot-north", 40, now.Add(-30*time.Minute))))
	require.NoError(t, repo.Append(ctx, update("lot-north", 35, now.Add(-10*time.Minute))))
	require.NoError(t, repo.Append(ctx, update("lot-north", 30, now.Add(-5*time.Minute))))

	recent, err := repo.ListRecent(ctx, "lot-north", now.Add(-15*time.Minute))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 35, recent[0].AvailableSpots)
	assert.Equal(t, 30, recent[1].AvailableSpots)
}

func TestUpdateRepoAppendRestoresTimestampOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(storage.NewMemoryStore())
	now := time.Now()

	// A skewed reporter delivers an older timestamp after a newer one.
	require.NoError(t, repo.Append(ctx, update("lot-north", 30, now)))
	require.NoError(t, repo.Append(ctx, update("lot-north", 50, now.Add(-20*time.Minute))))

	all, err := repo.ListRecent(ctx, "lot-north", now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 50, all[0].AvailableSpots)
	assert.Equal(t, 30, all[1].AvailableSpots)
}

func TestUpdateRepoIsolatesLots(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(storage.NewMemoryStore())
	now := time.Now()

	require.NoError(t, repo.Append(ctx, update("lot-north", 10, now)))
	require.NoError(t, repo.Append(ctx, update("lot-library", 20, now)))

	north, err := repo.ListRecent(ctx, "lot-north", now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, north, 1)
	assert.Equal(t, 10, north[0].AvailableSpots)
}

func TestUpdateRepoListRecentEmptyLot(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(storage.NewMemoryStore())

	recent, err := repo.ListRecent(ctx, "lot-unwritten", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestUpdateRepoPruneBefore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewUpdateRepository(store)
	now := time.Now()

	require.NoError(t, repo.Append(ctx, update("lot-north", 40, now.Add(-3*time.Hour))))
	require.NoError(t, repo.Append(ctx, update("lot-north", 35, now.Add(-10*time.Minute))))

	require.NoError(t, repo.PruneBefore(ctx, "lot-north", now.Add(-2*time.Hour)))
	all, err := repo.ListRecent(ctx, "lot-north", now.Add(-4*time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 35, all[0].AvailableSpots)

	// Pruning everything removes the backing key.
	require.NoError(t, repo.PruneBefore(ctx, "lot-north", now.Add(time.Minute)))
	assert.Equal(t, 0, store.Len())
}

func TestUpdateRepoRejectsMissingLotID(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(storage.NewMemoryStore())

	assert.Error(t, repo.Append(ctx, &models.ParkingUpdate{}))
	assert.Error(t, repo.Append(ctx, nil))
}

func TestVehicleRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository(storage.NewMemoryStore())

	parked := &models.ParkedVehicle{
		ID:       "pv_test",
		UserID:   "user-1",
		LotID:    "lot-north",
		ParkedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, parked))

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "lot-north", got.LotID)

	require.NoError(t, repo.Clear(ctx, "user-1"))
	_, err = repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVehicleRepoRejectsMissingUser(t *testing.T) {
	repo := NewVehicleRepository(storage.NewMemoryStore())
	err := repo.Save(context.Background(), &models.ParkedVehicle{LotID: "lot-north"})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}
