// FilePath: internal/repository/kv/updates.go
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/campuscompass/parkhub/internal/models"
	"github.com/campuscompass/parkhub/internal/storage"
)

const updateKeyPrefix = "parking:updates:"

// UpdateRepo keeps the per-lot crowd report log in the fallback-capable
// key/value store as a JSON-encoded list. Appends are serialized by a
// process-local mutex (single-writer-at-a-time); aggregation is a pure
// read-time fold over the log, so readers need no coordination beyond the
// store's own.
type UpdateRepo struct {
	store storage.Store
	mu    sync.Mutex
}

// NewUpdateRepository creates a store-backed update log.
func NewUpdateRepository(store storage.Store) *UpdateRepo {
	return &UpdateRepo{store: store}
}

func updateKey(lotID string) string {
	return updateKeyPrefix + lotID
}

func (r *UpdateRepo) Append(ctx context.Context, update *models.ParkingUpdate) error {
	if update == nil || update.LotID == "" {
		return errors.New("update requires a lot id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updates, err := r.load(ctx, update.LotID)
	if err != nil {
		return err
	}

	updates = append(updates, *update)
	// Timestamps within a lot stay monotonically non-decreasing. Wall clock
	// skew between near-simultaneous reporters can deliver slightly stale
	// timestamps; a stable sort restores order without reordering equals.
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].Timestamp.Before(updates[j].Timestamp)
	})

	return r.save(ctx, update.LotID, updates)
}

func (r *UpdateRepo) ListRecent(ctx context.Context, lotID string, since time.Time) ([]models.ParkingUpdate, error) {
	updates, err := r.load(ctx, lotID)
	if err != nil {
		return nil, err
	}

	recent := make([]models.ParkingUpdate, 0, len(updates))
	for _, u := range updates {
		if !u.Timestamp.Before(since) {
			recent = append(recent, u)
		}
	}
	return recent, nil
}

func (r *UpdateRepo) PruneBefore(ctx context.Context, lotID string, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	updates, err := r.load(ctx, lotID)
	if err != nil {
		return err
	}

	kept := updates[:0]
	for _, u := range updates {
		if !u.Timestamp.Before(cutoff) {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(updates) {
		return nil
	}
	if len(kept) == 0 {
		return r.store.Remove(ctx, updateKey(lotID))
	}
	return r.save(ctx, lotID, kept)
}

func (r *UpdateRepo) load(ctx context.Context, lotID string) ([]models.ParkingUpdate, error) {
	data, err := r.store.Read(ctx, updateKey(lotID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var updates []models.ParkingUpdate
	if err := json.Unmarshal(data, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *UpdateRepo) save(ctx context.Context, lotID string, updates []models.ParkingUpdate) error {
	data, err := json.Marshal(updates)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, updateKey(lotID), data)
}
