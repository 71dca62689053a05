// FilePath: internal/repository/history_disabled.go
package repository

import (
	"context"
	"time"

	"github.com/campuscompass/parkhub/internal/models"
)

// disabledHistory stands in for the history store when the history database
// is unreachable at startup. Appends are dropped and lookups come back
// empty, so predictions degrade to the baseline model instead of failing.
type disabledHistory struct{}

// DisabledHistory returns a no-op history repository.
func DisabledHistory() HistoryRepository {
	return disabledHistory{}
}

func (disabledHistory) Append(ctx context.Context, record *models.ParkingHistoryRecord) error {
	return nil
}

func (disabledHistory) ListByDayHour(ctx context.Context, lotID string, dayOfWeek, hour, limit int) ([]models.ParkingHistoryRecord, error) {
	return nil, nil
}

func (disabledHistory) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
