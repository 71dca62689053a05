// FilePath: internal/storage/store.go
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates that a key holds no value. An absent value is a
// valid answer, not a storage failure.
var ErrKeyNotFound = errors.New("key not found")

// Handler receives messages published on a subscribed topic.
type Handler func(topic string, payload []byte)

// Store is the uniform persistence contract shared by the remote store and
// the local fallback cache. Callers check IsRemoteAvailable before taking
// the remote path; an unavailable remote is skipped entirely, while an
// explicit remote failure falls back to the local tier.
type Store interface {
	Write(ctx context.Context, key string, value []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	IsRemoteAvailable(ctx context.Context) bool
	// Subscribe registers a handler for a pub/sub topic. The second return
	// is false when the remote is unavailable; there is no local equivalent
	// of push notifications.
	Subscribe(ctx context.Context, topic string, handler Handler) (func(), bool)
}
