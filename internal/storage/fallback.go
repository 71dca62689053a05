// FilePath: internal/storage/fallback.go
package storage

import (
	"context"
	"errors"

	nuts "github.com/vaudience/go-nuts"
)

// FallbackStore composes the remote store with the local cache. The remote
// path is attempted only while the remote reports available; on explicit
// remote failure the call falls back to the local tier. An unavailable
// remote skips the remote attempt entirely.
//
// Invariant: at most one tier holds the authoritative copy of a key. A
// successful remote write clears any local shadow left behind by an earlier
// fallback write.
type FallbackStore struct {
	remote Store
	local  Store
}

// NewFallbackStore wires a remote store in front of a local cache.
func NewFallbackStore(remote, local Store) *FallbackStore {
	return &FallbackStore{
		remote: remote,
		local:  local,
	}
}

func (s *FallbackStore) Write(ctx context.Context, key string, value []byte) error {
	if !s.remote.IsRemoteAvailable(ctx) {
		return s.local.Write(ctx, key, value)
	}

	if err := s.remote.Write(ctx, key, value); err != nil {
		nuts.L.Warnf("[FallbackStore] Remote write failed for %s, falling back to local: %v", key, err)
		return s.local.Write(ctx, key, value)
	}

	// The remote copy is now authoritative; drop a stale local shadow from a
	// previous outage (local removes are idempotent).
	if err := s.local.Remove(ctx, key); err != nil {
		nuts.L.Warnf("[FallbackStore] Failed to clear local shadow for %s: %v", key, err)
	}
	return nil
}

func (s *FallbackStore) Read(ctx context.Context, key string) ([]byte, error) {
	if !s.remote.IsRemoteAvailable(ctx) {
		return s.local.Read(ctx, key)
	}

	value, err := s.remote.Read(ctx, key)
	if err == nil {
		return value, nil
	}
	if errors.Is(err, ErrKeyNotFound) {
		// Absent remotely; the value may live locally from an outage write.
		return s.local.Read(ctx, key)
	}

	nuts.L.Warnf("[FallbackStore] Remote read failed for %s, falling back to local: %v", key, err)
	return s.local.Read(ctx, key)
}

func (s *FallbackStore) Remove(ctx context.Context, key string) error {
	localErr := s.local.Remove(ctx, key)

	if !s.remote.IsRemoteAvailable(ctx) {
		return localErr
	}
	if err := s.remote.Remove(ctx, key); err != nil {
		nuts.L.Warnf("[FallbackStore] Remote remove failed for %s: %v", key, err)
		return err
	}
	return localErr
}

func (s *FallbackStore) IsRemoteAvailable(ctx context.Context) bool {
	return s.remote.IsRemoteAvailable(ctx)
}

func (s *FallbackStore) Subscribe(ctx context.Context, topic string, handler Handler) (func(), bool) {
	if !s.remote.IsRemoteAvailable(ctx) {
		return nil, false
	}
	return s.remote.Subscribe(ctx, topic, handler)
}
