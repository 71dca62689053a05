// FilePath: internal/storage/redis.go
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/config"
)

const probeTimeout = 2 * time.Second

// RedisStore is the remote store variant. Availability is probed via PING
// and cached for the configured probe interval so hot paths do not pay a
// network round trip per call.
type RedisStore struct {
	client *redis.Client

	probeInterval time.Duration
	mu            sync.Mutex
	lastProbe     time.Time
	available     bool
}

// NewRedisStore creates a remote store from config. The connection is lazy;
// availability is established by the first probe.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &RedisStore{
		client:        client,
		probeInterval: interval,
	}
}

func (s *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.markUnavailable()
		return fmt.Errorf("redis write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		s.markUnavailable()
		return nil, fmt.Errorf("redis read %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.markUnavailable()
		return fmt.Errorf("redis remove %s: %w", key, err)
	}
	return nil
}

// IsRemoteAvailable probes the connection with PING, caching the result for
// the probe interval.
func (s *RedisStore) IsRemoteAvailable(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.lastProbe) < s.probeInterval {
		return s.available
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := s.client.Ping(probeCtx).Err()
	s.lastProbe = time.Now()
	wasAvailable := s.available
	s.available = err == nil
	if s.available != wasAvailable {
		if s.available {
			nuts.L.Infof("[RedisStore] Remote store is available")
		} else {
			nuts.L.Warnf("[RedisStore] Remote store is unavailable: %v", err)
		}
	}
	return s.available
}

// Subscribe delivers messages published on topic until the returned
// unsubscribe function is called or ctx is cancelled.
func (s *RedisStore) Subscribe(ctx context.Context, topic string, handler Handler) (func(), bool) {
	if !s.IsRemoteAvailable(ctx) {
		return nil, false
	}

	pubsub := s.client.Subscribe(ctx, topic)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				handler(msg.Channel, []byte(msg.Payload))
			}
		}
	}()

	unsubscribe := func() {
		cancel()
		if err := pubsub.Close(); err != nil {
			nuts.L.Warnf("[RedisStore] Failed to close subscription on %s: %v", topic, err)
		}
	}
	return unsubscribe, true
}

// Publish sends a payload to subscribers of topic.
func (s *RedisStore) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := s.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", topic, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) markUnavailable() {
	s.mu.Lock()
	s.available = false
	s.lastProbe = time.Now()
	s.mu.Unlock()
}
