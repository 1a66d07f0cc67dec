// Package redis provides Redis-based adapters for the pulsepoint system.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulsepoint/pulsepoint-api/internal/session"
)

// Prefix is the fixed, application-namespaced key prefix for session
// snapshots.
const Prefix = "pulsepoint-auth:"

// DefaultTTL bounds how long an idle session survives. Each Save refreshes
// the TTL, so active sessions slide.
const DefaultTTL = 24 * time.Hour

// SnapshotStore persists session snapshots in Redis for production use.
// It implements session.Persister; key expiry handles session lifetime.
type SnapshotStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSnapshotStore creates a Redis-backed snapshot store with default prefix
// and TTL.
func NewSnapshotStore(client redis.UniversalClient) *SnapshotStore {
	return &SnapshotStore{client: client, prefix: Prefix, ttl: DefaultTTL}
}

// NewSnapshotStoreWithTTL creates a Redis-backed snapshot store with a custom
// session TTL.
func NewSnapshotStoreWithTTL(client redis.UniversalClient, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotStore{client: client, prefix: Prefix, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *SnapshotStore) TTL() time.Duration { return s.ttl }

func (s *SnapshotStore) Save(ctx context.Context, id string, snap session.Snapshot) error {
	if id == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.client.Set(ctx, s.prefix+id, data, s.ttl).Err()
}

func (s *SnapshotStore) Load(ctx context.Context, id string) (session.Snapshot, error) {
	if id == "" {
		return session.Snapshot{}, session.ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Snapshot{}, session.ErrNotFound
		}
		return session.Snapshot{}, fmt.Errorf("redis get: %w", err)
	}

	var snap session.Snapshot
	if unmarshalErr := json.Unmarshal([]byte(data), &snap); unmarshalErr != nil {
		return session.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", unmarshalErr)
	}
	return snap, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
