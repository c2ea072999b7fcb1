package cart

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps cart snapshots in Redis. TTL gets a small jitter
// so a burst of sessions does not expire at the same instant.
type RedisSnapshotStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &RedisSnapshotStore{
		client:  client,
		baseTTL: ttl,
	}
}

func (r *RedisSnapshotStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisSnapshotStore) Save(ctx context.Context, sessionID string, data []byte) error {
	jitter := time.Duration(rand.Intn(30)) * time.Minute
	if err := r.client.Set(ctx, snapshotKey(sessionID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
