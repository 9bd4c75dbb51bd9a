package repository

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "snapshot:" // snapshot:{session_id}:{key}

// RedisStore handles Redis operations for persisted snapshots.
// Entries never expire; a new Put replaces both keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put overwrites both keys in a single MULTI/EXEC
func (s *RedisStore) Put(ctx context.Context, sessionID string, rec domain.Record) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(sessionID, domain.KeyGeneratedCharacterImage), rec.GeneratedCharacterImage, 0)
		pipe.Set(ctx, s.key(sessionID, domain.KeyCharacterFormData), rec.CharacterFormData, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to put snapshot: %w", err)
	}
	return nil
}

// Get retrieves both keys; ok is false when neither exists
func (s *RedisStore) Get(ctx context.Context, sessionID string) (domain.Record, bool, error) {
	vals, err := s.client.MGet(ctx,
		s.key(sessionID, domain.KeyGeneratedCharacterImage),
		s.key(sessionID, domain.KeyCharacterFormData),
	).Result()
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var rec domain.Record
	if v, ok := vals[0].(string); ok {
		rec.GeneratedCharacterImage = v
	}
	if v, ok := vals[1].(string); ok {
		rec.CharacterFormData = v
	}
	if rec.Empty() {
		return domain.Record{}, false, nil
	}
	return rec, true, nil
}

// Clear deletes both keys
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx,
		s.key(sessionID, domain.KeyGeneratedCharacterImage),
		s.key(sessionID, domain.KeyCharacterFormData),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) key(sessionID, name string) string {
	return fmt.Sprintf("%s%s:%s", snapshotKeyPrefix, sessionID, name)
}
