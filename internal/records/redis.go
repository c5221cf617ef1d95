package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session records in Redis. Records carry no Redis
// TTL: expiry is a lifecycle decision, the record store is only asked
// about existence.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "user_session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Save(ctx context.Context, rec SessionRecord) error {
	if rec.SessionID == "" || rec.UserID == "" {
		return fmt.Errorf("records: missing session_id or user_id")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("records: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(rec.SessionID), data, 0).Err()
}

func (r *RedisStore) Search(ctx context.Context, sessionID string) ([]SessionRecord, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var rec SessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("records: failed to unmarshal: %w", err)
	}

	return []SessionRecord{rec}, nil
}

func (r *RedisStore) Remove(ctx context.Context, rec SessionRecord) (bool, error) {
	deleted, err := r.client.Del(ctx, r.key(rec.SessionID)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
