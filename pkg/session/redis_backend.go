package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	contextKeyPrefix = "context:"
)

// RedisBackend persists sessions as two expiring keys per session: a
// metadata record under "session:<id>" and the JSON-encoded history under
// "context:<id>". Every write refreshes the TTL on the touched key.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Backend = (*RedisBackend)(nil)

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) LoadHistory(ctx context.Context, sessionID string) ([]ConversationTurn, error) {
	raw, err := b.client.Get(ctx, contextKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return []ConversationTurn{}, nil
	}
	if err != nil {
		return nil, err
	}

	var turns []ConversationTurn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (b *RedisBackend) StoreHistory(ctx context.Context, sessionID string, turns []ConversationTurn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return b.client.SetEx(ctx, contextKeyPrefix+sessionID, data, b.ttl).Err()
}

func (b *RedisBackend) LoadMeta(ctx context.Context, sessionID string) (*Meta, error) {
	raw, err := b.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var meta Meta
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (b *RedisBackend) StoreMeta(ctx context.Context, sessionID string, meta Meta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return b.client.SetEx(ctx, sessionKeyPrefix+sessionID, data, b.ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, sessionID string) (bool, error) {
	removed, err := b.client.Del(ctx, sessionKeyPrefix+sessionID, contextKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (b *RedisBackend) ListSessions(ctx context.Context) ([]string, error) {
	keys, err := b.client.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, sessionKeyPrefix))
	}
	return ids, nil
}

// SweepExpired is a no-op: Redis expires session keys natively.
func (b *RedisBackend) SweepExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
