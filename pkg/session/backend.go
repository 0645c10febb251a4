package session

import (
	"context"
	"time"

	"ai-studymate-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Backend is the storage abstraction behind the session store: Redis when
// reachable, an in-process map otherwise. Callers depend on the interface
// only; which implementation is active is observable solely through
// HealthStatus.
type Backend interface {
	Name() string

	LoadHistory(ctx context.Context, sessionID string) ([]ConversationTurn, error)
	StoreHistory(ctx context.Context, sessionID string, turns []ConversationTurn) error

	LoadMeta(ctx context.Context, sessionID string) (*Meta, error)
	StoreMeta(ctx context.Context, sessionID string, meta Meta) error

	// Delete removes both the history and metadata entries. The returned
	// flag says whether anything existed; deleting an absent session is
	// not an error.
	Delete(ctx context.Context, sessionID string) (bool, error)

	ListSessions(ctx context.Context) ([]string, error)

	// SweepExpired evicts sessions idle longer than the TTL. It is a no-op
	// for backends with native key expiry.
	SweepExpired(ctx context.Context) (int, error)

	Ping(ctx context.Context) error
}

const connectTimeout = 10 * time.Second

// Connect probes the Redis URL once at startup and returns the Redis backend
// when it answers, the in-memory fallback otherwise.
func Connect(redisURL string, ttl time.Duration, log logger.ILogger) Backend {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("session", "failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: redisURL}
	}
	opt.DialTimeout = connectTimeout
	opt.ReadTimeout = connectTimeout
	opt.WriteTimeout = connectTimeout

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("session", "Redis unreachable, falling back to in-memory storage", map[string]interface{}{
			"error": err.Error(),
		})
		return NewMemoryBackend(ttl)
	}

	log.Info("session", "connected to Redis", map[string]interface{}{"addr": opt.Addr})
	return NewRedisBackend(rdb, ttl)
}
