package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/pkg/session"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisClient connects to the Redis named by REDIS_URL (default local) and
// skips the test when it is unreachable.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379"
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", url, err)
	}
	return client
}

func TestRedisBackendRoundtrip(t *testing.T) {
	client := redisClient(t)
	backend := session.NewRedisBackend(client, time.Minute)
	store := session.NewStore(backend, 20, 6, logger.NewNopLogger())
	ctx := context.Background()

	sessionId := "it-" + uuid.New().String()
	defer client.Del(ctx, "session:"+sessionId, "context:"+sessionId)

	for i := 0; i < 3; i++ {
		store.AppendTurn(ctx, sessionId, session.ConversationTurn{
			Timestamp: time.Now().Unix(),
			Question:  fmt.Sprintf("question %d", i),
			Answer:    fmt.Sprintf("answer %d", i),
			ModelUsed: "test-model",
		})
	}

	history := store.GetHistory(ctx, sessionId, 0)
	require.Len(t, history, 3)
	assert.Equal(t, "question 0", history[0].Question)

	info := store.GetSessionInfo(ctx, sessionId)
	assert.Equal(t, 3, info.ConversationCount)
	assert.NotZero(t, info.CreatedAt)

	// Both keys carry a TTL.
	ttl, err := client.TTL(ctx, "context:"+sessionId).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	existed, err := store.ClearSession(ctx, sessionId)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Empty(t, store.GetHistory(ctx, sessionId, 0))

	existed, err = store.ClearSession(ctx, sessionId)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRedisBackendListSessions(t *testing.T) {
	client := redisClient(t)
	backend := session.NewRedisBackend(client, time.Minute)
	store := session.NewStore(backend, 20, 6, logger.NewNopLogger())
	ctx := context.Background()

	sessionId := "it-list-" + uuid.New().String()
	defer client.Del(ctx, "session:"+sessionId, "context:"+sessionId)

	store.AppendTurn(ctx, sessionId, session.ConversationTurn{
		Timestamp: time.Now().Unix(),
		Question:  "q",
		Answer:    "a",
	})

	ids := store.ListActiveSessions(ctx)
	assert.Contains(t, ids, sessionId)

	status := store.HealthStatus(ctx)
	assert.Equal(t, "redis", status.StorageType)
	assert.True(t, status.RedisConnected)
	assert.Equal(t, "healthy", status.RedisStatus)
}
