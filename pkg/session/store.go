package session

import (
	"context"
	"sync"
	"time"

	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/pkg/llm"
)

// Store maintains per-session conversation memory with a bounded history and
// an expiry horizon. The backend is chosen once at startup; a durable write
// failure after that is logged and the affected turn dropped rather than
// failing the caller or switching backends mid-flight.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     logger.ILogger

	maxHistory    int
	contextWindow int
}

func NewStore(backend Backend, maxHistory, contextWindow int, log logger.ILogger) *Store {
	return &Store{
		backend:       backend,
		log:           log,
		maxHistory:    maxHistory,
		contextWindow: contextWindow,
	}
}

// AppendTurn appends a turn to the session's history, truncating to the most
// recent maxHistory turns, and refreshes the session metadata. The
// read-modify-write is serialized so concurrent appends never lose a turn.
func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, err := s.backend.LoadHistory(ctx, sessionID)
	if err != nil {
		s.log.Error("session", "failed to load history, turn dropped", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	turns = append(turns, turn)
	if len(turns) > s.maxHistory {
		turns = turns[len(turns)-s.maxHistory:]
	}

	if err := s.backend.StoreHistory(ctx, sessionID, turns); err != nil {
		s.log.Error("session", "failed to store history, turn dropped", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	now := time.Now().Unix()
	meta := Meta{
		LastActivity:      now,
		ConversationCount: len(turns),
		CreatedAt:         now,
	}
	if existing, err := s.backend.LoadMeta(ctx, sessionID); err == nil && existing != nil {
		meta.CreatedAt = existing.CreatedAt
	}
	if err := s.backend.StoreMeta(ctx, sessionID, meta); err != nil {
		s.log.Warn("session", "failed to store session metadata", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

// GetHistory returns the session's turns oldest first, or the most recent
// `limit` turns when limit > 0. Unknown sessions yield an empty list.
func (s *Store) GetHistory(ctx context.Context, sessionID string, limit int) []ConversationTurn {
	turns, err := s.backend.LoadHistory(ctx, sessionID)
	if err != nil {
		s.log.Error("session", "failed to load history", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return []ConversationTurn{}
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}

// GetContextMessages flattens the most recent contextWindow turns into
// alternating user/assistant messages, oldest first, ready for an LLM prompt.
func (s *Store) GetContextMessages(ctx context.Context, sessionID string) []llm.Message {
	turns := s.GetHistory(ctx, sessionID, s.contextWindow)

	messages := make([]llm.Message, 0, len(turns)*2)
	for _, turn := range turns {
		messages = append(messages,
			llm.Message{Role: "user", Content: turn.Question},
			llm.Message{Role: "assistant", Content: turn.Answer},
		)
	}
	return messages
}

// GetSessionInfo merges metadata and full history. An unknown session gets
// zero-valued metadata and an empty history.
func (s *Store) GetSessionInfo(ctx context.Context, sessionID string) Info {
	info := Info{SessionID: sessionID, Conversations: []ConversationTurn{}}

	if meta, err := s.backend.LoadMeta(ctx, sessionID); err == nil && meta != nil {
		info.ConversationCount = meta.ConversationCount
		info.LastActivity = meta.LastActivity
		info.CreatedAt = meta.CreatedAt
	}
	info.Conversations = s.GetHistory(ctx, sessionID, 0)
	return info
}

// ClearSession removes the session's metadata and history. The returned flag
// says whether anything existed; deleting an absent session is not an error.
func (s *Store) ClearSession(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.backend.Delete(ctx, sessionID)
	if err != nil {
		s.log.Error("session", "failed to clear session", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return false, err
	}
	s.log.Info("session", "session cleared", map[string]interface{}{"session_id": sessionID})
	return existed, nil
}

// ListActiveSessions enumerates all known session ids.
func (s *Store) ListActiveSessions(ctx context.Context) []string {
	ids, err := s.backend.ListSessions(ctx)
	if err != nil {
		s.log.Error("session", "failed to list sessions", map[string]interface{}{
			"error": err.Error(),
		})
		return []string{}
	}
	return ids
}

// SweepExpired evicts idle sessions on backends without native expiry and
// returns the evicted count.
func (s *Store) SweepExpired(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted, err := s.backend.SweepExpired(ctx)
	if err != nil {
		s.log.Error("session", "sweep failed", map[string]interface{}{"error": err.Error()})
		return 0
	}
	if evicted > 0 {
		s.log.Info("session", "expired sessions evicted", map[string]interface{}{"count": evicted})
	}
	return evicted
}

// HealthStatus reports the active backend, the durable backend's current
// liveness, and the active session count.
func (s *Store) HealthStatus(ctx context.Context) HealthStatus {
	status := HealthStatus{StorageType: s.backend.Name()}
	status.ActiveSessions = len(s.ListActiveSessions(ctx))

	if s.backend.Name() == "redis" {
		if err := s.backend.Ping(ctx); err != nil {
			status.RedisStatus = "error"
		} else {
			status.RedisConnected = true
			status.RedisStatus = "healthy"
		}
	}
	return status
}
