package service

import (
	"context"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/pkg/session"
)

// ISessionService defines the conversation session service interface
type ISessionService interface {
	GetSessionInfo(ctx context.Context, sessionId string) (*dto.SessionInfoResponse, error)
	ListSessions(ctx context.Context) (*dto.ListSessionsResponse, error)
	ClearSession(ctx context.Context, sessionId string) (*dto.ClearSessionResponse, error)
	CleanupExpired(ctx context.Context) (*dto.CleanupSessionsResponse, error)
	Health(ctx context.Context) (*dto.SessionHealthDTO, error)
}

type sessionService struct {
	sessions *session.Store
	log      logger.ILogger
}

func NewSessionService(sessions *session.Store, log logger.ILogger) ISessionService {
	return &sessionService{sessions: sessions, log: log}
}

func (s *sessionService) GetSessionInfo(ctx context.Context, sessionId string) (*dto.SessionInfoResponse, error) {
	info := s.sessions.GetSessionInfo(ctx, sessionId)

	turns := make([]dto.ConversationTurnDTO, 0, len(info.Conversations))
	for _, turn := range info.Conversations {
		turns = append(turns, dto.ConversationTurnDTO{
			Timestamp: turn.Timestamp,
			Question:  turn.Question,
			Answer:    turn.Answer,
			ModelUsed: turn.ModelUsed,
			Sources:   sourceDTOs(turn.Sources),
		})
	}

	return &dto.SessionInfoResponse{
		SessionId:         info.SessionID,
		ConversationCount: info.ConversationCount,
		LastActivity:      info.LastActivity,
		CreatedAt:         info.CreatedAt,
		Conversations:     turns,
	}, nil
}

func (s *sessionService) ListSessions(ctx context.Context) (*dto.ListSessionsResponse, error) {
	ids := s.sessions.ListActiveSessions(ctx)
	return &dto.ListSessionsResponse{Sessions: ids, Total: len(ids)}, nil
}

func (s *sessionService) ClearSession(ctx context.Context, sessionId string) (*dto.ClearSessionResponse, error) {
	existed, err := s.sessions.ClearSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	s.log.Info("session", "Session cleared", map[string]interface{}{
		"session_id": sessionId,
		"existed":    existed,
	})
	return &dto.ClearSessionResponse{SessionId: sessionId, Existed: existed}, nil
}

func (s *sessionService) CleanupExpired(ctx context.Context) (*dto.CleanupSessionsResponse, error) {
	removed := s.sessions.SweepExpired(ctx)
	return &dto.CleanupSessionsResponse{SessionsRemoved: removed}, nil
}

func (s *sessionService) Health(ctx context.Context) (*dto.SessionHealthDTO, error) {
	health := s.sessions.HealthStatus(ctx)
	return &dto.SessionHealthDTO{
		StorageType:    health.StorageType,
		RedisConnected: health.RedisConnected,
		RedisStatus:    health.RedisStatus,
		ActiveSessions: health.ActiveSessions,
	}, nil
}
