package dto

type ConversationTurnDTO struct {
	Timestamp int64       `json:"timestamp"`
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	ModelUsed string      `json:"model_used"`
	Sources   []SourceDTO `json:"sources,omitempty"`
}

type SessionInfoResponse struct {
	SessionId         string                `json:"session_id"`
	ConversationCount int                   `json:"conversation_count"`
	LastActivity      int64                 `json:"last_activity"`
	CreatedAt         int64                 `json:"created_at"`
	Conversations     []ConversationTurnDTO `json:"conversations"`
}

type ListSessionsResponse struct {
	Sessions []string `json:"sessions"`
	Total    int      `json:"total"`
}

type ClearSessionResponse struct {
	SessionId string `json:"session_id"`
	Existed   bool   `json:"existed"`
}

type CleanupSessionsResponse struct {
	SessionsRemoved int `json:"sessions_removed"`
}

type SessionHealthDTO struct {
	StorageType    string `json:"storage_type"`
	RedisConnected bool   `json:"redis_connected"`
	RedisStatus    string `json:"redis_status"`
	ActiveSessions int    `json:"active_sessions"`
}
