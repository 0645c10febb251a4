package session

// SourceRef is one retrieved-passage attribution attached to a turn.
type SourceRef struct {
	Content  string  `json:"content"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

// ConversationTurn is one question/answer exchange. Turns are immutable once
// appended.
type ConversationTurn struct {
	Timestamp int64       `json:"timestamp"`
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	ModelUsed string      `json:"model_used"`
	Sources   []SourceRef `json:"sources"`
}

// Meta is the per-session metadata record kept next to the history.
type Meta struct {
	LastActivity      int64 `json:"last_activity"`
	ConversationCount int   `json:"conversation_count"`
	CreatedAt         int64 `json:"created_at"`
}

// Info merges metadata and full history for a session. An unknown session
// yields zero-valued metadata and an empty history, never an error.
type Info struct {
	SessionID         string             `json:"session_id"`
	ConversationCount int                `json:"conversation_count"`
	LastActivity      int64              `json:"last_activity"`
	CreatedAt         int64              `json:"created_at"`
	Conversations     []ConversationTurn `json:"conversations"`
}

// HealthStatus reports which backend is active and whether the durable one
// currently answers a liveness probe.
type HealthStatus struct {
	StorageType    string `json:"storage_type"` // "redis" | "memory"
	RedisConnected bool   `json:"redis_connected"`
	RedisStatus    string `json:"redis_status,omitempty"` // "healthy" | "error"
	ActiveSessions int    `json:"active_sessions"`
}
