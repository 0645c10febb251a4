package dto

type AskRequest struct {
	Question    string   `json:"question" validate:"required"`
	UseDeepSeek bool     `json:"use_deepseek"`
	SessionId   string   `json:"session_id"`
	DocumentIds []string `json:"document_ids"`
}

type SourceDTO struct {
	Content  string  `json:"content"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

type AskResponse struct {
	Answer      string      `json:"answer"`
	SessionId   string      `json:"session_id"`
	ModelUsed   string      `json:"model_used"`
	TokensUsed  int         `json:"tokens_used"`
	Sources     []SourceDTO `json:"sources"`
	HasContext  bool        `json:"has_context"`
	ContextUsed int         `json:"context_used"`
}

type ExplainRequest struct {
	Concept     string `json:"concept" validate:"required"`
	SessionId   string `json:"session_id"`
	UseDeepSeek bool   `json:"use_deepseek"`
}

type ExplainResponse struct {
	Explanation string      `json:"explanation"`
	SessionId   string      `json:"session_id"`
	ModelUsed   string      `json:"model_used"`
	Sources     []SourceDTO `json:"sources"`
}

type SummaryRequest struct {
	DocumentId  string `json:"document_id" validate:"required"`
	UseDeepSeek bool   `json:"use_deepseek"`
}

type SummaryResponse struct {
	DocumentId string `json:"document_id"`
	Filename   string `json:"filename"`
	Summary    string `json:"summary"`
	ModelUsed  string `json:"model_used"`
}

type QuizRequest struct {
	DocumentId    string `json:"document_id" validate:"required"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=20"`
	UseDeepSeek   bool   `json:"use_deepseek"`
}

type QuizQuestionDTO struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type QuizResponse struct {
	DocumentId string            `json:"document_id"`
	Filename   string            `json:"filename"`
	Questions  []QuizQuestionDTO `json:"questions"`
	ModelUsed  string            `json:"model_used"`
	// RawOutput is only populated when the model reply could not be parsed
	// as a question list.
	RawOutput string `json:"raw_output,omitempty"`
}

type StudyPlanRequest struct {
	DocumentId  string `json:"document_id" validate:"required"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	UseDeepSeek bool   `json:"use_deepseek"`
}

type StudyPlanResponse struct {
	DocumentId string `json:"document_id"`
	Filename   string `json:"filename"`
	Difficulty string `json:"difficulty"`
	Plan       string `json:"plan"`
	ModelUsed  string `json:"model_used"`
}

type ServiceStatusResponse struct {
	Documents   DocumentStatsDTO `json:"documents"`
	Sessions    SessionHealthDTO `json:"sessions"`
	Providers   []ProviderDTO    `json:"providers"`
	ServiceTime int64            `json:"service_time"`
}

type ProviderDTO struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
}
