package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-studymate-be/internal/config"
	"ai-studymate-be/internal/constant"
	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/llm/factory"
	"ai-studymate-be/pkg/prompt"
	"ai-studymate-be/pkg/session"

	"github.com/google/uuid"
)

const (
	// minimum normalized score a chunk needs to count as relevant in
	// unrestricted search
	searchScoreThreshold = 0.1

	// sources returned to the client carry at most this many characters of
	// chunk content
	sourceSnippetLength = 200

	// summaries, quizzes and study plans feed at most this much document
	// text to the model
	generationInputLimit = 8000

	defaultQuizQuestionCount = 5

	answerTemperature     = 0.3
	generationTemperature = 0.7
)

// IAssistantService defines the question answering and content generation
// service interface
type IAssistantService interface {
	AnswerQuestion(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	ExplainConcept(ctx context.Context, request *dto.ExplainRequest) (*dto.ExplainResponse, error)
	GenerateSummary(ctx context.Context, request *dto.SummaryRequest) (*dto.SummaryResponse, error)
	GenerateQuiz(ctx context.Context, request *dto.QuizRequest) (*dto.QuizResponse, error)
	GenerateStudyPlan(ctx context.Context, request *dto.StudyPlanRequest) (*dto.StudyPlanResponse, error)
	GetServiceStatus(ctx context.Context) (*dto.ServiceStatusResponse, error)
}

type assistantService struct {
	docs      *docstore.Store
	sessions  *session.Store
	providers *factory.Factory
	aiCfg     config.AIConfig
	docCfg    config.DocumentConfig
	log       logger.ILogger
}

func NewAssistantService(
	docs *docstore.Store,
	sessions *session.Store,
	providers *factory.Factory,
	aiCfg config.AIConfig,
	docCfg config.DocumentConfig,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		docs:      docs,
		sessions:  sessions,
		providers: providers,
		aiCfg:     aiCfg,
		docCfg:    docCfg,
		log:       log,
	}
}

func (s *assistantService) AnswerQuestion(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	// Retrieval only runs against explicitly bound documents. An unbound
	// question goes to the model without passages so the document-free
	// prompt branch stays reachable.
	var passages []docstore.SearchResult
	if len(request.DocumentIds) > 0 {
		var err error
		passages, err = s.docs.SearchInDocuments(request.Question, request.DocumentIds, s.docCfg.TopK)
		if err != nil {
			return nil, err
		}
	}

	history := s.sessions.GetContextMessages(ctx, sessionId)
	messages := prompt.NewBuilder(request.Question, history, passages, request.DocumentIds).Build()

	provider := s.providers.ProviderFor(request.UseDeepSeek)
	result, err := provider.Chat(ctx, messages, llm.WithTemperature(answerTemperature))
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	sources := sourceRefs(passages)
	s.sessions.AppendTurn(ctx, sessionId, session.ConversationTurn{
		Timestamp: time.Now().Unix(),
		Question:  request.Question,
		Answer:    result.Content,
		ModelUsed: result.ModelUsed,
		Sources:   sources,
	})

	s.log.Info("assistant", "Question answered", map[string]interface{}{
		"session_id":  sessionId,
		"sources":     len(sources),
		"model_used":  result.ModelUsed,
		"tokens_used": result.TokensUsed,
	})

	return &dto.AskResponse{
		Answer:      result.Content,
		SessionId:   sessionId,
		ModelUsed:   result.ModelUsed,
		TokensUsed:  result.TokensUsed,
		Sources:     sourceDTOs(sources),
		HasContext:  len(passages) > 0,
		ContextUsed: len(history),
	}, nil
}

func (s *assistantService) ExplainConcept(ctx context.Context, request *dto.ExplainRequest) (*dto.ExplainResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	passages, err := s.docs.Search(request.Concept, 3, searchScoreThreshold)
	if err != nil {
		return nil, err
	}

	history := s.sessions.GetContextMessages(ctx, sessionId)
	if len(history) > 4 {
		history = history[len(history)-4:]
	}

	var user strings.Builder
	user.WriteString("Please explain this concept: ")
	user.WriteString(request.Concept)
	if len(passages) > 0 {
		user.WriteString("\n\nRelated content from my documents:\n")
		for _, passage := range passages {
			user.WriteString("\n")
			user.WriteString(passage.Chunk.Content)
		}
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.MessageRoleSystem, Content: constant.ConceptSystemPromptV1})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: constant.MessageRoleUser, Content: user.String()})

	provider := s.providers.ProviderFor(request.UseDeepSeek)
	result, err := provider.Chat(ctx, messages, llm.WithTemperature(answerTemperature))
	if err != nil {
		return nil, fmt.Errorf("concept explanation failed: %w", err)
	}

	sources := sourceRefs(passages)
	s.sessions.AppendTurn(ctx, sessionId, session.ConversationTurn{
		Timestamp: time.Now().Unix(),
		Question:  "Explain: " + request.Concept,
		Answer:    result.Content,
		ModelUsed: result.ModelUsed,
		Sources:   sources,
	})

	return &dto.ExplainResponse{
		Explanation: result.Content,
		SessionId:   sessionId,
		ModelUsed:   result.ModelUsed,
		Sources:     sourceDTOs(sources),
	}, nil
}

func (s *assistantService) GenerateSummary(ctx context.Context, request *dto.SummaryRequest) (*dto.SummaryResponse, error) {
	content, meta, err := s.documentText(request.DocumentId)
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: constant.MessageRoleSystem, Content: constant.SummarySystemPromptV1},
		{Role: constant.MessageRoleUser, Content: "Please summarize the following document:\n\n" + content},
	}

	provider := s.providers.ProviderFor(request.UseDeepSeek)
	result, err := provider.Chat(ctx, messages, llm.WithTemperature(generationTemperature))
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}

	return &dto.SummaryResponse{
		DocumentId: request.DocumentId,
		Filename:   meta.Filename,
		Summary:    result.Content,
		ModelUsed:  result.ModelUsed,
	}, nil
}

func (s *assistantService) GenerateQuiz(ctx context.Context, request *dto.QuizRequest) (*dto.QuizResponse, error) {
	content, meta, err := s.documentText(request.DocumentId)
	if err != nil {
		return nil, err
	}

	count := request.QuestionCount
	if count == 0 {
		count = defaultQuizQuestionCount
	}

	userPrompt := fmt.Sprintf(
		"Generate %d practice questions from the following document. Return a JSON array where each element has the fields \"question\", \"options\", \"answer\" and \"explanation\".\n\n%s",
		count, content)

	messages := []llm.Message{
		{Role: constant.MessageRoleSystem, Content: constant.QuizSystemPromptV1},
		{Role: constant.MessageRoleUser, Content: userPrompt},
	}

	provider := s.providers.ProviderFor(request.UseDeepSeek)
	result, err := provider.Chat(ctx, messages, llm.WithTemperature(generationTemperature))
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	response := &dto.QuizResponse{
		DocumentId: request.DocumentId,
		Filename:   meta.Filename,
		ModelUsed:  result.ModelUsed,
	}

	questions, ok := parseQuizQuestions(result.Content)
	if !ok {
		s.log.Warn("assistant", "Quiz output not parseable as JSON, returning raw text", map[string]interface{}{
			"document_id": request.DocumentId,
		})
		response.RawOutput = result.Content
		return response, nil
	}
	response.Questions = questions
	return response, nil
}

func (s *assistantService) GenerateStudyPlan(ctx context.Context, request *dto.StudyPlanRequest) (*dto.StudyPlanResponse, error) {
	content, meta, err := s.documentText(request.DocumentId)
	if err != nil {
		return nil, err
	}

	difficulty := request.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}
	descriptions := map[string]string{
		"beginner":     "a beginner with no prior background, needing fundamentals first",
		"intermediate": "a learner with some background, ready to deepen their understanding",
		"advanced":     "an advanced learner aiming for mastery and edge cases",
	}

	systemPrompt := fmt.Sprintf(constant.StudyPlanSystemPromptV1, descriptions[difficulty])
	messages := []llm.Message{
		{Role: constant.MessageRoleSystem, Content: systemPrompt},
		{Role: constant.MessageRoleUser, Content: "Build a study plan for the following material:\n\n" + content},
	}

	provider := s.providers.ProviderFor(request.UseDeepSeek)
	result, err := provider.Chat(ctx, messages, llm.WithTemperature(generationTemperature))
	if err != nil {
		return nil, fmt.Errorf("study plan generation failed: %w", err)
	}

	return &dto.StudyPlanResponse{
		DocumentId: request.DocumentId,
		Filename:   meta.Filename,
		Difficulty: difficulty,
		Plan:       result.Content,
		ModelUsed:  result.ModelUsed,
	}, nil
}

func (s *assistantService) GetServiceStatus(ctx context.Context) (*dto.ServiceStatusResponse, error) {
	stats := s.docs.GetStats()
	health := s.sessions.HealthStatus(ctx)

	return &dto.ServiceStatusResponse{
		Documents: dto.DocumentStatsDTO{
			TotalDocuments:   stats.TotalDocuments,
			TotalChunks:      stats.TotalChunks,
			TotalCharacters:  stats.TotalCharacters,
			AverageChunkSize: stats.AverageChunkSize,
			StorePath:        stats.StorePath,
		},
		Sessions: dto.SessionHealthDTO{
			StorageType:    health.StorageType,
			RedisConnected: health.RedisConnected,
			RedisStatus:    health.RedisStatus,
			ActiveSessions: health.ActiveSessions,
		},
		Providers: []dto.ProviderDTO{
			{Name: "openai", Model: s.aiCfg.OpenAIModel, Configured: s.aiCfg.OpenAIAPIKey != ""},
			{Name: "deepseek", Model: s.aiCfg.DeepSeekModel, Configured: s.aiCfg.DeepSeekAPIKey != ""},
		},
		ServiceTime: time.Now().Unix(),
	}, nil
}

// documentText joins a document's chunks back into one text, capped at
// generationInputLimit runes.
func (s *assistantService) documentText(documentId string) (string, docstore.Metadata, error) {
	meta, ok := s.docs.GetMetadata(documentId)
	if !ok {
		return "", docstore.Metadata{}, fmt.Errorf("%w: %s", docstore.ErrNotFound, documentId)
	}

	chunks := s.docs.GetByID(documentId)
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}

	content := strings.Join(parts, "\n")
	if runes := []rune(content); len(runes) > generationInputLimit {
		content = string(runes[:generationInputLimit])
	}
	return content, meta, nil
}

func sourceRefs(passages []docstore.SearchResult) []session.SourceRef {
	refs := make([]session.SourceRef, 0, len(passages))
	for _, passage := range passages {
		snippet := passage.Chunk.Content
		if runes := []rune(snippet); len(runes) > sourceSnippetLength {
			snippet = string(runes[:sourceSnippetLength]) + "..."
		}
		refs = append(refs, session.SourceRef{
			Content:  snippet,
			Filename: passage.Chunk.SourceName,
			Score:    passage.Score,
		})
	}
	return refs
}

func sourceDTOs(refs []session.SourceRef) []dto.SourceDTO {
	out := make([]dto.SourceDTO, 0, len(refs))
	for _, ref := range refs {
		out = append(out, dto.SourceDTO{
			Content:  ref.Content,
			Filename: ref.Filename,
			Score:    ref.Score,
		})
	}
	return out
}

// parseQuizQuestions accepts either a bare JSON array or an object wrapping
// one under "questions". Models often pad the JSON with prose or markdown
// fences, so on a direct parse failure the bracket-delimited window is tried
// once more.
func parseQuizQuestions(raw string) ([]dto.QuizQuestionDTO, bool) {
	if questions, ok := decodeQuizJSON(raw); ok {
		return questions, true
	}

	start := strings.IndexAny(raw, "[{")
	end := strings.LastIndexAny(raw, "]}")
	if start < 0 || end <= start {
		return nil, false
	}
	return decodeQuizJSON(raw[start : end+1])
}

func decodeQuizJSON(raw string) ([]dto.QuizQuestionDTO, bool) {
	raw = strings.TrimSpace(raw)

	var questions []dto.QuizQuestionDTO
	if err := json.Unmarshal([]byte(raw), &questions); err == nil && len(questions) > 0 {
		return questions, true
	}

	var wrapped struct {
		Questions []dto.QuizQuestionDTO `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && len(wrapped.Questions) > 0 {
		return wrapped.Questions, true
	}
	return nil, false
}
