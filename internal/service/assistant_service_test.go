package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-studymate-be/internal/config"
	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/llm/factory"
	"ai-studymate-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedChat records the chat-completions payloads a test model server
// received.
type capturedChat struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func (c *capturedChat) lastUserMessage(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, c.Messages)
	last := c.Messages[len(c.Messages)-1]
	require.Equal(t, "user", last.Role)
	return last.Content
}

// newAskFixture wires a real document store, an in-memory session store and
// a provider factory pointed at a stub model server.
func newAskFixture(t *testing.T) (IAssistantService, *docstore.Store, *capturedChat) {
	t.Helper()

	captured := &capturedChat{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "stub answer"}},
			},
			"usage": map[string]int{"total_tokens": 7},
		})
	}))
	t.Cleanup(server.Close)

	log := logger.NewNopLogger()
	docs, err := docstore.New(t.TempDir(), log)
	require.NoError(t, err)

	sessions := session.NewStore(session.NewMemoryBackend(time.Hour), 20, 6, log)

	aiCfg := config.AIConfig{
		OpenAIBaseURL: server.URL, OpenAIAPIKey: "k", OpenAIModel: "m",
		DeepSeekBaseURL: server.URL, DeepSeekAPIKey: "k", DeepSeekModel: "m",
	}
	docCfg := config.DocumentConfig{TopK: 5}

	svc := NewAssistantService(docs, sessions, factory.New(aiCfg), aiCfg, docCfg, log)
	return svc, docs, captured
}

func TestAnswerQuestionUnboundSkipsRetrieval(t *testing.T) {
	svc, docs, captured := newAskFixture(t)
	require.NoError(t, docs.Ingest("physics", []docstore.Chunk{
		{Content: "gravity pulls objects together", SourceName: "physics.txt"},
	}))

	res, err := svc.AnswerQuestion(context.Background(), &dto.AskRequest{Question: "what is gravity"})
	require.NoError(t, err)

	// No documents bound: no retrieval, no attributions, document-free prompt.
	assert.Empty(t, res.Sources)
	assert.False(t, res.HasContext)
	user := captured.lastUserMessage(t)
	assert.Contains(t, user, "no documents bound")
	assert.NotContains(t, user, "Relevant document content")
}

func TestAnswerQuestionBoundUsesGroundedBranch(t *testing.T) {
	svc, docs, captured := newAskFixture(t)
	require.NoError(t, docs.Ingest("physics", []docstore.Chunk{
		{Content: "gravity pulls objects together", SourceName: "physics.txt"},
	}))

	res, err := svc.AnswerQuestion(context.Background(), &dto.AskRequest{
		Question:    "what is gravity",
		DocumentIds: []string{"physics"},
	})
	require.NoError(t, err)

	require.Len(t, res.Sources, 1)
	assert.Equal(t, "physics.txt", res.Sources[0].Filename)
	assert.True(t, res.HasContext)
	user := captured.lastUserMessage(t)
	assert.Contains(t, user, "Relevant document content")
	assert.Contains(t, user, "gravity pulls objects together")
}

func TestAnswerQuestionBoundNoMatchBranch(t *testing.T) {
	svc, docs, captured := newAskFixture(t)
	require.NoError(t, docs.Ingest("physics", []docstore.Chunk{
		{Content: "gravity pulls objects together", SourceName: "physics.txt"},
	}))

	res, err := svc.AnswerQuestion(context.Background(), &dto.AskRequest{
		Question:    "photosynthesis pathways",
		DocumentIds: []string{"physics"},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Sources)
	assert.False(t, res.HasContext)
	assert.Contains(t, captured.lastUserMessage(t), "no relevant content was found")
}

func TestAnswerQuestionContextUsedCountsHistory(t *testing.T) {
	svc, _, _ := newAskFixture(t)
	ctx := context.Background()

	first, err := svc.AnswerQuestion(ctx, &dto.AskRequest{Question: "first question"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.ContextUsed)

	second, err := svc.AnswerQuestion(ctx, &dto.AskRequest{
		Question:  "follow-up",
		SessionId: first.SessionId,
	})
	require.NoError(t, err)
	// One prior turn flattens into a user/assistant message pair.
	assert.Equal(t, 2, second.ContextUsed)
	assert.False(t, second.HasContext)
}

func TestParseQuizQuestionsBareArray(t *testing.T) {
	raw := `[{"question":"What is X?","options":["a","b"],"answer":"a","explanation":"because"}]`

	questions, ok := parseQuizQuestions(raw)
	require.True(t, ok)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is X?", questions[0].Question)
	assert.Equal(t, "a", questions[0].Answer)
}

func TestParseQuizQuestionsWrappedObject(t *testing.T) {
	raw := `{"questions":[{"question":"Q1","answer":"a","explanation":"e"},{"question":"Q2","answer":"b","explanation":"e"}]}`

	questions, ok := parseQuizQuestions(raw)
	require.True(t, ok)
	assert.Len(t, questions, 2)
}

func TestParseQuizQuestionsMarkdownFenced(t *testing.T) {
	raw := "Here are your questions:\n```json\n[{\"question\":\"Q\",\"answer\":\"a\",\"explanation\":\"e\"}]\n```\nGood luck!"

	questions, ok := parseQuizQuestions(raw)
	require.True(t, ok)
	assert.Len(t, questions, 1)
}

func TestParseQuizQuestionsUnparseable(t *testing.T) {
	_, ok := parseQuizQuestions("The model decided to answer in prose instead.")
	assert.False(t, ok)
}

func TestSourceRefsTruncation(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'x'
	}

	refs := sourceRefs([]docstore.SearchResult{
		{Chunk: docstore.Chunk{Content: string(long), SourceName: "big.txt"}, Score: 1.5},
		{Chunk: docstore.Chunk{Content: "short", SourceName: "small.txt"}, Score: 0.5},
	})

	require.Len(t, refs, 2)
	assert.Len(t, []rune(refs[0].Content), sourceSnippetLength+3)
	assert.True(t, len(refs[0].Content) > 3)
	assert.Equal(t, "...", refs[0].Content[len(refs[0].Content)-3:])
	assert.Equal(t, "short", refs[1].Content)
	assert.Equal(t, 1.5, refs[0].Score)
}
