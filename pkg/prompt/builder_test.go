package prompt

import (
	"testing"

	"ai-studymate-be/internal/constant"
	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGroundedQuestion(t *testing.T) {
	passages := []docstore.SearchResult{
		{Chunk: docstore.Chunk{Content: "Mitochondria produce ATP.", SourceName: "biology.txt"}, Score: 2},
		{Chunk: docstore.Chunk{Content: "ATP powers cellular work.", SourceName: "biology.txt"}, Score: 1},
	}

	messages := NewBuilder("What do mitochondria do?", nil, passages, []string{"doc-1"}).Build()

	require.Len(t, messages, 2)
	assert.Equal(t, constant.MessageRoleSystem, messages[0].Role)
	assert.Equal(t, constant.AssistantSystemPromptV1, messages[0].Content)

	user := messages[1]
	assert.Equal(t, constant.MessageRoleUser, user.Role)
	assert.Contains(t, user.Content, "[Document 1: biology.txt]")
	assert.Contains(t, user.Content, "[Document 2: biology.txt]")
	assert.Contains(t, user.Content, "Mitochondria produce ATP.")
	assert.Contains(t, user.Content, "=== My question ===")
	assert.Contains(t, user.Content, "What do mitochondria do?")
}

func TestBuildNoMatchQuestion(t *testing.T) {
	messages := NewBuilder("What is dark matter?", nil, nil, []string{"doc-1", "doc-2"}).Build()

	require.Len(t, messages, 2)
	user := messages[1].Content
	assert.Contains(t, user, "What is dark matter?")
	assert.Contains(t, user, "no relevant content was found in the 2 bound document(s)")
}

func TestBuildUnboundQuestion(t *testing.T) {
	messages := NewBuilder("What is dark matter?", nil, nil, nil).Build()

	require.Len(t, messages, 2)
	user := messages[1].Content
	assert.Contains(t, user, "What is dark matter?")
	assert.Contains(t, user, "no documents bound")
}

func TestBuildKeepsHistoryOrder(t *testing.T) {
	history := []llm.Message{
		{Role: constant.MessageRoleUser, Content: "earlier question"},
		{Role: constant.MessageRoleAssistant, Content: "earlier answer"},
	}

	messages := NewBuilder("follow-up", history, nil, nil).Build()

	require.Len(t, messages, 4)
	assert.Equal(t, constant.MessageRoleSystem, messages[0].Role)
	assert.Equal(t, "earlier question", messages[1].Content)
	assert.Equal(t, "earlier answer", messages[2].Content)
	assert.Contains(t, messages[3].Content, "follow-up")
}

func TestGroundedQuestionFallbackSourceName(t *testing.T) {
	passages := []docstore.SearchResult{
		{Chunk: docstore.Chunk{Content: "unnamed content"}, Score: 1},
	}

	messages := NewBuilder("q", nil, passages, nil).Build()
	assert.Contains(t, messages[1].Content, "[Document 1: document 1]")
}
