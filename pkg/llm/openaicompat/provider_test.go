package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-studymate-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var captured chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "the answer"}},
			},
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	defer server.Close()

	p := NewProvider(server.URL, "test-key", "test-model", "test-display")

	result, err := p.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "hello"},
		},
		llm.WithTemperature(0.3),
	)
	require.NoError(t, err)

	assert.Equal(t, "the answer", result.Content)
	assert.Equal(t, "test-display", result.ModelUsed)
	assert.Equal(t, 42, result.TokensUsed)

	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, 0.3, captured.Temperature)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
}

func TestChatMapsModelRole(t *testing.T) {
	var captured chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	p := NewProvider(server.URL, "k", "m", "d")

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "model", Content: "prior reply"}})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "assistant", captured.Messages[0].Role)
}

func TestChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewProvider(server.URL, "k", "m", "my-provider")

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "q"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "my-provider")
	assert.Contains(t, err.Error(), "429")
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	p := NewProvider(server.URL, "k", "m", "d")

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "q"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerateWrapsChat(t *testing.T) {
	var captured chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	p := NewProvider(server.URL, "k", "m", "d")

	_, err := p.Generate(context.Background(), "single prompt")
	require.NoError(t, err)

	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "single prompt", captured.Messages[0].Content)
}
