package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmind/neetprep-backend/internal/config"
)

func newTestGroqClient(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGroqClient(&config.Config{
		GroqAPIKey:  "test-key",
		GroqBaseURL: server.URL,
		GroqModel:   "llama-3.3-70b-versatile",
	})
}

func TestGroqClient_HappyPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "llama-3.3-70b-versatile", req.Model)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: `[{"ok":true}]`}},
			},
		})
	}

	c := newTestGroqClient(t, handler)
	got, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `[{"ok":true}]`, got)
}

func TestGroqClient_EmptyChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}

	c := newTestGroqClient(t, handler)
	_, err := c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestGroqClient_UpstreamError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}

	c := newTestGroqClient(t, handler)
	_, err := c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}
