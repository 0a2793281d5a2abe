package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prepmind/neetprep-backend/internal/config"
)

// ErrNoContent is returned when the model reply contains no usable text.
var ErrNoContent = errors.New("no content received from model")

// ChatCompleter is the single-call contract the services depend on: one
// system prompt, one user prompt, one textual completion back.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GroqClient talks to Groq's OpenAI-compatible chat completions API.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient builds a client from configuration. Groq exposes the
// OpenAI wire protocol, so the stock client with a swapped base URL works.
func NewGroqClient(cfg *config.Config) *GroqClient {
	clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	clientCfg.BaseURL = cfg.GroqBaseURL

	return &GroqClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.GroqModel,
	}
}

// Complete sends one system+user chat completion request and returns the
// raw text of the first choice.
func (c *GroqClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoContent
	}
	return resp.Choices[0].Message.Content, nil
}
