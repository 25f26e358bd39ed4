// Package llm wraps the chat-completion API used for interview response
// analysis. The model is treated as opaque and unreliable; callers must
// handle errors by falling back to locally computed results.
package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ez2source-sys/ez2source-sub001/internal/config"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
)

// ErrDisabled is returned by every call when no API key is configured.
var ErrDisabled = errors.New("ai analysis disabled: no api key configured")

type Client interface {
	// CompleteJSON runs one chat completion in JSON mode and returns the
	// raw JSON text of the first choice.
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
}

type openAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds the completion client. An empty API key yields a
// client whose calls always fail with ErrDisabled.
func NewClient(cfg config.OpenAIConfig) Client {
	if cfg.APIKey == "" {
		return disabledClient{}
	}
	return &openAIClient{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

func (c *openAIClient) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.ExternalServiceCall("openai", "chat_completion", "model", c.model)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	logger.ExternalServiceResult("openai", "chat_completion", err)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

type disabledClient struct{}

func (disabledClient) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	return "", ErrDisabled
}
