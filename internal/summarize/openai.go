package summarize

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompat targets local servers that speak the OpenAI chat API, such
// as LM Studio, llama.cpp server, and vLLM. The base URL must include the
// API prefix those servers expose (usually "/v1"). The rendered prompt
// travels as a single user message.
type OpenAICompat struct {
	client  *openai.Client
	timeout time.Duration
}

func NewOpenAICompat(baseURL, apiKey string, timeout time.Duration) *OpenAICompat {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompat{
		client:  openai.NewClientWithConfig(cfg),
		timeout: timeout,
	}
}

func (p *OpenAICompat) Name() string { return "openai" }

func (p *OpenAICompat) Summarize(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAICompat) Models(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	resp, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, wrapOpenAIError(err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

// wrapOpenAIError folds go-openai's error types into the package taxonomy:
// anything the server answered becomes *HTTPError, transport and context
// failures pass through wrapped.
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &HTTPError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &HTTPError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return fmt.Errorf("openai chat: %w", err)
}
