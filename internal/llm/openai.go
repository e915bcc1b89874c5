package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no chat model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI sends single-prompt chat completions.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32

	Stats *LLMStats
}

// OpenAIConfig configures an OpenAI adapter. BaseURL is optional.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	BaseURL     string
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		Stats:       NewLLMStats(time.Hour),
	}
}

// Model returns the chat model name.
func (o *OpenAI) Model() string {
	return o.model
}

// Complete sends prompt as a single user message and returns the reply text.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	o.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && retryableStatus(apiErr.HTTPStatusCode) {
		return &RetryableError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && retryableStatus(reqErr.HTTPStatusCode) {
		return &RetryableError{Provider: "openai", StatusCode: reqErr.HTTPStatusCode, Message: string(reqErr.Body)}
	}
	return fmt.Errorf("openai chat completion: %w", err)
}
