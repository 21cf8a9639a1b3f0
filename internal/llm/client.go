// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/pdiddy/research-report/pkg/types"
)

// StatusError reports a non-success HTTP status from the completion endpoint.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("completion endpoint returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("completion endpoint returned HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return e.Err }

// ErrEmptyResponse is returned when the endpoint answers without any choice.
var ErrEmptyResponse = errors.New("completion endpoint returned no choices")

// Client calls the chat completion endpoint described by a types.LLMConfig.
type Client struct {
	api   *openai.Client
	model string
	log   *zap.Logger
}

// NewClient builds a Client for cfg. A nil logger disables logging.
func NewClient(cfg types.LLMConfig, log *zap.Logger) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: cfg.Model,
		log:   log,
	}
}

// Complete sends req and returns the first choice's content, trimmed.
// Transport failures are returned wrapped; HTTP failures as *StatusError.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	c.log.Debug("completion request",
		zap.String("model", c.model),
		zap.Int("messages", len(messages)),
		zap.Int("prompt_chars", req.PromptChars()),
		zap.Float32("temperature", req.Temperature),
		zap.Int("max_tokens", req.MaxTokens))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug("completion response",
		zap.Int("chars", len([]rune(content))),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)))
	return content, nil
}

// classify separates HTTP status failures from transport failures.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Message: msg, Err: err}
	}
	return fmt.Errorf("calling completion endpoint: %w", err)
}
