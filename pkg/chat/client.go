// Package chat sends the transcript to the OpenAI chat-completions API.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/minhyannv/homemade-copilot/pkg/config"
	"github.com/minhyannv/homemade-copilot/pkg/conversation"
	loggerpkg "github.com/minhyannv/homemade-copilot/pkg/logger"
)

// ErrNoChoices is returned when a completion carries no choices.
var ErrNoChoices = errors.New("completion has no choices")

// ResponseError reports a remote call that produced no usable reply.
type ResponseError struct {
	// StatusCode is the HTTP status, or 0 when the request never got a response.
	StatusCode int
	// Body is the raw response payload, when one was received.
	Body string
	Err  error
}

func (e *ResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat completion failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("chat completion failed: %v", e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// Payload returns what should be shown to the user for this failure.
func (e *ResponseError) Payload() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Err.Error()
}

// Client implements conversation.Completer.
type Client struct {
	config configpkg.Config
	api    openai.Client
	logger loggerpkg.Logger
}

// Option configures optional Client dependencies.
type Option func(*Client)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New builds a client from cfg. The API key is supplied per request.
func New(cfg configpkg.Config, opts ...Option) *Client {
	cfg = configpkg.Normalize(cfg)
	c := &Client{config: cfg, logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.api = openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	return c
}

// Complete sends messages and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, apiKey string, messages []conversation.Message) (string, error) {
	params, err := c.newParams(messages)
	if err != nil {
		return "", err
	}
	if c.config.Verbose {
		loggerpkg.Debugf(true, c.logger, "request params:\n%s", spew.Sdump(params))
	}

	completion, err := c.api.Chat.Completions.New(ctx, params, option.WithAPIKey(apiKey))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			loggerpkg.Debug(c.config.Verbose, c.logger, "chat completion rejected", map[string]any{
				"status": apiErr.StatusCode,
			})
			return "", &ResponseError{StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON(), Err: err}
		}
		return "", &ResponseError{Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &ResponseError{StatusCode: 200, Body: completion.RawJSON(), Err: ErrNoChoices}
	}

	loggerpkg.Debug(c.config.Verbose, c.logger, "chat completion received", map[string]any{
		"choices":       len(completion.Choices),
		"finish_reason": completion.Choices[0].FinishReason,
		"bytes":         len(completion.Choices[0].Message.Content),
	})
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) newParams(messages []conversation.Message) (openai.ChatCompletionNewParams, error) {
	converted, err := toOpenAIMessages(messages)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.config.Model),
		MaxTokens:   openai.Int(c.config.MaxTokens),
		Temperature: openai.Float(c.config.Temperature),
		Messages:    converted,
	}, nil
}

func toOpenAIMessages(messages []conversation.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case conversation.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case conversation.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case conversation.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}
	}
	return out, nil
}
