// Package claude calls Claude models through the Anthropic SDK.
package claude

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/reflect-backend/internal/adapter/llm"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const (
	providerName = "anthropic"
	DefaultModel = "claude-haiku-4-5"
)

// Client generates replies with the Messages API.
type Client struct {
	client anthropic.Client
	params llm.Params
	log    *slog.Logger
}

// New creates a Client. baseURL is optional (used by tests). SDK retries are
// disabled; retrying is left to llm.WithRetry.
func New(apiKey, baseURL string, params llm.Params, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client: anthropic.NewClient(opts...),
		params: params.WithDefaults(DefaultModel),
		log:    logger.With("adapter", providerName),
	}
}

// Complete sends the conversation. System messages are passed as the system
// prompt, everything else as alternating user and assistant turns.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.params.Model),
		MaxTokens:   int64(c.params.MaxTokens),
		Temperature: anthropic.Float(c.params.Temperature),
	}
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case domain.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", toError(err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", llm.EmptyResponse(providerName)
	}

	c.log.DebugContext(ctx, "anthropic completion",
		slog.String("model", c.params.Model),
		slog.Int("messages", len(messages)),
		slog.Duration("took", time.Since(start)),
		slog.Int("response_len", len(text)),
	)
	return text, nil
}

func toError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &llm.Error{
			Provider:   providerName,
			StatusCode: apiErr.StatusCode,
			Message:    apiMessage(apiErr.RawJSON()),
			Err:        err,
		}
	}
	return &llm.Error{Provider: providerName, Message: "request failed", Err: err}
}

func apiMessage(raw string) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return "api error"
}
