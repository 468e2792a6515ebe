// Package gemini calls Google's Gemini models through the Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/reflect-backend/internal/adapter/llm"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const (
	providerName = "gemini"
	DefaultModel = "gemini-2.0-flash"
)

// Client generates replies with a Gemini model.
type Client struct {
	models *genai.Models
	params llm.Params
	log    *slog.Logger
}

// New creates a Client for the Gemini API. baseURL is optional and points the
// SDK at a different endpoint (used by tests).
func New(ctx context.Context, apiKey, baseURL string, params llm.Params, logger *slog.Logger) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	return &Client{
		models: client.Models,
		params: params.WithDefaults(DefaultModel),
		log:    logger.With("adapter", providerName),
	}, nil
}

// Complete sends the conversation. System messages become the system
// instruction; assistant turns are sent with the model role.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	system, contents := toContents(messages)
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.params.Temperature)),
		MaxOutputTokens: int32(c.params.MaxTokens),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.params.Model, contents, config)
	if err != nil {
		return "", toError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llm.EmptyResponse(providerName)
	}

	c.log.DebugContext(ctx, "gemini completion",
		slog.String("model", c.params.Model),
		slog.Int("messages", len(messages)),
		slog.Duration("took", time.Since(start)),
		slog.Int("response_len", len(text)),
	)
	return text, nil
}

func toContents(messages []domain.ChatMessage) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}

func toError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.Error{Provider: providerName, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return &llm.Error{Provider: providerName, Message: "request failed", Err: err}
}
