// Package groq calls Groq's OpenAI-compatible chat-completions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/reflect-backend/internal/adapter/llm"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const (
	providerName   = "groq"
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

// Client is a chat-completions client for Groq.
type Client struct {
	apiKey     string
	baseURL    string
	params     llm.Params
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client against the public Groq API.
func New(apiKey string, params llm.Params, logger *slog.Logger) *Client {
	return NewWithURL(DefaultBaseURL, apiKey, params, logger)
}

// NewWithURL creates a Client with a custom base URL (for testing).
func NewWithURL(baseURL, apiKey string, params llm.Params, logger *slog.Logger) *Client {
	params = params.WithDefaults(DefaultModel)
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		params:     params,
		httpClient: &http.Client{},
		log:        logger.With("adapter", providerName),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the conversation and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	reqBody := chatRequest{
		Model:       c.params.Model,
		Messages:    make([]chatMessage, 0, len(messages)),
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: m.Role.String(), Content: m.Content})
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("groq: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &llm.Error{Provider: providerName, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.Error{Provider: providerName, StatusCode: resp.StatusCode, Message: "read body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.Error{Provider: providerName, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &llm.Error{Provider: providerName, StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", llm.EmptyResponse(providerName)
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	c.log.DebugContext(ctx, "groq completion",
		slog.String("model", c.params.Model),
		slog.Int("messages", len(messages)),
		slog.Duration("took", time.Since(start)),
		slog.Int("response_len", len(text)),
	)
	return text, nil
}

func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		return "unexpected status"
	}
	return msg
}
