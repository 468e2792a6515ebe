// Package llm holds what the chat-completion adapters share: call parameters,
// the provider error type and the retry decorator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 300
	DefaultTimeout     = 30 * time.Second
)

// Client produces one assistant reply for an ordered conversation.
type Client interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// Params are the generation settings every adapter honors.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultParams returns the settings used when configuration leaves them unset.
func DefaultParams(model string) Params {
	return Params{
		Model:       model,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

// WithDefaults fills zero fields from DefaultParams. Temperature is kept as
// given since zero is a valid setting; config supplies its default.
func (p Params) WithDefaults(model string) Params {
	d := DefaultParams(model)
	if p.Model == "" {
		p.Model = d.Model
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = d.MaxTokens
	}
	if p.Timeout <= 0 {
		p.Timeout = d.Timeout
	}
	return p
}

// Error describes a failed completion. StatusCode is zero for transport
// failures and for responses that carried no usable text.
type Error struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// Unwrap exposes domain.ErrLLMUnavailable and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrLLMUnavailable}
	}
	return []error{domain.ErrLLMUnavailable, e.Err}
}

// Retryable reports whether another attempt could succeed.
// Client errors other than 429 are final, as are canceled contexts.
func (e *Error) Retryable() bool {
	if errors.Is(e.Err, context.Canceled) {
		return false
	}
	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

// EmptyResponse is the error adapters return when the provider answered
// without any text.
func EmptyResponse(provider string) *Error {
	return &Error{Provider: provider, Message: "empty response"}
}
