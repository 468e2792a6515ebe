package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reflect-backend/internal/adapter/llm"
	"github.com/heartmarshall/reflect-backend/internal/adapter/llm/claude"
	"github.com/heartmarshall/reflect-backend/internal/adapter/llm/gemini"
	"github.com/heartmarshall/reflect-backend/internal/adapter/llm/groq"
	"github.com/heartmarshall/reflect-backend/internal/config"
)

// NewLLMClient returns the adapter selected by cfg.Provider, without retry.
func NewLLMClient(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (llm.Client, error) {
	params := llm.Params{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}

	switch cfg.Provider {
	case config.ProviderGroq:
		if cfg.BaseURL != "" {
			return groq.NewWithURL(cfg.BaseURL, cfg.APIKey(), params, log), nil
		}
		return groq.New(cfg.APIKey(), params, log), nil
	case config.ProviderGemini:
		c, err := gemini.New(ctx, cfg.APIKey(), cfg.BaseURL, params, log)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, nil
	case config.ProviderAnthropic:
		return claude.New(cfg.APIKey(), cfg.BaseURL, params, log), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
