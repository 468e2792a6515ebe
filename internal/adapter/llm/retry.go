package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

type retryClient struct {
	next     Client
	attempts int
	interval time.Duration
	log      *slog.Logger
}

// WithRetry wraps next so that retryable failures are attempted up to
// attempts times in total with exponential backoff starting at interval.
// attempts <= 1 returns next unchanged.
func WithRetry(next Client, attempts int, interval time.Duration, log *slog.Logger) Client {
	if attempts <= 1 {
		return next
	}
	return &retryClient{
		next:     next,
		attempts: attempts,
		interval: interval,
		log:      log.With("component", "llm_retry"),
	}
}

func (c *retryClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.attempts-1)), ctx)

	attempt := 0
	op := func() (string, error) {
		attempt++
		text, err := c.next.Complete(ctx, messages)
		if err != nil && !retryable(err) {
			return "", backoff.Permanent(err)
		}
		return text, err
	}
	notify := func(err error, wait time.Duration) {
		c.log.WarnContext(ctx, "llm call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	return backoff.RetryNotifyWithData(op, policy, notify)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable()
	}
	return true
}
