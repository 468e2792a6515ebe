package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reflect-backend/internal/adapter/bolt"
	"github.com/heartmarshall/reflect-backend/internal/adapter/file"
	"github.com/heartmarshall/reflect-backend/internal/adapter/kafka"
	"github.com/heartmarshall/reflect-backend/internal/adapter/llm"
	"github.com/heartmarshall/reflect-backend/internal/adapter/postgres"
	pgaudit "github.com/heartmarshall/reflect-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/reflect-backend/internal/adapter/postgres/conversation"
	"github.com/heartmarshall/reflect-backend/internal/audit"
	"github.com/heartmarshall/reflect-backend/internal/config"
	"github.com/heartmarshall/reflect-backend/internal/domain"
	"github.com/heartmarshall/reflect-backend/internal/service/therapy"
)

// ConversationStore is what every storage backend provides.
type ConversationStore interface {
	Append(ctx context.Context, msg domain.Message) error
	LoadConversation(ctx context.Context, userID string) ([]domain.Message, error)
	Ping(ctx context.Context) error
}

// Components are the long-lived objects built from configuration.
type Components struct {
	Store   ConversationStore
	Audit   *audit.Logger
	LLM     llm.Client
	Therapy *therapy.Service

	closers []func() error
}

// Close releases resources in reverse order of creation.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Components) onClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

// Build constructs the store, audit sinks, LLM client and therapy service.
// On error everything created so far is closed.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *Components, err error) {
	c := &Components{}
	defer func() {
		if err != nil {
			c.Close() //nolint:errcheck
		}
	}()

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.onClose(func() error { pool.Close(); return nil })
	}

	c.Store, err = buildStore(c, cfg.Storage, pool)
	if err != nil {
		return nil, err
	}

	sink, err := buildAuditSink(c, cfg, pool)
	if err != nil {
		return nil, err
	}
	c.Audit = audit.NewLogger(log, sink)

	client, err := NewLLMClient(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}
	c.LLM = llm.WithRetry(client, cfg.LLM.RetryAttempts, cfg.LLM.RetryInterval, log)

	c.Therapy = therapy.NewService(log, c.Store, c.LLM, c.Audit)

	log.InfoContext(ctx, "components built",
		slog.String("storage", cfg.Storage.Backend),
		slog.Any("audit_sinks", cfg.Audit.Sinks),
		slog.String("llm_provider", cfg.LLM.Provider),
	)
	return c, nil
}

func buildStore(c *Components, cfg config.StorageConfig, pool *pgxpool.Pool) (ConversationStore, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return file.New(cfg.Dir)
	case config.BackendBolt:
		s, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		c.onClose(s.Close)
		return s, nil
	case config.BackendPostgres:
		return conversation.New(pool), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func buildAuditSink(c *Components, cfg *config.Config, pool *pgxpool.Pool) (audit.Sink, error) {
	sinks := make(audit.MultiSink, 0, len(cfg.Audit.Sinks))
	for _, name := range cfg.Audit.Sinks {
		switch name {
		case config.SinkFile:
			s, err := audit.NewFileSink(cfg.Audit.FilePath)
			if err != nil {
				return nil, err
			}
			c.onClose(s.Close)
			sinks = append(sinks, s)
		case config.SinkPostgres:
			sinks = append(sinks, pgaudit.New(pool))
		case config.SinkKafka:
			producer, err := kafka.NewProducer(cfg.Kafka)
			if err != nil {
				return nil, err
			}
			s := kafka.NewAuditSink(producer, cfg.Kafka.Topic)
			c.onClose(s.Close)
			sinks = append(sinks, s)
		default:
			return nil, fmt.Errorf("unknown audit sink %q", name)
		}
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}
