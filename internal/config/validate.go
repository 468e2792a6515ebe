package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Audit.validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if slices.Contains(c.Audit.Sinks, SinkKafka) {
		if err := c.Kafka.validate(); err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
	}

	if c.NeedsPostgres() && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when postgres storage or audit is enabled")
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.ChatPerMinute <= 0 {
		return fmt.Errorf("rate_limit.chat_per_minute must be > 0 (got %d)", c.RateLimit.ChatPerMinute)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case BackendFile:
		if s.Dir == "" {
			return fmt.Errorf("dir is required for the file backend")
		}
	case BackendBolt:
		if s.BoltPath == "" {
			return fmt.Errorf("bolt_path is required for the bolt backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	return nil
}

func (a *AuditConfig) validate() error {
	a.Sinks = splitList(a.SinksRaw)
	if len(a.Sinks) == 0 {
		return fmt.Errorf("at least one sink must be configured")
	}
	for _, s := range a.Sinks {
		switch s {
		case SinkFile, SinkPostgres, SinkKafka:
		default:
			return fmt.Errorf("unknown sink %q", s)
		}
	}
	return nil
}

func (k *KafkaConfig) validate() error {
	k.Brokers = nil
	for _, b := range strings.Split(k.BrokersRaw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			k.Brokers = append(k.Brokers, b)
		}
	}
	if len(k.Brokers) == 0 {
		return fmt.Errorf("brokers are required when the kafka sink is enabled")
	}
	if k.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	switch l.Provider {
	case ProviderGroq, ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if l.APIKey() == "" {
		return fmt.Errorf("api key for provider %q is required", l.Provider)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in 0..2 (got %v)", l.Temperature)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be >= 1 (got %d)", l.RetryAttempts)
	}
	return nil
}
