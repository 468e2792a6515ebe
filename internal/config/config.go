package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Audit     AuditConfig     `yaml:"audit"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	LLM       LLMConfig       `yaml:"llm"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings. The defaults allow any origin.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP limits for the chat endpoint.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	ChatPerMinute   int           `yaml:"chat_per_minute"  env:"RATE_LIMIT_CHAT_PER_MINUTE"  env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is only required
// when a postgres-backed store or audit sink is selected.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Conversation storage backends.
const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

// StorageConfig selects and configures the conversation store.
type StorageConfig struct {
	Backend  string `yaml:"backend"   env:"STORAGE_BACKEND"   env-default:"file"`
	Dir      string `yaml:"dir"       env:"STORAGE_DIR"       env-default:"data/conversations"`
	BoltPath string `yaml:"bolt_path" env:"STORAGE_BOLT_PATH" env-default:"data/reflect.db"`
}

// Audit sinks.
const (
	SinkFile     = "file"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
)

// AuditConfig selects audit sinks. SinksRaw is a comma-separated list.
type AuditConfig struct {
	SinksRaw string `yaml:"sinks"     env:"AUDIT_SINKS"     env-default:"file"`
	FilePath string `yaml:"file_path" env:"AUDIT_FILE_PATH" env-default:"logs/ethics_audit.log"`

	// Sinks is parsed from SinksRaw during validation.
	Sinks []string `yaml:"-" env:"-"`
}

// KafkaConfig holds settings for the kafka audit sink.
type KafkaConfig struct {
	BrokersRaw string        `yaml:"brokers"   env:"KAFKA_BROKERS"`
	Topic      string        `yaml:"topic"     env:"KAFKA_TOPIC"     env-default:"reflect.audit"`
	ClientID   string        `yaml:"client_id" env:"KAFKA_CLIENT_ID" env-default:"reflect-backend"`
	Timeout    time.Duration `yaml:"timeout"   env:"KAFKA_TIMEOUT"   env-default:"5s"`

	// Brokers is parsed from BrokersRaw during validation.
	Brokers []string `yaml:"-" env:"-"`
}

// LLM providers.
const (
	ProviderGroq      = "groq"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider      string        `yaml:"provider"       env:"LLM_PROVIDER"       env-default:"groq"`
	Model         string        `yaml:"model"          env:"LLM_MODEL"`
	BaseURL       string        `yaml:"base_url"       env:"LLM_BASE_URL"`
	Temperature   float64       `yaml:"temperature"    env:"LLM_TEMPERATURE"    env-default:"0.7"`
	MaxTokens     int           `yaml:"max_tokens"     env:"LLM_MAX_TOKENS"     env-default:"300"`
	Timeout       time.Duration `yaml:"timeout"        env:"LLM_TIMEOUT"        env-default:"30s"`
	RetryAttempts int           `yaml:"retry_attempts" env:"LLM_RETRY_ATTEMPTS" env-default:"1"`
	RetryInterval time.Duration `yaml:"retry_interval" env:"LLM_RETRY_INTERVAL" env-default:"500ms"`

	GroqAPIKey      string `yaml:"groq_api_key"      env:"GROQ_API_KEY"`
	GeminiAPIKey    string `yaml:"gemini_api_key"    env:"GEMINI_API_KEY"`
	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
}

// APIKey returns the key of the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderGroq:
		return c.GroqAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	}
	return ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// NeedsPostgres reports whether any component requires a database pool.
func (c *Config) NeedsPostgres() bool {
	if c.Storage.Backend == BackendPostgres {
		return true
	}
	for _, s := range c.Audit.Sinks {
		if s == SinkPostgres {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated list, dropping blanks and lower-casing.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
