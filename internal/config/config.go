package config

import (
	"slices"
	"strings"
	"time"
)

// Completion provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderDemo      = "demo"
)

// Audit sink identifiers.
const (
	SinkAirtable = "airtable"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
	SinkNone     = "none"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Completion CompletionConfig `yaml:"completion"`
	Audit      AuditConfig      `yaml:"audit"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Billing    BillingConfig    `yaml:"billing"`
}

// CORSConfig holds CORS settings. The translation endpoint is called from a
// single front-end origin.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"https://anydialect.duranirving.com"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"POST, OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type, Authorization"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"65536"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig bounds how often one client may call the completion provider.
type RateLimitConfig struct {
	TranslatePerMinute int           `yaml:"translate_per_minute" env:"RATE_LIMIT_TRANSLATE_PER_MINUTE" env-default:"30"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"     env:"RATE_LIMIT_CLEANUP_INTERVAL"     env-default:"5m"`
	TrustProxy         bool          `yaml:"trust_proxy"          env:"RATE_LIMIT_TRUST_PROXY"          env-default:"false"`
}

// CompletionConfig selects and configures the completion provider.
type CompletionConfig struct {
	Provider    string        `yaml:"provider"    env:"COMPLETION_PROVIDER"    env-default:"openai"`
	Model       string        `yaml:"model"       env:"COMPLETION_MODEL"`
	Temperature float64       `yaml:"temperature" env:"COMPLETION_TEMPERATURE" env-default:"0.3"`
	MaxTokens   int           `yaml:"max_tokens"  env:"COMPLETION_MAX_TOKENS"  env-default:"1024"`
	Timeout     time.Duration `yaml:"timeout"     env:"COMPLETION_TIMEOUT"     env-default:"60s"`

	OpenAIAPIKey     string `yaml:"openai_api_key"     env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `yaml:"openai_base_url"    env:"OPENAI_BASE_URL"`
	AnthropicAPIKey  string `yaml:"anthropic_api_key"  env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `yaml:"anthropic_base_url" env:"ANTHROPIC_BASE_URL"`
}

// ModelOrDefault returns the configured model, falling back to the
// provider's default.
func (c CompletionConfig) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderAnthropic:
		return "claude-sonnet-4-5"
	case ProviderDemo:
		return "demo"
	default:
		return "gpt-4-turbo"
	}
}

// AuditConfig configures the audit dispatcher and its sink.
type AuditConfig struct {
	Sink            string        `yaml:"sink"             env:"AUDIT_SINK"             env-default:"airtable"`
	QueueSize       int           `yaml:"queue_size"       env:"AUDIT_QUEUE_SIZE"       env-default:"256"`
	Workers         int           `yaml:"workers"          env:"AUDIT_WORKERS"          env-default:"2"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"AUDIT_WRITE_TIMEOUT"    env-default:"10s"`
	BreakerFailures uint32        `yaml:"breaker_failures" env:"AUDIT_BREAKER_FAILURES" env-default:"5"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown" env:"AUDIT_BREAKER_COOLDOWN" env-default:"30s"`

	AirtableBaseURL string `yaml:"airtable_base_url" env:"AIRTABLE_BASE_URL"     env-default:"https://api.airtable.com/v0"`
	AirtableBaseID  string `yaml:"airtable_base_id"  env:"AIRTABLE_BASE_ID"`
	AirtableTable   string `yaml:"airtable_table"    env:"AIRTABLE_TABLE_NAME"   env-default:"Translations"`
	AirtableToken   string `yaml:"airtable_token"    env:"AIRTABLE_ACCESS_TOKEN"`

	SQLitePath string `yaml:"sqlite_path" env:"AUDIT_SQLITE_PATH" env-default:"./anydialect-audit.db"`
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres audit sink.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds session token verification settings. An empty secret
// disables bearer verification and every caller is anonymous.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"anydialect"`
}

// Enabled reports whether bearer tokens are verified.
func (c AuthConfig) Enabled() bool { return c.JWTSecret != "" }

// BillingConfig holds Stripe settings. Billing routes are mounted only when
// a secret key is configured.
type BillingConfig struct {
	StripeSecretKey     string `yaml:"stripe_secret_key"     env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	StripeBaseURL       string `yaml:"stripe_base_url"       env:"STRIPE_BASE_URL"`
	AppURL              string `yaml:"app_url"               env:"APP_URL"`
}

// Enabled reports whether billing routes should be served.
func (c BillingConfig) Enabled() bool { return c.StripeSecretKey != "" }

// Origins returns the configured origins, trimmed.
func (c CORSConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// KnownProviders lists the accepted completion providers.
func KnownProviders() []string {
	return []string{ProviderOpenAI, ProviderAnthropic, ProviderDemo}
}

// KnownSinks lists the accepted audit sinks.
func KnownSinks() []string {
	return []string{SinkAirtable, SinkPostgres, SinkSQLite, SinkNone}
}

// IsKnownProvider checks if the given provider string is supported.
func IsKnownProvider(provider string) bool {
	return slices.Contains(KnownProviders(), provider)
}

// IsKnownSink checks if the given sink string is supported.
func IsKnownSink(sink string) bool {
	return slices.Contains(KnownSinks(), sink)
}
