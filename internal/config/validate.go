package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Completion.validate(); err != nil {
		return fmt.Errorf("completion: %w", err)
	}

	if err := c.Audit.validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if c.Audit.Sink == SinkPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when audit.sink is %q", SinkPostgres)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Billing.Enabled() {
		if c.Billing.AppURL == "" {
			return fmt.Errorf("billing.app_url is required when billing is enabled")
		}
		c.Billing.AppURL = strings.TrimRight(c.Billing.AppURL, "/")
	}

	if len(c.CORS.Origins()) == 0 {
		return fmt.Errorf("cors.allowed_origins must list at least one origin")
	}

	return nil
}

func (c *CompletionConfig) validate() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if !IsKnownProvider(c.Provider) {
		return fmt.Errorf("unknown provider %q (want one of %s)", c.Provider, strings.Join(KnownProviders(), ", "))
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1] (got %v)", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required for provider %q", c.Provider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("anthropic_api_key is required for provider %q", c.Provider)
		}
	}
	return nil
}

func (a *AuditConfig) validate() error {
	a.Sink = strings.ToLower(strings.TrimSpace(a.Sink))
	if !IsKnownSink(a.Sink) {
		return fmt.Errorf("unknown sink %q (want one of %s)", a.Sink, strings.Join(KnownSinks(), ", "))
	}
	if a.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0 (got %d)", a.QueueSize)
	}
	if a.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", a.Workers)
	}

	switch a.Sink {
	case SinkAirtable:
		if a.AirtableBaseID == "" || a.AirtableToken == "" {
			return fmt.Errorf("airtable_base_id and airtable_token are required for sink %q", a.Sink)
		}
		if a.AirtableTable == "" {
			return fmt.Errorf("airtable_table is required for sink %q", a.Sink)
		}
	case SinkSQLite:
		if a.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for sink %q", a.Sink)
		}
	}
	return nil
}
