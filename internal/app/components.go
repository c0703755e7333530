package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/anydialect-backend/internal/adapter/airtable"
	"github.com/heartmarshall/anydialect-backend/internal/adapter/postgres"
	pgaudit "github.com/heartmarshall/anydialect-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/anydialect-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/anydialect-backend/internal/adapter/provider/demo"
	"github.com/heartmarshall/anydialect-backend/internal/adapter/provider/openai"
	"github.com/heartmarshall/anydialect-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/anydialect-backend/internal/audit"
	"github.com/heartmarshall/anydialect-backend/internal/config"
	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// CompletionProvider is the contract every completion backend satisfies.
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, c domain.Completion) (string, error)
}

// AuditStore is a sink that can also be queried and health-checked.
type AuditStore interface {
	audit.Sink
	Ping(ctx context.Context) error
	ListRecent(ctx context.Context, uid string, limit int) ([]domain.AuditRecord, error)
}

// NewCompletionProvider builds the provider selected by cfg.Provider.
func NewCompletionProvider(cfg config.CompletionConfig, logger *slog.Logger) (CompletionProvider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewProvider(openai.Config{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.ModelOrDefault(),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, logger), nil
	case config.ProviderAnthropic:
		return anthropic.NewProvider(anthropic.Config{
			APIKey:      cfg.AnthropicAPIKey,
			BaseURL:     cfg.AnthropicBaseURL,
			Model:       cfg.ModelOrDefault(),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, logger), nil
	case config.ProviderDemo:
		return demo.NewProvider(logger)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

// NewAuditSink opens the sink selected by cfg.Audit.Sink. The returned closer
// releases its connections; it is never nil.
func NewAuditSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) (audit.Sink, io.Closer, error) {
	switch cfg.Audit.Sink {
	case config.SinkAirtable:
		sink, err := airtable.NewSink(airtable.Config{
			BaseURL: cfg.Audit.AirtableBaseURL,
			BaseID:  cfg.Audit.AirtableBaseID,
			Table:   cfg.Audit.AirtableTable,
			Token:   cfg.Audit.AirtableToken,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return sink, nopCloser{}, nil
	case config.SinkPostgres, config.SinkSQLite:
		store, closer, err := OpenAuditStore(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, closer, nil
	case config.SinkNone:
		return audit.Discard{}, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown audit sink %q", cfg.Audit.Sink)
	}
}

// OpenAuditStore opens a queryable SQL sink. Postgres is migrated first when
// auto_migrate is set.
func OpenAuditStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (AuditStore, io.Closer, error) {
	switch cfg.Audit.Sink {
	case config.SinkPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, nil, fmt.Errorf("migrate audit table: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return pgaudit.New(pool), closerFunc(func() error { pool.Close(); return nil }), nil
	case config.SinkSQLite:
		sink, err := sqlite.Open(ctx, cfg.Audit.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink, nil
	default:
		return nil, nil, fmt.Errorf("audit sink %q is not queryable", cfg.Audit.Sink)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
