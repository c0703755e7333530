package airtable

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mehanizm/airtable"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// Config identifies the table records are appended to.
type Config struct {
	BaseURL string
	BaseID  string
	Table   string
	Token   string
}

// Sink appends audit records to an Airtable table through the REST API.
type Sink struct {
	table *airtable.Table
	log   *slog.Logger
}

// NewSink creates a Sink. An empty BaseURL targets api.airtable.com.
func NewSink(cfg Config, logger *slog.Logger) (*Sink, error) {
	client := airtable.NewClient(cfg.Token)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		if err := client.SetBaseURL(base); err != nil {
			return nil, fmt.Errorf("airtable: base url: %w", err)
		}
	}
	return &Sink{
		table: client.GetTable(cfg.BaseID, cfg.Table),
		log:   logger.With("adapter", "airtable"),
	}, nil
}

// Name identifies the sink in logs.
func (s *Sink) Name() string { return "airtable" }

// Write creates one row holding the record's fields.
func (s *Sink) Write(ctx context.Context, rec domain.AuditRecord) error {
	fields := make(map[string]any, len(rec.Fields()))
	for k, v := range rec.Fields() {
		fields[k] = v
	}

	created, err := s.table.AddRecordsContext(ctx, &airtable.Records{
		Records: []*airtable.Record{{Fields: fields}},
	})
	if err != nil {
		s.log.ErrorContext(ctx, "airtable logging failed",
			slog.String("record_id", rec.ID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("airtable: create record: %w", err)
	}

	if created != nil && len(created.Records) > 0 {
		s.log.DebugContext(ctx, "airtable record created",
			slog.String("record_id", rec.ID.String()),
			slog.String("airtable_id", created.Records[0].ID),
		)
	}
	return nil
}
