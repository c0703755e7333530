// Package audit implements the translation audit sink using PostgreSQL.
// It provides append-only operations for translation log records.
package audit

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/anydialect-backend/internal/adapter/postgres"
	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

const table = "translation_log"

var columns = []string{
	"id", "status", "error_kind", "provider",
	"text", "source_language", "target_language", "target_dialect",
	"speaker_pronouns", "listener_pronouns", "formality", "uid", "user_email",
	"translation", "romaji", "formality_used", "notes",
	"created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides translation log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Name identifies the sink in logs.
func (r *Repo) Name() string { return "postgres" }

// Ping checks the connection for readiness checks.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Write inserts one record. Re-delivery of the same record ID is a no-op.
func (r *Repo) Write(ctx context.Context, rec domain.AuditRecord) error {
	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(recordValues(rec)...).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, rec.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListRecent returns up to limit records, newest first. A non-empty uid
// restricts the result to that caller.
func (r *Repo) ListRecent(ctx context.Context, uid string, limit int) ([]domain.AuditRecord, error) {
	builder := psql.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if uid != "" {
		builder = builder.Where(sq.Eq{"uid": uid})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func recordValues(rec domain.AuditRecord) []any {
	return []any{
		rec.ID, string(rec.Status), rec.ErrorKind, rec.Provider,
		rec.Text, rec.SourceLanguage, rec.TargetLanguage, rec.TargetDialect,
		rec.SpeakerPronouns, rec.ListenerPronouns, rec.Formality, rec.UID, rec.UserEmail,
		rec.Translation, rec.Romaji, rec.FormalityUsed, rec.Notes,
		rec.CreatedAt,
	}
}

func scanRecord(row pgx.CollectableRow) (domain.AuditRecord, error) {
	var (
		rec    domain.AuditRecord
		status string
	)
	err := row.Scan(
		&rec.ID, &status, &rec.ErrorKind, &rec.Provider,
		&rec.Text, &rec.SourceLanguage, &rec.TargetLanguage, &rec.TargetDialect,
		&rec.SpeakerPronouns, &rec.ListenerPronouns, &rec.Formality, &rec.UID, &rec.UserEmail,
		&rec.Translation, &rec.Romaji, &rec.FormalityUsed, &rec.Notes,
		&rec.CreatedAt,
	)
	rec.Status = domain.AuditStatus(status)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, err
}
