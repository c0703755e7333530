package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

const table = "translation_log"

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS translation_log (
	id                TEXT PRIMARY KEY,
	status            TEXT NOT NULL,
	error_kind        TEXT NOT NULL DEFAULT '',
	provider          TEXT NOT NULL DEFAULT '',
	text              TEXT NOT NULL,
	source_language   TEXT NOT NULL DEFAULT '',
	target_language   TEXT NOT NULL DEFAULT '',
	target_dialect    TEXT NOT NULL DEFAULT '',
	speaker_pronouns  TEXT NOT NULL DEFAULT '',
	listener_pronouns TEXT NOT NULL DEFAULT '',
	formality         TEXT NOT NULL DEFAULT '',
	uid               TEXT NOT NULL DEFAULT '',
	user_email        TEXT NOT NULL DEFAULT '',
	translation       TEXT NOT NULL DEFAULT '',
	romaji            TEXT NOT NULL DEFAULT '',
	formality_used    TEXT NOT NULL DEFAULT '',
	notes             TEXT NOT NULL DEFAULT '',
	created_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_translation_log_created_at ON translation_log(created_at);
CREATE INDEX IF NOT EXISTS idx_translation_log_uid ON translation_log(uid, created_at);
`

var columns = []string{
	"id", "status", "error_kind", "provider",
	"text", "source_language", "target_language", "target_dialect",
	"speaker_pronouns", "listener_pronouns", "formality", "uid", "user_email",
	"translation", "romaji", "formality_used", "notes",
	"created_at",
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Sink stores translation records in a local SQLite file.
type Sink struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return &Sink{db: db}, nil
}

// Name identifies the sink in logs.
func (s *Sink) Name() string { return "sqlite" }

// Ping checks the database for readiness checks.
func (s *Sink) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close releases the database handle.
func (s *Sink) Close() error { return s.db.Close() }

// Write inserts one record. Re-delivery of the same record ID is a no-op.
func (s *Sink) Write(ctx context.Context, rec domain.AuditRecord) error {
	query, args, err := builder.Insert(table).
		Options("OR IGNORE").
		Columns(columns...).
		Values(
			rec.ID.String(), string(rec.Status), rec.ErrorKind, rec.Provider,
			rec.Text, rec.SourceLanguage, rec.TargetLanguage, rec.TargetDialect,
			rec.SpeakerPronouns, rec.ListenerPronouns, rec.Formality, rec.UID, rec.UserEmail,
			rec.Translation, rec.Romaji, rec.FormalityUsed, rec.Notes,
			rec.CreatedAt.UTC().Format(timeLayout),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", rec.ID, err)
	}
	return nil
}

// ListRecent returns up to limit records, newest first. A non-empty uid
// restricts the result to that caller.
func (s *Sink) ListRecent(ctx context.Context, uid string, limit int) ([]domain.AuditRecord, error) {
	sel := builder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if uid != "" {
		sel = sel.Where(sq.Eq{"uid": uid})
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var (
			rec               domain.AuditRecord
			id, status, stamp string
		)
		if err := rows.Scan(
			&id, &status, &rec.ErrorKind, &rec.Provider,
			&rec.Text, &rec.SourceLanguage, &rec.TargetLanguage, &rec.TargetDialect,
			&rec.SpeakerPronouns, &rec.ListenerPronouns, &rec.Formality, &rec.UID, &rec.UserEmail,
			&rec.Translation, &rec.Romaji, &rec.FormalityUsed, &rec.Notes,
			&stamp,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("sqlite: record id %q: %w", id, err)
		}
		if rec.CreatedAt, err = time.Parse(timeLayout, stamp); err != nil {
			return nil, fmt.Errorf("sqlite: record %s created_at: %w", id, err)
		}
		rec.Status = domain.AuditStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return records, nil
}
