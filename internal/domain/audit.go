package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditStatus tells whether the audited translation reached the caller.
type AuditStatus string

const (
	AuditStatusOK     AuditStatus = "ok"
	AuditStatusFailed AuditStatus = "failed"
)

// AuditRecord is the flattened request/response pair forwarded to the audit sink.
// Response fields stay empty when the pipeline failed before producing one.
type AuditRecord struct {
	ID        uuid.UUID
	Status    AuditStatus
	ErrorKind string
	Provider  string
	CreatedAt time.Time

	Text             string
	SourceLanguage   string
	TargetLanguage   string
	TargetDialect    string
	SpeakerPronouns  string
	ListenerPronouns string
	Formality        string
	UID              string
	UserEmail        string

	Translation   string
	Romaji        string
	FormalityUsed string
	Notes         string
}

// NewAuditRecord merges a request and an optional response into one record.
func NewAuditRecord(req TranslationRequest, resp *TranslationResponse) AuditRecord {
	rec := AuditRecord{
		ID:               uuid.New(),
		Status:           AuditStatusOK,
		CreatedAt:        time.Now().UTC(),
		Text:             req.Text,
		SourceLanguage:   req.SourceLanguage,
		TargetLanguage:   req.TargetLanguage,
		TargetDialect:    req.TargetDialect,
		SpeakerPronouns:  req.SpeakerPronouns,
		ListenerPronouns: req.ListenerPronouns,
		Formality:        req.Formality.String(),
		UID:              req.UID,
		UserEmail:        req.UserEmail,
	}
	if resp == nil {
		rec.Status = AuditStatusFailed
		return rec
	}
	rec.Translation = resp.Translation
	rec.Romaji = resp.Romaji
	rec.FormalityUsed = resp.FormalityUsed
	rec.Notes = resp.Notes
	return rec
}

// Fields returns the record keyed by column name, in the layout of the
// translations table.
func (r AuditRecord) Fields() map[string]string {
	return map[string]string{
		"Text":             r.Text,
		"SourceLanguage":   r.SourceLanguage,
		"TargetLanguage":   r.TargetLanguage,
		"TargetDialect":    r.TargetDialect,
		"SpeakerPronouns":  r.SpeakerPronouns,
		"ListenerPronouns": r.ListenerPronouns,
		"Formality":        r.Formality,
		"UID":              r.UID,
		"UserEmail":        r.UserEmail,
		"Translation":      r.Translation,
		"Romaji":           r.Romaji,
		"FormalityUsed":    r.FormalityUsed,
		"Notes":            r.Notes,
	}
}
