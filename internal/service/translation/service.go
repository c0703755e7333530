package translation

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

//go:generate moq -out completion_provider_mock_test.go -fmt goimports . completionProvider
//go:generate moq -out auditor_mock_test.go -fmt goimports . auditor

type completionProvider interface {
	Name() string
	Complete(ctx context.Context, c domain.Completion) (string, error)
}

// auditor accepts records without blocking; delivery is best effort.
type auditor interface {
	Submit(rec domain.AuditRecord)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs the translation pipeline: validate, build the prompt, call the
// completion provider, parse and check the answer, hand the record to audit.
type Service struct {
	log      *slog.Logger
	provider completionProvider
	audit    auditor
	timeout  time.Duration
}

// NewService creates a new translation service. A zero timeout leaves the
// completion call bounded only by the caller's context.
func NewService(
	logger *slog.Logger,
	provider completionProvider,
	audit auditor,
	timeout time.Duration,
) *Service {
	return &Service{
		log:      logger.With("service", "translation"),
		provider: provider,
		audit:    audit,
		timeout:  timeout,
	}
}
