package audit

import (
	"context"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// Discard is the sink used when auditing is turned off.
type Discard struct{}

func (Discard) Name() string { return "none" }

func (Discard) Write(context.Context, domain.AuditRecord) error { return nil }
