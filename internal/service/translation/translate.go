package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
	"github.com/heartmarshall/anydialect-backend/pkg/ctxutil"
)

// Translate runs one request through the pipeline. A failed request is still
// audited, with empty response fields.
func (s *Service) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if id, ok := ctxutil.IdentityFromCtx(ctx); ok {
		req.UID = id.UID
		if id.Email != "" {
			req.UserEmail = id.Email
		}
	}

	resp, err := s.complete(ctx, req)
	s.record(ctx, req, resp, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) complete(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResponse, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.provider.Complete(ctx, NewCompletion(req))
	if err != nil {
		s.log.ErrorContext(ctx, "completion failed",
			slog.String("provider", s.provider.Name()),
			slog.String("error", err.Error()),
		)
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			return nil, err
		}
		return nil, &domain.UpstreamError{Provider: s.provider.Name(), Err: err}
	}

	resp, err := ParseResponse(raw)
	if err != nil {
		s.log.ErrorContext(ctx, "unusable completion",
			slog.String("provider", s.provider.Name()),
			slog.String("error", err.Error()),
			slog.String("content", raw),
		)
		return nil, fmt.Errorf("translate: %w", err)
	}

	return resp, nil
}

func (s *Service) record(ctx context.Context, req domain.TranslationRequest, resp *domain.TranslationResponse, err error) {
	if s.audit == nil {
		return
	}
	rec := domain.NewAuditRecord(req, resp)
	rec.Provider = s.provider.Name()
	if err != nil {
		rec.ErrorKind = errorKind(err)
	}
	s.audit.Submit(rec)
	s.log.DebugContext(ctx, "audit record submitted",
		slog.String("record_id", rec.ID.String()),
		slog.String("status", string(rec.Status)),
	)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrUpstream):
		return "upstream"
	case errors.Is(err, domain.ErrResponseParse):
		return "parse"
	case errors.Is(err, domain.ErrResponseShape):
		return "shape"
	default:
		return "internal"
	}
}
