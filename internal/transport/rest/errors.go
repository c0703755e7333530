package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// Client-facing messages for failures that carry no caller-safe text.
const (
	msgInvalidBody     = "invalid request body"
	msgUpstream        = "Error from translation service"
	msgResponseParse   = "Failed to parse translation response"
	msgResponseShape   = "Invalid translation response format"
	msgInternal        = "Internal server error"
	msgBillingUpstream = "Billing provider request failed"
)

// errorStatus maps a service error onto an HTTP status and body message.
// upstreamFallback is used when the upstream failure has no message of its own.
func errorStatus(err error, upstreamFallback string) (int, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) && len(ve.Errors) > 0 {
		return http.StatusBadRequest, ve.Errors[0].Message
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, msgInvalidBody
	case errors.Is(err, domain.ErrResponseParse):
		return http.StatusInternalServerError, msgResponseParse
	case errors.Is(err, domain.ErrResponseShape):
		return http.StatusInternalServerError, msgResponseShape
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Message != "" {
			return http.StatusInternalServerError, upstream.Message
		}
		return http.StatusInternalServerError, upstreamFallback
	}

	return http.StatusInternalServerError, msgInternal
}

// handleError writes the error response and logs server-side failures.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, upstreamFallback string) {
	status, msg := errorStatus(err, upstreamFallback)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, status, msg)
}
