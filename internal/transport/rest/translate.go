package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

//go:generate moq -out translator_mock_test.go -fmt goimports . translator

type translator interface {
	Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResponse, error)
}

// TranslateHandler serves the translation endpoint.
type TranslateHandler struct {
	svc          translator
	log          *slog.Logger
	maxBodyBytes int64
}

// NewTranslateHandler creates a TranslateHandler. A non-positive
// maxBodyBytes leaves the body size unbounded.
func NewTranslateHandler(svc translator, logger *slog.Logger, maxBodyBytes int64) *TranslateHandler {
	return &TranslateHandler{
		svc:          svc,
		log:          logger.With("handler", "translate"),
		maxBodyBytes: maxBodyBytes,
	}
}

// Translate handles POST /translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req domain.TranslationRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.svc.Translate(r.Context(), req)
	if err != nil {
		handleError(w, r, h.log, err, msgUpstream)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
