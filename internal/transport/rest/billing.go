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

// maxWebhookBytes bounds a webhook delivery; Stripe events are far smaller.
const maxWebhookBytes = 1 << 20

//go:generate moq -out billing_service_mock_test.go -fmt goimports . billingService

type billingService interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (string, error)
	Portal(ctx context.Context, email string) (string, error)
	CheckCustomer(ctx context.Context, email string) (*domain.CustomerStatus, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// BillingHandler serves subscription checkout and customer lookup endpoints.
type BillingHandler struct {
	svc billingService
	log *slog.Logger
}

// NewBillingHandler creates a BillingHandler.
func NewBillingHandler(svc billingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{svc: svc, log: logger.With("handler", "billing")}
}

type emailRequest struct {
	Email string `json:"email"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// CheckoutSession handles POST /billing/checkout-session.
func (h *BillingHandler) CheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	url, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		handleError(w, r, h.log, err, msgBillingUpstream)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: url})
}

// PortalSession handles POST /billing/portal-session.
func (h *BillingHandler) PortalSession(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	url, err := h.svc.Portal(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		handleError(w, r, h.log, err, msgBillingUpstream)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: url})
}

// CheckCustomer handles POST /billing/check-customer.
func (h *BillingHandler) CheckCustomer(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	status, err := h.svc.CheckCustomer(r.Context(), req.Email)
	if err != nil {
		handleError(w, r, h.log, err, msgBillingUpstream)
		return
	}
	if !status.Exists {
		writeJSON(w, http.StatusOK, map[string]bool{"exists": false})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Webhook handles POST /billing/webhook. The raw body is needed for
// signature verification, so it is read before any decoding.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.svc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.log.WarnContext(r.Context(), "webhook rejected", slog.String("error", err.Error()))
		status, msg := errorStatus(err, msgBillingUpstream)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
