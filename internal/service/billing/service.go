package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

//go:generate moq -out gateway_mock_test.go -fmt goimports . gateway

// CheckoutParams is what the gateway needs to open a checkout session.
type CheckoutParams struct {
	PriceID    string
	UserID     string
	Email      string
	Mode       string
	SuccessURL string
	CancelURL  string
}

type gateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	// FindCustomer returns the most recently created customer with the email,
	// or domain.ErrNotFound.
	FindCustomer(ctx context.Context, email string) (*domain.Customer, error)
	// ActiveSubscription returns nil when the customer has none.
	ActiveSubscription(ctx context.Context, customerID string) (*domain.Subscription, error)
	ParseWebhook(payload []byte, signature string) (domain.BillingEvent, error)
}

// Service implements the subscription checkout and customer lookup flows.
type Service struct {
	log    *slog.Logger
	gw     gateway
	appURL string
}

// NewService creates a billing service. appURL is the public front-end base
// used for redirect targets.
func NewService(logger *slog.Logger, gw gateway, appURL string) *Service {
	return &Service{
		log:    logger.With("service", "billing"),
		gw:     gw,
		appURL: strings.TrimRight(appURL, "/"),
	}
}

// Checkout opens a hosted checkout session and returns its URL.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	if strings.TrimSpace(req.PriceID) == "" || strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Email) == "" {
		return "", domain.NewValidationError("body", "Missing required parameters")
	}

	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = domain.CheckoutModeSubscription
	}
	if mode != domain.CheckoutModeSubscription && mode != domain.CheckoutModePayment {
		return "", domain.NewValidationError("mode", "Unsupported checkout mode")
	}

	url, err := s.gw.CreateCheckoutSession(ctx, CheckoutParams{
		PriceID:    req.PriceID,
		UserID:     req.UserID,
		Email:      req.Email,
		Mode:       mode,
		SuccessURL: s.appURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.appURL + "/pricing",
	})
	if err != nil {
		return "", fmt.Errorf("billing.Checkout: %w", err)
	}

	s.log.InfoContext(ctx, "checkout session created",
		slog.String("user_id", req.UserID),
		slog.String("mode", mode),
		slog.String("interval", req.Interval),
	)
	return url, nil
}

// Portal opens a self-service billing portal for the customer with the email.
func (s *Service) Portal(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", domain.NewValidationError("email", "Missing email")
	}

	cust, err := s.gw.FindCustomer(ctx, email)
	if err != nil {
		return "", fmt.Errorf("billing.Portal: customer: %w", err)
	}

	url, err := s.gw.CreatePortalSession(ctx, cust.ID, s.appURL+"/pricing")
	if err != nil {
		return "", fmt.Errorf("billing.Portal: %w", err)
	}
	return url, nil
}

// CheckCustomer reports whether the email has a customer record and, if so,
// its active subscription.
func (s *Service) CheckCustomer(ctx context.Context, email string) (*domain.CustomerStatus, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.NewValidationError("email", "Email is required")
	}

	cust, err := s.gw.FindCustomer(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.CustomerStatus{Exists: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("billing.CheckCustomer: %w", err)
	}

	sub, err := s.gw.ActiveSubscription(ctx, cust.ID)
	if err != nil {
		return nil, fmt.Errorf("billing.CheckCustomer: %w", err)
	}

	status := &domain.CustomerStatus{Exists: true, Customer: cust, ActiveSubscription: sub}
	if sub != nil {
		status.Metadata = sub.Metadata
	}
	return status, nil
}

// HandleWebhook verifies a webhook delivery and logs the events of interest.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" {
		return domain.NewValidationError("stripe-signature", "Missing stripe-signature header")
	}

	ev, err := s.gw.ParseWebhook(payload, signature)
	if err != nil {
		s.log.WarnContext(ctx, "webhook signature rejected", slog.String("error", err.Error()))
		return domain.NewValidationError("stripe-signature", "Invalid signature")
	}

	switch ev.Type {
	case "checkout.session.completed":
		s.log.InfoContext(ctx, "checkout completed",
			slog.String("event_id", ev.ID),
			slog.String("session_id", ev.ObjectID),
			slog.String("user_id", ev.Metadata["userId"]),
		)
	case "customer.subscription.updated", "customer.subscription.deleted":
		s.log.InfoContext(ctx, "subscription changed",
			slog.String("event_id", ev.ID),
			slog.String("event_type", ev.Type),
			slog.String("subscription_id", ev.ObjectID),
			slog.String("user_id", ev.Metadata["userId"]),
		)
	default:
		s.log.DebugContext(ctx, "webhook event ignored",
			slog.String("event_id", ev.ID),
			slog.String("event_type", ev.Type),
		)
	}
	return nil
}
