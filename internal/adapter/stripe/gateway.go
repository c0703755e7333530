// Package stripe adapts the Stripe API to the billing service.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	stripesdk "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
	"github.com/heartmarshall/anydialect-backend/internal/service/billing"
)

const (
	providerName = "stripe"

	// customerScan bounds how many customers with the same email are compared.
	customerScan = 10
)

// Config holds Stripe credentials. BaseURL overrides the API endpoint.
type Config struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	HTTPClient    *http.Client
}

// Gateway talks to Stripe for checkout, portal and customer lookups.
type Gateway struct {
	api           *client.API
	webhookSecret string
	log           *slog.Logger
}

// NewGateway creates a Gateway. Network retries are disabled.
func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	backendCfg := &stripesdk.BackendConfig{
		MaxNetworkRetries: stripesdk.Int64(0),
		LeveledLogger:     &stripesdk.LeveledLogger{Level: stripesdk.LevelNull},
	}
	if cfg.HTTPClient != nil {
		backendCfg.HTTPClient = cfg.HTTPClient
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripesdk.String(cfg.BaseURL)
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripesdk.Backends{
		API:     stripesdk.GetBackendWithConfig(stripesdk.APIBackend, backendCfg),
		Connect: stripesdk.GetBackendWithConfig(stripesdk.ConnectBackend, backendCfg),
		Uploads: stripesdk.GetBackendWithConfig(stripesdk.UploadsBackend, backendCfg),
	})

	return &Gateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		log:           logger.With("adapter", "stripe"),
	}
}

// CreateCheckoutSession opens a hosted checkout page. The caller's user id
// is stored on the session and, for subscriptions, on the subscription.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, p billing.CheckoutParams) (string, error) {
	params := &stripesdk.CheckoutSessionParams{
		Mode:               stripesdk.String(p.Mode),
		PaymentMethodTypes: stripesdk.StringSlice([]string{"card"}),
		CustomerEmail:      stripesdk.String(p.Email),
		LineItems: []*stripesdk.CheckoutSessionLineItemParams{
			{Price: stripesdk.String(p.PriceID), Quantity: stripesdk.Int64(1)},
		},
		SuccessURL: stripesdk.String(p.SuccessURL),
		CancelURL:  stripesdk.String(p.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("userId", p.UserID)
	if p.Mode == domain.CheckoutModeSubscription {
		params.SubscriptionData = &stripesdk.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"userId": p.UserID},
		}
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", upstreamError("create checkout session", err)
	}
	return sess.URL, nil
}

// CreatePortalSession opens the customer self-service portal.
func (g *Gateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripesdk.BillingPortalSessionParams{
		Customer:  stripesdk.String(customerID),
		ReturnURL: stripesdk.String(returnURL),
	}
	params.Context = ctx

	sess, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", upstreamError("create portal session", err)
	}
	return sess.URL, nil
}

// FindCustomer returns the most recently created customer with the email.
func (g *Gateway) FindCustomer(ctx context.Context, email string) (*domain.Customer, error) {
	params := &stripesdk.CustomerListParams{Email: stripesdk.String(email)}
	params.Context = ctx
	params.Limit = stripesdk.Int64(customerScan)

	var newest *stripesdk.Customer
	it := g.api.Customers.List(params)
	for n := 0; n < customerScan && it.Next(); n++ {
		c := it.Customer()
		if newest == nil || c.Created > newest.Created {
			newest = c
		}
	}
	if err := it.Err(); err != nil {
		return nil, upstreamError("list customers", err)
	}
	if newest == nil {
		return nil, domain.ErrNotFound
	}

	return &domain.Customer{
		ID:       newest.ID,
		Email:    newest.Email,
		Name:     newest.Name,
		Created:  time.Unix(newest.Created, 0).UTC(),
		Metadata: newest.Metadata,
	}, nil
}

// ActiveSubscription returns the customer's active subscription, or nil.
func (g *Gateway) ActiveSubscription(ctx context.Context, customerID string) (*domain.Subscription, error) {
	params := &stripesdk.SubscriptionListParams{
		Customer: stripesdk.String(customerID),
		Status:   stripesdk.String(string(stripesdk.SubscriptionStatusActive)),
	}
	params.Context = ctx
	params.Limit = stripesdk.Int64(1)
	params.AddExpand("data.items.data.price")

	it := g.api.Subscriptions.List(params)
	if !it.Next() {
		if err := it.Err(); err != nil {
			return nil, upstreamError("list subscriptions", err)
		}
		return nil, nil
	}
	return toSubscription(it.Subscription()), nil
}

// ParseWebhook verifies the Stripe-Signature header against the payload.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (domain.BillingEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return domain.BillingEvent{}, fmt.Errorf("stripe: verify webhook: %w", err)
	}

	out := domain.BillingEvent{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data != nil && len(ev.Data.Raw) > 0 {
		var obj struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(ev.Data.Raw, &obj); err != nil {
			g.log.Warn("webhook object not decodable",
				slog.String("event_id", ev.ID),
				slog.String("error", err.Error()),
			)
		}
		out.ObjectID = obj.ID
		out.Metadata = obj.Metadata
	}
	return out, nil
}

func toSubscription(s *stripesdk.Subscription) *domain.Subscription {
	out := &domain.Subscription{
		ID:               s.ID,
		Status:           string(s.Status),
		CurrentPeriodEnd: time.Unix(s.CurrentPeriodEnd, 0).UTC(),
		Metadata:         s.Metadata,
	}
	if s.Items != nil && len(s.Items.Data) > 0 && s.Items.Data[0].Price != nil {
		price := s.Items.Data[0].Price
		out.PriceID = price.ID
		if price.Recurring != nil {
			out.Interval = string(price.Recurring.Interval)
		}
	}
	return out
}

func upstreamError(op string, err error) error {
	var apiErr *stripesdk.Error
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Msg,
			Err:        err,
		}
	}
	return &domain.UpstreamError{Provider: providerName, Err: fmt.Errorf("%s: %w", op, err)}
}
