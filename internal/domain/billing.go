package domain

import "time"

// Checkout modes accepted by the billing provider.
const (
	CheckoutModeSubscription = "subscription"
	CheckoutModePayment      = "payment"
)

// CheckoutRequest asks for a hosted checkout page for one price.
type CheckoutRequest struct {
	PriceID  string `json:"priceId"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Interval string `json:"interval,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

// Customer is a billing customer as known to the payment provider.
type Customer struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Name     string            `json:"name,omitempty"`
	Created  time.Time         `json:"created"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Subscription is an active recurring plan of a customer.
type Subscription struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	PriceID          string            `json:"priceId,omitempty"`
	Interval         string            `json:"interval,omitempty"`
	CurrentPeriodEnd time.Time         `json:"currentPeriodEnd"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// CustomerStatus answers whether an email belongs to a paying customer.
type CustomerStatus struct {
	Exists             bool              `json:"exists"`
	Customer           *Customer         `json:"customer,omitempty"`
	ActiveSubscription *Subscription     `json:"activeSubscription"`
	Metadata           map[string]string `json:"metadata"`
}

// BillingEvent is a verified webhook notification.
type BillingEvent struct {
	ID       string
	Type     string
	ObjectID string
	Metadata map[string]string
}
