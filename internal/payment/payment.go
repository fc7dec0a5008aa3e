// Package payment talks to the hosted payment provider: it opens checkout sessions for
// orders and turns signed webhook deliveries into events the service layer understands.
package payment

import (
	"context"
	"errors"
	"time"
)

// Webhook event types handled by the service layer.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

// MetadataOrderID is the session metadata key linking a checkout session to its order.
const MetadataOrderID = "order_id"

// ErrMissingSignature is returned when a webhook arrives without a signature header or
// when no webhook secret is configured to check it against.
var ErrMissingSignature = errors.New("missing webhook signature or secret")

// Gateway is the provider surface used by the services.
// Satisfied by *Stripe; narrow interface for testability.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

type CheckoutParams struct {
	OrderID    int64
	Currency   string
	Lines      []LineItem
	SuccessURL string
	CancelURL  string
	ExpiresAt  time.Time
}

// LineItem is one priced line on the hosted payment page. UnitAmount is in the
// currency's minor unit.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type CheckoutSession struct {
	ID  string
	URL string
}

// Event is a verified webhook delivery. OrderID is zero when the session carried no
// usable order reference.
type Event struct {
	ID        string
	Type      string
	SessionID string
	OrderID   int64
	Customer  *CustomerDetails
}

// CustomerDetails is stored as JSON on the paid order.
type CustomerDetails struct {
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
}
