package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe implements Gateway on top of Stripe Checkout.
type Stripe struct {
	sessions      session.Client
	webhookSecret string
}

// StripeOption customises a Stripe gateway.
type StripeOption func(*Stripe)

// WithBackend points the gateway at a custom API backend (tests, proxies).
func WithBackend(b stripe.Backend) StripeOption {
	return func(s *Stripe) { s.sessions.B = b }
}

// NewStripe creates a gateway using the given secret API key and webhook signing secret.
func NewStripe(secretKey, webhookSecret string, opts ...StripeOption) *Stripe {
	s := &Stripe{
		sessions: session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		webhookSecret: webhookSecret,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCheckoutSession opens a card payment session for one order.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
	}
	if !p.ExpiresAt.IsZero() {
		params.ExpiresAt = stripe.Int64(p.ExpiresAt.Unix())
	}
	for _, l := range p.Lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(l.Name),
					Description: stripe.String(l.Description),
				},
				UnitAmount: stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}
	params.AddMetadata(MetadataOrderID, strconv.FormatInt(p.OrderID, 10))
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes checkout session events.
// Events of other types are returned with only ID and Type set.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if signature == "" || s.webhookSecret == "" {
		return nil, ErrMissingSignature
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, err
	}

	out := &Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != EventCheckoutCompleted && out.Type != EventCheckoutExpired {
		return out, nil
	}
	if evt.Data == nil {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	out.SessionID = sess.ID
	if id, err := strconv.ParseInt(sess.Metadata[MetadataOrderID], 10, 64); err == nil && id > 0 {
		out.OrderID = id
	}
	out.Customer = customerFromSession(&sess)
	return out, nil
}

func customerFromSession(sess *stripe.CheckoutSession) *CustomerDetails {
	cd := sess.CustomerDetails
	if cd == nil {
		return nil
	}
	details := &CustomerDetails{Name: cd.Name, Email: cd.Email, Phone: cd.Phone}
	if a := cd.Address; a != nil {
		details.Address = &Address{
			Line1:      a.Line1,
			Line2:      a.Line2,
			City:       a.City,
			PostalCode: a.PostalCode,
			State:      a.State,
			Country:    a.Country,
		}
	}
	return details
}
