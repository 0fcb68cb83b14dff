// Package payment wraps the Stripe API behind a small adapter so the rest of
// the application never touches gateway types directly.
package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// EventCheckoutCompleted is the only webhook event kind acted on. Everything
// else is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutSession is the result of creating a hosted checkout flow.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionRequest describes the hosted checkout flow to create. Amount is in
// minor currency units (hundredths).
type SessionRequest struct {
	Amount     int64
	Currency   string
	Name       string
	ImageURL   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Event is a verified, decoded webhook notification. SessionID and
// AmountTotal are only populated for checkout-completed events.
type Event struct {
	Type        string
	SessionID   string
	AmountTotal int64 // minor currency units, as reported by the gateway
}

// Gateway is the Stripe adapter. Construct one at process start and pass it
// to whatever needs it; there is no package-level client.
type Gateway struct {
	api           *client.API
	webhookSecret string
}

// NewGateway builds a Stripe client with a bounded request timeout.
func NewGateway(secretKey, webhookSecret string) *Gateway {
	api := &client.API{}
	api.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: 10 * time.Second}))
	return &Gateway{api: api, webhookSecret: webhookSecret}
}

// CreateCheckoutSession creates a hosted checkout session and returns its id
// and redirect URL.
func (g *Gateway) CreateCheckoutSession(req SessionRequest) (*CheckoutSession, error) {
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(req.Currency),
		UnitAmount: stripe.Int64(req.Amount),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(req.Name),
		},
	}
	if req.ImageURL != "" {
		priceData.ProductData.Images = stripe.StringSlice([]string{req.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{PriceData: priceData, Quantity: stripe.Int64(1)},
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, errors.New("gateway returned no redirect URL")
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// VerifyWebhook checks the payload signature against the shared secret and
// decodes the event. A verification failure means the payload is forged or
// malformed and must not cause any state change.
func (g *Gateway) VerifyWebhook(payload []byte, sigHeader string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, err
	}

	event := &Event{Type: string(stripeEvent.Type)}
	if event.Type == EventCheckoutCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &session); err != nil {
			return nil, err
		}
		event.SessionID = session.ID
		event.AmountTotal = session.AmountTotal
	}

	return event, nil
}
