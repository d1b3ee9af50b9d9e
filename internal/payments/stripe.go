package payments

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// Checkout prices are charged in BRL minor units.
const currency = "brl"

type Client struct {
	api           *client.API
	webhookSecret string
}

// CheckoutSessionRequest carries everything needed for one hosted checkout.
// Metadata travels opaquely through Stripe and comes back on the completion
// webhook.
type CheckoutSessionRequest struct {
	CustomerID  string
	Name        string
	Description string
	UnitAmount  int64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

func NewClient(secretKey, webhookSecret string) *Client {
	return &Client{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

// CreateCustomer registers the account with Stripe and returns the customer
// id for reuse on later checkouts.
func (c *Client) CreateCustomer(email, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.AddMetadata("userId", userID)

	customer, err := c.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	return customer.ID, nil
}

// CreateCheckoutSession opens a payment-mode hosted checkout and returns its
// redirect URL.
func (c *Client) CreateCheckoutSession(req CheckoutSessionRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(req.CustomerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(req.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Name),
						Description: stripe.String(req.Description),
					},
				},
			},
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

// ConstructEvent verifies the webhook signature against the raw payload.
// The body must not have been JSON-decoded beforehand.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}

// ParseCheckoutSession decodes the session object off a checkout.session.*
// event.
func ParseCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}
