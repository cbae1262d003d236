package gateway

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// PaymentGateway creates payment intents with an external processor. Handlers
// depend on this interface so tests can swap in a stub.
type PaymentGateway interface {
	CreatePaymentIntent(price float64) (clientSecret string, err error)
}

// StripeGateway is the Stripe-backed PaymentGateway
type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway creates a Stripe gateway with its own API client
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:      api,
		currency: currency,
	}
}

// CreatePaymentIntent creates a card payment intent for the given price and
// returns its client secret. The price is in major units; Stripe wants the
// smallest unit, and fractional cents are truncated.
func (g *StripeGateway) CreatePaymentIntent(price float64) (string, error) {
	amount := int64(price) * 100

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}
