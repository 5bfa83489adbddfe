package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
)

var ErrNotConfigured = errors.New("payments not configured")

// Service creates one-off payment links for agreed trade-in amounts. The
// shop sends the link to the customer over chat; settlement is entirely
// Stripe's business.
type Service struct {
	currency   string
	successURL string
	cancelURL  string
	configured bool
}

type Config struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

func New(cfg Config) *Service {
	key := strings.TrimSpace(cfg.SecretKey)
	if key != "" {
		stripe.Key = key
	}
	currency := strings.TrimSpace(strings.ToLower(cfg.Currency))
	if currency == "" {
		currency = "thb"
	}
	return &Service{
		currency:   currency,
		successURL: strings.TrimSpace(cfg.SuccessURL),
		cancelURL:  strings.TrimSpace(cfg.CancelURL),
		configured: key != "",
	}
}

type Link struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateLink opens a checkout session for amount (in the currency's smallest
// unit) and returns its hosted URL.
func (s *Service) CreateLink(ctx context.Context, amount int64, description, customerPhone string) (Link, error) {
	if !s.configured {
		return Link{}, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if s.successURL != "" {
		params.SuccessURL = stripe.String(s.successURL)
	}
	if s.cancelURL != "" {
		params.CancelURL = stripe.String(s.cancelURL)
	}
	if customerPhone != "" {
		params.Metadata = map[string]string{"customer_phone": customerPhone}
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return Link{}, err
	}
	return Link{SessionID: sess.ID, URL: sess.URL}, nil
}
