package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

var ErrGatewayInitFailed = errors.New("failed to initialize payment gateway")

// Intent — непрозрачное подтверждение платёжного шлюза.
type Intent struct {
	ID           string
	ClientSecret string
	Succeeded    bool
}

// Gateway — опак-протокол create-intent / confirm-intent.
// Детали провайдера платежей за этим интерфейсом ядро не видит.
type Gateway interface {
	CreateIntent(ctx context.Context, bookingID uuid.UUID, amountCents int64) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}

// StripeGateway — реализация на Stripe PaymentIntents.
type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, ErrGatewayInitFailed
	}
	sc := client.New(secretKey, nil)
	if sc == nil {
		return nil, ErrGatewayInitFailed
	}
	return &StripeGateway{client: sc}, nil
}

func (g *StripeGateway) CreateIntent(
	ctx context.Context,
	bookingID uuid.UUID,
	amountCents int64,
) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"bookingId": bookingID.String(),
		},
	}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Succeeded:    pi.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe retrieve intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Succeeded:    pi.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}
