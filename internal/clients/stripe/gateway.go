package stripe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrPaymentFailed = errors.New("payment failed")
	ErrProviderDown  = errors.New("payment provider unavailable")
)

// Intent is the client-facing half of a card payment authorization.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// Gateway opens card payment intents. Capture happens client side; the
// backend only records the settlement afterwards.
type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, currency, idempotencyKey string) (*Intent, error)
}

type stripeGateway struct {
	log    *logger.Logger
	client *client.API
}

func NewGateway(log *logger.Logger, secretKey string) (Gateway, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, fmt.Errorf("missing stripe secret key")
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &stripeGateway{log: log.With("client", "StripeGateway"), client: sc}, nil
}

// AmountCents converts a decimal price to the smallest currency unit,
// truncating fractions of a cent.
func AmountCents(amount float64) int64 {
	return int64(math.Trunc(amount * 100))
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amount float64, currency, idempotencyKey string) (*Intent, error) {
	cents := AmountCents(amount)
	if cents <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = string(stripeapi.CurrencyUSD)
	}

	params := &stripeapi.PaymentIntentParams{
		Amount:             stripeapi.Int64(cents),
		Currency:           stripeapi.String(currency),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
	}
	if idempotencyKey != "" {
		params.IdempotencyKey = stripeapi.String(idempotencyKey)
	}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	g.log.Debug("payment intent created", "intent_id", pi.ID, "amount_cents", cents)
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  cents,
		Currency:     currency,
	}, nil
}

func mapStripeError(err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripeapi.ErrorCodeCardDeclined:
			return fmt.Errorf("%w: card was declined (%s)", ErrPaymentFailed, stripeErr.Msg)
		case stripeapi.ErrorCodeAmountTooSmall, stripeapi.ErrorCodeAmountTooLarge:
			return fmt.Errorf("%w: %s", ErrInvalidAmount, stripeErr.Msg)
		case stripeapi.ErrorCodeIdempotencyKeyInUse:
			return fmt.Errorf("idempotency key collision: %w", err)
		}
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
			return ErrProviderDown
		}
	}
	return fmt.Errorf("stripe: %w", err)
}
