package stripe

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FakeGateway returns deterministic intents without calling out. It backs
// local development when no secret key is configured, and tests.
type FakeGateway struct {
	mu      sync.Mutex
	Intents []*Intent
}

func NewFakeGateway() *FakeGateway { return &FakeGateway{} }

func (f *FakeGateway) CreateIntent(ctx context.Context, amount float64, currency, idempotencyKey string) (*Intent, error) {
	cents := AmountCents(amount)
	if cents <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = "usd"
	}
	id := "pi_fake_" + uuid.NewString()
	in := &Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%d", id, cents),
		AmountCents:  cents,
		Currency:     currency,
	}
	f.mu.Lock()
	f.Intents = append(f.Intents, in)
	f.mu.Unlock()
	return in, nil
}
