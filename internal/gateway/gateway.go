package gateway

import (
	"fmt"
	"sync"

	"auction-house/utils"
)

//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=gateway

// PaymentGateway is the external payment provider. Calls are synchronous and
// never retried here; a failure is surfaced to the caller immediately.
type PaymentGateway interface {
	// CreatePaymentLink registers a payment intent for amount with the
	// provider and returns the externally issued payment link.
	CreatePaymentLink(amount float64) (string, error)
	// CancelPayment voids the payment behind the link. Cancelling an
	// already-cancelled link succeeds.
	CancelPayment(link string) error
}

// FakeGateway is an in-process PaymentGateway used by the default server mode
// and by integration tests. It tracks issued links in memory.
type FakeGateway struct {
	mu     sync.RWMutex
	active map[string]bool // link -> still active
}

// NewFakeGateway creates an empty FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{active: make(map[string]bool)}
}

func (g *FakeGateway) CreatePaymentLink(amount float64) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("gateway: negative amount %.2f", amount)
	}

	link := "https://pay.example.com/" + utils.GenerateID()
	g.mu.Lock()
	g.active[link] = true
	g.mu.Unlock()
	return link, nil
}

func (g *FakeGateway) CancelPayment(link string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.active[link]; !ok {
		return fmt.Errorf("gateway: unknown payment link %s", link)
	}
	g.active[link] = false
	return nil
}

// Active reports whether the link is still chargeable. Intended for tests.
func (g *FakeGateway) Active(link string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active[link]
}
