// Package mock provides mock providers for testing the resolver and server
// without real vendor clients.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
)

// Carrier is a mock shipment provider.
type Carrier struct {
	name string

	// TrackStatus is returned by TrackShipment; defaults to "In Transit".
	TrackStatus string

	// FailTrack makes TrackShipment report the unable-to-track sentinel.
	FailTrack bool

	// FailOps makes the mutating operations fail.
	FailOps bool
}

// NewCarrier creates a mock carrier with the given name.
func NewCarrier(name string) *Carrier {
	return &Carrier{name: name}
}

// Name returns the carrier name.
func (c *Carrier) Name() string {
	return c.name
}

// CreateShipment returns a mock booking.
func (c *Carrier) CreateShipment(ctx context.Context, orderID string) (*gateway.ShipmentResult, error) {
	if c.FailOps {
		return nil, gateway.NewGatewayError(c.name, "MOCK_ERROR", "simulated create failure")
	}
	return &gateway.ShipmentResult{
		Success:        true,
		Carrier:        c.name,
		TrackingNumber: fmt.Sprintf("%s-awb-%d", c.name, time.Now().UnixNano()%1000000000),
		RawStatus:      "booked",
	}, nil
}

// TrackShipment returns the configured tracking status.
func (c *Carrier) TrackShipment(ctx context.Context, trackingNumber string) (string, error) {
	if c.FailTrack {
		return gateway.UnableToTrack, nil
	}
	if c.TrackStatus != "" {
		return c.TrackStatus, nil
	}
	return "In Transit", nil
}

// CancelShipment reports a successful cancellation.
func (c *Carrier) CancelShipment(ctx context.Context, orderID string) (bool, error) {
	if c.FailOps {
		return false, nil
	}
	return true, nil
}

// SchedulePickup reports a successful pickup booking.
func (c *Carrier) SchedulePickup(ctx context.Context, orderID string) (bool, error) {
	if c.FailOps {
		return false, nil
	}
	return true, nil
}

// Payment is a mock payment provider.
type Payment struct {
	name string

	// VerifyResult is returned by VerifyPayment.
	VerifyResult bool

	// FailOps makes the mutating operations fail.
	FailOps bool
}

// NewPayment creates a mock payment provider with the given name.
func NewPayment(name string) *Payment {
	return &Payment{name: name, VerifyResult: true}
}

// Name returns the provider name.
func (p *Payment) Name() string {
	return p.name
}

// CreatePaymentOrder returns a mock provider order.
func (p *Payment) CreatePaymentOrder(ctx context.Context, orderID string) (*gateway.PaymentOrder, error) {
	if p.FailOps {
		return nil, gateway.NewGatewayError(p.name, "MOCK_ERROR", "simulated create failure")
	}
	return &gateway.PaymentOrder{
		Provider:        p.name,
		ProviderOrderID: fmt.Sprintf("%s_order_%d", p.name, time.Now().UnixNano()%1000000000),
		PaymentLink:     fmt.Sprintf("https://pay.example.com/%s/%s", p.name, orderID),
		Amount:          100,
		Currency:        "INR",
	}, nil
}

// VerifyPayment returns the configured verification result.
func (p *Payment) VerifyPayment(ctx context.Context, orderID, providerPaymentID, signature string) (bool, error) {
	return p.VerifyResult, nil
}

// RefundPayment reports a successful refund.
func (p *Payment) RefundPayment(ctx context.Context, orderID string, amount *float64, note string) (bool, error) {
	if p.FailOps {
		return false, nil
	}
	return true, nil
}

var (
	_ gateway.ShipmentProvider = (*Carrier)(nil)
	_ gateway.PickupScheduler  = (*Carrier)(nil)
	_ gateway.PaymentProvider  = (*Payment)(nil)
)
