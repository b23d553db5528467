// Package gateway provides an abstraction layer over external shipping
// carriers and payment providers. Each provider implements one of the
// capability interfaces below and mutates order state as a side effect of
// external calls through the narrow order.Store collaborator.
package gateway

import (
	"context"
)

// ShipmentProvider defines the interface that all shipping carriers implement.
type ShipmentProvider interface {
	// Name returns the carrier identifier (e.g., "shiprocket", "ecomexpress", "parcelx").
	Name() string

	// CreateShipment books a consignment for the order, records carrier
	// and tracking number on it and advances it to PROCESSING.
	CreateShipment(ctx context.Context, orderID string) (*ShipmentResult, error)

	// TrackShipment returns the carrier's current human-readable status for
	// a tracking number. It never mutates the order.
	TrackShipment(ctx context.Context, trackingNumber string) (string, error)

	// CancelShipment cancels the order's consignment with the carrier and
	// advances the order to CANCELLED on confirmation. It requires a
	// tracking number on the order (ErrPreconditionFailed otherwise).
	CancelShipment(ctx context.Context, orderID string) (bool, error)
}

// PickupScheduler is implemented by carriers that support scheduling a
// same-day warehouse pickup for a booked consignment.
type PickupScheduler interface {
	// SchedulePickup requests pickup for today within the carrier's fixed
	// time slot. It requires a tracking number and does not change the
	// order status.
	SchedulePickup(ctx context.Context, orderID string) (bool, error)
}

// PaymentProvider defines the interface that all payment providers implement.
type PaymentProvider interface {
	// Name returns the provider identifier (e.g., "razorpay", "cashfree").
	Name() string

	// CreatePaymentOrder registers the order with the provider for checkout
	// and records the provider-assigned reference on the order.
	CreatePaymentOrder(ctx context.Context, orderID string) (*PaymentOrder, error)

	// VerifyPayment confirms a completed checkout, either by recomputing
	// the provider signature or by polling the provider's status endpoint.
	// On success it marks the payment COMPLETED; on mismatch it returns
	// false without mutating the order.
	VerifyPayment(ctx context.Context, orderID, providerPaymentID, signature string) (bool, error)

	// RefundPayment refunds the full order total, or a partial amount when
	// given, and marks the payment REFUNDED on provider success.
	RefundPayment(ctx context.Context, orderID string, amount *float64, note string) (bool, error)
}

// WebhookSource is implemented by payment providers that deliver
// asynchronous status callbacks.
type WebhookSource interface {
	// VerifyWebhookSignature checks the provider signature over the raw
	// request body.
	VerifyWebhookSignature(body []byte, signature string) bool

	// HandleWebhook verifies and applies an inbound provider callback.
	// Invalid signatures fail with ErrInvalidSignature; unrecognized status
	// values are ignored without error.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}
