package order

import (
	"context"
	"errors"
)

// ErrNotFound indicates the order does not exist.
var ErrNotFound = errors.New("order not found")

// Patch is a partial update of the fields the gateway owns.
// Nil fields are left untouched; orders are never replaced wholesale so
// concurrent writers touching unrelated fields are not clobbered.
type Patch struct {
	Status *Status

	PaymentProvider      *string
	PaymentTransactionID *string
	PaymentStatus        *PaymentStatus

	ShippingCarrier *string
	TrackingNumber  *string
	TrackingURL     *string
	ShippingCost    *float64
}

// IsZero reports whether the patch would change nothing.
func (p Patch) IsZero() bool {
	return p.Status == nil &&
		p.PaymentProvider == nil && p.PaymentTransactionID == nil && p.PaymentStatus == nil &&
		p.ShippingCarrier == nil && p.TrackingNumber == nil && p.TrackingURL == nil && p.ShippingCost == nil
}

// Store is the narrow persistence interface the gateway depends on.
// It deliberately exposes no query capability beyond lookup by id or
// by order number (the provider-side correlation key).
type Store interface {
	// GetByID returns the order with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Order, error)

	// GetByNumber returns the order with the given order number, or ErrNotFound.
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// Patch applies a partial update and returns the updated order.
	// A status change that violates the transition set fails with
	// ErrInvalidTransition and writes nothing.
	Patch(ctx context.Context, id string, patch Patch) (*Order, error)

	// PatchByNumber is Patch keyed by order number. Webhook receivers use
	// this since providers echo back the order number, not the internal id.
	PatchByNumber(ctx context.Context, number string, patch Patch) (*Order, error)
}

// apply mutates an order in place according to the patch, enforcing the
// status transition set.
func (o *Order) apply(p Patch) error {
	if p.Status != nil {
		if err := CheckTransition(o.Status, *p.Status); err != nil {
			return err
		}
	}

	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.PaymentProvider != nil {
		o.PaymentInfo.Provider = *p.PaymentProvider
	}
	if p.PaymentTransactionID != nil {
		o.PaymentInfo.TransactionID = *p.PaymentTransactionID
	}
	if p.PaymentStatus != nil {
		o.PaymentInfo.Status = *p.PaymentStatus
	}

	if p.ShippingCarrier != nil || p.TrackingNumber != nil || p.TrackingURL != nil || p.ShippingCost != nil {
		if o.ShippingInfo == nil {
			o.ShippingInfo = &ShippingInfo{}
		}
		if p.ShippingCarrier != nil {
			o.ShippingInfo.Carrier = *p.ShippingCarrier
		}
		if p.TrackingNumber != nil {
			o.ShippingInfo.TrackingNumber = *p.TrackingNumber
		}
		if p.TrackingURL != nil {
			o.ShippingInfo.TrackingURL = *p.TrackingURL
		}
		if p.ShippingCost != nil {
			o.ShippingInfo.Cost = *p.ShippingCost
		}
	}
	return nil
}
