// Package order defines the order domain model shared by the provider gateway.
package order

import (
	"time"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
)

// PaymentStatus represents the state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Item is a single line item on an order.
type Item struct {
	ProductID       string
	Name            string
	SKU             string
	HSN             string
	Quantity        int
	Price           float64 // unit price
	Weight          float64 // kg, 0 = unknown
	SelectedOptions []string
}

// ShippingAddress is the consignee address, immutable once the order is placed.
type ShippingAddress struct {
	Name    string
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
	Phone   string
}

// PaymentInfo holds payment state embedded in an order.
type PaymentInfo struct {
	Provider      string
	TransactionID string
	Status        PaymentStatus
	Amount        float64
	Currency      string
}

// ShippingInfo holds shipment state embedded in an order.
// It is nil until a shipment has been created.
type ShippingInfo struct {
	Carrier        string
	TrackingNumber string
	TrackingURL    string
	Cost           float64
}

// Order is the aggregate mutated by the provider gateway.
// The gateway never creates or deletes orders; it only patches
// paymentInfo, shippingInfo and status as side effects of provider calls.
type Order struct {
	ID              string
	OrderNumber     string
	UserID          string
	Items           []Item
	Subtotal        float64
	Tax             float64
	Total           float64
	Status          Status
	ShippingAddress ShippingAddress
	PaymentInfo     PaymentInfo
	ShippingInfo    *ShippingInfo
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = make([]Item, len(o.Items))
	copy(cp.Items, o.Items)
	for i, it := range o.Items {
		opts := make([]string, len(it.SelectedOptions))
		copy(opts, it.SelectedOptions)
		cp.Items[i].SelectedOptions = opts
	}
	if o.ShippingInfo != nil {
		si := *o.ShippingInfo
		cp.ShippingInfo = &si
	}
	return &cp
}
