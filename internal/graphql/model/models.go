// Package model holds the GraphQL input and result types served over the
// /graphql endpoint.
package model

// CreateShipmentInput selects the order and carrier for a booking.
type CreateShipmentInput struct {
	OrderID string `json:"orderId"`
	Carrier string `json:"carrier"`
}

// CancelShipmentInput selects the order and carrier for a cancellation.
type CancelShipmentInput struct {
	OrderID string `json:"orderId"`
	Carrier string `json:"carrier"`
}

// SchedulePickupInput selects the order and carrier for a warehouse pickup.
type SchedulePickupInput struct {
	OrderID string `json:"orderId"`
	Carrier string `json:"carrier"`
}

// CreatePaymentOrderInput selects the order and payment provider for checkout.
type CreatePaymentOrderInput struct {
	OrderID  string `json:"orderId"`
	Provider string `json:"provider"`
}

// VerifyPaymentInput carries the checkout completion proof.
type VerifyPaymentInput struct {
	OrderID   string `json:"orderId"`
	Provider  string `json:"provider"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature,omitempty"`
}

// RefundPaymentInput requests a full or partial refund.
type RefundPaymentInput struct {
	OrderID  string   `json:"orderId"`
	Provider string   `json:"provider"`
	Amount   *float64 `json:"amount,omitempty"`
	Note     *string  `json:"note,omitempty"`
}

// ShipmentResult is the mutation result for createShipment.
type ShipmentResult struct {
	Success        bool     `json:"success"`
	Carrier        string   `json:"carrier"`
	TrackingNumber *string  `json:"trackingNumber,omitempty"`
	TrackingURL    *string  `json:"trackingUrl,omitempty"`
	Cost           *float64 `json:"cost,omitempty"`
	Status         *string  `json:"status,omitempty"`
}

// PaymentOrderResult is the mutation result for createPaymentOrder.
type PaymentOrderResult struct {
	Provider        string  `json:"provider"`
	ProviderOrderID string  `json:"providerOrderId"`
	PaymentLink     *string `json:"paymentLink,omitempty"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// OperationResult is the boolean outcome shared by cancel, pickup, verify
// and refund mutations.
type OperationResult struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

// TrackResult is the query result for trackShipment.
type TrackResult struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
	Status         string `json:"status"`
}

// PaymentInfo is the payment view embedded in Order.
type PaymentInfo struct {
	Provider      string  `json:"provider,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
}

// ShippingInfo is the shipment view embedded in Order. It is nil until a
// shipment has been created.
type ShippingInfo struct {
	Carrier        string  `json:"carrier"`
	TrackingNumber string  `json:"trackingNumber"`
	TrackingURL    string  `json:"trackingUrl,omitempty"`
	Cost           float64 `json:"cost,omitempty"`
}

// OrderItem is a line item view embedded in Order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the query result for the order lookup.
type Order struct {
	ID           string        `json:"id"`
	OrderNumber  string        `json:"orderNumber"`
	Status       string        `json:"status"`
	Items        []OrderItem   `json:"items"`
	Total        float64       `json:"total"`
	PaymentInfo  PaymentInfo   `json:"paymentInfo"`
	ShippingInfo *ShippingInfo `json:"shippingInfo,omitempty"`
}
