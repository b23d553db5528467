package razorpay

import (
	"context"
	"fmt"
)

// APIClient defines the operations against the Razorpay API.
// Implementations: HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error)
	FetchPayment(ctx context.Context, paymentID string) (*PaymentEntity, error)
	Refund(ctx context.Context, paymentID string, req *RefundRequest) (*RefundResponse, error)
}

// CreateOrderRequest is the request body for POST /v1/orders.
// Amount is in the smallest currency unit (paise for INR).
type CreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// OrderResponse is the provider order returned by POST /v1/orders.
type OrderResponse struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}

// PaymentEntity is a payment as returned by GET /v1/payments/{id} and
// carried in webhook payloads.
type PaymentEntity struct {
	ID       string            `json:"id"`
	Entity   string            `json:"entity"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Status   string            `json:"status"`
	OrderID  string            `json:"order_id"`
	Method   string            `json:"method"`
	Email    string            `json:"email"`
	Contact  string            `json:"contact"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// RefundRequest is the request body for POST /v1/payments/{id}/refund.
// A zero Amount refunds the full captured amount.
type RefundRequest struct {
	Amount int64             `json:"amount,omitempty"`
	Notes  map[string]string `json:"notes,omitempty"`
}

// RefundResponse is the refund entity returned by the refund endpoint.
type RefundResponse struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// WebhookEvent is the envelope Razorpay posts to the webhook endpoint.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// APIError is the error payload returned by the Razorpay API.
type APIError struct {
	Detail struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Description)
}
