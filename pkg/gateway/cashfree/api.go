package cashfree

import "context"

// APIClient defines the operations against the Cashfree PG API.
// Implementations: HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusResponse, error)
	CreateRefund(ctx context.Context, orderNumber string, req *RefundRequest) (*RefundResponse, error)
}

// CustomerDetails identifies the paying customer.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// OrderMeta carries the redirect and callback URLs for a checkout.
type OrderMeta struct {
	ReturnURL string `json:"return_url"`
	NotifyURL string `json:"notify_url"`
}

// CreateOrderRequest is the request body for POST /pg/orders.
// OrderAmount is in major currency units.
type CreateOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       OrderMeta       `json:"order_meta"`
}

// CreateOrderResponse is the checkout order returned by POST /pg/orders.
type CreateOrderResponse struct {
	CFOrderID   string  `json:"cf_order_id"`
	OrderID     string  `json:"order_id"`
	OrderAmount float64 `json:"order_amount"`
	OrderStatus string  `json:"order_status"`
	PaymentLink string  `json:"payment_link,omitempty"`
}

// OrderStatusResponse is the response for GET /pg/orders/{orderNumber}.
type OrderStatusResponse struct {
	OrderID     string  `json:"order_id"`
	OrderAmount float64 `json:"order_amount"`
	OrderStatus string  `json:"order_status"` // "ACTIVE", "PAID", "EXPIRED"
	ReferenceID string  `json:"reference_id,omitempty"`
}

// RefundRequest is the request body for POST /pg/orders/{orderNumber}/refunds.
type RefundRequest struct {
	RefundAmount float64 `json:"refund_amount"`
	RefundNote   string  `json:"refund_note,omitempty"`
}

// RefundResponse is the refund returned by the refund endpoint.
type RefundResponse struct {
	RefundID string  `json:"refund_id"`
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"refund_amount"`
	Status   string  `json:"refund_status"` // "SUCCESS" or "PENDING"
}

// WebhookPayload is the body Cashfree posts to the webhook endpoint.
type WebhookPayload struct {
	OrderID     string  `json:"orderId"`
	OrderAmount float64 `json:"orderAmount,omitempty"`
	OrderStatus string  `json:"orderStatus"`
	ReferenceID string  `json:"referenceId,omitempty"`
	TxMsg       string  `json:"txMsg,omitempty"`
}

// APIError is the error payload returned by the Cashfree API.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}
