package razorpay

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreateOrder  func(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error)
	OnFetchPayment func(ctx context.Context, paymentID string) (*PaymentEntity, error)
	OnRefund       func(ctx context.Context, paymentID string, req *RefundRequest) (*RefundResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

func (m *MockAPIClient) simulate() error {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		apiErr := &APIError{}
		apiErr.Detail.Code = "SERVER_ERROR"
		apiErr.Detail.Description = "Simulated API error"
		return apiErr
	}
	return nil
}

func mockID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.New().String(), "-", "")[:14]
}

// CreateOrder returns a mock provider order.
func (m *MockAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, req)
	}
	return &OrderResponse{
		ID:        mockID("order_"),
		Entity:    "order",
		Amount:    req.Amount,
		Currency:  req.Currency,
		Receipt:   req.Receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}, nil
}

// FetchPayment returns a mock captured payment.
func (m *MockAPIClient) FetchPayment(ctx context.Context, paymentID string) (*PaymentEntity, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnFetchPayment != nil {
		return m.OnFetchPayment(ctx, paymentID)
	}
	return &PaymentEntity{
		ID:       paymentID,
		Entity:   "payment",
		Amount:   100000,
		Currency: "INR",
		Status:   "captured",
		Method:   "upi",
	}, nil
}

// Refund returns a mock processed refund.
func (m *MockAPIClient) Refund(ctx context.Context, paymentID string, req *RefundRequest) (*RefundResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnRefund != nil {
		return m.OnRefund(ctx, paymentID, req)
	}
	return &RefundResponse{
		ID:        mockID("rfnd_"),
		Entity:    "refund",
		Amount:    req.Amount,
		Currency:  "INR",
		PaymentID: paymentID,
		Status:    "processed",
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
