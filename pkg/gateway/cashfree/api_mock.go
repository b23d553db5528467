package cashfree

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreateOrder    func(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	OnGetOrderStatus func(ctx context.Context, orderNumber string) (*OrderStatusResponse, error)
	OnCreateRefund   func(ctx context.Context, orderNumber string, req *RefundRequest) (*RefundResponse, error)
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
		return &APIError{Message: "Simulated API error"}
	}
	return nil
}

// CreateOrder returns a mock checkout order.
func (m *MockAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, req)
	}
	cfOrderID := "cf_" + uuid.New().String()[:12]
	return &CreateOrderResponse{
		CFOrderID:   cfOrderID,
		OrderID:     req.OrderID,
		OrderAmount: req.OrderAmount,
		OrderStatus: "ACTIVE",
		PaymentLink: fmt.Sprintf("https://payments.cashfree.example.com/order/%s", cfOrderID),
	}, nil
}

// GetOrderStatus returns a mock PAID status.
func (m *MockAPIClient) GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetOrderStatus != nil {
		return m.OnGetOrderStatus(ctx, orderNumber)
	}
	return &OrderStatusResponse{
		OrderID:     orderNumber,
		OrderStatus: "PAID",
		ReferenceID: "ref_" + uuid.New().String()[:12],
	}, nil
}

// CreateRefund returns a mock settled refund.
func (m *MockAPIClient) CreateRefund(ctx context.Context, orderNumber string, req *RefundRequest) (*RefundResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateRefund != nil {
		return m.OnCreateRefund(ctx, orderNumber, req)
	}
	return &RefundResponse{
		RefundID: "rf_" + uuid.New().String()[:12],
		OrderID:  orderNumber,
		Amount:   req.RefundAmount,
		Status:   "SUCCESS",
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
