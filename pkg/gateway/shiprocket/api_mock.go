package shiprocket

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

	OnCreateOrder      func(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	OnAssignAWB        func(ctx context.Context, req *AssignAWBRequest) (*AssignAWBResponse, error)
	OnTrack            func(ctx context.Context, awbCode string) (*TrackingResponse, error)
	OnCancelOrders     func(ctx context.Context, req *CancelRequest) (*CancelResponse, error)
	OnGenerateLabel    func(ctx context.Context, req *GenerateLabelRequest) (*LabelResponse, error)
	OnGenerateManifest func(ctx context.Context, req *GenerateManifestRequest) (*ManifestResponse, error)
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
		return &APIError{Message: "Simulated API error", StatusCode: 0}
	}
	return nil
}

// CreateOrder returns a mock adhoc order creation.
func (m *MockAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, req)
	}
	return &CreateOrderResponse{
		OrderID:          time.Now().UnixNano() % 10000000,
		ShipmentID:       time.Now().UnixNano() % 10000000,
		Status:           "NEW",
		StatusCode:       1,
		CourierCompanyID: 24,
		CourierName:      "Delhivery Surface",
		OrderStatus:      "PROCESSING",
	}, nil
}

// AssignAWB returns a mock waybill assignment.
func (m *MockAPIClient) AssignAWB(ctx context.Context, req *AssignAWBRequest) (*AssignAWBResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnAssignAWB != nil {
		return m.OnAssignAWB(ctx, req)
	}
	return &AssignAWBResponse{
		AWBCode:     "SR" + uuid.New().String()[:10],
		CourierName: "Delhivery Surface",
	}, nil
}

// Track returns mock tracking information.
func (m *MockAPIClient) Track(ctx context.Context, awbCode string) (*TrackingResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnTrack != nil {
		return m.OnTrack(ctx, awbCode)
	}
	resp := &TrackingResponse{}
	resp.TrackingData.TrackStatus = 1
	resp.TrackingData.CurrentStatus = "In Transit"
	resp.TrackingData.Activities = []TrackingActivity{
		{
			Date:     time.Now().Format("2006-01-02 15:04"),
			Status:   "IT",
			Activity: "Shipment picked up",
			Location: "Pune Hub",
		},
	}
	return resp, nil
}

// CancelOrders returns a mock cancellation.
func (m *MockAPIClient) CancelOrders(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCancelOrders != nil {
		return m.OnCancelOrders(ctx, req)
	}
	return &CancelResponse{Success: true, Message: "Order cancelled successfully"}, nil
}

// GenerateLabel returns a mock label URL.
func (m *MockAPIClient) GenerateLabel(ctx context.Context, req *GenerateLabelRequest) (*LabelResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGenerateLabel != nil {
		return m.OnGenerateLabel(ctx, req)
	}
	return &LabelResponse{
		LabelCreated: 1,
		LabelURL:     fmt.Sprintf("https://labels.example.com/%s.pdf", uuid.New().String()[:8]),
	}, nil
}

// GenerateManifest returns a mock manifest URL.
func (m *MockAPIClient) GenerateManifest(ctx context.Context, req *GenerateManifestRequest) (*ManifestResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGenerateManifest != nil {
		return m.OnGenerateManifest(ctx, req)
	}
	return &ManifestResponse{
		Status:      1,
		ManifestURL: fmt.Sprintf("https://manifests.example.com/%s.pdf", uuid.New().String()[:8]),
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
