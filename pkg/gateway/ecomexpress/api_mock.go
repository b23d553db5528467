package ecomexpress

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreateShipment func(ctx context.Context, req *ShipmentRequest) (*ShipmentResponse, error)
	OnTrack          func(ctx context.Context, awbNumber string) (*TrackingResponse, error)
	OnCancelShipment func(ctx context.Context, req *CancelRequest) (*CancelResponse, error)
	OnSchedulePickup func(ctx context.Context, req *PickupRequest) (*PickupResponse, error)
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

// CreateShipment returns a mock booking.
func (m *MockAPIClient) CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateShipment != nil {
		return m.OnCreateShipment(ctx, req)
	}
	return &ShipmentResponse{
		Success:              true,
		AWBNumber:            "EE" + uuid.New().String()[:10],
		OrderNumber:          req.OrderNumber,
		Status:               "BOOKED",
		StatusCode:           200,
		CourierPartner:       "Ecom Express Surface",
		PickupDate:           time.Now().Format("2006-01-02"),
		ExpectedDeliveryDate: time.Now().AddDate(0, 0, 4).Format("2006-01-02"),
	}, nil
}

// Track returns mock tracking information.
func (m *MockAPIClient) Track(ctx context.Context, awbNumber string) (*TrackingResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnTrack != nil {
		return m.OnTrack(ctx, awbNumber)
	}
	return &TrackingResponse{
		AWBNumber:     awbNumber,
		CurrentStatus: "In Transit",
		StatusCode:    200,
		Scans: []Scan{
			{
				ScanDateTime: time.Now().Format(time.RFC3339),
				ScanType:     "PU",
				ScanStatus:   "Shipment picked up",
				Location:     "Pune Hub",
			},
		},
	}, nil
}

// CancelShipment returns a mock cancellation.
func (m *MockAPIClient) CancelShipment(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCancelShipment != nil {
		return m.OnCancelShipment(ctx, req)
	}
	return &CancelResponse{Success: true, Message: "Shipment cancelled"}, nil
}

// SchedulePickup returns a mock pickup booking.
func (m *MockAPIClient) SchedulePickup(ctx context.Context, req *PickupRequest) (*PickupResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnSchedulePickup != nil {
		return m.OnSchedulePickup(ctx, req)
	}
	return &PickupResponse{
		Success:    true,
		PickupID:   "PU" + uuid.New().String()[:8],
		PickupDate: req.PickupDate,
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
