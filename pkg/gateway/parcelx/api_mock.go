package parcelx

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

	OnCreateShipment func(ctx context.Context, req *CreateShipmentRequest) (*CreateShipmentResponse, error)
	OnTrack          func(ctx context.Context, trackingNumber string) (*TrackingResponse, error)
	OnCancelShipment func(ctx context.Context, trackingNumber string) (*CancelResponse, error)
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

// CreateShipment returns a mock booking.
func (m *MockAPIClient) CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*CreateShipmentResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateShipment != nil {
		return m.OnCreateShipment(ctx, req)
	}
	trackingNumber := "PX" + uuid.New().String()[:10]
	return &CreateShipmentResponse{
		Success:        true,
		ShipmentID:     uuid.New().String(),
		TrackingNumber: trackingNumber,
		LabelURL:       fmt.Sprintf("https://labels.parcelx.example.com/%s.pdf", trackingNumber),
		Status:         "CREATED",
		CourierPartner: "XpressBees",
		ShippingCharges: ShippingCharges{
			FreightCharges: 85,
			TotalCharges:   85,
		},
	}, nil
}

// Track returns mock tracking information.
func (m *MockAPIClient) Track(ctx context.Context, trackingNumber string) (*TrackingResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnTrack != nil {
		return m.OnTrack(ctx, trackingNumber)
	}
	return &TrackingResponse{
		TrackingNumber: trackingNumber,
		CurrentStatus:  "IN_TRANSIT",
		Events: []TrackingEvent{
			{
				Timestamp:   time.Now().Format(time.RFC3339),
				Location:    "Mumbai Hub",
				Status:      "IN_TRANSIT",
				Description: "Shipment picked up",
			},
		},
	}, nil
}

// CancelShipment returns a mock cancellation.
func (m *MockAPIClient) CancelShipment(ctx context.Context, trackingNumber string) (*CancelResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCancelShipment != nil {
		return m.OnCancelShipment(ctx, trackingNumber)
	}
	return &CancelResponse{Success: true, Message: "Shipment cancelled"}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
