package ecomexpress

import (
	"context"
)

// APIClient defines the interface for Ecom Express API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// CreateShipment books a consignment
	CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResponse, error)

	// Track retrieves tracking information for a waybill number
	Track(ctx context.Context, awbNumber string) (*TrackingResponse, error)

	// CancelShipment cancels a booked consignment
	CancelShipment(ctx context.Context, req *CancelRequest) (*CancelResponse, error)

	// SchedulePickup requests a warehouse pickup for booked consignments
	SchedulePickup(ctx context.Context, req *PickupRequest) (*PickupResponse, error)
}

// ============================================================================
// API Request/Response Types (match Ecom Express REST API v1 structure)
// ============================================================================

// Address is a consignee or pickup address.
type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	PinCode  string `json:"pin_code"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

// ShipmentRequest books a consignment.
// POST /api/v1/shipments
type ShipmentRequest struct {
	OrderNumber      string  `json:"order_number"`
	ProductName      string  `json:"product_name"`
	Consignee        Address `json:"consignee"`
	PickupLocation   Address `json:"pickup_location"`
	PaymentMode      string  `json:"payment_mode"` // "COD" or "PPD"
	CODAmount        float64 `json:"cod_amount,omitempty"`
	ActualWeight     float64 `json:"actual_weight"`
	Length           float64 `json:"length"`
	Breadth          float64 `json:"breadth"`
	Height           float64 `json:"height"`
	DeclaredValue    float64 `json:"declared_value"`
	ItemDescription  string  `json:"item_description"`
	Quantity         int     `json:"quantity"`
}

// ShipmentResponse is the booking response.
type ShipmentResponse struct {
	Success              bool   `json:"success"`
	AWBNumber            string `json:"awb_number,omitempty"`
	OrderNumber          string `json:"order_number"`
	Status               string `json:"status"`
	StatusCode           int    `json:"status_code"`
	CourierPartner       string `json:"courier_partner,omitempty"`
	PickupDate           string `json:"pickup_date,omitempty"`
	ExpectedDeliveryDate string `json:"expected_delivery_date,omitempty"`
	ErrorMessage         string `json:"error_message,omitempty"`
}

// Scan is a single tracking scan.
type Scan struct {
	ScanDateTime string `json:"scan_date_time"`
	ScanType     string `json:"scan_type"`
	ScanStatus   string `json:"scan_status"`
	Location     string `json:"location"`
}

// TrackingResponse is the tracking lookup response.
// GET /api/v1/tracking/{awb_number}
type TrackingResponse struct {
	AWBNumber     string `json:"awb_number"`
	OrderNumber   string `json:"order_number"`
	CurrentStatus string `json:"current_status"`
	StatusCode    int    `json:"status_code"`
	Scans         []Scan `json:"scans,omitempty"`
}

// CancelRequest cancels a consignment.
// POST /api/v1/cancel
type CancelRequest struct {
	AWBNumber   string `json:"awb_number"`
	OrderNumber string `json:"order_number"`
}

// CancelResponse is the cancellation response.
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PickupRequest schedules a warehouse pickup.
// POST /api/v1/pickup/schedule
type PickupRequest struct {
	AWBNumbers     []string `json:"awb_numbers"`
	PickupDate     string   `json:"pickup_date"`      // YYYY-MM-DD
	PickupTimeSlot string   `json:"pickup_time_slot"` // HH:MM-HH:MM
}

// PickupResponse is the pickup scheduling response.
type PickupResponse struct {
	Success     bool   `json:"success"`
	PickupID    string `json:"pickup_id,omitempty"`
	PickupDate  string `json:"pickup_date,omitempty"`
	Message     string `json:"message,omitempty"`
}

// APIError represents an error from the Ecom Express API.
type APIError struct {
	Message    string `json:"error"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}
