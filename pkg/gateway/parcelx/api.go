package parcelx

import "context"

// APIClient defines the operations against the ParcelX API.
// Implementations: HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*CreateShipmentResponse, error)
	Track(ctx context.Context, trackingNumber string) (*TrackingResponse, error)
	CancelShipment(ctx context.Context, trackingNumber string) (*CancelResponse, error)
}

// ShipmentAddress is the address shape shared by pickup and delivery.
type ShipmentAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pincode"`
}

// Package describes one physical package in the shipment.
type Package struct {
	Weight      float64 `json:"weight"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// CreateShipmentRequest is the request body for POST /shipments/create.
type CreateShipmentRequest struct {
	OrderID           string          `json:"order_id"`
	PickupAddress     ShipmentAddress `json:"pickup_address"`
	DeliveryAddress   ShipmentAddress `json:"delivery_address"`
	Packages          []Package       `json:"packages"`
	PaymentType       string          `json:"payment_type"` // "PREPAID" or "COD"
	InsuranceRequired bool            `json:"insurance_required"`
}

// ShippingCharges breaks down the booking cost.
type ShippingCharges struct {
	FreightCharges float64 `json:"freight_charges"`
	CODCharges     float64 `json:"cod_charges"`
	TotalCharges   float64 `json:"total_charges"`
}

// CreateShipmentResponse is the booking response.
type CreateShipmentResponse struct {
	Success         bool            `json:"success"`
	ShipmentID      string          `json:"shipment_id,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	LabelURL        string          `json:"label_url,omitempty"`
	Status          string          `json:"status"`
	CourierPartner  string          `json:"courier_partner,omitempty"`
	ShippingCharges ShippingCharges `json:"shipping_charges"`
	ErrorMessage    string          `json:"error_message,omitempty"`
}

// TrackingEvent is one scan in the tracking history.
type TrackingEvent struct {
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// TrackingResponse is the response for GET /tracking/{trackingNumber}.
type TrackingResponse struct {
	TrackingNumber    string          `json:"tracking_number"`
	CurrentStatus     string          `json:"current_status"`
	EstimatedDelivery string          `json:"estimated_delivery,omitempty"`
	Events            []TrackingEvent `json:"events,omitempty"`
}

// CancelResponse is the response for POST /shipments/{trackingNumber}/cancel.
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// APIError is the error payload returned by the ParcelX API.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}
