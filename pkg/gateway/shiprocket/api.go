package shiprocket

import (
	"context"
)

// APIClient defines the interface for Shiprocket API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// CreateOrder creates an adhoc channel order
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)

	// AssignAWB assigns a courier and waybill number to a shipment
	AssignAWB(ctx context.Context, req *AssignAWBRequest) (*AssignAWBResponse, error)

	// Track retrieves tracking information for a waybill number
	Track(ctx context.Context, awbCode string) (*TrackingResponse, error)

	// CancelOrders cancels orders by their channel order ids
	CancelOrders(ctx context.Context, req *CancelRequest) (*CancelResponse, error)

	// GenerateLabel generates the shipping label for shipments
	GenerateLabel(ctx context.Context, req *GenerateLabelRequest) (*LabelResponse, error)

	// GenerateManifest generates the pickup manifest for shipments
	GenerateManifest(ctx context.Context, req *GenerateManifestRequest) (*ManifestResponse, error)
}

// ============================================================================
// API Request/Response Types (match Shiprocket external API v1 structure)
// ============================================================================

// AuthRequest is the login request.
// POST /auth/login
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the login response carrying the bearer token.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// OrderItem is a line item on an adhoc order.
type OrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
	HSN          string  `json:"hsn,omitempty"`
}

// CreateOrderRequest is an adhoc channel order.
// POST /orders/create/adhoc
type CreateOrderRequest struct {
	OrderID             string      `json:"order_id"`
	OrderDate           string      `json:"order_date"` // YYYY-MM-DD
	PickupLocation      string      `json:"pickup_location"`
	BillingCustomerName string      `json:"billing_customer_name"`
	BillingLastName     string      `json:"billing_last_name"`
	BillingAddress      string      `json:"billing_address"`
	BillingCity         string      `json:"billing_city"`
	BillingState        string      `json:"billing_state"`
	BillingCountry      string      `json:"billing_country"`
	BillingPincode      string      `json:"billing_pincode"`
	BillingEmail        string      `json:"billing_email"`
	BillingPhone        string      `json:"billing_phone"`
	ShippingIsBilling   bool        `json:"shipping_is_billing"`
	OrderItems          []OrderItem `json:"order_items"`
	PaymentMethod       string      `json:"payment_method"` // "COD" or "Prepaid"
	SubTotal            float64     `json:"sub_total"`
	Length              float64     `json:"length"`
	Breadth             float64     `json:"breadth"`
	Height              float64     `json:"height"`
	Weight              float64     `json:"weight"`
}

// CreateOrderResponse is the adhoc order creation response.
type CreateOrderResponse struct {
	OrderID          int64  `json:"order_id"`
	ShipmentID       int64  `json:"shipment_id"`
	Status           string `json:"status"`
	StatusCode       int    `json:"status_code"` // 1 = created
	CourierCompanyID int64  `json:"courier_company_id,omitempty"`
	CourierName      string `json:"courier_name,omitempty"`
	AWBCode          string `json:"awb_code,omitempty"`
	OrderStatus      string `json:"order_status,omitempty"`
	LabelURL         string `json:"label_url,omitempty"`
	ManifestURL      string `json:"manifest_url,omitempty"`
}

// AssignAWBRequest assigns a courier to a shipment.
// POST /courier/assign/awb
type AssignAWBRequest struct {
	ShipmentID int64 `json:"shipment_id"`
	CourierID  int64 `json:"courier_id,omitempty"`
}

// AssignAWBResponse carries the assigned waybill number.
type AssignAWBResponse struct {
	AWBCode     string `json:"awb_code"`
	CourierName string `json:"courier_name,omitempty"`
}

// TrackingActivity is a single scan event.
type TrackingActivity struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Activity string `json:"activity"`
	Location string `json:"location"`
}

// TrackingResponse is the tracking lookup response.
// GET /courier/track/awb/{awb_code}
type TrackingResponse struct {
	TrackingData struct {
		TrackStatus   int                `json:"track_status"`
		CurrentStatus string             `json:"current_status"`
		Activities    []TrackingActivity `json:"shipment_track_activities,omitempty"`
	} `json:"tracking_data"`
}

// CancelRequest cancels orders by channel order id.
// POST /orders/cancel
type CancelRequest struct {
	IDs []string `json:"ids"`
}

// CancelResponse is the cancellation response.
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// GenerateLabelRequest generates labels for shipments.
// POST /courier/generate/label
type GenerateLabelRequest struct {
	ShipmentID []int64 `json:"shipment_id"`
}

// LabelResponse carries the generated label URL.
type LabelResponse struct {
	LabelCreated int    `json:"label_created"`
	LabelURL     string `json:"label_url"`
}

// GenerateManifestRequest generates the pickup manifest.
// POST /manifests/generate
type GenerateManifestRequest struct {
	ShipmentID []int64 `json:"shipment_id"`
}

// ManifestResponse carries the generated manifest URL.
type ManifestResponse struct {
	Status      int    `json:"status"`
	ManifestURL string `json:"manifest_url"`
}

// APIError represents an error from the Shiprocket API.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}
