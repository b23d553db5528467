// Package shiprocket provides integration with the Shiprocket shipping API.
package shiprocket

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	carrierName = "shiprocket"

	// displayName is recorded on shippingInfo.carrier.
	displayName = "Shiprocket"
)

// Config holds Shiprocket configuration.
type Config struct {
	Email          string
	Password       string
	BaseURL        string
	PickupLocation string // registered pickup location nickname
	UseMock        bool   // When true, uses mock API client
}

// Client is the Shiprocket shipment provider.
// It implements the gateway.ShipmentProvider interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	store     order.Store
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Shiprocket client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, store order.Store, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:  cfg.BaseURL,
			Email:    cfg.Email,
			Password: cfg.Password,
			Timeout:  30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		store:     store,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Shiprocket client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, store order.Store, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		store:     store,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// CreateShipment books a consignment with Shiprocket. The booking is two
// calls: create the adhoc order, then assign a courier and waybill number.
// On success the order gets carrier, tracking number and PROCESSING status;
// on any failure the order is left untouched.
func (c *Client) CreateShipment(ctx context.Context, orderID string) (*gateway.ShipmentResult, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Creating Shiprocket shipment",
		zap.String("order_id", orderID),
		zap.String("order_number", o.OrderNumber),
	)

	parcel := gateway.BuildParcel(o.Items)
	apiReq := buildOrderRequest(o, c.config.PickupLocation, parcel)

	apiResp, err := c.apiClient.CreateOrder(ctx, apiReq)
	if err != nil {
		c.logger.Error("Shiprocket API error", zap.Error(err))
		return nil, err
	}

	if apiResp.StatusCode != 1 {
		c.logger.Warn("Shiprocket rejected order",
			zap.String("order_number", o.OrderNumber),
			zap.String("status", apiResp.Status),
		)
		return nil, gateway.NewGatewayError(carrierName, "ORDER_REJECTED", apiResp.Status).
			WithCause(gateway.ErrProviderRejected)
	}

	awbResp, err := c.apiClient.AssignAWB(ctx, &AssignAWBRequest{
		ShipmentID: apiResp.ShipmentID,
		CourierID:  apiResp.CourierCompanyID,
	})
	if err != nil {
		c.logger.Error("Shiprocket AWB assignment error", zap.Error(err))
		return nil, err
	}

	carrier := displayName
	status := order.StatusProcessing
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		Status:          &status,
		ShippingCarrier: &carrier,
		TrackingNumber:  &awbResp.AWBCode,
	}); err != nil {
		return nil, fmt.Errorf("update order after booking: %w", err)
	}

	return &gateway.ShipmentResult{
		Success:        true,
		Carrier:        displayName,
		TrackingNumber: awbResp.AWBCode,
		RawStatus:      apiResp.Status,
	}, nil
}

// TrackShipment returns the carrier's current status for a waybill number.
// Lookup failures degrade to the unable-to-track sentinel.
func (c *Client) TrackShipment(ctx context.Context, trackingNumber string) (string, error) {
	apiResp, err := c.apiClient.Track(ctx, trackingNumber)
	if err != nil {
		c.logger.Warn("Shiprocket tracking error",
			zap.String("awb", trackingNumber),
			zap.Error(err),
		)
		return gateway.UnableToTrack, nil
	}
	if apiResp.TrackingData.CurrentStatus == "" {
		return gateway.UnableToTrack, nil
	}
	return apiResp.TrackingData.CurrentStatus, nil
}

// CancelShipment cancels the order's consignment. Provider-level failures
// degrade to false; a missing tracking number is a precondition failure.
func (c *Client) CancelShipment(ctx context.Context, orderID string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.ShippingInfo == nil || o.ShippingInfo.TrackingNumber == "" {
		return false, fmt.Errorf("%w: order %s has no tracking number", gateway.ErrPreconditionFailed, o.OrderNumber)
	}

	apiResp, err := c.apiClient.CancelOrders(ctx, &CancelRequest{IDs: []string{o.OrderNumber}})
	if err != nil {
		c.logger.Error("Shiprocket cancel error", zap.Error(err))
		return false, nil
	}
	if !apiResp.Success {
		c.logger.Warn("Shiprocket refused cancellation",
			zap.String("order_number", o.OrderNumber),
			zap.String("message", apiResp.Message),
		)
		return false, nil
	}

	status := order.StatusCancelled
	if _, err := c.store.Patch(ctx, orderID, order.Patch{Status: &status}); err != nil {
		return false, fmt.Errorf("update order after cancellation: %w", err)
	}
	return true, nil
}

// GenerateLabel generates the shipping label for a shipment and returns its URL.
func (c *Client) GenerateLabel(ctx context.Context, shipmentID int64) (string, error) {
	apiResp, err := c.apiClient.GenerateLabel(ctx, &GenerateLabelRequest{ShipmentID: []int64{shipmentID}})
	if err != nil {
		c.logger.Error("Shiprocket label error", zap.Error(err))
		return "", err
	}
	return apiResp.LabelURL, nil
}

// GenerateManifest generates the pickup manifest for a shipment and returns its URL.
func (c *Client) GenerateManifest(ctx context.Context, shipmentID int64) (string, error) {
	apiResp, err := c.apiClient.GenerateManifest(ctx, &GenerateManifestRequest{ShipmentID: []int64{shipmentID}})
	if err != nil {
		c.logger.Error("Shiprocket manifest error", zap.Error(err))
		return "", err
	}
	return apiResp.ManifestURL, nil
}

// buildOrderRequest maps an order to the Shiprocket adhoc order shape.
// Pure mapping, no side effects.
func buildOrderRequest(o *order.Order, pickupLocation string, parcel gateway.Parcel) *CreateOrderRequest {
	if pickupLocation == "" {
		pickupLocation = "Primary"
	}

	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItem{
			Name:         it.Name,
			SKU:          it.SKU,
			Units:        it.Quantity,
			SellingPrice: it.Price,
			HSN:          it.HSN,
		}
	}

	paymentMethod := "Prepaid"
	if o.PaymentInfo.Provider == "COD" {
		paymentMethod = "COD"
	}

	return &CreateOrderRequest{
		OrderID:             o.OrderNumber,
		OrderDate:           o.CreatedAt.Format("2006-01-02"),
		PickupLocation:      pickupLocation,
		BillingCustomerName: o.ShippingAddress.Name,
		BillingAddress:      o.ShippingAddress.Street,
		BillingCity:         o.ShippingAddress.City,
		BillingState:        o.ShippingAddress.State,
		BillingCountry:      o.ShippingAddress.Country,
		BillingPincode:      o.ShippingAddress.ZipCode,
		BillingPhone:        o.ShippingAddress.Phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       paymentMethod,
		SubTotal:            o.Subtotal,
		Length:              parcel.Length,
		Breadth:             parcel.Width,
		Height:              parcel.Height,
		Weight:              parcel.Weight,
	}
}

var _ gateway.ShipmentProvider = (*Client)(nil)
