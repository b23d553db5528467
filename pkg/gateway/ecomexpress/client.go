// Package ecomexpress provides integration with the Ecom Express shipping API.
package ecomexpress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	carrierName = "ecomexpress"

	// displayName is recorded on shippingInfo.carrier.
	displayName = "Ecom Express"

	// pickupTimeSlot is the fixed same-day pickup window.
	pickupTimeSlot = "09:00-18:00"
)

// Config holds Ecom Express configuration.
type Config struct {
	Username  string
	APIKey    string
	BaseURL   string
	Warehouse gateway.Warehouse
	UseMock   bool // When true, uses mock API client
}

// Client is the Ecom Express shipment provider.
// It implements gateway.ShipmentProvider and gateway.PickupScheduler and
// delegates API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	store     order.Store
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer

	// now is overridable for tests; pickup dates are "today".
	now func() time.Time
}

// New creates a new Ecom Express client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, store order.Store, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:  cfg.BaseURL,
			Username: cfg.Username,
			APIKey:   cfg.APIKey,
			Timeout:  30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		store:     store,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// NewWithAPIClient creates a new Ecom Express client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, store order.Store, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		store:     store,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// CreateShipment books a consignment with Ecom Express. On success the
// order gets carrier, waybill number and PROCESSING status; on failure the
// order is left untouched.
func (c *Client) CreateShipment(ctx context.Context, orderID string) (*gateway.ShipmentResult, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Creating Ecom Express shipment",
		zap.String("order_id", orderID),
		zap.String("order_number", o.OrderNumber),
	)

	apiReq := buildShipmentRequest(o, c.config.Warehouse, gateway.BuildParcel(o.Items))

	apiResp, err := c.apiClient.CreateShipment(ctx, apiReq)
	if err != nil {
		c.logger.Error("Ecom Express API error", zap.Error(err))
		return nil, err
	}

	if !apiResp.Success || apiResp.AWBNumber == "" {
		c.logger.Warn("Ecom Express rejected shipment",
			zap.String("order_number", o.OrderNumber),
			zap.String("status", apiResp.Status),
			zap.String("error", apiResp.ErrorMessage),
		)
		return nil, gateway.NewGatewayError(carrierName, "SHIPMENT_REJECTED", apiResp.ErrorMessage).
			WithCause(gateway.ErrProviderRejected)
	}

	carrier := displayName
	status := order.StatusProcessing
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		Status:          &status,
		ShippingCarrier: &carrier,
		TrackingNumber:  &apiResp.AWBNumber,
	}); err != nil {
		return nil, fmt.Errorf("update order after booking: %w", err)
	}

	return &gateway.ShipmentResult{
		Success:        true,
		Carrier:        displayName,
		TrackingNumber: apiResp.AWBNumber,
		RawStatus:      apiResp.Status,
	}, nil
}

// TrackShipment returns the carrier's current status for a waybill number.
// Lookup failures degrade to the unable-to-track sentinel.
func (c *Client) TrackShipment(ctx context.Context, trackingNumber string) (string, error) {
	apiResp, err := c.apiClient.Track(ctx, trackingNumber)
	if err != nil {
		c.logger.Warn("Ecom Express tracking error",
			zap.String("awb", trackingNumber),
			zap.Error(err),
		)
		return gateway.UnableToTrack, nil
	}
	if apiResp.CurrentStatus == "" {
		return gateway.UnableToTrack, nil
	}
	return apiResp.CurrentStatus, nil
}

// CancelShipment cancels the order's consignment. Provider-level failures
// degrade to false; a missing waybill number is a precondition failure.
func (c *Client) CancelShipment(ctx context.Context, orderID string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.ShippingInfo == nil || o.ShippingInfo.TrackingNumber == "" {
		return false, fmt.Errorf("%w: order %s has no tracking number", gateway.ErrPreconditionFailed, o.OrderNumber)
	}

	apiResp, err := c.apiClient.CancelShipment(ctx, &CancelRequest{
		AWBNumber:   o.ShippingInfo.TrackingNumber,
		OrderNumber: o.OrderNumber,
	})
	if err != nil {
		c.logger.Error("Ecom Express cancel error", zap.Error(err))
		return false, nil
	}
	if !apiResp.Success {
		c.logger.Warn("Ecom Express refused cancellation",
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

// SchedulePickup requests a same-day warehouse pickup for the order's
// consignment within the fixed time slot. The order status is unchanged.
func (c *Client) SchedulePickup(ctx context.Context, orderID string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.ShippingInfo == nil || o.ShippingInfo.TrackingNumber == "" {
		return false, fmt.Errorf("%w: order %s has no tracking number", gateway.ErrPreconditionFailed, o.OrderNumber)
	}

	apiResp, err := c.apiClient.SchedulePickup(ctx, &PickupRequest{
		AWBNumbers:     []string{o.ShippingInfo.TrackingNumber},
		PickupDate:     c.now().Format("2006-01-02"),
		PickupTimeSlot: pickupTimeSlot,
	})
	if err != nil {
		c.logger.Error("Ecom Express pickup error", zap.Error(err))
		return false, nil
	}
	return apiResp.Success, nil
}

// buildShipmentRequest maps an order to the Ecom Express consignment shape.
// Pure mapping, no side effects.
func buildShipmentRequest(o *order.Order, warehouse gateway.Warehouse, parcel gateway.Parcel) *ShipmentRequest {
	names := make([]string, len(o.Items))
	for i, it := range o.Items {
		names[i] = it.Name
	}

	paymentMode := "PPD"
	if o.PaymentInfo.Provider == "COD" {
		paymentMode = "COD"
	}

	return &ShipmentRequest{
		OrderNumber: o.OrderNumber,
		ProductName: strings.Join(names, ", "),
		Consignee: Address{
			Name:     o.ShippingAddress.Name,
			Address1: o.ShippingAddress.Street,
			City:     o.ShippingAddress.City,
			State:    o.ShippingAddress.State,
			Country:  o.ShippingAddress.Country,
			PinCode:  o.ShippingAddress.ZipCode,
			Phone:    o.ShippingAddress.Phone,
		},
		PickupLocation: Address{
			Name:     warehouse.Name,
			Address1: warehouse.Street,
			City:     warehouse.City,
			State:    warehouse.State,
			Country:  warehouse.Country,
			PinCode:  warehouse.ZipCode,
			Phone:    warehouse.Phone,
		},
		PaymentMode:     paymentMode,
		ActualWeight:    parcel.Weight,
		Length:          parcel.Length,
		Breadth:         parcel.Width,
		Height:          parcel.Height,
		DeclaredValue:   parcel.DeclaredValue,
		ItemDescription: fmt.Sprintf("Order containing %d items", len(o.Items)),
		Quantity:        parcel.Units,
	}
}

var (
	_ gateway.ShipmentProvider = (*Client)(nil)
	_ gateway.PickupScheduler  = (*Client)(nil)
)
