// Package parcelx provides integration with the ParcelX shipping API.
package parcelx

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
	carrierName = "parcelx"

	// displayName is recorded on shippingInfo.carrier.
	displayName = "ParcelX"
)

// Config holds ParcelX configuration.
type Config struct {
	AccessKey string
	SecretKey string
	BaseURL   string
	Warehouse gateway.Warehouse
	UseMock   bool // When true, uses mock API client
}

// Client is the ParcelX shipment provider.
// It implements the gateway.ShipmentProvider interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	store     order.Store
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new ParcelX client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, store order.Store, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:   cfg.BaseURL,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Timeout:   30 * time.Second,
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

// NewWithAPIClient creates a new ParcelX client with a custom API client.
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

// CreateShipment books a shipment with ParcelX. On success the order gets
// carrier, tracking number, label URL and shipping cost along with the
// PROCESSING status; on any failure the order is left untouched.
func (c *Client) CreateShipment(ctx context.Context, orderID string) (*gateway.ShipmentResult, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Creating ParcelX shipment",
		zap.String("order_id", orderID),
		zap.String("order_number", o.OrderNumber),
	)

	parcel := gateway.BuildParcel(o.Items)
	apiReq := buildShipmentRequest(o, c.config.Warehouse, parcel)

	apiResp, err := c.apiClient.CreateShipment(ctx, apiReq)
	if err != nil {
		c.logger.Error("ParcelX API error", zap.Error(err))
		return nil, err
	}

	if !apiResp.Success || apiResp.TrackingNumber == "" {
		c.logger.Warn("ParcelX rejected shipment",
			zap.String("order_number", o.OrderNumber),
			zap.String("message", apiResp.ErrorMessage),
		)
		return nil, gateway.NewGatewayError(carrierName, "SHIPMENT_REJECTED", apiResp.ErrorMessage).
			WithCause(gateway.ErrProviderRejected)
	}

	carrier := displayName
	status := order.StatusProcessing
	cost := apiResp.ShippingCharges.TotalCharges
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		Status:          &status,
		ShippingCarrier: &carrier,
		TrackingNumber:  &apiResp.TrackingNumber,
		TrackingURL:     &apiResp.LabelURL,
		ShippingCost:    &cost,
	}); err != nil {
		return nil, fmt.Errorf("update order after booking: %w", err)
	}

	return &gateway.ShipmentResult{
		Success:        true,
		Carrier:        displayName,
		TrackingNumber: apiResp.TrackingNumber,
		TrackingURL:    apiResp.LabelURL,
		Cost:           cost,
		RawStatus:      apiResp.Status,
	}, nil
}

// TrackShipment returns the carrier's current status for a tracking number.
// Lookup failures degrade to the unable-to-track sentinel.
func (c *Client) TrackShipment(ctx context.Context, trackingNumber string) (string, error) {
	apiResp, err := c.apiClient.Track(ctx, trackingNumber)
	if err != nil {
		c.logger.Warn("ParcelX tracking error",
			zap.String("tracking_number", trackingNumber),
			zap.Error(err),
		)
		return gateway.UnableToTrack, nil
	}
	if apiResp.CurrentStatus == "" {
		return gateway.UnableToTrack, nil
	}
	return apiResp.CurrentStatus, nil
}

// CancelShipment cancels the order's shipment. Provider-level failures
// degrade to false; a missing tracking number is a precondition failure.
func (c *Client) CancelShipment(ctx context.Context, orderID string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.ShippingInfo == nil || o.ShippingInfo.TrackingNumber == "" {
		return false, fmt.Errorf("%w: order %s has no tracking number", gateway.ErrPreconditionFailed, o.OrderNumber)
	}

	apiResp, err := c.apiClient.CancelShipment(ctx, o.ShippingInfo.TrackingNumber)
	if err != nil {
		c.logger.Error("ParcelX cancel error", zap.Error(err))
		return false, nil
	}
	if !apiResp.Success {
		c.logger.Warn("ParcelX refused cancellation",
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

// buildShipmentRequest maps an order to the ParcelX shipment shape.
// The whole order ships as one package. Pure mapping, no side effects.
func buildShipmentRequest(o *order.Order, wh gateway.Warehouse, parcel gateway.Parcel) *CreateShipmentRequest {
	names := make([]string, len(o.Items))
	for i, it := range o.Items {
		names[i] = it.Name
	}

	paymentType := "PREPAID"
	if o.PaymentInfo.Provider == "COD" {
		paymentType = "COD"
	}

	return &CreateShipmentRequest{
		OrderID: o.OrderNumber,
		PickupAddress: ShipmentAddress{
			Name:    wh.Name,
			Phone:   wh.Phone,
			Address: wh.Street,
			City:    wh.City,
			State:   wh.State,
			Country: wh.Country,
			PinCode: wh.ZipCode,
		},
		DeliveryAddress: ShipmentAddress{
			Name:    o.ShippingAddress.Name,
			Phone:   o.ShippingAddress.Phone,
			Address: o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			Country: o.ShippingAddress.Country,
			PinCode: o.ShippingAddress.ZipCode,
		},
		Packages: []Package{{
			Weight:      parcel.Weight,
			Length:      parcel.Length,
			Width:       parcel.Width,
			Height:      parcel.Height,
			Value:       parcel.DeclaredValue,
			Description: strings.Join(names, ", "),
			Quantity:    parcel.Units,
		}},
		PaymentType:       paymentType,
		InsuranceRequired: false,
	}
}

var _ gateway.ShipmentProvider = (*Client)(nil)
