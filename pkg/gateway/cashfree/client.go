// Package cashfree provides integration with the Cashfree payment API.
package cashfree

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const providerName = "cashfree"

const currency = "INR"

// Config holds Cashfree configuration.
type Config struct {
	AppID     string
	SecretKey string
	BaseURL   string
	ReturnURL string
	NotifyURL string
	UseMock   bool // When true, uses mock API client
}

// Client is the Cashfree payment provider.
// It implements the gateway.PaymentProvider and gateway.WebhookSource
// interfaces and delegates API calls to the underlying APIClient.
type Client struct {
	config    Config
	store     order.Store
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Cashfree client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, store order.Store, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:   cfg.BaseURL,
			AppID:     cfg.AppID,
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

// NewWithAPIClient creates a new Cashfree client with a custom API client.
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

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// CreatePaymentOrder registers the order with Cashfree for checkout.
// Cashfree keys checkout orders by our order number; the cf order id is
// recorded as the payment transaction id.
func (c *Client) CreatePaymentOrder(ctx context.Context, orderID string) (*gateway.PaymentOrder, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Creating Cashfree order",
		zap.String("order_id", orderID),
		zap.String("order_number", o.OrderNumber),
	)

	apiResp, err := c.apiClient.CreateOrder(ctx, &CreateOrderRequest{
		OrderID:       o.OrderNumber,
		OrderAmount:   o.Total,
		OrderCurrency: currency,
		CustomerDetails: CustomerDetails{
			CustomerID:    o.ID,
			CustomerPhone: o.ShippingAddress.Phone,
		},
		OrderMeta: OrderMeta{
			ReturnURL: c.config.ReturnURL,
			NotifyURL: c.config.NotifyURL,
		},
	})
	if err != nil {
		c.logger.Error("Cashfree API error", zap.Error(err))
		return nil, err
	}

	provider := providerName
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		PaymentProvider:      &provider,
		PaymentTransactionID: &apiResp.CFOrderID,
	}); err != nil {
		return nil, fmt.Errorf("update order after provider registration: %w", err)
	}

	return &gateway.PaymentOrder{
		Provider:        providerName,
		ProviderOrderID: apiResp.CFOrderID,
		PaymentLink:     apiResp.PaymentLink,
		Amount:          o.Total,
		Currency:        currency,
	}, nil
}

// VerifyPayment polls the checkout status for the order number. A PAID
// status marks the payment COMPLETED and records the capture reference id;
// any other status returns false without mutating the order.
func (c *Client) VerifyPayment(ctx context.Context, orderID, providerPaymentID, signature string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	apiResp, err := c.apiClient.GetOrderStatus(ctx, o.OrderNumber)
	if err != nil {
		c.logger.Error("Cashfree status error", zap.Error(err))
		return false, err
	}

	if apiResp.OrderStatus != "PAID" {
		c.logger.Info("Cashfree order not paid yet",
			zap.String("order_number", o.OrderNumber),
			zap.String("order_status", apiResp.OrderStatus),
		)
		return false, nil
	}

	status := order.PaymentCompleted
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		PaymentStatus:        &status,
		PaymentTransactionID: &apiResp.ReferenceID,
	}); err != nil {
		return false, fmt.Errorf("update order after verification: %w", err)
	}
	return true, nil
}

// RefundPayment opens a refund for the order, fully or for the given partial
// amount, and marks the payment REFUNDED when the provider reports SUCCESS.
func (c *Client) RefundPayment(ctx context.Context, orderID string, amount *float64, note string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	refundAmount := o.Total
	if amount != nil {
		refundAmount = *amount
	}
	if note == "" {
		note = "Customer requested refund"
	}

	apiResp, err := c.apiClient.CreateRefund(ctx, o.OrderNumber, &RefundRequest{
		RefundAmount: refundAmount,
		RefundNote:   note,
	})
	if err != nil {
		c.logger.Error("Cashfree refund error", zap.Error(err))
		return false, err
	}
	if apiResp.Status != "SUCCESS" {
		c.logger.Warn("Cashfree refund not settled",
			zap.String("order_number", o.OrderNumber),
			zap.String("refund_status", apiResp.Status),
		)
		return false, nil
	}

	status := order.PaymentRefunded
	if _, err := c.store.Patch(ctx, orderID, order.Patch{PaymentStatus: &status}); err != nil {
		return false, fmt.Errorf("update order after refund: %w", err)
	}
	return true, nil
}

// GetPaymentDetails fetches the checkout status for the order.
func (c *Client) GetPaymentDetails(ctx context.Context, orderID string) (*OrderStatusResponse, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return c.apiClient.GetOrderStatus(ctx, o.OrderNumber)
}

// VerifyWebhookSignature checks the x-webhook-signature header value, a
// base64 HMAC-SHA256 of the raw body under the secret key.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.config.SecretKey))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook applies a checkout status callback. Webhooks identify the
// order by order number. PAID completes the payment and confirms the order;
// FAILED fails the payment and cancels the order; anything else is ignored.
func (c *Client) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !c.VerifyWebhookSignature(body, signature) {
		return fmt.Errorf("%w: cashfree webhook", gateway.ErrInvalidSignature)
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	switch payload.OrderStatus {
	case "PAID":
		paymentStatus := order.PaymentCompleted
		orderStatus := order.StatusConfirmed
		if _, err := c.store.PatchByNumber(ctx, payload.OrderID, order.Patch{
			PaymentStatus:        &paymentStatus,
			PaymentTransactionID: &payload.ReferenceID,
			Status:               &orderStatus,
		}); err != nil {
			return fmt.Errorf("apply paid webhook: %w", err)
		}
	case "FAILED":
		paymentStatus := order.PaymentFailed
		orderStatus := order.StatusCancelled
		if _, err := c.store.PatchByNumber(ctx, payload.OrderID, order.Patch{
			PaymentStatus: &paymentStatus,
			Status:        &orderStatus,
		}); err != nil {
			return fmt.Errorf("apply failed webhook: %w", err)
		}
	default:
		c.logger.Info("Ignoring Cashfree webhook status",
			zap.String("order_number", payload.OrderID),
			zap.String("order_status", payload.OrderStatus),
		)
	}
	return nil
}

var (
	_ gateway.PaymentProvider = (*Client)(nil)
	_ gateway.WebhookSource   = (*Client)(nil)
)
