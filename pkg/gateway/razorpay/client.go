// Package razorpay provides integration with the Razorpay payment API.
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const providerName = "razorpay"

const currency = "INR"

// Config holds Razorpay configuration.
type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string
	UseMock       bool // When true, uses mock API client
}

// Client is the Razorpay payment provider.
// It implements the gateway.PaymentProvider and gateway.WebhookSource
// interfaces and delegates API calls to the underlying APIClient.
type Client struct {
	config    Config
	store     order.Store
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Razorpay client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, store order.Store, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:   cfg.BaseURL,
			KeyID:     cfg.KeyID,
			KeySecret: cfg.KeySecret,
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

// NewWithAPIClient creates a new Razorpay client with a custom API client.
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

// toPaise converts a major-unit amount to paise, rounding half up.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePaymentOrder registers the order with Razorpay for checkout.
// The provider order id is recorded as the payment transaction id so that
// VerifyPayment can recompute the checkout signature later.
func (c *Client) CreatePaymentOrder(ctx context.Context, orderID string) (*gateway.PaymentOrder, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Creating Razorpay order",
		zap.String("order_id", orderID),
		zap.String("order_number", o.OrderNumber),
	)

	apiResp, err := c.apiClient.CreateOrder(ctx, &CreateOrderRequest{
		Amount:   toPaise(o.Total),
		Currency: currency,
		Receipt:  o.OrderNumber,
		Notes:    map[string]string{"order_id": o.ID},
	})
	if err != nil {
		c.logger.Error("Razorpay API error", zap.Error(err))
		return nil, err
	}

	provider := providerName
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		PaymentProvider:      &provider,
		PaymentTransactionID: &apiResp.ID,
	}); err != nil {
		return nil, fmt.Errorf("update order after provider registration: %w", err)
	}

	return &gateway.PaymentOrder{
		Provider:        providerName,
		ProviderOrderID: apiResp.ID,
		Amount:          o.Total,
		Currency:        currency,
	}, nil
}

// VerifyPayment recomputes the checkout signature over
// "{providerOrderID}|{paymentID}" and compares it in constant time. A match
// marks the payment COMPLETED and swaps the transaction id to the payment id;
// a mismatch leaves the order untouched.
func (c *Client) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.PaymentInfo.TransactionID == "" {
		return false, fmt.Errorf("%w: order %s has no payment order", gateway.ErrPreconditionFailed, o.OrderNumber)
	}

	expected := checkoutSignature(c.config.KeySecret, o.PaymentInfo.TransactionID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		c.logger.Warn("Razorpay signature mismatch",
			zap.String("order_number", o.OrderNumber),
			zap.String("payment_id", paymentID),
		)
		return false, nil
	}

	status := order.PaymentCompleted
	if _, err := c.store.Patch(ctx, orderID, order.Patch{
		PaymentStatus:        &status,
		PaymentTransactionID: &paymentID,
	}); err != nil {
		return false, fmt.Errorf("update order after verification: %w", err)
	}
	return true, nil
}

// RefundPayment refunds the captured payment, fully or for the given partial
// amount, and marks the payment REFUNDED.
func (c *Client) RefundPayment(ctx context.Context, orderID string, amount *float64, note string) (bool, error) {
	o, err := c.store.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.PaymentInfo.TransactionID == "" {
		return false, fmt.Errorf("%w: order %s has no payment to refund", gateway.ErrPreconditionFailed, o.OrderNumber)
	}

	apiReq := &RefundRequest{}
	if amount != nil {
		apiReq.Amount = toPaise(*amount)
	}
	if note != "" {
		apiReq.Notes = map[string]string{"reason": note}
	}

	if _, err := c.apiClient.Refund(ctx, o.PaymentInfo.TransactionID, apiReq); err != nil {
		c.logger.Error("Razorpay refund error", zap.Error(err))
		return false, err
	}

	status := order.PaymentRefunded
	if _, err := c.store.Patch(ctx, orderID, order.Patch{PaymentStatus: &status}); err != nil {
		return false, fmt.Errorf("update order after refund: %w", err)
	}
	return true, nil
}

// GetPaymentDetails fetches the payment entity from Razorpay.
func (c *Client) GetPaymentDetails(ctx context.Context, paymentID string) (*PaymentEntity, error) {
	return c.apiClient.FetchPayment(ctx, paymentID)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header value, a hex
// HMAC-SHA256 of the raw body under the webhook secret.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.config.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook applies a payment event callback. payment.captured completes
// the payment and confirms the order; payment.failed fails the payment and
// cancels the order; any other event is ignored.
func (c *Client) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !c.VerifyWebhookSignature(body, signature) {
		return fmt.Errorf("%w: razorpay webhook", gateway.ErrInvalidSignature)
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	payment := event.Payload.Payment.Entity
	orderID := payment.Notes["order_id"]
	if orderID == "" {
		c.logger.Warn("Razorpay webhook without order reference",
			zap.String("event", event.Event),
			zap.String("payment_id", payment.ID),
		)
		return nil
	}

	switch event.Event {
	case "payment.captured":
		paymentStatus := order.PaymentCompleted
		orderStatus := order.StatusConfirmed
		if _, err := c.store.Patch(ctx, orderID, order.Patch{
			PaymentStatus:        &paymentStatus,
			PaymentTransactionID: &payment.ID,
			Status:               &orderStatus,
		}); err != nil {
			return fmt.Errorf("apply captured payment: %w", err)
		}
	case "payment.failed":
		paymentStatus := order.PaymentFailed
		orderStatus := order.StatusCancelled
		if _, err := c.store.Patch(ctx, orderID, order.Patch{
			PaymentStatus: &paymentStatus,
			Status:        &orderStatus,
		}); err != nil {
			return fmt.Errorf("apply failed payment: %w", err)
		}
	default:
		c.logger.Info("Ignoring Razorpay webhook event", zap.String("event", event.Event))
	}
	return nil
}

// checkoutSignature computes the hex HMAC-SHA256 Razorpay signs checkout
// completions with.
func checkoutSignature(secret, providerOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

var (
	_ gateway.PaymentProvider = (*Client)(nil)
	_ gateway.WebhookSource   = (*Client)(nil)
)
