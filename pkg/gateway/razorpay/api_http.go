package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
// Razorpay authenticates every call with basic auth over the key pair.
type HTTPAPIClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder registers an order with Razorpay.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	var result OrderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/orders", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchPayment retrieves a payment by its id.
func (c *HTTPAPIClient) FetchPayment(ctx context.Context, paymentID string) (*PaymentEntity, error) {
	var result PaymentEntity
	path := "/v1/payments/" + url.PathEscape(paymentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Refund refunds a payment, fully or partially.
func (c *HTTPAPIClient) Refund(ctx context.Context, paymentID string, req *RefundRequest) (*RefundResponse, error) {
	var result RefundResponse
	path := fmt.Sprintf("/v1/payments/%s/refund", url.PathEscape(paymentID))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON performs an authenticated JSON request and decodes the response.
func (c *HTTPAPIClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gateway.NewGatewayError(providerName, "NETWORK_ERROR", "request failed").
			WithCause(fmt.Errorf("%w: %v", gateway.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return gateway.NewGatewayError(providerName, fmt.Sprintf("HTTP_%d", resp.StatusCode), "key pair rejected").
			WithStatusCode(resp.StatusCode).
			WithCause(gateway.ErrAuthenticationFailed)
	}
	if resp.StatusCode >= 500 {
		return c.parseError(resp, gateway.ErrProviderUnavailable)
	}
	if resp.StatusCode >= 400 {
		return c.parseError(resp, gateway.ErrProviderRejected)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseError extracts error information from an HTTP response.
func (c *HTTPAPIClient) parseError(resp *http.Response, kind error) error {
	raw, _ := io.ReadAll(resp.Body)

	msg := string(raw)
	var apiErr APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Detail.Description != "" {
		msg = apiErr.Detail.Description
	}

	return gateway.NewGatewayError(providerName, fmt.Sprintf("HTTP_%d", resp.StatusCode), msg).
		WithStatusCode(resp.StatusCode).
		WithCause(kind)
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
