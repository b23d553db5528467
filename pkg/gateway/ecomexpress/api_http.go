package ecomexpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/auth"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
// Requests are authenticated with per-call HMAC-signed headers; the
// timestamp is part of the signed payload so nothing is cached.
type HTTPAPIClient struct {
	baseURL    string
	signer     *auth.HMACSigner
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL  string
	Username string
	APIKey   string
	Timeout  time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL: cfg.BaseURL,
		signer: &auth.HMACSigner{
			Username: cfg.Username,
			APIKey:   cfg.APIKey,
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateShipment books a consignment via the Ecom Express API.
func (c *HTTPAPIClient) CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResponse, error) {
	var result ShipmentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/shipments", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Track retrieves tracking information for a waybill number.
func (c *HTTPAPIClient) Track(ctx context.Context, awbNumber string) (*TrackingResponse, error) {
	var result TrackingResponse
	path := fmt.Sprintf("/api/v1/tracking/%s", awbNumber)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelShipment cancels a booked consignment.
func (c *HTTPAPIClient) CancelShipment(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	var result CancelResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/cancel", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SchedulePickup requests a warehouse pickup.
func (c *HTTPAPIClient) SchedulePickup(ctx context.Context, req *PickupRequest) (*PickupResponse, error) {
	var result PickupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/pickup/schedule", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON performs a signed JSON request and decodes the response.
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
	for k, v := range c.signer.Headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gateway.NewGatewayError(carrierName, "NETWORK_ERROR", "request failed").
			WithCause(fmt.Errorf("%w: %v", gateway.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return gateway.NewGatewayError(carrierName, fmt.Sprintf("HTTP_%d", resp.StatusCode), "signature rejected").
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
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	return gateway.NewGatewayError(carrierName, fmt.Sprintf("HTTP_%d", resp.StatusCode), msg).
		WithStatusCode(resp.StatusCode).
		WithCause(kind)
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
