package parcelx

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
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/auth"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
// ParcelX uses a static credential pair sent on every call in the
// access-token header.
type HTTPAPIClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL   string
	AccessKey string
	SecretKey string
	Timeout   time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL:     cfg.BaseURL,
		accessToken: auth.StaticToken(cfg.AccessKey, cfg.SecretKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateShipment books a shipment with ParcelX.
func (c *HTTPAPIClient) CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*CreateShipmentResponse, error) {
	var result CreateShipmentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/shipments/create", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Track retrieves tracking information for a tracking number.
func (c *HTTPAPIClient) Track(ctx context.Context, trackingNumber string) (*TrackingResponse, error) {
	var result TrackingResponse
	path := "/tracking/" + url.PathEscape(trackingNumber)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelShipment cancels a shipment by tracking number.
func (c *HTTPAPIClient) CancelShipment(ctx context.Context, trackingNumber string) (*CancelResponse, error) {
	var result CancelResponse
	path := fmt.Sprintf("/shipments/%s/cancel", url.PathEscape(trackingNumber))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
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
	req.Header.Set("access-token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gateway.NewGatewayError(carrierName, "NETWORK_ERROR", "request failed").
			WithCause(fmt.Errorf("%w: %v", gateway.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return gateway.NewGatewayError(carrierName, fmt.Sprintf("HTTP_%d", resp.StatusCode), "access token rejected").
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
