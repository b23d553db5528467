package shiprocket

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
// Every call carries a bearer token obtained from /auth/login and cached
// until its expiry.
type HTTPAPIClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     *auth.TokenSource
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &HTTPAPIClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	c.tokens = auth.NewTokenSource(func(ctx context.Context) (string, int, error) {
		return c.login(ctx, cfg.Email, cfg.Password)
	})
	return c
}

// login authenticates with account credentials and returns a fresh token
// plus its validity in seconds.
func (c *HTTPAPIClient) login(ctx context.Context, email, password string) (string, int, error) {
	body, err := json.Marshal(AuthRequest{Email: email, Password: password})
	if err != nil {
		return "", 0, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", 0, fmt.Errorf("login returned %d: %s", resp.StatusCode, raw)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", 0, fmt.Errorf("decode login response: %w", err)
	}
	return authResp.Token, authResp.ExpiresIn, nil
}

// CreateOrder creates an adhoc order via the Shiprocket API.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	var result CreateOrderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/orders/create/adhoc", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AssignAWB assigns a courier and waybill number to a shipment.
func (c *HTTPAPIClient) AssignAWB(ctx context.Context, req *AssignAWBRequest) (*AssignAWBResponse, error) {
	var result AssignAWBResponse
	if err := c.doJSON(ctx, http.MethodPost, "/courier/assign/awb", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Track retrieves tracking information for a waybill number.
func (c *HTTPAPIClient) Track(ctx context.Context, awbCode string) (*TrackingResponse, error) {
	var result TrackingResponse
	path := fmt.Sprintf("/courier/track/awb/%s", awbCode)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelOrders cancels orders by channel order id.
func (c *HTTPAPIClient) CancelOrders(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	var result CancelResponse
	if err := c.doJSON(ctx, http.MethodPost, "/orders/cancel", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateLabel generates shipping labels for shipments.
func (c *HTTPAPIClient) GenerateLabel(ctx context.Context, req *GenerateLabelRequest) (*LabelResponse, error) {
	var result LabelResponse
	if err := c.doJSON(ctx, http.MethodPost, "/courier/generate/label", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateManifest generates the pickup manifest for shipments.
func (c *HTTPAPIClient) GenerateManifest(ctx context.Context, req *GenerateManifestRequest) (*ManifestResponse, error) {
	var result ManifestResponse
	if err := c.doJSON(ctx, http.MethodPost, "/manifests/generate", req, &result); err != nil {
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

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gateway.NewGatewayError(carrierName, "NETWORK_ERROR", "request failed").
			WithCause(fmt.Errorf("%w: %v", gateway.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.tokens.Invalidate()
		return gateway.NewGatewayError(carrierName, fmt.Sprintf("HTTP_%d", resp.StatusCode), "authentication rejected").
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
