package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/server"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/telemetry"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/cashfree"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/mock"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/razorpay"
	"go.uber.org/zap"
)

// Shared across tests: prometheus collectors register globally.
var testMetrics = telemetry.NewMetrics()

const (
	razorpayWebhookSecret = "rzp_whsec"
	cashfreeSecretKey     = "cf_secret"
)

func newTestStore() *order.MemStore {
	store := order.NewMemStore()
	store.Put(&order.Order{
		ID:          "ord-1",
		OrderNumber: "ORD-2024-0020",
		Items:       []order.Item{{ProductID: "p1", Name: "Notebook", Quantity: 1, Price: 450}},
		Total:       450,
		Status:      order.StatusPending,
		PaymentInfo: order.PaymentInfo{Status: order.PaymentPending, Amount: 450},
	})
	return store
}

func newTestHandler(t *testing.T) (http.Handler, *order.MemStore) {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	store := newTestStore()

	registry := gateway.NewRegistry()
	registry.RegisterCarrier(mock.NewCarrier("mockcarrier"))
	registry.RegisterPayment(mock.NewPayment("mockpay"))

	webhooks := map[string]gateway.WebhookSource{
		"razorpay": razorpay.NewWithAPIClient(
			razorpay.Config{WebhookSecret: razorpayWebhookSecret},
			store, razorpay.NewMockAPIClient(), logger, nil,
		),
		"cashfree": cashfree.NewWithAPIClient(
			cashfree.Config{SecretKey: cashfreeSecretKey},
			store, cashfree.NewMockAPIClient(), logger, nil,
		),
	}

	srv := server.NewWithMetrics(server.Config{Port: 8080}, registry, store, webhooks, logger, testMetrics)
	return srv.Handler(), store
}

func postGraphQL(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestServer_Health(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GraphQL_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_GraphQL_InvalidJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("invalid json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_HealthQuery(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, resp := postGraphQL(t, handler, `{"query": "query { health }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", data["health"])
}

func TestServer_GraphQL_Carriers(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, resp := postGraphQL(t, handler, `{"query": "query { carriers }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]interface{})
	carriers, ok := data["carriers"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, carriers, "mockcarrier")
}

func TestServer_GraphQL_CreateShipment(t *testing.T) {
	handler, store := newTestHandler(t)

	body := `{
		"query": "mutation CreateShipment($input: CreateShipmentInput!) { createShipment(input: $input) { success trackingNumber } }",
		"variables": {"input": {"orderId": "ord-1", "carrier": "mockcarrier"}}
	}`
	rec, resp := postGraphQL(t, handler, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]interface{})
	result, ok := data["createShipment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, result["success"])

	updated, err := store.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.NotNil(t, updated)
}

func TestServer_GraphQL_CreateShipment_MissingInput(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, _ := postGraphQL(t, handler, `{"query": "mutation { createShipment }"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_OrderQuery(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{
		"query": "query Order($id: ID!) { order(id: $id) { orderNumber status } }",
		"variables": {"id": "ord-1"}
	}`
	rec, resp := postGraphQL(t, handler, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]interface{})
	result, ok := data["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ORD-2024-0020", result["orderNumber"])
	assert.Equal(t, "PENDING", result["status"])
}

func TestServer_GraphQL_OrderQuery_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{
		"query": "query Order($id: ID!) { order(id: $id) { orderNumber } }",
		"variables": {"id": "missing"}
	}`
	rec, resp := postGraphQL(t, handler, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	errs, ok := resp["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, errs, 1)
}

func TestServer_GraphQL_UnknownOperation(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, _ := postGraphQL(t, handler, `{"query": "query { nonsense }"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
