package cashfree_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/cashfree"
	"go.uber.org/zap"
)

const testSecretKey = "test_secret_key"

func newTestClient(store order.Store, mockClient *cashfree.MockAPIClient) *cashfree.Client {
	logger := otelzap.New(zap.NewNop())
	return cashfree.NewWithAPIClient(
		cashfree.Config{
			AppID:     "test_app",
			SecretKey: testSecretKey,
			ReturnURL: "https://shop.example.com/payment/callback",
			NotifyURL: "https://api.example.com/webhooks/cashfree",
		},
		store,
		mockClient,
		logger,
		nil,
	)
}

func seedStore() *order.MemStore {
	store := order.NewMemStore()
	store.Put(&order.Order{
		ID:          "ord-1",
		OrderNumber: "ORD-2024-0005",
		Items: []order.Item{
			{ProductID: "p1", Name: "Backpack", Quantity: 1, Price: 2499},
		},
		Subtotal: 2499,
		Total:    2499,
		Status:   order.StatusPending,
		ShippingAddress: order.ShippingAddress{
			Name: "Divya Nair", Street: "9 Marine Dr", City: "Kochi",
			State: "KL", Country: "India", ZipCode: "682031", Phone: "9800000005",
		},
		PaymentInfo: order.PaymentInfo{Status: order.PaymentPending, Amount: 2499},
	})
	return store
}

func base64Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestClient_CreatePaymentOrder_Success(t *testing.T) {
	store := seedStore()
	mockAPI := cashfree.NewMockAPIClient()

	var captured *cashfree.CreateOrderRequest
	mockAPI.OnCreateOrder = func(ctx context.Context, req *cashfree.CreateOrderRequest) (*cashfree.CreateOrderResponse, error) {
		captured = req
		return &cashfree.CreateOrderResponse{
			CFOrderID:   "cf_123",
			OrderID:     req.OrderID,
			OrderAmount: req.OrderAmount,
			OrderStatus: "ACTIVE",
			PaymentLink: "https://payments.cashfree.example.com/order/cf_123",
		}, nil
	}
	client := newTestClient(store, mockAPI)

	result, err := client.CreatePaymentOrder(context.Background(), "ord-1")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "ORD-2024-0005", captured.OrderID)
	assert.Equal(t, 2499.0, captured.OrderAmount)
	assert.Equal(t, "INR", captured.OrderCurrency)
	assert.Equal(t, "9800000005", captured.CustomerDetails.CustomerPhone)
	assert.Equal(t, "https://shop.example.com/payment/callback", captured.OrderMeta.ReturnURL)
	assert.Equal(t, "https://api.example.com/webhooks/cashfree", captured.OrderMeta.NotifyURL)

	assert.Equal(t, "cashfree", result.Provider)
	assert.Equal(t, "cf_123", result.ProviderOrderID)
	assert.NotEmpty(t, result.PaymentLink)

	updated, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, "cashfree", updated.PaymentInfo.Provider)
	assert.Equal(t, "cf_123", updated.PaymentInfo.TransactionID)
}

func TestClient_VerifyPayment_Paid(t *testing.T) {
	store := seedStore()
	mockAPI := cashfree.NewMockAPIClient()
	mockAPI.OnGetOrderStatus = func(ctx context.Context, orderNumber string) (*cashfree.OrderStatusResponse, error) {
		return &cashfree.OrderStatusResponse{OrderID: orderNumber, OrderStatus: "PAID", ReferenceID: "ref_77"}, nil
	}
	client := newTestClient(store, mockAPI)

	ok, err := client.VerifyPayment(context.Background(), "ord-1", "", "")
	require.NoError(t, err)
	assert.True(t, ok)

	updated, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.PaymentCompleted, updated.PaymentInfo.Status)
	assert.Equal(t, "ref_77", updated.PaymentInfo.TransactionID)
}

func TestClient_VerifyPayment_NotPaidLeavesOrderUntouched(t *testing.T) {
	store := seedStore()
	mockAPI := cashfree.NewMockAPIClient()
	mockAPI.OnGetOrderStatus = func(ctx context.Context, orderNumber string) (*cashfree.OrderStatusResponse, error) {
		return &cashfree.OrderStatusResponse{OrderID: orderNumber, OrderStatus: "ACTIVE"}, nil
	}
	client := newTestClient(store, mockAPI)

	ok, err := client.VerifyPayment(context.Background(), "ord-1", "", "")
	require.NoError(t, err)
	assert.False(t, ok)

	updated, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.PaymentPending, updated.PaymentInfo.Status)
}

func TestClient_RefundPayment_DefaultsToFullTotal(t *testing.T) {
	store := seedStore()
	mockAPI := cashfree.NewMockAPIClient()

	var capturedNumber string
	var capturedReq *cashfree.RefundRequest
	mockAPI.OnCreateRefund = func(ctx context.Context, orderNumber string, req *cashfree.RefundRequest) (*cashfree.RefundResponse, error) {
		capturedNumber = orderNumber
		capturedReq = req
		return &cashfree.RefundResponse{RefundID: "rf_1", OrderID: orderNumber, Amount: req.RefundAmount, Status: "SUCCESS"}, nil
	}
	client := newTestClient(store, mockAPI)

	ok, err := client.RefundPayment(context.Background(), "ord-1", nil, "")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "ORD-2024-0005", capturedNumber)
	require.NotNil(t, capturedReq)
	assert.Equal(t, 2499.0, capturedReq.RefundAmount)
	assert.Equal(t, "Customer requested refund", capturedReq.RefundNote)

	updated, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.PaymentRefunded, updated.PaymentInfo.Status)
}

func TestClient_RefundPayment_PendingRefundReturnsFalse(t *testing.T) {
	store := seedStore()
	mockAPI := cashfree.NewMockAPIClient()
	mockAPI.OnCreateRefund = func(ctx context.Context, orderNumber string, req *cashfree.RefundRequest) (*cashfree.RefundResponse, error) {
		return &cashfree.RefundResponse{RefundID: "rf_1", OrderID: orderNumber, Status: "PENDING"}, nil
	}
	client := newTestClient(store, mockAPI)

	ok, err := client.RefundPayment(context.Background(), "ord-1", nil, "")
	require.NoError(t, err)
	assert.False(t, ok)

	updated, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.PaymentPending, updated.PaymentInfo.Status)
}

func webhookBody(orderNumber, status, referenceID string) []byte {
	return []byte(fmt.Sprintf(
		`{"orderId":%q,"orderStatus":%q,"referenceId":%q}`,
		orderNumber, status, referenceID,
	))
}

func TestClient_HandleWebhook_Paid(t *testing.T) {
	store := seedStore()
	client := newTestClient(store, cashfree.NewMockAPIClient())

	body := webhookBody("ORD-2024-0005", "PAID", "ref_55")
	signature := base64Signature(testSecretKey, body)

	err := client.HandleWebhook(context.Background(), body, signature)
	require.NoError(t, err)

	updated, _ := store.GetByNumber(context.Background(), "ORD-2024-0005")
	assert.Equal(t, order.StatusConfirmed, updated.Status)
	assert.Equal(t, order.PaymentCompleted, updated.PaymentInfo.Status)
	assert.Equal(t, "ref_55", updated.PaymentInfo.TransactionID)
}

func TestClient_HandleWebhook_Failed(t *testing.T) {
	store := seedStore()
	client := newTestClient(store, cashfree.NewMockAPIClient())

	body := webhookBody("ORD-2024-0005", "FAILED", "")
	signature := base64Signature(testSecretKey, body)

	err := client.HandleWebhook(context.Background(), body, signature)
	require.NoError(t, err)

	updated, _ := store.GetByNumber(context.Background(), "ORD-2024-0005")
	assert.Equal(t, order.StatusCancelled, updated.Status)
	assert.Equal(t, order.PaymentFailed, updated.PaymentInfo.Status)
}

func TestClient_HandleWebhook_OtherStatusIgnored(t *testing.T) {
	store := seedStore()
	client := newTestClient(store, cashfree.NewMockAPIClient())

	body := webhookBody("ORD-2024-0005", "USER_DROPPED", "")
	signature := base64Signature(testSecretKey, body)

	err := client.HandleWebhook(context.Background(), body, signature)
	require.NoError(t, err)

	updated, _ := store.GetByNumber(context.Background(), "ORD-2024-0005")
	assert.Equal(t, order.StatusPending, updated.Status)
	assert.Equal(t, order.PaymentPending, updated.PaymentInfo.Status)
}

func TestClient_HandleWebhook_MutatedSignatureRejected(t *testing.T) {
	store := seedStore()
	client := newTestClient(store, cashfree.NewMockAPIClient())

	body := webhookBody("ORD-2024-0005", "PAID", "ref_55")
	signature := base64Signature(testSecretKey, body)

	mutated := []byte(signature)
	if mutated[0] == 'A' {
		mutated[0] = 'B'
	} else {
		mutated[0] = 'A'
	}

	err := client.HandleWebhook(context.Background(), body, string(mutated))
	assert.True(t, errors.Is(err, gateway.ErrInvalidSignature))

	updated, _ := store.GetByNumber(context.Background(), "ORD-2024-0005")
	assert.Equal(t, order.StatusPending, updated.Status)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(seedStore(), cashfree.NewMockAPIClient())
	assert.Equal(t, "cashfree", client.Name())
}
