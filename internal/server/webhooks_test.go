package server_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
)

func postWebhook(handler http.Handler, path, body, header, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(header, signature)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebhook_Cashfree_Paid(t *testing.T) {
	handler, store := newTestHandler(t)

	body := `{"orderId":"ORD-2024-0020","orderStatus":"PAID","referenceId":"ref_9"}`
	mac := hmac.New(sha256.New, []byte(cashfreeSecretKey))
	mac.Write([]byte(body))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	rec := postWebhook(handler, "/webhooks/cashfree", body, "x-webhook-signature", signature)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())

	updated, err := store.GetByNumber(context.Background(), "ORD-2024-0020")
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, updated.Status)
	assert.Equal(t, order.PaymentCompleted, updated.PaymentInfo.Status)
	assert.Equal(t, "ref_9", updated.PaymentInfo.TransactionID)
}

func TestWebhook_Cashfree_MissingSignature(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postWebhook(handler, "/webhooks/cashfree", `{"orderId":"ORD-2024-0020","orderStatus":"PAID"}`, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing signature")
}

func TestWebhook_Cashfree_InvalidSignature(t *testing.T) {
	handler, store := newTestHandler(t)

	body := `{"orderId":"ORD-2024-0020","orderStatus":"PAID","referenceId":"ref_9"}`
	rec := postWebhook(handler, "/webhooks/cashfree", body, "x-webhook-signature", "bm90LXJlYWw=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid signature")

	updated, _ := store.GetByNumber(context.Background(), "ORD-2024-0020")
	assert.Equal(t, order.StatusPending, updated.Status)
}

func TestWebhook_Razorpay_Captured(t *testing.T) {
	handler, store := newTestHandler(t)

	body := fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_7","notes":{"order_id":%q}}}}}`,
		"ord-1",
	)
	mac := hmac.New(sha256.New, []byte(razorpayWebhookSecret))
	mac.Write([]byte(body))
	signature := hex.EncodeToString(mac.Sum(nil))

	rec := postWebhook(handler, "/webhooks/razorpay", body, "X-Razorpay-Signature", signature)
	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := store.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, updated.Status)
	assert.Equal(t, "pay_7", updated.PaymentInfo.TransactionID)
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/webhooks/cashfree", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
