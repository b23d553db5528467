package graphql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
)

func TestShipmentResultToModel(t *testing.T) {
	full := shipmentResultToModel(&gateway.ShipmentResult{
		Success:        true,
		Carrier:        "ParcelX",
		TrackingNumber: "PX1",
		TrackingURL:    "https://labels.example.com/PX1.pdf",
		Cost:           85,
		RawStatus:      "CREATED",
	})
	assert.True(t, full.Success)
	require.NotNil(t, full.TrackingNumber)
	assert.Equal(t, "PX1", *full.TrackingNumber)
	require.NotNil(t, full.Cost)
	assert.Equal(t, 85.0, *full.Cost)

	sparse := shipmentResultToModel(&gateway.ShipmentResult{
		Success: true,
		Carrier: "Shiprocket",
	})
	assert.Nil(t, sparse.TrackingNumber)
	assert.Nil(t, sparse.TrackingURL)
	assert.Nil(t, sparse.Cost)
	assert.Nil(t, sparse.Status)
}

func TestOperationResult(t *testing.T) {
	ok := operationResult(true, "refused")
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Message)

	refused := operationResult(false, "refused")
	assert.False(t, refused.Success)
	require.NotNil(t, refused.Message)
	assert.Equal(t, "refused", *refused.Message)
}

func TestOrderToModel(t *testing.T) {
	o := &order.Order{
		ID:          "ord-1",
		OrderNumber: "ORD-2024-0011",
		Status:      order.StatusShipped,
		Items:       []order.Item{{ProductID: "p1", Name: "Mug", Quantity: 1, Price: 300}},
		Total:       300,
		PaymentInfo: order.PaymentInfo{Provider: "razorpay", Status: order.PaymentCompleted, Amount: 300},
		ShippingInfo: &order.ShippingInfo{
			Carrier:        "Ecom Express",
			TrackingNumber: "EE1",
		},
	}

	m := orderToModel(o)
	assert.Equal(t, "SHIPPED", m.Status)
	assert.Equal(t, "COMPLETED", m.PaymentInfo.Status)
	require.NotNil(t, m.ShippingInfo)
	assert.Equal(t, "EE1", m.ShippingInfo.TrackingNumber)

	o.ShippingInfo = nil
	assert.Nil(t, orderToModel(o).ShippingInfo)
}

func TestErrorCode(t *testing.T) {
	gwErr := gateway.NewGatewayError("shiprocket", "ORDER_REJECTED", "rejected")
	assert.Equal(t, "ORDER_REJECTED", errorCode(gwErr))

	assert.Equal(t, "ORDER_NOT_FOUND", errorCode(order.ErrNotFound))
	assert.Equal(t, "PRECONDITION_FAILED", errorCode(gateway.ErrPreconditionFailed))
	assert.Equal(t, "PROVIDER_NOT_FOUND", errorCode(gateway.ErrProviderNotFound))
	assert.Equal(t, "INTERNAL", errorCode(errors.New("boom")))
}
