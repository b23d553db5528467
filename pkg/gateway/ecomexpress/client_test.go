package ecomexpress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/ecomexpress"
	"go.uber.org/zap"
)

var testWarehouse = gateway.Warehouse{
	Name: "Main Warehouse", Street: "Plot 4 MIDC", City: "Mumbai",
	State: "MH", Country: "India", ZipCode: "400001", Phone: "9800000000",
}

func newTestClient(store order.Store, mockClient *ecomexpress.MockAPIClient) *ecomexpress.Client {
	logger := otelzap.New(zap.NewNop())
	return ecomexpress.NewWithAPIClient(
		ecomexpress.Config{Warehouse: testWarehouse},
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
		OrderNumber: "ORD-2024-0002",
		Items: []order.Item{
			{ProductID: "p1", Name: "Kettle", Quantity: 1, Price: 1200, Weight: 1.1},
			{ProductID: "p2", Name: "Tea tin", Quantity: 3, Price: 150},
		},
		Subtotal: 1650,
		Tax:      297,
		Total:    1947,
		Status:   order.StatusPending,
		ShippingAddress: order.ShippingAddress{
			Name: "Ravi Kumar", Street: "7 Brigade Rd", City: "Bengaluru",
			State: "KA", Country: "India", ZipCode: "560001", Phone: "9800000002",
		},
		PaymentInfo: order.PaymentInfo{Status: order.PaymentPending, Amount: 1947},
	})
	return store
}

func TestClient_CreateShipment_Success(t *testing.T) {
	store := seedStore()
	mockAPI := ecomexpress.NewMockAPIClient()
	client := newTestClient(store, mockAPI)

	result, err := client.CreateShipment(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Ecom Express", result.Carrier)
	assert.NotEmpty(t, result.TrackingNumber)

	updated, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.StatusProcessing, updated.Status)
	require.NotNil(t, updated.ShippingInfo)
	assert.Equal(t, "Ecom Express", updated.ShippingInfo.Carrier)
}

func TestClient_CreateShipment_RequestMapping(t *testing.T) {
	store := seedStore()
	mockAPI := ecomexpress.NewMockAPIClient()

	var captured *ecomexpress.ShipmentRequest
	mockAPI.OnCreateShipment = func(ctx context.Context, req *ecomexpress.ShipmentRequest) (*ecomexpress.ShipmentResponse, error) {
		captured = req
		return &ecomexpress.ShipmentResponse{Success: true, AWBNumber: "EE123", OrderNumber: req.OrderNumber, Status: "BOOKED"}, nil
	}
	client := newTestClient(store, mockAPI)

	_, err := client.CreateShipment(context.Background(), "ord-1")
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, "ORD-2024-0002", captured.OrderNumber)
	assert.Equal(t, "Kettle, Tea tin", captured.ProductName)
	assert.Equal(t, "Ravi Kumar", captured.Consignee.Name)
	assert.Equal(t, "560001", captured.Consignee.PinCode)
	assert.Equal(t, "Main Warehouse", captured.PickupLocation.Name)
	assert.Equal(t, "400001", captured.PickupLocation.PinCode)
	assert.Equal(t, "PPD", captured.PaymentMode)

	// 1.1*1 + 0.5*3 default weight, value 1200 + 450
	assert.InDelta(t, 2.6, captured.ActualWeight, 1e-9)
	assert.InDelta(t, 1650, captured.DeclaredValue, 1e-9)
	assert.Equal(t, 4, captured.Quantity)
	assert.Equal(t, "Order containing 2 items", captured.ItemDescription)
}

func TestClient_CreateShipment_FailureLeavesOrderUntouched(t *testing.T) {
	store := seedStore()
	mockAPI := ecomexpress.NewMockAPIClient()
	mockAPI.OnCreateShipment = func(ctx context.Context, req *ecomexpress.ShipmentRequest) (*ecomexpress.ShipmentResponse, error) {
		return &ecomexpress.ShipmentResponse{Success: false, ErrorMessage: "serviceability failed"}, nil
	}
	client := newTestClient(store, mockAPI)

	_, err := client.CreateShipment(context.Background(), "ord-1")
	assert.True(t, errors.Is(err, gateway.ErrProviderRejected))

	got, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.StatusPending, got.Status)
	assert.Nil(t, got.ShippingInfo)
}

func TestClient_TrackShipment_FailureDegradesToSentinel(t *testing.T) {
	mockAPI := ecomexpress.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(seedStore(), mockAPI)

	status, err := client.TrackShipment(context.Background(), "EE123")
	require.NoError(t, err)
	assert.Equal(t, gateway.UnableToTrack, status)
}

func TestClient_CancelShipment_RequiresTrackingNumber(t *testing.T) {
	client := newTestClient(seedStore(), ecomexpress.NewMockAPIClient())

	ok, err := client.CancelShipment(context.Background(), "ord-1")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, gateway.ErrPreconditionFailed))
}

func TestClient_CancelShipment_Success(t *testing.T) {
	store := seedStore()
	client := newTestClient(store, ecomexpress.NewMockAPIClient())

	_, err := client.CreateShipment(context.Background(), "ord-1")
	require.NoError(t, err)

	ok, err := client.CancelShipment(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.StatusCancelled, got.Status)
}

func TestClient_SchedulePickup_RequiresTrackingNumber(t *testing.T) {
	client := newTestClient(seedStore(), ecomexpress.NewMockAPIClient())

	ok, err := client.SchedulePickup(context.Background(), "ord-1")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, gateway.ErrPreconditionFailed))
}

func TestClient_SchedulePickup_TodayWithFixedSlot(t *testing.T) {
	store := seedStore()
	mockAPI := ecomexpress.NewMockAPIClient()

	var captured *ecomexpress.PickupRequest
	mockAPI.OnSchedulePickup = func(ctx context.Context, req *ecomexpress.PickupRequest) (*ecomexpress.PickupResponse, error) {
		captured = req
		return &ecomexpress.PickupResponse{Success: true, PickupID: "PU1"}, nil
	}
	client := newTestClient(store, mockAPI)

	_, err := client.CreateShipment(context.Background(), "ord-1")
	require.NoError(t, err)

	ok, err := client.SchedulePickup(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotNil(t, captured)
	require.Len(t, captured.AWBNumbers, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), captured.PickupDate)
	assert.Equal(t, "09:00-18:00", captured.PickupTimeSlot)

	// Pickup does not advance the order status.
	got, _ := store.GetByID(context.Background(), "ord-1")
	assert.Equal(t, order.StatusProcessing, got.Status)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(seedStore(), ecomexpress.NewMockAPIClient())
	assert.Equal(t, "ecomexpress", client.Name())
}
