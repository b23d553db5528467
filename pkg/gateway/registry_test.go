package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/mock"
)

func TestRegistry_RegisterAndGetCarrier(t *testing.T) {
	registry := gateway.NewRegistry()
	registry.RegisterCarrier(mock.NewCarrier("shiprocket"))

	p, err := registry.Carrier("shiprocket")
	require.NoError(t, err)
	assert.Equal(t, "shiprocket", p.Name())
}

func TestRegistry_CarrierNotFound(t *testing.T) {
	registry := gateway.NewRegistry()
	_, err := registry.Carrier("dhl")
	assert.True(t, errors.Is(err, gateway.ErrProviderNotFound))
}

func TestRegistry_RegisterAndGetPayment(t *testing.T) {
	registry := gateway.NewRegistry()
	registry.RegisterPayment(mock.NewPayment("razorpay"))

	p, err := registry.Payment("razorpay")
	require.NoError(t, err)
	assert.Equal(t, "razorpay", p.Name())
}

func TestRegistry_PaymentNotFound(t *testing.T) {
	registry := gateway.NewRegistry()
	_, err := registry.Payment("stripe")
	assert.True(t, errors.Is(err, gateway.ErrProviderNotFound))
}

func TestRegistry_Names_Sorted(t *testing.T) {
	registry := gateway.NewRegistry()
	registry.RegisterCarrier(mock.NewCarrier("shiprocket"))
	registry.RegisterCarrier(mock.NewCarrier("ecomexpress"))
	registry.RegisterCarrier(mock.NewCarrier("parcelx"))
	registry.RegisterPayment(mock.NewPayment("razorpay"))
	registry.RegisterPayment(mock.NewPayment("cashfree"))

	assert.Equal(t, []string{"ecomexpress", "parcelx", "shiprocket"}, registry.CarrierNames())
	assert.Equal(t, []string{"cashfree", "razorpay"}, registry.PaymentNames())
}

func TestRegistry_TrackAll_SkipsUnresolvedCarriers(t *testing.T) {
	registry := gateway.NewRegistry()

	hit := mock.NewCarrier("parcelx")
	hit.TrackStatus = "Out for delivery"
	miss := mock.NewCarrier("shiprocket")
	miss.FailTrack = true

	registry.RegisterCarrier(hit)
	registry.RegisterCarrier(miss)

	results, errs := registry.TrackAll(context.Background(), "AWB42")
	assert.Empty(t, errs)
	require.Len(t, results, 1)
	assert.Equal(t, "parcelx", results[0].Carrier)
	assert.Equal(t, "Out for delivery", results[0].Status)
}

func TestRegistry_TrackAll_NoCarriers(t *testing.T) {
	registry := gateway.NewRegistry()
	results, errs := registry.TrackAll(context.Background(), "AWB42")
	assert.Nil(t, results)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], gateway.ErrProviderNotFound))
}
