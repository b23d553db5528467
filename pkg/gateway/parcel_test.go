package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
)

func TestBuildParcel_SumsWeightAndValue(t *testing.T) {
	items := []order.Item{
		{Name: "Phone case", Quantity: 2, Price: 299, Weight: 0.2},
		{Name: "Charger", Quantity: 1, Price: 899, Weight: 0.4},
	}

	p := gateway.BuildParcel(items)

	assert.InDelta(t, 0.8, p.Weight, 1e-9) // 0.2*2 + 0.4*1
	assert.InDelta(t, 1497, p.DeclaredValue, 1e-9)
	assert.Equal(t, 3, p.Units)
}

func TestBuildParcel_DefaultWeightForUnsetProducts(t *testing.T) {
	items := []order.Item{
		{Name: "Sticker pack", Quantity: 4, Price: 50}, // no declared weight
		{Name: "Mug", Quantity: 1, Price: 450, Weight: 0.3},
	}

	p := gateway.BuildParcel(items)

	assert.InDelta(t, 0.5*4+0.3, p.Weight, 1e-9)
	assert.InDelta(t, 650, p.DeclaredValue, 1e-9)
}

func TestBuildParcel_OrderIndependent(t *testing.T) {
	items := []order.Item{
		{Name: "A", Quantity: 2, Price: 100, Weight: 0.7},
		{Name: "B", Quantity: 3, Price: 40},
		{Name: "C", Quantity: 1, Price: 999, Weight: 2.1},
	}
	reversed := []order.Item{items[2], items[1], items[0]}

	assert.Equal(t, gateway.BuildParcel(items), gateway.BuildParcel(reversed))
}

func TestBuildParcel_EmptyItemsFallsBackToMinimumWeight(t *testing.T) {
	p := gateway.BuildParcel(nil)
	assert.Equal(t, gateway.DefaultItemWeight, p.Weight)
	assert.Zero(t, p.DeclaredValue)
}

func TestBuildParcel_FixedDimensions(t *testing.T) {
	p := gateway.BuildParcel([]order.Item{{Quantity: 1, Price: 10, Weight: 1}})
	assert.Equal(t, 20.0, p.Length)
	assert.Equal(t, 15.0, p.Width)
	assert.Equal(t, 10.0, p.Height)
}
