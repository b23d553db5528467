package gateway

import (
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
)

// Default parcel dimensions in cm. Products carry no per-item dimensions,
// so every consignment ships with the standard box.
const (
	DefaultParcelLength = 20.0
	DefaultParcelWidth  = 15.0
	DefaultParcelHeight = 10.0

	// DefaultItemWeight is the fallback unit weight in kg for products
	// without a declared weight.
	DefaultItemWeight = 0.5
)

// Parcel describes the physical attributes of a shipment, derived from the
// order's line items.
type Parcel struct {
	Weight        float64 // kg
	Length        float64 // cm
	Width         float64 // cm
	Height        float64 // cm
	DeclaredValue float64
	Units         int // total item count across lines
}

// BuildParcel derives shipment attributes from order line items. It is a
// pure function: total weight is the sum of per-item weight (falling back to
// DefaultItemWeight) times quantity, declared value is the sum of unit price
// times quantity, and the result does not depend on item ordering.
func BuildParcel(items []order.Item) Parcel {
	p := Parcel{
		Length: DefaultParcelLength,
		Width:  DefaultParcelWidth,
		Height: DefaultParcelHeight,
	}
	for _, it := range items {
		w := it.Weight
		if w == 0 {
			w = DefaultItemWeight
		}
		p.Weight += w * float64(it.Quantity)
		p.DeclaredValue += it.Price * float64(it.Quantity)
		p.Units += it.Quantity
	}
	if p.Weight == 0 {
		p.Weight = DefaultItemWeight
	}
	return p
}
