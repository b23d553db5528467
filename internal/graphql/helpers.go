package graphql

import (
	"errors"

	"github.com/vishalpatwa-in/ecommerce-platform/internal/graphql/model"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
)

func shipmentResultToModel(r *gateway.ShipmentResult) *model.ShipmentResult {
	out := &model.ShipmentResult{
		Success: r.Success,
		Carrier: r.Carrier,
	}
	if r.TrackingNumber != "" {
		out.TrackingNumber = &r.TrackingNumber
	}
	if r.TrackingURL != "" {
		out.TrackingURL = &r.TrackingURL
	}
	if r.Cost != 0 {
		out.Cost = &r.Cost
	}
	if r.RawStatus != "" {
		out.Status = &r.RawStatus
	}
	return out
}

func paymentOrderToModel(p *gateway.PaymentOrder) *model.PaymentOrderResult {
	out := &model.PaymentOrderResult{
		Provider:        p.Provider,
		ProviderOrderID: p.ProviderOrderID,
		Amount:          p.Amount,
		Currency:        p.Currency,
	}
	if p.PaymentLink != "" {
		out.PaymentLink = &p.PaymentLink
	}
	return out
}

func operationResult(ok bool, refusalMessage string) *model.OperationResult {
	result := &model.OperationResult{Success: ok}
	if !ok {
		result.Message = &refusalMessage
	}
	return result
}

func orderToModel(o *order.Order) *model.Order {
	items := make([]model.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}

	out := &model.Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Items:       items,
		Total:       o.Total,
		PaymentInfo: model.PaymentInfo{
			Provider:      o.PaymentInfo.Provider,
			TransactionID: o.PaymentInfo.TransactionID,
			Status:        string(o.PaymentInfo.Status),
			Amount:        o.PaymentInfo.Amount,
		},
	}
	if o.ShippingInfo != nil {
		out.ShippingInfo = &model.ShippingInfo{
			Carrier:        o.ShippingInfo.Carrier,
			TrackingNumber: o.ShippingInfo.TrackingNumber,
			TrackingURL:    o.ShippingInfo.TrackingURL,
			Cost:           o.ShippingInfo.Cost,
		}
	}
	return out
}

// errorCode labels an error for the provider error metric.
func errorCode(err error) string {
	var gwErr *gateway.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Code
	}
	switch {
	case errors.Is(err, gateway.ErrOrderNotFound):
		return "ORDER_NOT_FOUND"
	case errors.Is(err, gateway.ErrPreconditionFailed):
		return "PRECONDITION_FAILED"
	case errors.Is(err, gateway.ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, gateway.ErrProviderNotFound):
		return "PROVIDER_NOT_FOUND"
	default:
		return "INTERNAL"
	}
}
