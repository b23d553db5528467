package graphql

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/graphql/model"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/telemetry"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.uber.org/zap"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds dependencies needed by all resolvers.
type Resolver struct {
	Registry *gateway.Registry
	Store    order.Store
	Logger   *otelzap.Logger
	Metrics  *telemetry.Metrics
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(registry *gateway.Registry, store order.Store, logger *otelzap.Logger, metrics *telemetry.Metrics) *Resolver {
	return &Resolver{
		Registry: registry,
		Store:    store,
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Mutation returns the mutation resolver.
func (r *Resolver) Mutation() *MutationResolver {
	return &MutationResolver{r}
}

// Query returns the query resolver.
func (r *Resolver) Query() *QueryResolver {
	return &QueryResolver{r}
}

// MutationResolver resolves all mutations.
type MutationResolver struct {
	*Resolver
}

// QueryResolver resolves all queries.
type QueryResolver struct {
	*Resolver
}

// record captures a request metric with its duration.
func (r *Resolver) record(operation, provider string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		r.Metrics.RecordError(provider, errorCode(err))
	}
	r.Metrics.RecordRequest(operation, provider, status, time.Since(start).Seconds())
}

// CreateShipment books a consignment for the order with the chosen carrier.
func (m *MutationResolver) CreateShipment(ctx context.Context, input model.CreateShipmentInput) (*model.ShipmentResult, error) {
	start := time.Now()

	carrier, err := m.Registry.Carrier(input.Carrier)
	if err != nil {
		m.record("createShipment", input.Carrier, start, err)
		return nil, err
	}

	result, err := carrier.CreateShipment(ctx, input.OrderID)
	m.record("createShipment", input.Carrier, start, err)
	if err != nil {
		m.Logger.Error("createShipment failed",
			zap.String("carrier", input.Carrier),
			zap.String("order_id", input.OrderID),
			zap.Error(err),
		)
		return nil, err
	}
	return shipmentResultToModel(result), nil
}

// CancelShipment cancels the order's consignment with the chosen carrier.
func (m *MutationResolver) CancelShipment(ctx context.Context, input model.CancelShipmentInput) (*model.OperationResult, error) {
	start := time.Now()

	carrier, err := m.Registry.Carrier(input.Carrier)
	if err != nil {
		m.record("cancelShipment", input.Carrier, start, err)
		return nil, err
	}

	ok, err := carrier.CancelShipment(ctx, input.OrderID)
	m.record("cancelShipment", input.Carrier, start, err)
	if err != nil {
		return nil, err
	}
	return operationResult(ok, "cancellation refused by carrier"), nil
}

// SchedulePickup requests a same-day warehouse pickup from carriers that
// support it.
func (m *MutationResolver) SchedulePickup(ctx context.Context, input model.SchedulePickupInput) (*model.OperationResult, error) {
	start := time.Now()

	carrier, err := m.Registry.Carrier(input.Carrier)
	if err != nil {
		m.record("schedulePickup", input.Carrier, start, err)
		return nil, err
	}

	scheduler, ok := carrier.(gateway.PickupScheduler)
	if !ok {
		err := fmt.Errorf("carrier %s does not support pickup scheduling", input.Carrier)
		m.record("schedulePickup", input.Carrier, start, err)
		return nil, err
	}

	scheduled, err := scheduler.SchedulePickup(ctx, input.OrderID)
	m.record("schedulePickup", input.Carrier, start, err)
	if err != nil {
		return nil, err
	}
	return operationResult(scheduled, "pickup refused by carrier"), nil
}

// CreatePaymentOrder registers the order for checkout with the chosen
// payment provider.
func (m *MutationResolver) CreatePaymentOrder(ctx context.Context, input model.CreatePaymentOrderInput) (*model.PaymentOrderResult, error) {
	start := time.Now()

	provider, err := m.Registry.Payment(input.Provider)
	if err != nil {
		m.record("createPaymentOrder", input.Provider, start, err)
		return nil, err
	}

	result, err := provider.CreatePaymentOrder(ctx, input.OrderID)
	m.record("createPaymentOrder", input.Provider, start, err)
	if err != nil {
		m.Logger.Error("createPaymentOrder failed",
			zap.String("provider", input.Provider),
			zap.String("order_id", input.OrderID),
			zap.Error(err),
		)
		return nil, err
	}
	return paymentOrderToModel(result), nil
}

// VerifyPayment confirms a completed checkout with the chosen provider.
func (m *MutationResolver) VerifyPayment(ctx context.Context, input model.VerifyPaymentInput) (*model.OperationResult, error) {
	start := time.Now()

	provider, err := m.Registry.Payment(input.Provider)
	if err != nil {
		m.record("verifyPayment", input.Provider, start, err)
		return nil, err
	}

	ok, err := provider.VerifyPayment(ctx, input.OrderID, input.PaymentID, input.Signature)
	m.record("verifyPayment", input.Provider, start, err)
	if err != nil {
		return nil, err
	}
	return operationResult(ok, "payment not verified"), nil
}

// RefundPayment refunds the order's payment with the chosen provider.
func (m *MutationResolver) RefundPayment(ctx context.Context, input model.RefundPaymentInput) (*model.OperationResult, error) {
	start := time.Now()

	provider, err := m.Registry.Payment(input.Provider)
	if err != nil {
		m.record("refundPayment", input.Provider, start, err)
		return nil, err
	}

	note := ""
	if input.Note != nil {
		note = *input.Note
	}

	ok, err := provider.RefundPayment(ctx, input.OrderID, input.Amount, note)
	m.record("refundPayment", input.Provider, start, err)
	if err != nil {
		return nil, err
	}
	return operationResult(ok, "refund not settled"), nil
}

// TrackShipment returns the carrier's current status for a tracking number.
// An empty carrier name fans the lookup out across every registered carrier
// and returns the first one that recognizes the number.
func (q *QueryResolver) TrackShipment(ctx context.Context, carrierName, trackingNumber string) (*model.TrackResult, error) {
	start := time.Now()

	if carrierName == "" {
		return q.trackAcrossCarriers(ctx, trackingNumber, start)
	}

	carrier, err := q.Registry.Carrier(carrierName)
	if err != nil {
		q.record("trackShipment", carrierName, start, err)
		return nil, err
	}

	status, err := carrier.TrackShipment(ctx, trackingNumber)
	q.record("trackShipment", carrierName, start, err)
	if err != nil {
		return nil, err
	}
	return &model.TrackResult{
		Carrier:        carrierName,
		TrackingNumber: trackingNumber,
		Status:         status,
	}, nil
}

func (q *QueryResolver) trackAcrossCarriers(ctx context.Context, trackingNumber string, start time.Time) (*model.TrackResult, error) {
	results, errs := q.Registry.TrackAll(ctx, trackingNumber)
	for _, err := range errs {
		q.Logger.Warn("carrier tracking lookup failed",
			zap.String("tracking_number", trackingNumber),
			zap.Error(err),
		)
	}
	if len(results) == 0 {
		q.record("trackShipment", "all", start, nil)
		return &model.TrackResult{
			TrackingNumber: trackingNumber,
			Status:         gateway.UnableToTrack,
		}, nil
	}
	q.record("trackShipment", results[0].Carrier, start, nil)
	return &model.TrackResult{
		Carrier:        results[0].Carrier,
		TrackingNumber: trackingNumber,
		Status:         results[0].Status,
	}, nil
}

// Order looks up an order by id.
func (q *QueryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	o, err := q.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return orderToModel(o), nil
}

// Carriers lists the registered carrier names.
func (q *QueryResolver) Carriers(ctx context.Context) ([]string, error) {
	return q.Registry.CarrierNames(), nil
}

// PaymentProviders lists the registered payment provider names.
func (q *QueryResolver) PaymentProviders(ctx context.Context) ([]string, error) {
	return q.Registry.PaymentNames(), nil
}

// Health reports service liveness.
func (q *QueryResolver) Health(ctx context.Context) (string, error) {
	return "ok", nil
}
