package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/graphql"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/graphql/model"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/telemetry"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.uber.org/zap"
)

// Server is the HTTP server for the provider gateway.
type Server struct {
	port     int
	registry *gateway.Registry
	store    order.Store
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
	resolver *graphql.Resolver
	webhooks map[string]gateway.WebhookSource
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance. Webhook sources are keyed by the path
// segment they are served under (/webhooks/{name}).
func New(cfg Config, registry *gateway.Registry, store order.Store, webhooks map[string]gateway.WebhookSource, logger *otelzap.Logger) *Server {
	metrics := telemetry.NewMetrics()
	resolver := graphql.NewResolver(registry, store, logger, metrics)

	return &Server{
		port:     cfg.Port,
		registry: registry,
		store:    store,
		logger:   logger,
		metrics:  metrics,
		resolver: resolver,
		webhooks: webhooks,
	}
}

// NewWithMetrics is New with an injected metrics instance. Tests use it to
// avoid re-registering prometheus collectors.
func NewWithMetrics(cfg Config, registry *gateway.Registry, store order.Store, webhooks map[string]gateway.WebhookSource, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		store:    store,
		logger:   logger,
		metrics:  metrics,
		resolver: graphql.NewResolver(registry, store, logger, metrics),
		webhooks: webhooks,
	}
}

// Handler builds the HTTP routing for the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/graphql", s.handleGraphQL)

	for name, source := range s.webhooks {
		mux.HandleFunc("/webhooks/"+name, s.webhookHandler(name, source))
	}

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GraphQL request/response types
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   interface{}    `json:"data,omitempty"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func writeGraphQLError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(graphQLResponse{
		Errors: []graphQLError{{Message: message}},
	})
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeGraphQLError(w, http.StatusMethodNotAllowed, "Method not allowed, use POST")
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGraphQLError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	ctx := r.Context()

	// Simple query router based on operation name. The order-by-id query is
	// matched last: "order" is a substring of createPaymentOrder.
	var response interface{}
	var err error

	switch {
	case contains(req.Query, "createShipment"):
		input, perr := parseCreateShipmentInput(req.Variables)
		if perr != nil {
			writeGraphQLError(w, http.StatusBadRequest, perr.Error())
			return
		}
		var result *model.ShipmentResult
		result, err = s.resolver.Mutation().CreateShipment(ctx, input)
		response = map[string]interface{}{"createShipment": result}

	case contains(req.Query, "cancelShipment"):
		input, perr := parseCancelShipmentInput(req.Variables)
		if perr != nil {
			writeGraphQLError(w, http.StatusBadRequest, perr.Error())
			return
		}
		var result *model.OperationResult
		result, err = s.resolver.Mutation().CancelShipment(ctx, input)
		response = map[string]interface{}{"cancelShipment": result}

	case contains(req.Query, "schedulePickup"):
		input, perr := parseSchedulePickupInput(req.Variables)
		if perr != nil {
			writeGraphQLError(w, http.StatusBadRequest, perr.Error())
			return
		}
		var result *model.OperationResult
		result, err = s.resolver.Mutation().SchedulePickup(ctx, input)
		response = map[string]interface{}{"schedulePickup": result}

	case contains(req.Query, "createPaymentOrder"):
		input, perr := parseCreatePaymentOrderInput(req.Variables)
		if perr != nil {
			writeGraphQLError(w, http.StatusBadRequest, perr.Error())
			return
		}
		var result *model.PaymentOrderResult
		result, err = s.resolver.Mutation().CreatePaymentOrder(ctx, input)
		response = map[string]interface{}{"createPaymentOrder": result}

	case contains(req.Query, "verifyPayment"):
		input, perr := parseVerifyPaymentInput(req.Variables)
		if perr != nil {
			writeGraphQLError(w, http.StatusBadRequest, perr.Error())
			return
		}
		var result *model.OperationResult
		result, err = s.resolver.Mutation().VerifyPayment(ctx, input)
		response = map[string]interface{}{"verifyPayment": result}

	case contains(req.Query, "refundPayment"):
		input, perr := parseRefundPaymentInput(req.Variables)
		if perr != nil {
			writeGraphQLError(w, http.StatusBadRequest, perr.Error())
			return
		}
		var result *model.OperationResult
		result, err = s.resolver.Mutation().RefundPayment(ctx, input)
		response = map[string]interface{}{"refundPayment": result}

	case contains(req.Query, "trackShipment"):
		carrier, _ := req.Variables["carrier"].(string)
		trackingNumber, _ := req.Variables["trackingNumber"].(string)
		var result *model.TrackResult
		result, err = s.resolver.Query().TrackShipment(ctx, carrier, trackingNumber)
		response = map[string]interface{}{"trackShipment": result}

	case contains(req.Query, "carriers"):
		var result []string
		result, err = s.resolver.Query().Carriers(ctx)
		response = map[string]interface{}{"carriers": result}

	case contains(req.Query, "paymentProviders"):
		var result []string
		result, err = s.resolver.Query().PaymentProviders(ctx)
		response = map[string]interface{}{"paymentProviders": result}

	case contains(req.Query, "health"):
		var result string
		result, err = s.resolver.Query().Health(ctx)
		response = map[string]interface{}{"health": result}

	case contains(req.Query, "order"):
		id, _ := req.Variables["id"].(string)
		var result *model.Order
		result, err = s.resolver.Query().Order(ctx, id)
		response = map[string]interface{}{"order": result}

	default:
		writeGraphQLError(w, http.StatusBadRequest, "Unknown operation")
		return
	}

	if err != nil {
		json.NewEncoder(w).Encode(graphQLResponse{
			Errors: []graphQLError{{Message: err.Error()}},
		})
		return
	}

	json.NewEncoder(w).Encode(graphQLResponse{Data: response})
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// Input parsing helpers
func inputMap(vars map[string]interface{}) (map[string]interface{}, error) {
	inputData, ok := vars["input"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'input' variable")
	}
	return inputData, nil
}

func parseCreateShipmentInput(vars map[string]interface{}) (model.CreateShipmentInput, error) {
	var input model.CreateShipmentInput
	data, err := inputMap(vars)
	if err != nil {
		return input, err
	}
	input.OrderID, _ = data["orderId"].(string)
	input.Carrier, _ = data["carrier"].(string)
	return input, nil
}

func parseCancelShipmentInput(vars map[string]interface{}) (model.CancelShipmentInput, error) {
	var input model.CancelShipmentInput
	data, err := inputMap(vars)
	if err != nil {
		return input, err
	}
	input.OrderID, _ = data["orderId"].(string)
	input.Carrier, _ = data["carrier"].(string)
	return input, nil
}

func parseSchedulePickupInput(vars map[string]interface{}) (model.SchedulePickupInput, error) {
	var input model.SchedulePickupInput
	data, err := inputMap(vars)
	if err != nil {
		return input, err
	}
	input.OrderID, _ = data["orderId"].(string)
	input.Carrier, _ = data["carrier"].(string)
	return input, nil
}

func parseCreatePaymentOrderInput(vars map[string]interface{}) (model.CreatePaymentOrderInput, error) {
	var input model.CreatePaymentOrderInput
	data, err := inputMap(vars)
	if err != nil {
		return input, err
	}
	input.OrderID, _ = data["orderId"].(string)
	input.Provider, _ = data["provider"].(string)
	return input, nil
}

func parseVerifyPaymentInput(vars map[string]interface{}) (model.VerifyPaymentInput, error) {
	var input model.VerifyPaymentInput
	data, err := inputMap(vars)
	if err != nil {
		return input, err
	}
	input.OrderID, _ = data["orderId"].(string)
	input.Provider, _ = data["provider"].(string)
	input.PaymentID, _ = data["paymentId"].(string)
	input.Signature, _ = data["signature"].(string)
	return input, nil
}

func parseRefundPaymentInput(vars map[string]interface{}) (model.RefundPaymentInput, error) {
	var input model.RefundPaymentInput
	data, err := inputMap(vars)
	if err != nil {
		return input, err
	}
	input.OrderID, _ = data["orderId"].(string)
	input.Provider, _ = data["provider"].(string)
	if amount, ok := data["amount"].(float64); ok {
		input.Amount = &amount
	}
	if note, ok := data["note"].(string); ok {
		input.Note = &note
	}
	return input, nil
}
