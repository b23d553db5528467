package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/config"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/telemetry"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/cashfree"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/ecomexpress"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/parcelx"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/razorpay"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/shiprocket"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

// initStore selects the order store backend. An empty Postgres DSN
// selects the in-memory store, which is what local development uses.
func initStore(cfg *config.Config, logger *otelzap.Logger) (order.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Info("Using in-memory order store")
		return order.NewMemStore(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Connected to Postgres order store")
	return order.NewPGStore(db), func() { db.Close() }, nil
}

func initGatewayRegistry(cfg *config.Config, store order.Store, logger *otelzap.Logger) (*gateway.Registry, map[string]gateway.WebhookSource) {
	registry := gateway.NewRegistry()
	webhooks := make(map[string]gateway.WebhookSource)

	// Get tracer for providers
	var tracer trace.Tracer
	// tracer would be initialized from otel.GetTracerProvider().Tracer(cfg.ServiceName)

	warehouse := gateway.Warehouse{
		Name:    cfg.WarehouseName,
		Street:  cfg.WarehouseStreet,
		City:    cfg.WarehouseCity,
		State:   cfg.WarehouseState,
		Country: cfg.WarehouseCountry,
		ZipCode: cfg.WarehouseZipCode,
		Phone:   cfg.WarehousePhone,
	}

	// Register enabled shipping carriers
	if cfg.ShiprocketEnabled {
		sr := shiprocket.New(shiprocket.Config{
			Email:          cfg.ShiprocketEmail,
			Password:       cfg.ShiprocketPassword,
			BaseURL:        cfg.ShiprocketBaseURL,
			PickupLocation: cfg.ShiprocketPickupLocation,
			UseMock:        cfg.ShiprocketUseMock,
		}, store, logger, tracer)
		registry.RegisterCarrier(sr)
	}

	if cfg.EcomExpressEnabled {
		ee := ecomexpress.New(ecomexpress.Config{
			Username:  cfg.EcomExpressUsername,
			APIKey:    cfg.EcomExpressAPIKey,
			BaseURL:   cfg.EcomExpressBaseURL,
			Warehouse: warehouse,
			UseMock:   cfg.EcomExpressUseMock,
		}, store, logger, tracer)
		registry.RegisterCarrier(ee)
	}

	if cfg.ParcelXEnabled {
		px := parcelx.New(parcelx.Config{
			AccessKey: cfg.ParcelXAccessKey,
			SecretKey: cfg.ParcelXSecretKey,
			BaseURL:   cfg.ParcelXBaseURL,
			Warehouse: warehouse,
			UseMock:   cfg.ParcelXUseMock,
		}, store, logger, tracer)
		registry.RegisterCarrier(px)
	}

	// Register enabled payment providers. Both expose webhook receivers.
	if cfg.RazorpayEnabled {
		rzp := razorpay.New(razorpay.Config{
			KeyID:         cfg.RazorpayKeyID,
			KeySecret:     cfg.RazorpayKeySecret,
			WebhookSecret: cfg.RazorpayWebhookSecret,
			BaseURL:       cfg.RazorpayBaseURL,
			UseMock:       cfg.RazorpayUseMock,
		}, store, logger, tracer)
		registry.RegisterPayment(rzp)
		webhooks[rzp.Name()] = rzp
	}

	if cfg.CashfreeEnabled {
		cf := cashfree.New(cashfree.Config{
			AppID:     cfg.CashfreeAppID,
			SecretKey: cfg.CashfreeSecretKey,
			BaseURL:   cfg.CashfreeBaseURL,
			ReturnURL: cfg.CashfreeReturnURL,
			NotifyURL: cfg.CashfreeNotifyURL,
			UseMock:   cfg.CashfreeUseMock,
		}, store, logger, tracer)
		registry.RegisterPayment(cf)
		webhooks[cf.Name()] = cf
	}

	logger.Info("Provider registry initialized",
		zap.Strings("carriers", registry.CarrierNames()),
		zap.Strings("payment_providers", registry.PaymentNames()),
	)

	return registry, webhooks
}
