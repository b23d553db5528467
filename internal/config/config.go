package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Order storage. Empty DSN selects the in-memory store.
	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	// Warehouse pickup address shared by carriers that ship from our warehouse.
	WarehouseName    string `envconfig:"WAREHOUSE_NAME" default:"Main Warehouse"`
	WarehouseStreet  string `envconfig:"WAREHOUSE_STREET"`
	WarehouseCity    string `envconfig:"WAREHOUSE_CITY"`
	WarehouseState   string `envconfig:"WAREHOUSE_STATE"`
	WarehouseCountry string `envconfig:"WAREHOUSE_COUNTRY" default:"India"`
	WarehouseZipCode string `envconfig:"WAREHOUSE_ZIP_CODE"`
	WarehousePhone   string `envconfig:"WAREHOUSE_PHONE"`

	// Shiprocket
	ShiprocketEmail          string `envconfig:"SHIPROCKET_EMAIL"`
	ShiprocketPassword       string `envconfig:"SHIPROCKET_PASSWORD"`
	ShiprocketBaseURL        string `envconfig:"SHIPROCKET_BASE_URL" default:"https://apiv2.shiprocket.in/v1/external"`
	ShiprocketPickupLocation string `envconfig:"SHIPROCKET_PICKUP_LOCATION" default:"Primary"`
	ShiprocketEnabled        bool   `envconfig:"SHIPROCKET_ENABLED" default:"true"`
	ShiprocketUseMock        bool   `envconfig:"SHIPROCKET_USE_MOCK" default:"false"`

	// Ecom Express
	EcomExpressUsername string `envconfig:"ECOMEXPRESS_USERNAME"`
	EcomExpressAPIKey   string `envconfig:"ECOMEXPRESS_API_KEY"`
	EcomExpressBaseURL  string `envconfig:"ECOMEXPRESS_BASE_URL" default:"https://api.ecomexpress.in"`
	EcomExpressEnabled  bool   `envconfig:"ECOMEXPRESS_ENABLED" default:"true"`
	EcomExpressUseMock  bool   `envconfig:"ECOMEXPRESS_USE_MOCK" default:"false"`

	// ParcelX
	ParcelXAccessKey string `envconfig:"PARCELX_ACCESS_KEY"`
	ParcelXSecretKey string `envconfig:"PARCELX_SECRET_KEY"`
	ParcelXBaseURL   string `envconfig:"PARCELX_BASE_URL" default:"https://api.parcelx.in/v1"`
	ParcelXEnabled   bool   `envconfig:"PARCELX_ENABLED" default:"true"`
	ParcelXUseMock   bool   `envconfig:"PARCELX_USE_MOCK" default:"false"`

	// Razorpay
	RazorpayKeyID         string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `envconfig:"RAZORPAY_KEY_SECRET"`
	RazorpayWebhookSecret string `envconfig:"RAZORPAY_WEBHOOK_SECRET"`
	RazorpayBaseURL       string `envconfig:"RAZORPAY_BASE_URL" default:"https://api.razorpay.com"`
	RazorpayEnabled       bool   `envconfig:"RAZORPAY_ENABLED" default:"true"`
	RazorpayUseMock       bool   `envconfig:"RAZORPAY_USE_MOCK" default:"false"`

	// Cashfree
	CashfreeAppID     string `envconfig:"CASHFREE_APP_ID"`
	CashfreeSecretKey string `envconfig:"CASHFREE_SECRET_KEY"`
	CashfreeBaseURL   string `envconfig:"CASHFREE_BASE_URL" default:"https://api.cashfree.com"`
	CashfreeReturnURL string `envconfig:"CASHFREE_RETURN_URL"`
	CashfreeNotifyURL string `envconfig:"CASHFREE_NOTIFY_URL"`
	CashfreeEnabled   bool   `envconfig:"CASHFREE_ENABLED" default:"true"`
	CashfreeUseMock   bool   `envconfig:"CASHFREE_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.observability.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"provider-gateway"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from the environment, seeding it from a .env
// file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast when an enabled provider is missing its credentials.
// Mock-mode providers need no credentials.
func (c *Config) Validate() error {
	if c.ShiprocketEnabled && !c.ShiprocketUseMock {
		if c.ShiprocketEmail == "" || c.ShiprocketPassword == "" {
			return fmt.Errorf("shiprocket enabled but SHIPROCKET_EMAIL/SHIPROCKET_PASSWORD not set")
		}
	}
	if c.EcomExpressEnabled && !c.EcomExpressUseMock {
		if c.EcomExpressUsername == "" || c.EcomExpressAPIKey == "" {
			return fmt.Errorf("ecom express enabled but ECOMEXPRESS_USERNAME/ECOMEXPRESS_API_KEY not set")
		}
	}
	if c.ParcelXEnabled && !c.ParcelXUseMock {
		if c.ParcelXAccessKey == "" || c.ParcelXSecretKey == "" {
			return fmt.Errorf("parcelx enabled but PARCELX_ACCESS_KEY/PARCELX_SECRET_KEY not set")
		}
	}
	if c.RazorpayEnabled && !c.RazorpayUseMock {
		if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
			return fmt.Errorf("razorpay enabled but RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET not set")
		}
	}
	if c.CashfreeEnabled && !c.CashfreeUseMock {
		if c.CashfreeAppID == "" || c.CashfreeSecretKey == "" {
			return fmt.Errorf("cashfree enabled but CASHFREE_APP_ID/CASHFREE_SECRET_KEY not set")
		}
	}
	return nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("shiprocket.enabled", c.ShiprocketEnabled),
		attribute.Bool("ecomexpress.enabled", c.EcomExpressEnabled),
		attribute.Bool("parcelx.enabled", c.ParcelXEnabled),
		attribute.Bool("razorpay.enabled", c.RazorpayEnabled),
		attribute.Bool("cashfree.enabled", c.CashfreeEnabled),
	}
}
