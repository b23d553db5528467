package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishalpatwa-in/ecommerce-platform/internal/config"
)

func mockModeConfig() *config.Config {
	return &config.Config{
		ShiprocketEnabled:  true,
		ShiprocketUseMock:  true,
		EcomExpressEnabled: true,
		EcomExpressUseMock: true,
		ParcelXEnabled:     true,
		ParcelXUseMock:     true,
		RazorpayEnabled:    true,
		RazorpayUseMock:    true,
		CashfreeEnabled:    true,
		CashfreeUseMock:    true,
	}
}

func TestValidate_MockModeNeedsNoCredentials(t *testing.T) {
	cfg := mockModeConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_EnabledProviderWithoutCredentials(t *testing.T) {
	cfg := mockModeConfig()
	cfg.ShiprocketUseMock = false

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHIPROCKET_EMAIL")
}

func TestValidate_CredentialsSatisfyEnabledProvider(t *testing.T) {
	cfg := mockModeConfig()
	cfg.RazorpayUseMock = false
	cfg.RazorpayKeyID = "rzp_test_key"
	cfg.RazorpayKeySecret = "secret"

	require.NoError(t, cfg.Validate())
}

func TestValidate_DisabledProviderSkipsCheck(t *testing.T) {
	cfg := mockModeConfig()
	cfg.CashfreeUseMock = false
	cfg.CashfreeEnabled = false

	require.NoError(t, cfg.Validate())
}
