package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronica/backend/pkg/apperrors"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NMKR_BASE_URL", "https://studio-api.preprod.nmkr.io")
	t.Setenv("NMKR_API_KEY", "test-key")
	t.Setenv("NMKR_PROJECT_UID", "project-uid")
	t.Setenv("NMKR_POLICY_ID", "7fa9e497b57458a394dd4e58604aeb29b90cce2e07640306920a05b1")
	t.Setenv("NMKR_RECEIVER_ADDRESS", "addr_test1example")
}

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "preprod", cfg.CardanoNetwork)
	assert.Equal(t, "https://ipfs.io/ipfs/", cfg.IPFSMediaBaseURL)
	assert.Equal(t, "https://cardano-preprod.blockfrost.io/api/v0", cfg.BlockfrostBaseURL)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.GeocodingBaseURL)
	assert.False(t, cfg.MintOnCreate)
	assert.InDelta(t, 0.05, cfg.QRSizeFraction, 1e-9)
	assert.InDelta(t, 0.7, cfg.QRBackgroundOpacity, 1e-9)
	assert.Equal(t, 10, cfg.QRMargin)
	assert.Equal(t, "bottom-right", cfg.QRPosition)
	assert.Equal(t, int64(50*1024*1024), cfg.UploadMaxSize)
	assert.Equal(t, 100, cfg.UploadMaxPerDay)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, time.Minute, cfg.RateLimitDuration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MINT_NFTS", "true")
	t.Setenv("CARDANO_NETWORK", "mainnet")
	t.Setenv("NMKR_CUSTOMER_ID", "12345")
	t.Setenv("QR_SIZE_FRACTION", "0.1")
	t.Setenv("QR_POSITION", "top-left")
	t.Setenv("UPLOAD_MAX_SIZE", "1048576")
	t.Setenv("RATE_LIMIT_DURATION", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://chronica.example,https://app.chronica.example")

	cfg := New()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.MintOnCreate)
	assert.Equal(t, "mainnet", cfg.CardanoNetwork)
	assert.Equal(t, 12345, cfg.NMKRCustomerID)
	assert.InDelta(t, 0.1, cfg.QRSizeFraction, 1e-9)
	assert.Equal(t, "top-left", cfg.QRPosition)
	assert.Equal(t, int64(1048576), cfg.UploadMaxSize)
	assert.Equal(t, 30*time.Second, cfg.RateLimitDuration)
	assert.Equal(t, []string{"https://chronica.example", "https://app.chronica.example"}, cfg.AllowedOrigins)
}

func TestNew_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("NMKR_CUSTOMER_ID", "not-a-number")
	t.Setenv("QR_SIZE_FRACTION", "huge")
	t.Setenv("RATE_LIMIT_DURATION", "forever")

	cfg := New()

	assert.Equal(t, 0, cfg.NMKRCustomerID)
	assert.InDelta(t, 0.05, cfg.QRSizeFraction, 1e-9)
	assert.Equal(t, time.Minute, cfg.RateLimitDuration)
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, New().Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	keys := []string{
		"NMKR_BASE_URL",
		"NMKR_API_KEY",
		"NMKR_PROJECT_UID",
		"NMKR_POLICY_ID",
		"NMKR_RECEIVER_ADDRESS",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			err := New().Validate()
			require.Error(t, err)

			var cfgErr *apperrors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, key+" environment variable is required", cfgErr.Message)
		})
	}
}
