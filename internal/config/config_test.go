package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:9000", cfg.BackendURL)
	assert.Equal(t, "KES", cfg.Currency)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 50, cfg.RateLimitRPS)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	// The shared secret is required and must not be blank.
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STOREFRONT_HTTP_PORT", "8181")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("CURRENCY", "USD")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "bad port",
			env:    map[string]string{"STOREFRONT_HTTP_PORT": "0"},
			errMsg: "invalid HTTP port",
		},
		{
			name:   "bad backend url",
			env:    map[string]string{"BACKEND_API_URL": "not-a-url"},
			errMsg: "invalid backend API URL",
		},
		{
			name:   "bad currency",
			env:    map[string]string{"CURRENCY": "SHILLINGS"},
			errMsg: "currency must be a 3-letter ISO code",
		},
		{
			name:   "bad breaker ratio",
			env:    map[string]string{"BACKEND_BREAKER_FAILURE_RATIO": "1.5"},
			errMsg: "breaker failure ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
