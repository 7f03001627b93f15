package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.True(t, JWTEnabled())
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		want       int
		wantErr    bool
	}{
		{name: "custom 12 hours", expiration: "12", want: 12},
		{name: "minimum 1 hour", expiration: "1", want: 1},
		{name: "one week", expiration: "168", want: 168},
		{name: "non-numeric", expiration: "invalid", wantErr: true},
		{name: "zero", expiration: "0", wantErr: true},
		{name: "negative", expiration: "-1", wantErr: true},
		{name: "float", expiration: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret-key")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "JWT_EXPIRATION_HOURS")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ExpirationHours)
		})
	}
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.False(t, JWTEnabled())
}

func TestNewRateLimitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "")
		t.Setenv("RATE_LIMIT_BURST", "")

		cfg, err := NewRateLimitConfig()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.RequestsPerMinute)
		assert.Equal(t, 5, cfg.Burst)
	})

	t.Run("custom", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
		t.Setenv("RATE_LIMIT_BURST", "10")

		cfg, err := NewRateLimitConfig()
		require.NoError(t, err)
		assert.Equal(t, 120, cfg.RequestsPerMinute)
		assert.Equal(t, 10, cfg.Burst)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

		_, err := NewRateLimitConfig()
		assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
	})
}
