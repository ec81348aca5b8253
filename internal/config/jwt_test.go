package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_ExpirationParsing(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		wantHours  int
		wantErr    bool
	}{
		{name: "one hour minimum", expiration: "1", wantHours: 1},
		{name: "half day", expiration: "12", wantHours: 12},
		{name: "two days", expiration: "48", wantHours: 48},
		{name: "one week", expiration: "168", wantHours: 168},
		{name: "zero", expiration: "0", wantErr: true},
		{name: "negative", expiration: "-1", wantErr: true},
		{name: "non-numeric", expiration: "invalid", wantErr: true},
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
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}
