package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_ISSUER", "finance-tracker")
	v.SetDefault("DEFAULT_CURRENCY", "EUR")
	v.SetDefault("RATE_LIMIT", "100-M")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"PGSQL_URL":            "postgres://localhost/finance",
		"CORS_ALLOWED_ORIGINS": "http://a.example, http://b.example ,",
	}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, insecureJWTSecret, cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction)
}

func TestFromViper_NormalizesCurrency(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"DEFAULT_CURRENCY": "usd"}))

	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
}

func TestFromViper_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{name: "missing secret in production", values: map[string]any{"IS_PRODUCTION": true}},
		{name: "bad currency", values: map[string]any{"DEFAULT_CURRENCY": "EURO"}},
		{name: "bad rate limit", values: map[string]any{"RATE_LIMIT": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			assert.Error(t, err)
		})
	}
}
