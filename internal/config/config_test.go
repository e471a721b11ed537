package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "SESSION_TTL", "ALLOWED_ORIGINS", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "DELIVERY_FEE", "APP_ENV", "PUBLIC_BASE_URL"} {
		t.Setenv(key, "")
	}

	Load()

	assert.Equal(t, "5001", AppEnv.Port)
	assert.Equal(t, "storefront", AppEnv.DBName)
	assert.Equal(t, 7*24*time.Hour, AppEnv.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, AppEnv.AllowedOrigins)
	assert.Equal(t, 300, AppEnv.RateLimitMax)
	assert.Equal(t, 15*time.Minute, AppEnv.RateLimitWindow)
	assert.Equal(t, 5.0, AppEnv.DeliveryFee)
	assert.False(t, AppEnv.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "2")
	t.Setenv("ALLOWED_ORIGINS", " https://shop.example.com , ,https://admin.example.com")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DELIVERY_FEE", "0")
	t.Setenv("RATE_LIMIT_MAX", "-4")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com/")

	Load()

	assert.Equal(t, 48*time.Hour, AppEnv.SessionTTL)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, AppEnv.AllowedOrigins)
	assert.True(t, AppEnv.IsProduction())
	assert.Equal(t, 0.0, AppEnv.DeliveryFee)
	assert.Equal(t, 300, AppEnv.RateLimitMax)
	assert.Equal(t, "https://cdn.example.com", AppEnv.PublicBaseURL)
}
