package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("SHOP_NAME", "")

	cfg := Load()

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "Simple Shop", cfg.Shop.Name)
	assert.Equal(t, "EUR", cfg.Shop.Currency)
	assert.Equal(t, "dir", cfg.Catalog.Source)
}

func TestLoadOverrides(t *testing.T) {
	t.Run("PORT used when HTTP_PORT missing", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "")
		t.Setenv("PORT", "8088")
		assert.Equal(t, 8088, Load().HTTPPort)
	})

	t.Run("bad int -> default", func(t *testing.T) {
		t.Setenv("GRPC_PORT", "nope")
		assert.Equal(t, 3001, Load().GRPCPort)
	})

	t.Run("MAIL_FROM falls back to SMTP_USER", func(t *testing.T) {
		t.Setenv("MAIL_FROM", "")
		t.Setenv("SMTP_USER", "shop@example.com")
		assert.Equal(t, "shop@example.com", Load().Mail.From)
	})

	t.Run("CORS list trimmed", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, Load().HTTP.CORSOrigins)
	})

	t.Run("trusted proxies off by default", func(t *testing.T) {
		t.Setenv("TRUSTED_PROXIES", "")
		assert.Empty(t, Load().HTTP.TrustedProxies)

		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
		assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, Load().HTTP.TrustedProxies)
	})

	t.Run("SMTP_SECURE parsed", func(t *testing.T) {
		t.Setenv("SMTP_SECURE", "true")
		assert.True(t, Load().Mail.SMTPSecure)
	})
}
