package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_SOURCE", "HTTP_ADDR", "REQUEST_TIMEOUT_SEC", "DEFAULT_INTEREST_RATE_PCT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "csv", cfg.DataSource)
	assert.Equal(t, ":5001", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8.5, cfg.DefaultInterestRatePct)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "SQLite")
	t.Setenv("ROI_MODEL_TIMEOUT_MS", "500")
	t.Setenv("DEFAULT_DOWN_PAYMENT_PCT", "25.5")
	t.Setenv("MAX_CONCURRENCY", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DataSource)
	assert.Equal(t, 500*time.Millisecond, cfg.ROIModelTimeout)
	assert.Equal(t, 25.5, cfg.DefaultDownPaymentPct)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
