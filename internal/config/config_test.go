package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/burnrate")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 5, cfg.DefaultWindow)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.False(t, cfg.ArchiveEnabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/burnrate")
	t.Setenv("PORT", "9090")
	t.Setenv("CURRENCY", "chf")
	t.Setenv("DEFAULT_WINDOW", "12")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ARCHIVE_ENABLED", "true")
	t.Setenv("S3_BUCKET", "reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "CHF", cfg.Currency)
	assert.Equal(t, 12, cfg.DefaultWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.ArchiveEnabled)
	assert.Equal(t, "reports", cfg.S3.Bucket)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/burnrate")
	t.Setenv("DEFAULT_WINDOW", "many")
	t.Setenv("ARCHIVE_ENABLED", "perhaps")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.DefaultWindow)
	assert.False(t, cfg.ArchiveEnabled)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"zero window", map[string]string{"DEFAULT_WINDOW": "0"}},
		{"negative rate limit", map[string]string{"RATE_LIMIT_PER_MINUTE": "-5"}},
		{"bad currency", map[string]string{"CURRENCY": "EURO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/burnrate")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
