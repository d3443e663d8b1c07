package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ACCESS_TOKEN_TTL", "24h")
	t.Setenv("MATCHING_TIMEZONE", "Europe/Zurich")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/servantin?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "Europe/Zurich", cfg.Location().String())
	assert.Equal(t, "postgres://u:p@db:5432/servantin?sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://servantin.ch")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://servantin.ch , https://admin.servantin.ch ,")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://servantin.ch", "https://admin.servantin.ch"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	t.Setenv("MATCHING_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MATCHING_TIMEZONE", "UTC")
	t.Setenv("RATE_LIMIT_PERIOD", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestDatabaseURLFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_HOST", "db")
	t.Setenv("POSTGRESQL_USER", "app")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "servantin")
	t.Setenv("POSTGRESQL_PORT", "5433")

	assert.Equal(t, "postgres://app:p%40ss@db:5433/servantin?sslmode=disable", getDatabaseURL())
}
