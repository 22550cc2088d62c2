package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, time.Hour, cfg.AccessTokenLifetime())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenLifetime())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, `^https://.*\.onrender\.com$`, cfg.CORSAllowedOriginPattern)
	assert.False(t, cfg.IsProduction())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ruedo.co,https://admin.ruedo.co")
	t.Setenv("ACCESS_TOKEN_LIFETIME_MINUTES", "15")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, []string{"https://ruedo.co", "https://admin.ruedo.co"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenLifetime())
}

func TestProductionRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret-from-the-vault")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestInvalidPageSize(t *testing.T) {
	t.Setenv("PAGE_SIZE", "0")
	_, err := Parse()
	assert.Error(t, err)
}

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := OpenSQLite("config_test")
	require.NoError(t, err)

	for _, table := range []string{"users", "categories", "events", "saved_events", "news_articles", "content_blocks", "interviews"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
