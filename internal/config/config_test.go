package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"POSTGRES_DSN":    "postgres://localhost/users",
		"AUTH_JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "auth_token", cfg.Auth.CookieName)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"POSTGRES_DSN": "postgres://localhost/users",
	}))
	require.Error(t, err)

	_, err = LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"POSTGRES_DSN":    "postgres://localhost/users",
		"AUTH_JWT_SECRET": "   ",
	}))
	require.Error(t, err)
}

func TestLoadFrom_Production(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"POSTGRES_DSN":                  "postgres://localhost/users",
		"AUTH_JWT_SECRET":               "s3cret",
		"APP_ENV":                       "Production",
		"AUTH_ACCESS_TOKEN_TTL_MINUTES": "15",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
}
