package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/tarefas-api/internal/config"
)

func TestLoad(t *testing.T) {
	validSecret := "0123456789abcdef0123456789abcdef"

	t.Run("loads from environment with defaults", func(t *testing.T) {
		t.Setenv("TAREFAS_DATABASE_URL", "postgres://localhost:5432/tarefas")
		t.Setenv("TAREFAS_AUTH_JWT_SECRET", validSecret)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, 30, cfg.Server.RequestTimeoutSeconds)
		assert.Equal(t, "postgres://localhost:5432/tarefas", cfg.Database.URL)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 1440, cfg.Auth.TokenLifetimeMinutes)
		assert.Equal(t, 10, cfg.Auth.BcryptCost)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("TAREFAS_DATABASE_URL", "postgres://localhost:5432/tarefas")
		t.Setenv("TAREFAS_AUTH_JWT_SECRET", validSecret)
		t.Setenv("TAREFAS_SERVER_PORT", "9090")
		t.Setenv("TAREFAS_SERVER_LOG_LEVEL", "debug")
		t.Setenv("TAREFAS_AUTH_TOKEN_LIFETIME_MINUTES", "60")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	})

	t.Run("missing database URL fails validation", func(t *testing.T) {
		t.Setenv("TAREFAS_AUTH_JWT_SECRET", validSecret)

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("short JWT secret fails validation", func(t *testing.T) {
		t.Setenv("TAREFAS_DATABASE_URL", "postgres://localhost:5432/tarefas")
		t.Setenv("TAREFAS_AUTH_JWT_SECRET", "too-short")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("invalid log level fails validation", func(t *testing.T) {
		t.Setenv("TAREFAS_DATABASE_URL", "postgres://localhost:5432/tarefas")
		t.Setenv("TAREFAS_AUTH_JWT_SECRET", validSecret)
		t.Setenv("TAREFAS_SERVER_LOG_LEVEL", "verbose")

		_, err := config.Load()
		require.Error(t, err)
	})
}
