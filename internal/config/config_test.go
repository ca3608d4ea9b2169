package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerPort:     "8080",
		RequestTimeout: 30 * time.Second,
		DatabaseURL:    "postgres://localhost:5432/partsmarket",
		DBMaxConns:     10,
		DBMinConns:     2,
		JWTSecret:      "secret",
		JWTTTL:         24 * time.Hour,
		BcryptCost:     10,
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("missing JWT secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "   "
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing database URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive token TTL", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.BcryptCost = 3
		assert.Error(t, cfg.Validate())

		cfg.BcryptCost = 32
		assert.Error(t, cfg.Validate())
	})

	t.Run("inverted pool sizing", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBMinConns = 20
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/partsmarket")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 100, cfg.RateLimitRPM)
	assert.Equal(t, 10, cfg.AuthRateLimitRPM)
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/partsmarket")

	_, err := Load()
	assert.Error(t, err)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b "))
	assert.Nil(t, splitCSV("  "))
	assert.Equal(t, []string{"*"}, splitCSV("*"))
}
