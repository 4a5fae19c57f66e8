package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("ADMIN_PASSWORD", "s3cret-admin")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "database.sqlite", cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "kingyumyum", cfg.AdminUsername)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.ValidateOrderItems)
	assert.Equal(t, "*", cfg.CORSOrigin)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost user=app dbname=restaurant")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("ORDER_VALIDATE_ITEMS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.ValidateOrderItems)
}

func TestLoadFailsWithoutSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:       DriverSQLite,
			JWTSecret:      "0123456789abcdef",
			AdminPassword:  "pw",
			TokenTTL:       time.Hour,
			BcryptCost:     10,
			MaxUploadBytes: 1024,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }},
		{"empty admin password", func(c *Config) { c.AdminPassword = "" }},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 2 }},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 40 }},
		{"zero upload cap", func(c *Config) { c.MaxUploadBytes = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
