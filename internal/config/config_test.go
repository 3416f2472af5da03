package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Environment: "production"},
		Database: DatabaseConfig{
			Host:   "localhost",
			DBName: "smartiq",
		},
		JWT:  JWTConfig{Secret: "secret", ExpiryHours: 1},
		Auth: AuthConfig{AdminResetToken: "admin-token"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiresDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateFailsClosedOutsideDevelopment(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.AdminResetToken = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRelaxedInDevelopment(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Environment = "development"
	cfg.JWT.Secret = ""
	cfg.Auth.AdminResetToken = ""
	assert.NoError(t, cfg.Validate())
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.IsDevelopment())

	cfg.Server.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "pw",
		DBName: "smartiq", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=pw dbname=smartiq sslmode=disable",
		db.DSN(),
	)
}
