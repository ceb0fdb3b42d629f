package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Migrations.AutoMigrate)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_LOCK_TIMEOUT", "750ms")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.DB.LockTimeout)
	assert.True(t, cfg.Migrations.AutoMigrate)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"sin secreto en producción", func(c *Config) { c.App.Env = "production"; c.JWT.Secret = "" }, "JWT_SECRET"},
		{"lock timeout cero", func(c *Config) { c.DB.LockTimeout = 0 }, "DB_LOCK_TIMEOUT"},
		{"max conns cero", func(c *Config) { c.DB.MaxConns = 0 }, "DB_MAX_CONNS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				App: AppConfig{Env: "production"},
				DB:  DBConfig{LockTimeout: time.Second, MaxConns: 5},
				JWT: JWTConfig{Secret: "x", Expiration: 60},
			}
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/almacen?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
