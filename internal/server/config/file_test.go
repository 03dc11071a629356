package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	t.Run("loads from json", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{
			"http_addr": "www.example:8000",
			"grpc_addr": "www.example:9000",
			"database_dsn": "todo.db",
			"secret_key": "my_secret_key",
			"token_ttl": "90m",
			"login_rate_limit": 10,
			"login_rate_burst": 3,
			"janitor_schedule": "@hourly",
			"log_level": "debug",
			"otlp_endpoint": "http://otel:4318"
		}`)

		cfg := &Config{}
		require.NoError(t, parseFile(cfg, []string{"-config", path}))

		assert.Equal(t, "www.example:8000", cfg.HTTPAddr)
		assert.Equal(t, "www.example:9000", cfg.GRPCAddr)
		assert.Equal(t, "todo.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
		assert.Equal(t, 10, cfg.LoginRateLimit)
		assert.Equal(t, 3, cfg.LoginRateBurst)
		assert.Equal(t, "@hourly", cfg.JanitorSchedule)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://otel:4318", cfg.OTLPEndpoint)
	})

	t.Run("loads from toml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.toml", `
http_addr = ":8181"
secret_key = "toml-secret"
token_ttl = "2h"
login_rate_limit = 7
`)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseFile(cfg, []string{"-c", path}))

		assert.Equal(t, ":8181", cfg.HTTPAddr)
		assert.Equal(t, "toml-secret", cfg.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
		assert.Equal(t, 7, cfg.LoginRateLimit)
		assert.Equal(t, ":50051", cfg.GRPCAddr, "absent keys keep defaults")
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{HTTPAddr: "defaults:1234", TokenTTL: 2 * time.Minute}
		require.NoError(t, parseFile(cfg, []string{"-a", ":1"}))

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, 2*time.Minute, cfg.TokenTTL)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := writeTempFile(t, "bad.json", `{ this is not valid json`)
		cfg := &Config{}
		require.Error(t, parseFile(cfg, []string{"-c", bad}))
	})

	t.Run("invalid TOML → error", func(t *testing.T) {
		bad := writeTempFile(t, "bad.toml", `http_addr = `)
		cfg := &Config{}
		require.Error(t, parseFile(cfg, []string{"-c", bad}))
	})
}
