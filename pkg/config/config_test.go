package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, "memory", cfg.Session.Persistence)
	assert.Equal(t, "none", cfg.EventStore.Persistence)
}

func TestValidateCrossField(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		wantErrs int
	}{
		{
			name:     "redis session without url",
			modify:   func(c *Config) { c.Session.Persistence = "redis" },
			wantErrs: 1,
		},
		{
			name: "redis session with url is fine",
			modify: func(c *Config) {
				c.Session.Persistence = "redis"
				c.Session.RedisURL = "redis://localhost:6379"
			},
			wantErrs: 0,
		},
		{
			name:     "redis event store without url",
			modify:   func(c *Config) { c.EventStore.Persistence = "redis" },
			wantErrs: 1,
		},
		{
			name:     "bad transport",
			modify:   func(c *Config) { c.Server.Transport = "carrier-pigeon" },
			wantErrs: 1,
		},
		{
			name:     "port out of range",
			modify:   func(c *Config) { c.Server.Port = 0 },
			wantErrs: 1,
		},
		{
			name:     "timeout out of range",
			modify:   func(c *Config) { c.Command.DefaultTimeout = 0 },
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			errs := cfg.Validate()
			assert.Len(t, errs, tt.wantErrs)
		})
	}
}

func TestLoaderMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
session:
  persistence: redis
  redis_url: redis://cache:6379
`), 0o644))

	loader := NewLoader(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "stdio", cfg.Server.Transport) // default preserved
	assert.Equal(t, "redis", cfg.Session.Persistence)
	assert.Equal(t, "redis://cache:6379", cfg.Session.RedisURL)
}

func TestLoaderToleratesMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoaderEnvOverride(t *testing.T) {
	t.Setenv("K8SMCP_SERVER_PORT", "6543")
	loader := NewLoader("")
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Server.Port)
}
