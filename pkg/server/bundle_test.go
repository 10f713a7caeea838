package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/config"
)

func TestNormalizeLevel_MapsWarningToWarn(t *testing.T) {
	assert.Equal(t, "warn", normalizeLevel("warning"))
	assert.Equal(t, "info", normalizeLevel("info"))
}

func TestBuildSessionStore_Memory(t *testing.T) {
	s, err := buildSessionStore(config.SessionConfig{Persistence: "memory", TTLSeconds: 300}, nil)
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = s.Create(context.Background(), "sess-1", nil)
	assert.NoError(t, err)
}

func TestBuildSessionStore_RedisWithURLConstructs(t *testing.T) {
	s, err := buildSessionStore(config.SessionConfig{Persistence: "redis", TTLSeconds: 300, RedisURL: "redis://127.0.0.1:0"}, nil)
	require.NoError(t, err) // construction succeeds; connectivity isn't checked here
	require.NotNil(t, s)
}

func TestBuildEventStore_NoneReturnsNilStore(t *testing.T) {
	s, err := buildEventStore(config.EventStoreConfig{Persistence: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestBuildEventStore_Memory(t *testing.T) {
	s, err := buildEventStore(config.EventStoreConfig{Persistence: "memory", MaxEvents: 100})
	require.NoError(t, err)
	require.NotNil(t, s)

	id, err := s.StoreEvent(context.Background(), "stream-1", nil)
	require.NoError(t, err)
	assert.Contains(t, id, "stream-1:")
}

func TestBuild_WithEchoToolSucceeds(t *testing.T) {
	dir := t.TempDir()
	toolsPath := filepath.Join(dir, "tools.yaml")
	writeFile(t, toolsPath, `
tools:
  echo:
    required: true
    check_cmd: "echo ok"
    test_cmd: ""
    help_flag: "--help"
    description: "test echo tool"
`)

	bundle, result, err := Build(context.Background(), Options{
		ToolCatalogPath:    toolsPath,
		SkipToolValidation: true,
	})
	require.NoError(t, err)
	require.True(t, result.OK())
	require.NotNil(t, bundle)

	_, ok := bundle.Registry.Get("echo")
	assert.True(t, ok)

	require.NoError(t, bundle.Shutdown(context.Background()))
}

func TestBuild_RequiredToolMissingFailsFast(t *testing.T) {
	dir := t.TempDir()
	toolsPath := filepath.Join(dir, "tools.yaml")
	writeFile(t, toolsPath, `
tools:
  definitely-not-a-real-binary-xyz:
    required: true
    check_cmd: "definitely-not-a-real-binary-xyz --version"
`)

	_, result, err := Build(context.Background(), Options{ToolCatalogPath: toolsPath})
	require.Error(t, err)
	assert.False(t, result.OK())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
