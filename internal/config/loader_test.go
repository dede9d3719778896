package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("RBT_TEST_HOST", "redis.internal")

	assert.Equal(t, "host: redis.internal", expandEnv("host: ${RBT_TEST_HOST}"))
	assert.Equal(t, "host: redis.internal", expandEnv("host: ${RBT_TEST_HOST:localhost}"))
	assert.Equal(t, "port: 6379", expandEnv("port: ${RBT_TEST_UNSET_PORT:6379}"))
	assert.Equal(t, "password: ", expandEnv("password: ${RBT_TEST_UNSET_PASSWORD:}"))
	assert.Equal(t, "key: ${RBT_TEST_UNSET_KEY}", expandEnv("key: ${RBT_TEST_UNSET_KEY}"))
}

func TestLoadFrom_DefaultsWithoutFiles(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "rbt-notepad", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.HTTP.WriteTimeout)
	assert.False(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Models.Note)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Models.Ideas)
	assert.Equal(t, 2*time.Hour, cfg.Workspace.IdleTTL)
	assert.Equal(t, "rbt_workspace", cfg.Workspace.CookieName)
	assert.Equal(t, 365*24*time.Hour, cfg.Workspace.CookieMaxAge)
	assert.Equal(t, 30, cfg.Security.RateLimit.RequestsPerMinute)
}

func TestLoadFrom_EnvironmentFileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	base := "app:\n  name: notes\nworkspace:\n  idle_ttl: ${RBT_TEST_TTL:30m}\nllm:\n  models:\n    note: base-model\n"
	override := "llm:\n  models:\n    note: staging-model\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(override), 0o644))

	t.Setenv("APP_ENV", "staging")
	t.Setenv("RBT_TEST_TTL", "45m")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "notes", cfg.App.Name)
	assert.Equal(t, "staging-model", cfg.LLM.Models.Note)
	assert.Equal(t, 45*time.Minute, cfg.Workspace.IdleTTL)
}

func TestLoadFrom_APIKeyEnvAliases(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "from-gemini")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-gemini", cfg.LLM.APIKey)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app: [unclosed"), 0o644))

	_, err := LoadFrom(dir)
	require.Error(t, err)
}
