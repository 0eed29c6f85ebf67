package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
schedule:
  gtfs_source: testdata/feed.zip
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 60*time.Second, cfg.Schedule.FetchTimeout.Std())
	assert.Equal(t, 24*time.Hour, cfg.Schedule.RefreshInterval.Std())
}

func TestLoadReadsYAML(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
  env: production
api_keys:
  - alpha
  - beta
schedule:
  provider_url: http://provider.example.com
  fetch_timeout: 30s
planner:
  max_candidates_per_side: 5
  max_results: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.APIKeys)
	assert.Equal(t, "http://provider.example.com", cfg.Schedule.ProviderURL)
	assert.Equal(t, 30*time.Second, cfg.Schedule.FetchTimeout.Std())
	assert.Equal(t, 5, cfg.Planner.MaxCandidatesPerSide)
	assert.Equal(t, 3, cfg.Planner.MaxResults)
}

func TestLoadReadsRateLimit(t *testing.T) {
	path := writeConfigFile(t, `
server:
  rate_limit: 25
schedule:
  gtfs_source: feed.zip
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Server.RateLimit)
}

func TestLoadRejectsNegativeRateLimit(t *testing.T) {
	path := writeConfigFile(t, `
server:
  rate_limit: -1
schedule:
  gtfs_source: feed.zip
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server config")
}

func TestLoadRejectsMissingSource(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule source required")
}

func TestLoadRejectsBothSources(t *testing.T) {
	path := writeConfigFile(t, `
schedule:
  provider_url: http://provider.example.com
  gtfs_source: feed.zip
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	path := writeConfigFile(t, `
server:
  env: staging
schedule:
  gtfs_source: feed.zip
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server config")
}

func TestEnvOverridesTakePrecedence(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PROVIDER_URL", "http://override.example.com")

	path := writeConfigFile(t, `
server:
  port: 8080
schedule:
  provider_url: http://provider.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "http://override.example.com", cfg.Schedule.ProviderURL)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
