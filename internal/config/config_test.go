package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadFrom_File(t *testing.T) {
	dir := writeConfig(t, `
feed:
  root_url: "http://feed.test/categories"
  category_items_url: "http://feed.test/videos/"
  proxies: ["http://proxy-a:8080", "http://proxy-b:8080"]
labels:
  enabled: false
redis:
  port: 6380
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://feed.test/categories", cfg.Feed.RootURL)
	assert.Equal(t, "http://feed.test/videos/", cfg.Feed.CategoryItemsURL)
	assert.Equal(t, []string{"http://proxy-a:8080", "http://proxy-b:8080"}, cfg.Feed.Proxies)
	assert.Equal(t, 30, cfg.Feed.Timeout)
	assert.Equal(t, 10, cfg.Feed.MaxRequestsPerSecond)
	assert.False(t, cfg.Labels.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
feed:
  root_url: "http://feed.test/categories"
  category_items_url: "http://feed.test/videos/"
`)
	t.Setenv("FEED_ROOT_URL", "http://other.test/root")
	t.Setenv("DATABASE_PORT", "6543")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://other.test/root", cfg.Feed.RootURL)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
}

func TestLoadFrom_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("FEED_ROOT_URL", "http://feed.test/categories")
	t.Setenv("FEED_CATEGORY_ITEMS_URL", "http://feed.test/videos/")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://feed.test/videos/", cfg.Feed.CategoryItemsURL)
	assert.True(t, cfg.Labels.Enabled)
	assert.Equal(t, "GLOBALSEARCH", cfg.Labels.GlobalSearch)
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Run("missing root url", func(t *testing.T) {
		_, err := LoadFrom(t.TempDir())
		assert.ErrorContains(t, err, "feed.root_url is required")
	})

	t.Run("bad yaml", func(t *testing.T) {
		dir := writeConfig(t, "feed: [unterminated")
		_, err := LoadFrom(dir)
		assert.ErrorContains(t, err, "error reading config file")
	})

	t.Run("zero rate", func(t *testing.T) {
		dir := writeConfig(t, `
feed:
  root_url: "http://feed.test/categories"
  category_items_url: "http://feed.test/videos/"
  max_requests_per_second: 0
`)
		_, err := LoadFrom(dir)
		assert.ErrorContains(t, err, "max_requests_per_second")
	})
}
