package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/map-framework/addon-mode-site/internal/config"
	"github.com/map-framework/addon-mode-site/pkg/page"
)

func load(t *testing.T, file string) (*config.Config, error) {
	t.Helper()
	v, err := config.New(file)
	require.NoError(t, err)
	return config.Load(v)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitemode.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.StoreMemory, cfg.Session.Store)
	assert.Equal(t, "__sid", cfg.Session.CookieName)
	assert.Equal(t, "site", cfg.Site.Mode)
	assert.False(t, cfg.Site.DebugResponseFile)
	assert.Equal(t, page.DefaultPattern, cfg.Templates.Pattern)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
server:
  address: ":9090"
session:
  store: redis
redis:
  url: redis://localhost:6379/0
site:
  mode: site
  session_into_response: [user, cart]
  debug_response_file: true
  xml_view: true
templates:
  dir: ./templates
  watch: true
  cache_ttl: 5m
`)

	cfg, err := load(t, path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, config.StoreRedis, cfg.Session.Store)
	assert.Equal(t, []string{"user", "cart"}, cfg.Site.SessionIntoResponse)
	assert.True(t, cfg.Site.DebugResponseFile)
	assert.True(t, cfg.Site.XMLView)
	assert.True(t, cfg.Templates.Watch)
	assert.Equal(t, 5*time.Minute, cfg.Templates.CacheTTL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SITEMODE_SERVER_ADDRESS", ":7070")
	t.Setenv("SITEMODE_SITE_DEBUG_RESPONSE_FILE", "true")
	t.Setenv("SITEMODE_SITE_SESSION_INTO_RESPONSE", "user,cart")

	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.True(t, cfg.Site.DebugResponseFile)
	assert.Equal(t, []string{"user", "cart"}, cfg.Site.SessionIntoResponse)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.New(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		cfg, err := load(t, "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name  string
		tweak func(*config.Config)
	}{
		{"unknown store", func(c *config.Config) { c.Session.Store = "etcd" }},
		{"redis without url", func(c *config.Config) { c.Session.Store = config.StoreRedis }},
		{"postgres without url", func(c *config.Config) { c.Session.Store = config.StorePostgres }},
		{"debug key without storage", func(c *config.Config) { c.Site.DebugStorageKey = "debug.xml" }},
		{"pattern without page", func(c *config.Config) { c.Templates.Pattern = "area/{area}.gohtml" }},
		{"watch without dir", func(c *config.Config) { c.Templates.Watch = true }},
		{"empty session group", func(c *config.Config) { c.Site.SessionIntoResponse = []string{""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.tweak(cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestYAML_RedactsSecrets(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)
	cfg.Database.URL = "postgres://app:hunter2@db:5432/site"
	cfg.Redis.URL = "redis://:topsecret@cache:6379/0"
	cfg.Storage.SecretKey = "s3-secret"

	out, err := cfg.YAML()
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "hunter2")
	assert.NotContains(t, text, "topsecret")
	assert.NotContains(t, text, "s3-secret")
	assert.Contains(t, text, "postgres://app:xxxxx@db:5432/site")

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Contains(t, back, "site")
	assert.Equal(t, "postgres://app:hunter2@db:5432/site", cfg.Database.URL)
}
