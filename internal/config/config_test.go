package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opsmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith("", map[string]string{})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8080", cfg.Core.URL)
	assert.Empty(t, cfg.Core.Token)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.True(t, cfg.HTTPEnabled())
	assert.Equal(t, ":7070", cfg.HTTPAddr())
	assert.Empty(t, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, cfg.HTTP.AllowedHosts)
	assert.False(t, cfg.Tools.EnableMutations)
}

func TestLoadWith_Environment(t *testing.T) {
	cfg, err := LoadWith("", map[string]string{
		"CORE_API_URL":                "https://core.internal/api",
		"CORE_API_TOKEN":              "s3cret",
		"CORE_TIMEOUT_MS":             "2500",
		"LOG_LEVEL":                   "DEBUG",
		"LOG_FORMAT":                  "json",
		"MCP_HTTP_PORT":               "0",
		"MCP_ALLOWED_ORIGINS":         "https://a.example, https://b.example",
		"MCP_ALLOWED_HOSTS":           "gateway.internal",
		"OPSMCP_ENABLE_MUTATIONS":     "true",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "http://collector:4318",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://core.internal/api", cfg.Core.URL)
	assert.Equal(t, "s3cret", cfg.Core.Token)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.HTTPEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, []string{"gateway.internal"}, cfg.HTTP.AllowedHosts)
	assert.True(t, cfg.Tools.EnableMutations)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
}

func TestLoadWith_FileThenEnvironment(t *testing.T) {
	path := writeFile(t, `
core:
  url: http://core.from.file:9000
  timeout_ms: 3000
log:
  level: warn
http:
  port: 8081
  allowed_hosts:
    - opsmcp.local
tools:
  enable_mutations: true
`)
	cfg, err := LoadWith(path, map[string]string{"CORE_TIMEOUT_MS": "4000"})
	require.NoError(t, err)

	assert.Equal(t, "http://core.from.file:9000", cfg.Core.URL)
	assert.Equal(t, 4*time.Second, cfg.Timeout(), "environment wins over file")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "default kept")
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, []string{"opsmcp.local"}, cfg.HTTP.AllowedHosts)
	assert.True(t, cfg.Tools.EnableMutations)
}

func TestLoadWith_FileCommaSeparatedList(t *testing.T) {
	path := writeFile(t, "http:\n  allowed_origins: https://a.example,https://b.example\n")
	cfg, err := LoadWith(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, cfg.HTTP.AllowedHosts)
}

func TestLoadWith_FileErrors(t *testing.T) {
	_, err := LoadWith(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "read config file")

	_, err = LoadWith(writeFile(t, "core: [unclosed"), nil)
	assert.ErrorContains(t, err, "parse config file")

	_, err = LoadWith(writeFile(t, "core:\n  uri: http://typo\n"), nil)
	assert.ErrorContains(t, err, "decode config file")
}

func TestLoadWith_EmptyFile(t *testing.T) {
	cfg, err := LoadWith(writeFile(t, ""), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default().Core, cfg.Core)
}

func TestLoadWith_BadEnvironmentValue(t *testing.T) {
	_, err := LoadWith("", map[string]string{"CORE_TIMEOUT_MS": "soon"})
	assert.ErrorContains(t, err, "read environment")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"ftp scheme":     func(c *Config) { c.Core.URL = "ftp://core" },
		"no host":        func(c *Config) { c.Core.URL = "http://" },
		"zero timeout":   func(c *Config) { c.Core.TimeoutMS = 0 },
		"level":          func(c *Config) { c.Log.Level = "loud" },
		"format":         func(c *Config) { c.Log.Format = "xml" },
		"negative port":  func(c *Config) { c.HTTP.Port = -1 },
		"port too large": func(c *Config) { c.HTTP.Port = 70000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Core.TimeoutMS = -5
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.Contains(t, err.Error(), "log format")
}
