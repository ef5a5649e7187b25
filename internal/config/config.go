// Package config loads the gateway settings: built-in defaults, then an
// optional YAML file, then environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/opsmcp/internal/logging"
)

// Config is the process-wide configuration. It is built once at startup
// and only read afterwards.
type Config struct {
	Core  CoreConfig  `mapstructure:"core"`
	Log   LogConfig   `mapstructure:"log"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	Tools ToolsConfig `mapstructure:"tools"`

	// OTLPEndpoint enables trace export. Environment only.
	OTLPEndpoint string `mapstructure:"-" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type CoreConfig struct {
	URL       string `mapstructure:"url" env:"CORE_API_URL"`
	Token     string `mapstructure:"token" env:"CORE_API_TOKEN"`
	TimeoutMS int    `mapstructure:"timeout_ms" env:"CORE_TIMEOUT_MS"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" env:"LOG_LEVEL"`
	Format string `mapstructure:"format" env:"LOG_FORMAT"`
}

type HTTPConfig struct {
	Port           int      `mapstructure:"port" env:"MCP_HTTP_PORT"`
	AllowedOrigins []string `mapstructure:"allowed_origins" env:"MCP_ALLOWED_ORIGINS" envSeparator:","`
	AllowedHosts   []string `mapstructure:"allowed_hosts" env:"MCP_ALLOWED_HOSTS" envSeparator:","`
}

type ToolsConfig struct {
	EnableMutations bool `mapstructure:"enable_mutations" env:"OPSMCP_ENABLE_MUTATIONS"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Core: CoreConfig{
			URL:       "http://localhost:8080",
			TimeoutMS: 15000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		HTTP: HTTPConfig{
			Port:         7070,
			AllowedHosts: []string{"localhost", "127.0.0.1"},
		},
	}
}

// Load reads path (optional) and the process environment.
func Load(path string) (Config, error) {
	return LoadWith(path, environ())
}

// LoadWith is Load with an explicit environment, for tests.
func LoadWith(path string, environment map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if len(tree) == 0 {
		return nil
	}

	// mapstructure decodes lists into existing slices element by element, so
	// the defaults are cleared first and restored if the file leaves them out.
	hosts, origins := cfg.HTTP.AllowedHosts, cfg.HTTP.AllowedOrigins
	cfg.HTTP.AllowedHosts, cfg.HTTP.AllowedOrigins = nil, nil
	defer func() {
		if cfg.HTTP.AllowedHosts == nil {
			cfg.HTTP.AllowedHosts = hosts
		}
		if cfg.HTTP.AllowedOrigins == nil {
			cfg.HTTP.AllowedOrigins = origins
		}
	}()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Core.URL = strings.TrimSpace(c.Core.URL)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.HTTP.AllowedOrigins = compact(c.HTTP.AllowedOrigins)
	c.HTTP.AllowedHosts = compact(c.HTTP.AllowedHosts)
}

func compact(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Core.URL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("core url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("core url %q: scheme must be http or https", c.Core.URL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("core url %q: missing host", c.Core.URL))
	}
	if c.Core.TimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("core timeout must be positive, got %dms", c.Core.TimeoutMS))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http port %d out of range", c.HTTP.Port))
	}
	return errors.Join(errs...)
}

// Timeout returns the Core request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Core.TimeoutMS) * time.Millisecond
}

// HTTPEnabled reports whether the network listener should start.
func (c Config) HTTPEnabled() bool { return c.HTTP.Port != 0 }

// HTTPAddr is the listen address for the network listener.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

func environ() map[string]string {
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
