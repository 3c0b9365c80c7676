package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML files. Durations are Go duration strings.
type fileConfig struct {
	Env               string `yaml:"env"`
	HTTPAddr          string `yaml:"http_addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
	APIBaseURL        string `yaml:"api_base_url"`
	SessionCookie     string `yaml:"session_cookie"`
	CookieSecure      *bool  `yaml:"cookie_secure"`
	QueryStaleTime    string `yaml:"query_stale_time"`
	ScopeIdleTTL      string `yaml:"scope_idle_ttl"`
	ToastDuration     string `yaml:"toast_duration"`
	NavigationDelay   string `yaml:"navigation_delay"`
	EditorFormat      string `yaml:"editor_format"`
	EditorHeight      int    `yaml:"editor_height"`
}

// LoadFile reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	if path == "" {
		return Load(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("%s: parse %s: %w", op, path, err)
	}
	cfg, err := fc.apply(Defaults())
	if err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", op, path, err)
	}
	return applyEnv(cfg), nil
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	setString(&cfg.Env, fc.Env)
	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.SessionCookie, fc.SessionCookie)
	setString(&cfg.EditorFormat, fc.EditorFormat)
	if fc.CookieSecure != nil {
		cfg.CookieSecure = *fc.CookieSecure
	}
	if fc.EditorHeight > 0 {
		cfg.EditorHeight = fc.EditorHeight
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"read_header_timeout", fc.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"shutdown_timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout},
		{"query_stale_time", fc.QueryStaleTime, &cfg.QueryStaleTime},
		{"scope_idle_ttl", fc.ScopeIdleTTL, &cfg.ScopeIdleTTL},
		{"toast_duration", fc.ToastDuration, &cfg.ToastDuration},
		{"navigation_delay", fc.NavigationDelay, &cfg.NavigationDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = v
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
