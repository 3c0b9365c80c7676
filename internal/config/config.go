package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env string

	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// APIBaseURL is the root of the upstream notes REST API.
	APIBaseURL string

	SessionCookie string
	CookieSecure  bool

	QueryStaleTime  time.Duration
	ScopeIdleTTL    time.Duration
	ToastDuration   time.Duration
	NavigationDelay time.Duration

	EditorFormat string
	EditorHeight int
}

func Defaults() Config {
	return Config{
		Env:               "local",
		HTTPAddr:          ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		APIBaseURL:        "http://localhost:5000",
		SessionCookie:     "notely_sid",
		CookieSecure:      false,
		QueryStaleTime:    0,
		ScopeIdleTTL:      30 * time.Minute,
		ToastDuration:     5 * time.Second,
		NavigationDelay:   300 * time.Millisecond,
		EditorFormat:      "html",
		EditorHeight:      300,
	}
}

// Load returns the defaults overridden by environment variables.
func Load() Config {
	return applyEnv(Defaults())
}

func applyEnv(def Config) Config {
	return Config{
		Env:               getenv("ENV", def.Env),
		HTTPAddr:          getenv("HTTP_ADDR", def.HTTPAddr),
		ReadHeaderTimeout: getenvDuration("READ_HEADER_TIMEOUT", def.ReadHeaderTimeout),
		ShutdownTimeout:   getenvDuration("SHUTDOWN_TIMEOUT", def.ShutdownTimeout),
		APIBaseURL:        getenv("API_BASE_URL", def.APIBaseURL),
		SessionCookie:     getenv("SESSION_COOKIE", def.SessionCookie),
		CookieSecure:      getenvBool("COOKIE_SECURE", def.CookieSecure),
		QueryStaleTime:    getenvDuration("QUERY_STALE_TIME", def.QueryStaleTime),
		ScopeIdleTTL:      getenvDuration("SCOPE_IDLE_TTL", def.ScopeIdleTTL),
		ToastDuration:     getenvDuration("TOAST_DURATION", def.ToastDuration),
		NavigationDelay:   getenvDuration("NAVIGATION_DELAY", def.NavigationDelay),
		EditorFormat:      getenv("EDITOR_FORMAT", def.EditorFormat),
		EditorHeight:      getenvInt("EDITOR_HEIGHT", def.EditorHeight),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
