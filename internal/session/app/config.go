package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/foliodesk/folio/pkg/jwtx"
)

type Config struct {
	SessionSecret []byte // Required: HS256 signing secret, min 32 bytes
	Issuer        string // Optional: issuer claim embedded and enforced on tokens
	Audience      string // Optional: audience claim embedded and enforced on tokens

	SessionDuration  time.Duration // Validity of each issued token (default: 30m)
	RefreshThreshold time.Duration // Remaining time below which rotation occurs (default: 10m)
	MaxLifetime      time.Duration // Absolute session ceiling across rotations (default: 12h)

	CookieName    string // Session cookie name (default: folio_session)
	LoginPath     string // Redirect target for unauthenticated requests (default: /login)
	DashboardPath string // Redirect target for unauthorized requests (default: /dashboard)

	DatabaseFile        string        // Path to SQLite database file (default: ./folio.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SessionSecret: []byte(os.Getenv("FOLIO_SESSION_SECRET")),
		Issuer:        os.Getenv("FOLIO_ISSUER"),
		Audience:      os.Getenv("FOLIO_AUDIENCE"),

		SessionDuration:  getEnvDurationOrDefault("FOLIO_SESSION_DURATION", 30*time.Minute),
		RefreshThreshold: getEnvDurationOrDefault("FOLIO_REFRESH_THRESHOLD", 10*time.Minute),
		MaxLifetime:      getEnvDurationOrDefault("FOLIO_MAX_SESSION_LIFETIME", 12*time.Hour),

		CookieName:    getEnvOrDefault("FOLIO_COOKIE_NAME", "folio_session"),
		LoginPath:     getEnvOrDefault("FOLIO_LOGIN_PATH", "/login"),
		DashboardPath: getEnvOrDefault("FOLIO_DASHBOARD_PATH", "/dashboard"),

		DatabaseFile:        getEnvOrDefault("FOLIO_DATABASE_FILE", "folio.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects configurations the session core cannot run safely on.
// Called once at startup; any error here is fatal.
func (c Config) Validate() error {
	if len(c.SessionSecret) < jwtx.MinSecretBytes {
		return fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes", jwtx.MinSecretBytes)
	}

	if c.SessionDuration <= 0 {
		return fmt.Errorf("FOLIO_SESSION_DURATION must be positive, got %s", c.SessionDuration)
	}
	if c.RefreshThreshold <= 0 || c.RefreshThreshold >= c.SessionDuration {
		return fmt.Errorf("FOLIO_REFRESH_THRESHOLD must be between 0 and the session duration, got %s",
			c.RefreshThreshold)
	}
	if c.MaxLifetime < c.SessionDuration {
		return fmt.Errorf("FOLIO_MAX_SESSION_LIFETIME must be at least the session duration, got %s",
			c.MaxLifetime)
	}

	if c.CookieName == "" {
		return fmt.Errorf("FOLIO_COOKIE_NAME must not be empty")
	}
	if !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("FOLIO_LOGIN_PATH must be an absolute path, got %q", c.LoginPath)
	}
	if !strings.HasPrefix(c.DashboardPath, "/") {
		return fmt.Errorf("FOLIO_DASHBOARD_PATH must be an absolute path, got %q", c.DashboardPath)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be a valid port number, got %d", c.Port)
	}

	return nil
}

// SecureCookies reports whether session cookies should carry the Secure
// flag. Only plain-HTTP local development goes without it.
func (c Config) SecureCookies() bool {
	return c.Env != "dev"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
