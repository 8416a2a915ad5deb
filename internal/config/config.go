// Package config loads the service configuration from the environment.
// Every setting has a default; Load validates the result and fails fast on
// misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration. Section tags give the
// variable prefix, so Server.Port is read from SERVER_PORT.
type Config struct {
	Server   ServerConfig    `envconfig:"SERVER"`
	Upload   UploadConfig    `envconfig:"UPLOAD"`
	Pipeline PipelineConfig  `envconfig:"PIPELINE"`
	Session  SessionConfig   `envconfig:"SESSION"`
	Rate     RateLimitConfig `envconfig:"RATE_LIMIT"`
	Security SecurityConfig  `envconfig:"SECURITY"`
	Logging  LoggingConfig   `envconfig:"LOG"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8080"`

	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`

	// WriteTimeout stays 0 so pipeline SSE responses are not cut off.
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"0s"`

	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds every request through the timeout middleware.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds upload and preview settings.
type UploadConfig struct {
	// MaxFileSize is the largest accepted upload in bytes (default: 100MB)
	MaxFileSize int64 `envconfig:"MAX_FILE_SIZE" default:"104857600"`

	// PreviewRows is how many rows each preview table shows
	PreviewRows int `envconfig:"PREVIEW_ROWS" default:"100"`
}

// PipelineConfig bounds concurrent pipeline runs.
type PipelineConfig struct {
	MaxConcurrent int           `envconfig:"MAX_CONCURRENT" default:"4"`
	MaxWait       time.Duration `envconfig:"MAX_WAIT" default:"10s"`
}

// SessionConfig holds cookie and upload retention settings.
type SessionConfig struct {
	// Secret signs the session cookie. A random one is generated per
	// process when unset, which logs everyone out on restart.
	Secret string `envconfig:"SECRET"`

	// TTL is how long an idle upload is kept
	TTL time.Duration `envconfig:"TTL" default:"1h"`

	CookieSecure bool `envconfig:"COOKIE_SECURE" default:"false"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled           bool `envconfig:"ENABLED" default:"true"`
	RequestsPerMinute int  `envconfig:"REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies lists proxy CIDRs whose forwarding headers are
	// honoured. Read from TRUSTED_PROXIES or SECURITY_TRUSTED_PROXIES.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	EnableCSP bool `envconfig:"ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `envconfig:"LEVEL" default:"info"`

	// Format is text or json
	Format string `envconfig:"FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
