package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Minute},
		Upload:   UploadConfig{MaxFileSize: 1, PreviewRows: 100},
		Pipeline: PipelineConfig{MaxConcurrent: 1, MaxWait: time.Second},
		Session:  SessionConfig{TTL: time.Hour},
		Rate:     RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxFileSize != 104857600 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 104857600)
	}
	if cfg.Upload.PreviewRows != 100 {
		t.Errorf("Upload.PreviewRows = %d, want 100", cfg.Upload.PreviewRows)
	}
	if cfg.Pipeline.MaxConcurrent != 4 {
		t.Errorf("Pipeline.MaxConcurrent = %d, want 4", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
	}
	if len(cfg.Session.Secret) < minSecretLen {
		t.Errorf("generated Session.Secret too short: %d", len(cfg.Session.Secret))
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 120 {
		t.Errorf("Rate = %+v, want enabled at 120/min", cfg.Rate)
	}
	if !cfg.Security.EnableCSP {
		t.Error("Security.EnableCSP should default to true")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PIPELINE_MAX_CONCURRENT", "10")
	t.Setenv("UPLOAD_PREVIEW_ROWS", "25")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Pipeline.MaxConcurrent != 10 {
		t.Errorf("Pipeline.MaxConcurrent = %d, want %d", cfg.Pipeline.MaxConcurrent, 10)
	}
	if cfg.Upload.PreviewRows != 25 {
		t.Errorf("Upload.PreviewRows = %d, want 25", cfg.Upload.PreviewRows)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !cfg.Session.CookieSecure {
		t.Error("Session.CookieSecure should be true")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("PIPELINE_MAX_WAIT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Pipeline.MaxWait != 90*time.Second {
		t.Errorf("Pipeline.MaxWait = %v, want %v", cfg.Pipeline.MaxWait, 90*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
}

func TestLoad_KeepsConfiguredSecret(t *testing.T) {
	secret := strings.Repeat("s", minSecretLen)
	t.Setenv("SESSION_SECRET", secret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.Secret != secret {
		t.Error("configured SESSION_SECRET was replaced")
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = 99999 }, wantErr: "SERVER_PORT"},
		{name: "no preview rows", mutate: func(c *Config) { c.Upload.PreviewRows = 0 }, wantErr: "UPLOAD_PREVIEW_ROWS"},
		{name: "no pipeline slots", mutate: func(c *Config) { c.Pipeline.MaxConcurrent = 0 }, wantErr: "PIPELINE_MAX_CONCURRENT"},
		{name: "short secret", mutate: func(c *Config) { c.Session.Secret = "short" }, wantErr: "SESSION_SECRET"},
		{name: "zero ttl", mutate: func(c *Config) { c.Session.TTL = 0 }, wantErr: "SESSION_TTL"},
		{name: "rate without limit", mutate: func(c *Config) { c.Rate.RequestsPerMinute = 0 }, wantErr: "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{name: "rate disabled ignores limit", mutate: func(c *Config) { c.Rate = RateLimitConfig{} }},
		{name: "bad proxy", mutate: func(c *Config) { c.Security.TrustedProxies = []string{"10.0.0.1"} }, wantErr: "TRUSTED_PROXIES"},
		{name: "invalid log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "invalid log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Secret = "super-secret-signing-key-do-not-log-me"

	str := cfg.String()
	if strings.Contains(str, "super-secret") {
		t.Error("String() should mask the session secret")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
