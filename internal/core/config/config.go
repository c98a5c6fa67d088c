package config

import (
	"fmt"
	"time"

	redisclient "github.com/vietddude/linkedin-mcp/internal/infra/redis"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Logging   LoggingConfig      `yaml:"logging"`
	Redis     redisclient.Config `yaml:"redis"`
	Database  postgres.Config    `yaml:"database"`
	LinkedIn  LinkedInConfig     `yaml:"linkedin"`
	Dispatch  DispatchConfig     `yaml:"dispatch"`
	Documents DocumentsConfig    `yaml:"documents"`
}

// ServerConfig holds the health/metrics HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// LinkedInConfig holds settings for the upstream LinkedIn client.
type LinkedInConfig struct {
	BaseURL           string   `yaml:"base_url"`
	Timeout           Duration `yaml:"timeout"`
	SessionTTL        Duration `yaml:"session_ttl"`
	CacheTTL          Duration `yaml:"cache_ttl"`
	RequestsPerMinute int      `yaml:"requests_per_minute"`
}

// DispatchConfig tunes the retry loop around handler execution.
type DispatchConfig struct {
	// MaxRetries is a pointer so an explicit 0 (no retries) is
	// distinguishable from an absent key.
	MaxRetries *int     `yaml:"max_retries"`
	BaseDelay  Duration `yaml:"base_delay"`
	MaxDelay   Duration `yaml:"max_delay"`
	// Markers override the transient-error substrings. Empty keeps defaults.
	Markers []string `yaml:"markers"`
}

// Retries returns the configured retry budget, 3 when unset.
func (d DispatchConfig) Retries() int {
	if d.MaxRetries == nil {
		return 3
	}
	return *d.MaxRetries
}

// DocumentsConfig holds settings for resume/cover-letter generation.
type DocumentsConfig struct {
	DataDir     string `yaml:"data_dir"`
	TemplateDir string `yaml:"template_dir"`
}

// Duration decodes YAML values like "500ms" or "1m30s". Bare integers are
// taken as seconds.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := unmarshal(&n); err != nil {
		return err
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}
