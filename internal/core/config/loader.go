package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Dispatch.BaseDelay == 0 {
		cfg.Dispatch.BaseDelay = Duration(500 * time.Millisecond)
	}
	if cfg.Dispatch.MaxDelay == 0 {
		cfg.Dispatch.MaxDelay = Duration(30 * time.Second)
	}
	if cfg.LinkedIn.BaseURL == "" {
		cfg.LinkedIn.BaseURL = "https://www.linkedin.com/voyager/api"
	}
	if cfg.LinkedIn.Timeout == 0 {
		cfg.LinkedIn.Timeout = Duration(30 * time.Second)
	}
	if cfg.LinkedIn.SessionTTL == 0 {
		cfg.LinkedIn.SessionTTL = Duration(7 * 24 * time.Hour)
	}
	if cfg.LinkedIn.CacheTTL == 0 {
		cfg.LinkedIn.CacheTTL = Duration(7 * 24 * time.Hour)
	}
	if cfg.LinkedIn.RequestsPerMinute == 0 {
		cfg.LinkedIn.RequestsPerMinute = 30
	}
	if cfg.Documents.DataDir == "" {
		cfg.Documents.DataDir = "data"
	}
	if cfg.Documents.TemplateDir == "" {
		cfg.Documents.TemplateDir = "templates"
	}
}
