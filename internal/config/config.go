// Package config loads runtime settings from a config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultAPIBaseURL = "http://127.0.0.1:8000/api"

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL  string
	DBPath      string
	PageSize    int
	HTTPTimeout time.Duration
}

// Load reads revue.yaml from the working directory or ~/.config/revue/,
// applies REVUE_* environment overrides, and validates the result. A missing
// config file is fine; defaults cover everything.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("revue")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/revue")

	v.SetDefault("api_base_url", defaultAPIBaseURL)
	v.SetDefault("db_path", "revue.db")
	v.SetDefault("page_size", 4)
	v.SetDefault("http_timeout", "10s")

	v.SetEnvPrefix("REVUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		APIBaseURL:  strings.TrimSpace(v.GetString("api_base_url")),
		DBPath:      v.GetString("db_path"),
		PageSize:    v.GetInt("page_size"),
		HTTPTimeout: v.GetDuration("http_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("api_base_url must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.PageSize < 1 || c.PageSize > 20 {
		return fmt.Errorf("page_size must be 1..20: %d", c.PageSize)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive: %s", c.HTTPTimeout)
	}
	return nil
}
