package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultAPIPrefix  = "/api/v1"
	DefaultLocale     = "en"
	DefaultReplyDelay = 500 * time.Millisecond
	DefaultTimeout    = 30 * time.Second
)

// Config holds everything the client needs to reach the AgriDetect API.
type Config struct {
	BaseURL    string
	APIPrefix  string
	Locale     string
	ReplyDelay time.Duration
	Timeout    time.Duration
}

// Default returns the configuration used when nothing is set in the environment.
func Default() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		APIPrefix:  DefaultAPIPrefix,
		Locale:     DefaultLocale,
		ReplyDelay: DefaultReplyDelay,
		Timeout:    DefaultTimeout,
	}
}

// Load reads an optional .env file and then the AGRIDETECT_* environment variables.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv("AGRIDETECT_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv("AGRIDETECT_API_PREFIX"); ok {
		cfg.APIPrefix = v
	}
	if v := os.Getenv("AGRIDETECT_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("AGRIDETECT_REPLY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AGRIDETECT_REPLY_DELAY %q: %w", v, err)
		}
		cfg.ReplyDelay = d
	}
	if v := os.Getenv("AGRIDETECT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AGRIDETECT_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes the base URL and prefix and rejects unusable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.APIPrefix != "" {
		c.APIPrefix = "/" + strings.Trim(c.APIPrefix, "/")
	}
	if c.ReplyDelay < 0 {
		return fmt.Errorf("reply delay must not be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
