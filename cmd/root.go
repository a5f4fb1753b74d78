package cmd

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when neither -api nor WANDERDESK_API_BASE_URL
// is set.
const DefaultAPIBaseURL = "http://localhost:8000"

// Config holds CLI configuration.
type Config struct {
	APIBaseURL string
	Timeout    time.Duration
	PageSize   int

	LogPath   string
	LogLevel  string
	LogFormat string

	// FixtureAddr, when set, runs the bundled fixture backend instead of
	// the dashboard.
	FixtureAddr string
	FixtureDB   string

	Version     string
	ShowVersion bool
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	// Load .env files first so env-based defaults work with existing flag parsing.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	config, err := Parse(os.Args[1:])
	if err != nil {
		return nil, err
	}
	config.Version = version
	return config, nil
}

// Parse reads flags from args with environment-backed defaults.
func Parse(args []string) (*Config, error) {
	config := &Config{}
	fs := flag.NewFlagSet("wanderdesk", flag.ContinueOnError)

	timeout, err := envDuration("WANDERDESK_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	pageSize, err := envInt("WANDERDESK_PAGE_SIZE", 10)
	if err != nil {
		return nil, err
	}

	fs.StringVar(&config.APIBaseURL, "api", envOrDefault("WANDERDESK_API_BASE_URL", DefaultAPIBaseURL), "Backend base URL (or set WANDERDESK_API_BASE_URL)")
	fs.DurationVar(&config.Timeout, "timeout", timeout, "HTTP request timeout")
	fs.IntVar(&config.PageSize, "page-size", pageSize, "Rows per list page")
	fs.StringVar(&config.LogPath, "log", os.Getenv("WANDERDESK_LOG_PATH"), "Log file path (default: ~/.wanderdesk/wanderdesk.log)")
	fs.StringVar(&config.LogLevel, "log-level", envOrDefault("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	fs.StringVar(&config.LogFormat, "log-format", envOrDefault("LOG_FORMAT", "json"), "Log format: json, text")
	fs.StringVar(&config.FixtureAddr, "fixture", "", "Serve the fixture backend on this address (e.g. :9000) instead of the dashboard")
	fs.StringVar(&config.FixtureDB, "fixture-db", envOrDefault("WANDERDESK_FIXTURE_DB", ":memory:"), "SQLite path for the fixture backend")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config.APIBaseURL = strings.TrimRight(strings.TrimSpace(config.APIBaseURL), "/")

	if config.LogPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.LogPath = filepath.Join(home, ".wanderdesk", "wanderdesk.log")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, "API base URL must be an absolute http(s) URL")
	}
	if c.Timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		problems = append(problems, "page size must be between 1 and 100")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		problems = append(problems, "log level must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.LogFormat] {
		problems = append(problems, "log format must be one of: json, text")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func envOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	raw := envOrDefault(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := envOrDefault(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
