package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the credentials and endpoints indexdeck talks to.
type Config struct {
	AppID        string
	WriteAPIKey  string
	SearchAPIKey string
	UsageAPIKey  string

	SearchHost    string
	UsageHost     string
	LogsHost      string
	AnalyticsHost string

	StartDate string // YYYY-MM-DD, first day of every reporting window
	LogLength int    // query log rows per request

	LogLevel string
	LogFile  string
}

const (
	defaultConfigPath    = "~/.config/indexdeck/config.toml"
	defaultLogFile       = "~/.local/state/indexdeck/indexdeck.log"
	defaultUsageHost     = "usage.algolia.com"
	defaultLogsHost      = "c8-uk-3.algolianet.com"
	defaultAnalyticsHost = "analytics.de.algolia.com"
	defaultStartDate     = "2024-10-20"
	defaultLogLength     = 100
	defaultLogLevel      = "info"

	dateLayout = "2006-01-02"
)

// fileConfig mirrors config.toml.
type fileConfig struct {
	AppID         string `toml:"app_id"`
	WriteAPIKey   string `toml:"write_api_key"`
	SearchAPIKey  string `toml:"search_api_key"`
	UsageAPIKey   string `toml:"usage_api_key"`
	SearchHost    string `toml:"search_host"`
	UsageHost     string `toml:"usage_host"`
	LogsHost      string `toml:"logs_host"`
	AnalyticsHost string `toml:"analytics_host"`
	StartDate     string `toml:"start_date"`
	LogLength     int    `toml:"log_length"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
}

// envConfig is the process environment overlay. The REACT_APP_ variants are
// what the merchant shell injected; they only fill gaps.
type envConfig struct {
	AppID        string `env:"ALGOLIA_APP_ID"`
	WriteAPIKey  string `env:"ALGOLIA_WRITE_API_KEY"`
	SearchAPIKey string `env:"ALGOLIA_SEARCH_API_KEY"`
	UsageAPIKey  string `env:"ALGOLIA_USAGE_API_KEY"`

	LegacyAppID        string `env:"REACT_APP_ALGOLIA_APP_ID"`
	LegacyWriteAPIKey  string `env:"REACT_APP_ALGOLIA_WRITE_API_KEY"`
	LegacySearchAPIKey string `env:"REACT_APP_ALGOLIA_SEARCH_API_KEY"`
	LegacyUsageAPIKey  string `env:"REACT_APP_ALGOLIA_USAGE_API_KEY"`

	SearchHost    string `env:"ALGOLIA_SEARCH_HOST"`
	UsageHost     string `env:"ALGOLIA_USAGE_HOST"`
	LogsHost      string `env:"ALGOLIA_LOGS_HOST"`
	AnalyticsHost string `env:"ALGOLIA_ANALYTICS_HOST"`

	StartDate string `env:"INDEXDECK_START_DATE"`
	LogLevel  string `env:"INDEXDECK_LOG_LEVEL"`
	LogFile   string `env:"INDEXDECK_LOG_FILE"`
}

// Load reads the optional config file at path and overlays the process
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// load uses environ instead of the process environment when non-nil.
func load(path string, environ map[string]string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if len(bytes) > 0 {
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var overlay envConfig
	if err := env.ParseWithOptions(&overlay, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg := Config{
		AppID:         pick(overlay.AppID, overlay.LegacyAppID, raw.AppID),
		WriteAPIKey:   pick(overlay.WriteAPIKey, overlay.LegacyWriteAPIKey, raw.WriteAPIKey),
		SearchAPIKey:  pick(overlay.SearchAPIKey, overlay.LegacySearchAPIKey, raw.SearchAPIKey),
		UsageAPIKey:   pick(overlay.UsageAPIKey, overlay.LegacyUsageAPIKey, raw.UsageAPIKey),
		SearchHost:    pick(overlay.SearchHost, raw.SearchHost),
		UsageHost:     pick(overlay.UsageHost, raw.UsageHost, defaultUsageHost),
		LogsHost:      pick(overlay.LogsHost, raw.LogsHost, defaultLogsHost),
		AnalyticsHost: pick(overlay.AnalyticsHost, raw.AnalyticsHost, defaultAnalyticsHost),
		StartDate:     pick(overlay.StartDate, raw.StartDate, defaultStartDate),
		LogLength:     raw.LogLength,
		LogLevel:      strings.ToLower(pick(overlay.LogLevel, raw.LogLevel, defaultLogLevel)),
		LogFile:       pick(overlay.LogFile, raw.LogFile, defaultLogFile),
	}
	if cfg.SearchHost == "" && cfg.AppID != "" {
		cfg.SearchHost = cfg.AppID + "-dsn.algolia.net"
	}
	if cfg.LogLength <= 0 {
		cfg.LogLength = defaultLogLength
	}
	if _, err := time.Parse(dateLayout, cfg.StartDate); err != nil {
		return Config{}, fmt.Errorf("parse start_date %q: %w", cfg.StartDate, err)
	}
	if !isStreamTarget(cfg.LogFile) {
		cfg.LogFile = mustExpand(cfg.LogFile)
	}

	return cfg, nil
}

// Validate reports every missing credential at once.
func (c Config) Validate() error {
	var errs []error
	if c.AppID == "" {
		errs = append(errs, errors.New("ALGOLIA_APP_ID is not set"))
	}
	if c.WriteAPIKey == "" {
		errs = append(errs, errors.New("ALGOLIA_WRITE_API_KEY is not set"))
	}
	if c.UsageAPIKey == "" {
		errs = append(errs, errors.New("ALGOLIA_USAGE_API_KEY is not set"))
	}
	return errors.Join(errs...)
}

// Start returns StartDate as a UTC midnight.
func (c Config) Start() time.Time {
	t, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		t, _ = time.Parse(dateLayout, defaultStartDate)
	}
	return t.UTC()
}

// LogToStderr reports whether LogFile names the standard error stream.
func (c Config) LogToStderr() bool {
	return isStreamTarget(c.LogFile)
}

func isStreamTarget(path string) bool {
	switch strings.TrimSpace(path) {
	case "-", "stderr":
		return true
	}
	return false
}

func pick(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
