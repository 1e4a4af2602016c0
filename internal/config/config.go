package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings portal needs at startup.
type Config struct {
	BaseURL        string  `toml:"base_url" env:"PORTAL_BASE_URL"`
	DataDir        string  `toml:"data_dir" env:"PORTAL_DATA_DIR"`
	TimeoutSeconds int     `toml:"request_timeout_seconds" env:"PORTAL_TIMEOUT_SECONDS"`
	RatePerSecond  float64 `toml:"rate_per_second" env:"PORTAL_RATE_PER_SECOND"`
	LogLevel       string  `toml:"log_level" env:"PORTAL_LOG_LEVEL"`
}

const (
	defaultConfigPath = "~/.config/portal/config.toml"
	defaultDataDir    = "~/.local/share/portal"
	defaultBaseURL    = "https://rickandmortyapi.com/api"
	defaultTimeout    = 10
	defaultRate       = 4
	defaultLogLevel   = "info"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when
// missing, then applies PORTAL_* environment overrides on top.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:        defaultBaseURL,
		DataDir:        defaultDataDir,
		TimeoutSeconds: defaultTimeout,
		RatePerSecond:  defaultRate,
		LogLevel:       defaultLogLevel,
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file is the common case; defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer func() { _ = file.Close() }()
		bytes, readErr := io.ReadAll(file)
		if readErr != nil {
			return Config{}, fmt.Errorf("read config: %w", readErr)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env overrides: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.DataDir = mustExpand(cfg.DataDir)
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

// DatabasePath returns the path of the on-disk slice store.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "portal.db")
}

// LogDir returns the directory log files are written to.
func (c Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
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
