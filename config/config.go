// Package config resolves settings from the YAML config file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/habedi/conflux/pkg/clierr"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	EnvSiteURL      = "CONFLUX_SITE_URL"
	EnvEmail        = "CONFLUX_USER_EMAIL"
	EnvAPIToken     = "CONFLUX_API_TOKEN"
	EnvDBPath       = "CONFLUX_DB_PATH"
	EnvDefaultLimit = "CONFLUX_DEFAULT_LIMIT"
	EnvConfigFile   = "CONFLUX_CONFIG"
	EnvRateLimit    = "CONFLUX_RATE_LIMIT"

	DefaultLimit             = 25
	DefaultRequestsPerSecond = 10
)

// Config is the merged view of every configuration source.
type Config struct {
	SiteURL      string          `yaml:"site_url"`
	Email        string          `yaml:"email"`
	APIToken     string          `yaml:"api_token"`
	DBPath       string          `yaml:"db_path"`
	DefaultLimit int             `yaml:"default_limit"`
	Classifier   clierr.Keywords `yaml:"classifier"`

	// RequestsPerSecond throttles API calls; a negative value turns throttling off.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// HasCredentials reports whether all three connection settings are present.
func (c *Config) HasCredentials() bool {
	return c.SiteURL != "" && c.Email != "" && c.APIToken != ""
}

// DefaultPath returns $CONFLUX_CONFIG or ~/.conflux/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".conflux", "config.yaml")
}

// Load reads path (a missing file is not an error), then .env, then the
// environment. A malformed file or env value is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if err := LoadDotEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Could not load .env file")
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("No config file found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return clierr.NewValidation(fmt.Sprintf("invalid config file %s: %v", path, err), err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.SiteURL = GetEnv(EnvSiteURL, cfg.SiteURL)
	cfg.Email = GetEnv(EnvEmail, cfg.Email)
	cfg.APIToken = GetEnv(EnvAPIToken, cfg.APIToken)
	cfg.DBPath = GetEnv(EnvDBPath, cfg.DBPath)
	if v := os.Getenv(EnvDefaultLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return clierr.NewValidation(fmt.Sprintf("%s must be an integer, got %q", EnvDefaultLimit, v), err)
		}
		cfg.DefaultLimit = n
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return clierr.NewValidation(fmt.Sprintf("%s must be a number, got %q", EnvRateLimit, v), err)
		}
		cfg.RequestsPerSecond = f
	}
	return nil
}

// LoadDotEnv loads the first .env found in the working directory or up to six
// of its parents. Variables already set in the environment win.
func LoadDotEnv() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	dir := wd
	for range make([]struct{}, 7) {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return os.ErrNotExist
}

// GetEnv returns the environment variable value if set, or def.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
