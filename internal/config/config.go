package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the jobdeck client.
type Config struct {
	API     APIConfig
	Session SessionConfig
}

// APIConfig points the client at the tracker backend.
type APIConfig struct {
	BaseURL string        // e.g. http://localhost:5000/api
	Timeout time.Duration // per-request timeout
}

// SessionConfig controls where the session database lives.
type SessionConfig struct {
	Path string
}

const (
	defaultBaseURL = "http://localhost:5000/api"
	defaultTimeout = 15 * time.Second
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	API     rawAPIConfig     `yaml:"api"`
	Session rawSessionConfig `yaml:"session"`
}

type rawAPIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type rawSessionConfig struct {
	Path string `yaml:"path"`
}

// envOverrides are applied after the file, so the environment always wins.
type envOverrides struct {
	BaseURL     string `env:"JOBDECK_API_URL"`
	SessionPath string `env:"JOBDECK_SESSION_PATH"`
}

// Load reads the YAML config at path, applies environment overrides and
// defaults, validates the result, and returns Config. A missing file is not
// an error: the client must run out of the box against the default base URL.
func Load(path string) (*Config, error) {
	var raw rawConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	timeout := defaultTimeout
	if raw.API.Timeout != "" {
		timeout, err = time.ParseDuration(raw.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse api.timeout %q: %w", raw.API.Timeout, err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: raw.API.BaseURL,
			Timeout: timeout,
		},
		Session: SessionConfig{
			Path: raw.Session.Path,
		},
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if ov.BaseURL != "" {
		cfg.API.BaseURL = ov.BaseURL
	}
	if ov.SessionPath != "" {
		cfg.Session.Path = ov.SessionPath
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.Session.Path == "" {
		cfg.Session.Path = defaultSessionPath()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultSessionPath places the session database under the user config dir,
// falling back to the working directory when that cannot be resolved.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "jobdeck", "session.db")
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", cfg.API.Timeout)
	}
	return nil
}
