package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "config.yaml"

	EnvRemoteURL = "HABITFORGE_REMOTE_URL"
	EnvRemoteKey = "HABITFORGE_REMOTE_KEY"

	// Shipped in the sample config; treated as "not configured".
	PlaceholderURL = "YOUR_PROJECT_URL"
	PlaceholderKey = "YOUR_ANON_KEY"

	defaultTimeout = 10 * time.Second
	DefaultAddr    = "127.0.0.1:8787"
)

type Remote struct {
	URL     string        `yaml:"url"`
	Key     string        `yaml:"key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Server configures the local HTTP API. An empty Token disables bearer auth.
type Server struct {
	Addr  string `yaml:"addr"`
	Token string `yaml:"token"`
}

type Config struct {
	DataDir  string `yaml:"-"`
	DBPath   string `yaml:"-"`
	LogLevel string `yaml:"log_level"`
	Remote   Remote `yaml:"remote"`
	Server   Server `yaml:"server"`
}

// New resolves the configuration for a data directory: defaults, then the optional
// config.yaml inside it, then the two credential environment variables.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:  dataDir,
		DBPath:   filepath.Join(dataDir, "habitforge.db"),
		LogLevel: "info",
		Remote:   Remote{Timeout: defaultTimeout},
		Server:   Server{Addr: DefaultAddr},
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}

	if v := os.Getenv(EnvRemoteURL); v != "" {
		cfg.Remote.URL = v
	}
	if v := os.Getenv(EnvRemoteKey); v != "" {
		cfg.Remote.Key = v
	}
	cfg.Remote.URL = strings.TrimRight(strings.TrimSpace(cfg.Remote.URL), "/")
	cfg.Remote.Key = strings.TrimSpace(cfg.Remote.Key)
	if cfg.Remote.Timeout <= 0 {
		cfg.Remote.Timeout = defaultTimeout
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = DefaultAddr
	}
	return cfg, nil
}

// RemoteEnabled is true only when both credentials are present and not placeholders.
func (c Config) RemoteEnabled() bool {
	url, key := c.Remote.URL, c.Remote.Key
	return url != "" && key != "" && url != PlaceholderURL && key != PlaceholderKey
}
