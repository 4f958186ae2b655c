package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const appConfigDir = "mailflow"

// Account represents a single Gmail account configuration
type Account struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Config represents the mailflow configuration
type Config struct {
	Flows    Flows     `toml:"flows"`
	Accounts []Account `toml:"accounts"`
	Theme    Theme     `toml:"theme"`
	UI       UIConfig  `toml:"ui"`
	Keys     KeyMap    `toml:"keys"`

	// path is where the config was loaded from and where Save writes.
	path      string
	// fileFlows is Flows as read from the file, before environment
	// overrides. Save writes it back instead of Flows.
	fileFlows *Flows
}

// ConfigDir returns the directory where config files are stored
func ConfigDir() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appConfigDir, "config.toml"))
}

// Load reads the config file from disk. An empty path means the default
// location. A missing file yields an empty config. Endpoint URLs set in the
// environment (or a .env file in the working directory) win over the file.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{Accounts: []Account{}, path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	fileFlows := cfg.Flows
	cfg.fileFlows = &fileFlows

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(&cfg.Flows); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to disk. Endpoint URLs that came from the
// environment are not persisted.
func Save(cfg *Config) error {
	path := cfg.path
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}

	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *cfg
	if cfg.fileFlows != nil {
		out.Flows = *cfg.fileFlows
	}
	data, err := toml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
