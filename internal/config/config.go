// Package config owns CLI configuration concerns.
//
// Ownership boundary:
// - chopstick.toml loading with default overlay
// - remote selector resolution
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultWorkers = 8
	defaultTimeout = 15 * time.Second
)

// Config is the runtime configuration of one chopstick invocation.
type Config struct {
	// DefaultRemote is the base URL used when no --server flag is given.
	DefaultRemote string

	// Remotes maps short names to base URLs for use as selectors.
	Remotes map[string]string

	// Workers caps in-flight remote calls per maintenance fan-out batch.
	Workers int

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// chopstick.toml key mapping to runtime settings.
type fileConfig struct {
	DefaultRemote  string            `toml:"default_remote"`
	Remotes        map[string]string `toml:"remotes"`
	Workers        int               `toml:"workers"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
}

func Default() Config {
	return Config{
		Workers: defaultWorkers,
		Timeout: defaultTimeout,
	}
}

// DefaultPath locates chopstick.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir unavailable: %w", err)
	}
	return filepath.Join(dir, "chopstick.toml"), nil
}

// Load reads a TOML config file and overlays it on the defaults. Only keys
// present in the file override.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("default_remote") {
		cfg.DefaultRemote = strings.TrimSpace(raw.DefaultRemote)
	}
	if meta.IsDefined("remotes") {
		cfg.Remotes = raw.Remotes
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("timeout_seconds") {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("config workers must not be negative")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("config timeout must not be negative")
	}
	for name, url := range cfg.Remotes {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("remote %q missing url", name)
		}
	}
	return nil
}

// Remote resolves a remote selector to a base URL. An empty selector picks
// the default remote, a known name maps through [remotes], and anything
// else is taken as a literal URL.
func (c Config) Remote(selector string) (string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		if strings.TrimSpace(c.DefaultRemote) == "" {
			return "", fmt.Errorf("no server given and config has no default_remote")
		}
		return c.DefaultRemote, nil
	}
	if url, ok := c.Remotes[selector]; ok {
		return url, nil
	}
	return selector, nil
}
