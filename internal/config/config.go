// Package config manages vcsim configuration and the location of its
// on-disk state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the user configuration stored under the vcsim
// directory. All fields are optional; readers apply defaults.
type Config struct {
	StatePath    *string `json:"statePath,omitempty"`    // Directory holding state.json and history
	LogStyle     *string `json:"logStyle,omitempty"`     // "short" or "full"
	Color        *string `json:"color,omitempty"`        // "auto", "always" or "never"
	Reverse      *bool   `json:"reverse,omitempty"`      // Oldest commit first in log output
	AutoCheckout *bool   `json:"autoCheckout,omitempty"` // Check out commits created with an explicit parent
}

const configFileName = "config.json"

// Dir returns the vcsim directory, creating nothing. VCSIM_DIR overrides
// the default ~/.vcsim.
func Dir() string {
	if custom := os.Getenv("VCSIM_DIR"); custom != "" {
		return custom
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to the working directory if we can't get a home dir
		return ".vcsim"
	}
	return filepath.Join(homeDir, ".vcsim")
}

// GetConfig reads the configuration, returning defaults when no file exists
func GetConfig() (*Config, error) {
	configPath := filepath.Join(Dir(), configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config doesn't exist - return default
		return &Config{}, nil
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// GetStatePath returns the directory holding the session state, or the
// vcsim directory as default
func GetStatePath() (string, error) {
	config, err := GetConfig()
	if err != nil {
		return "", err
	}

	if config.StatePath != nil && *config.StatePath != "" {
		return *config.StatePath, nil
	}

	return Dir(), nil
}

// GetLogStyle returns the configured log style, or "short" as default
func GetLogStyle() (string, error) {
	config, err := GetConfig()
	if err != nil {
		return "", err
	}

	if config.LogStyle != nil && *config.LogStyle != "" {
		if *config.LogStyle != "short" && *config.LogStyle != "full" {
			return "", fmt.Errorf("invalid logStyle %q: want short or full", *config.LogStyle)
		}
		return *config.LogStyle, nil
	}

	return "short", nil
}

// GetColorMode returns the configured color mode, or "auto" as default
func GetColorMode() (string, error) {
	config, err := GetConfig()
	if err != nil {
		return "", err
	}

	if config.Color != nil && *config.Color != "" {
		switch *config.Color {
		case "auto", "always", "never":
			return *config.Color, nil
		}
		return "", fmt.Errorf("invalid color mode %q: want auto, always or never", *config.Color)
	}

	return "auto", nil
}

// GetReverse returns whether log output lists the oldest commit first
func GetReverse() (bool, error) {
	config, err := GetConfig()
	if err != nil {
		return false, err
	}
	if config.Reverse != nil {
		return *config.Reverse, nil
	}
	return false, nil
}

// GetAutoCheckout returns whether commits created with an explicit parent
// are checked out, defaulting to false
func GetAutoCheckout() (bool, error) {
	config, err := GetConfig()
	if err != nil {
		return false, err
	}
	if config.AutoCheckout != nil {
		return *config.AutoCheckout, nil
	}
	return false, nil
}

// SetStatePath updates the state directory in the config
func SetStatePath(path string) error {
	if path == "" {
		return fmt.Errorf("statePath must not be empty")
	}
	return update(func(c *Config) {
		c.StatePath = &path
	})
}

// SetLogStyle updates the log style in the config
func SetLogStyle(style string) error {
	if style != "short" && style != "full" {
		return fmt.Errorf("invalid logStyle %q: want short or full", style)
	}
	return update(func(c *Config) {
		c.LogStyle = &style
	})
}

// SetColorMode updates the color mode in the config
func SetColorMode(mode string) error {
	switch mode {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", mode)
	}
	return update(func(c *Config) {
		c.Color = &mode
	})
}

// SetReverse updates the log ordering in the config
func SetReverse(reverse bool) error {
	return update(func(c *Config) {
		c.Reverse = &reverse
	})
}

// SetAutoCheckout updates the auto-checkout behavior in the config
func SetAutoCheckout(autoCheckout bool) error {
	return update(func(c *Config) {
		c.AutoCheckout = &autoCheckout
	})
}

// update applies fn to the current config and writes it back
func update(fn func(*Config)) error {
	config, err := GetConfig()
	if err != nil {
		config = &Config{}
	}

	fn(config)

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(Dir(), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(filepath.Join(Dir(), configFileName), configJSON, 0600)
}
