// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyexchange.
//
// go-keyexchange is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration
type Config struct {
	Keys    KeysConfig    `yaml:"keys"`
	Cipher  CipherConfig  `yaml:"cipher"`
	Logging LoggingConfig `yaml:"logging"`
}

// KeysConfig controls key generation and persistence
type KeysConfig struct {
	Curve   string `yaml:"curve"`   // p256, p384, p521, x25519
	Backend string `yaml:"backend"` // memory, file
	Dir     string `yaml:"dir"`     // key directory for the file backend
}

// CipherConfig controls authenticated encryption
type CipherConfig struct {
	Algorithm string `yaml:"algorithm"` // aes256-gcm, chacha20-poly1305, auto
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Keys: KeysConfig{
			Curve:   "p256",
			Backend: "file",
			Dir:     defaultKeyDir(),
		},
		Cipher: CipherConfig{
			Algorithm: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultKeyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyexchange"
	}
	return home + "/.keyexchange/keys"
}

// Load reads configuration from a YAML file and applies environment variable
// overrides. An empty path returns the defaults with environment overrides
// applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 - Config file path is provided by admin/user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if curve := os.Getenv("KEYEXCHANGE_CURVE"); curve != "" {
		cfg.Keys.Curve = curve
	}
	if backend := os.Getenv("KEYEXCHANGE_BACKEND"); backend != "" {
		cfg.Keys.Backend = backend
	}
	if dir := os.Getenv("KEYEXCHANGE_KEY_DIR"); dir != "" {
		cfg.Keys.Dir = dir
	}
	if algorithm := os.Getenv("KEYEXCHANGE_ALGORITHM"); algorithm != "" {
		cfg.Cipher.Algorithm = algorithm
	}
	if level := os.Getenv("KEYEXCHANGE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("KEYEXCHANGE_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !types.ParseCurve(c.Keys.Curve).IsValid() {
		return fmt.Errorf("invalid curve: %s", c.Keys.Curve)
	}

	switch strings.ToLower(c.Keys.Backend) {
	case "memory":
	case "file":
		if c.Keys.Dir == "" {
			return fmt.Errorf("key dir is required for the file backend")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (must be memory or file)", c.Keys.Backend)
	}

	switch c.Cipher.Algorithm {
	case types.AlgorithmAES256GCM, types.AlgorithmChaCha20Poly1305, "auto":
	default:
		return fmt.Errorf("invalid cipher algorithm: %s (must be %s, %s, or auto)",
			c.Cipher.Algorithm, types.AlgorithmAES256GCM, types.AlgorithmChaCha20Poly1305)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	return nil
}

// Curve returns the parsed default curve. Validate must have succeeded.
func (c *Config) Curve() types.Curve {
	return types.ParseCurve(c.Keys.Curve)
}
