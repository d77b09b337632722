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

package cli

import (
	"fmt"
	"os"

	"github.com/jeremyhahn/go-keyexchange/pkg/aead"
	"github.com/jeremyhahn/go-keyexchange/pkg/keypair"
	"github.com/jeremyhahn/go-keyexchange/pkg/storage"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// Backend is the storage backend name (memory, file)
	Backend string

	// KeyDir is the directory for key storage (for the file backend)
	KeyDir string

	// Curve is the elliptic curve for key generation (p256, p384, p521, x25519)
	Curve string

	// Algorithm is the AEAD algorithm (aes256-gcm, chacha20-poly1305, auto)
	Algorithm string

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose enables verbose logging
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Backend:      "file",
		KeyDir:       defaultKeyDir(),
		Curve:        "p256",
		Algorithm:    "auto",
		OutputFormat: "text",
		Verbose:      false,
	}
}

func defaultKeyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyexchange"
	}
	return home + "/.keyexchange/keys"
}

// CreateStorage creates a storage backend instance based on the configuration
func (c *Config) CreateStorage() (storage.Backend, error) {
	switch c.Backend {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		return storage.NewFile(c.KeyDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", c.Backend)
	}
}

// ResolveCurve parses the configured curve name
func (c *Config) ResolveCurve() (types.Curve, error) {
	curve := types.ParseCurve(c.Curve)
	if !curve.IsValid() {
		return types.CurveUnknown, fmt.Errorf("%w: %s", types.ErrUnknownCurve, c.Curve)
	}
	return curve, nil
}

// ResolveAlgorithm returns the configured AEAD algorithm, resolving "auto"
// via CPU feature detection
func (c *Config) ResolveAlgorithm() (string, error) {
	switch c.Algorithm {
	case "auto":
		return aead.SelectOptimal(), nil
	case types.AlgorithmAES256GCM, types.AlgorithmChaCha20Poly1305:
		return c.Algorithm, nil
	default:
		return "", fmt.Errorf("%w: %s", types.ErrUnknownAlgorithm, c.Algorithm)
	}
}

// loadKeyPair loads a named key pair from the configured storage backend
func (c *Config) loadKeyPair(name string) (*keypair.KeyPair, error) {
	backend, err := c.CreateStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	defer func() { _ = backend.Close() }()

	kp, err := keypair.Load(backend, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load key pair %q: %w", name, err)
	}
	return kp, nil
}
