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
	"os"
	"strings"

	"github.com/jeremyhahn/go-keyexchange/internal/config"
	"github.com/jeremyhahn/go-keyexchange/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Global configuration
	globalConfig *Config

	// Global logger, reconfigured after flag and config file parsing
	logger = logging.DefaultLogger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "keyexchange",
	Short: "go-keyexchange CLI - ECDH key agreement and authenticated encryption",
	Long: `go-keyexchange CLI provides a command-line interface for Elliptic
Curve Diffie-Hellman key agreement and AEAD encryption. Two parties
generate key pairs, exchange public keys, and derive identical
symmetric session keys for AES-256-GCM or ChaCha20-Poly1305.

Supported curves:
  - p256:   NIST P-256 (default)
  - p384:   NIST P-384
  - p521:   NIST P-521
  - x25519: Curve25519`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfigFile,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize global config
	globalConfig = NewConfig()

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalConfig.ConfigFile, "config", "",
		"config file (default is $HOME/.keyexchange.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.Backend, "backend", globalConfig.Backend,
		"storage backend for key material (memory, file)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.KeyDir, "key-dir", globalConfig.KeyDir,
		"directory for key storage (for the file backend)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.Curve, "curve", globalConfig.Curve,
		"elliptic curve (p256, p384, p521, x25519)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.Algorithm, "algorithm", globalConfig.Algorithm,
		"AEAD algorithm (aes256-gcm, chacha20-poly1305, auto)")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.OutputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&globalConfig.Verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(demoCmd)
}

// loadConfigFile merges values from the YAML config file into the global
// configuration. Explicit command-line flags always win over file values.
func loadConfigFile(cmd *cobra.Command, args []string) error {
	logger = logging.NewLoggerWithOptions(os.Stderr, globalConfig.OutputFormat, globalConfig.Verbose)

	path := globalConfig.ConfigFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = home + "/.keyexchange.yaml"
		if _, err := os.Stat(path); err != nil {
			// No default config file present
			return nil
		}
	}

	logger.Debugf("Loading config file: %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("curve") {
		globalConfig.Curve = cfg.Keys.Curve
	}
	if !flags.Changed("backend") {
		globalConfig.Backend = cfg.Keys.Backend
	}
	if !flags.Changed("key-dir") && cfg.Keys.Dir != "" {
		globalConfig.KeyDir = cfg.Keys.Dir
	}
	if !flags.Changed("algorithm") {
		globalConfig.Algorithm = cfg.Cipher.Algorithm
	}

	// Logging settings come from the config file; --verbose always wins
	debug := globalConfig.Verbose || strings.EqualFold(cfg.Logging.Level, "debug")
	logger = logging.NewLoggerWithOptions(os.Stderr, cfg.Logging.Format, debug)
	return nil
}

// getConfig returns the global configuration
func getConfig() *Config {
	return globalConfig
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(globalConfig.OutputFormat, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}

// printVerbose logs a debug message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
