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
	"crypto/ecdh"
	"fmt"
	"os"

	"github.com/jeremyhahn/go-keyexchange/pkg/agreement"
	"github.com/jeremyhahn/go-keyexchange/pkg/keypair"
	"github.com/spf13/cobra"
)

// deriveCmd derives a symmetric session key from an ECDH exchange
var deriveCmd = &cobra.Command{
	Use:   "derive <name>",
	Short: "Derive a symmetric session key",
	Long: `Derive a symmetric AEAD session key from the named private key and
the counterpart's public key. Both parties derive identical key bytes:
deriving from Alice's private key and Bob's public key yields the same
key as deriving from Bob's private key and Alice's public key.

The peer public key is read from a PEM file if --peer names an existing
file, otherwise it is loaded from the storage backend by name.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := getConfig()
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		peer, _ := cmd.Flags().GetString("peer")
		if peer == "" {
			handleError(fmt.Errorf("--peer is required"))
			return
		}

		sessionKey, err := deriveSessionKey(cfg, name, peer)
		if err != nil {
			handleError(err)
			return
		}

		if err := printer.PrintSessionKey(sessionKey.Base64(), sessionKey.Algorithm()); err != nil {
			handleError(err)
		}
	},
}

func init() {
	deriveCmd.Flags().String("peer", "", "peer public key (PEM file path or stored key name)")
}

// deriveSessionKey loads the named key pair and peer public key and performs
// the ECDH + HKDF derivation with the configured AEAD algorithm
func deriveSessionKey(cfg *Config, name, peer string) (*agreement.SessionKey, error) {
	kp, err := cfg.loadKeyPair(name)
	if err != nil {
		return nil, err
	}

	peerPub, err := loadPeerPublic(cfg, peer)
	if err != nil {
		return nil, err
	}

	algorithm, err := cfg.ResolveAlgorithm()
	if err != nil {
		return nil, err
	}

	printVerbose("Deriving %s session key: %s + %s", algorithm, name, peer)

	return agreement.NewSessionKeyWithAlgorithm(kp, peerPub, algorithm)
}

// loadPeerPublic resolves a peer public key from a PEM file path or, when no
// such file exists, from the storage backend by name
func loadPeerPublic(cfg *Config, peer string) (*ecdh.PublicKey, error) {
	if _, err := os.Stat(peer); err == nil {
		// #nosec G304 - Peer key path is provided by the user
		data, err := os.ReadFile(peer)
		if err != nil {
			return nil, fmt.Errorf("failed to read peer public key file: %w", err)
		}
		pub, err := keypair.DecodePublic(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode peer public key: %w", err)
		}
		return pub, nil
	}

	backend, err := cfg.CreateStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	defer func() { _ = backend.Close() }()

	pub, err := keypair.LoadPublic(backend, peer)
	if err != nil {
		return nil, fmt.Errorf("failed to load peer public key %q: %w", peer, err)
	}
	return pub, nil
}
