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
	"bytes"
	"fmt"
	"os"

	"github.com/jeremyhahn/go-keyexchange/pkg/aead"
	"github.com/jeremyhahn/go-keyexchange/pkg/agreement"
	"github.com/jeremyhahn/go-keyexchange/pkg/keypair"
	"github.com/jeremyhahn/go-keyexchange/pkg/rand"
	"github.com/jeremyhahn/go-keyexchange/pkg/storage"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"github.com/spf13/cobra"
)

// demoMessage is the fixed plaintext encrypted by the demo scenario.
const demoMessage = "Hello, Deno 2.0!"

// DemoResult holds the outputs of the end-to-end key exchange demo
type DemoResult struct {
	AlicePublic     string
	BobPublic       string
	AliceDerived    string
	BobDerived      string
	KeysMatch       bool
	Encrypted       *types.EncryptedData
	Decrypted       string
	PlaintextsMatch bool
}

// demoCmd runs the complete two-party key exchange scenario
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the end-to-end key exchange demo",
	Long: `Run the complete two-party scenario: generate P-256 key pairs for
Alice and Bob, derive the shared session key in both directions, encrypt
a fixed message with Alice's key under a random 12-byte nonce, and
decrypt it with Bob's key. Prints the base64 public keys, derived keys,
ciphertext, and the plaintext equality result.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		result, err := runDemo()
		if err != nil {
			handleError(err)
			return
		}

		if err := printer.PrintDemo(result); err != nil {
			handleError(err)
		}
	},
}

// runDemo executes the two-party exchange in memory and returns its outputs
func runDemo() (*DemoResult, error) {
	backend := storage.NewMemory()
	defer func() { _ = backend.Close() }()

	alice, err := keypair.Generate(types.CurveP256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Alice's key pair: %w", err)
	}
	if err := alice.Save(backend, "alice"); err != nil {
		return nil, fmt.Errorf("failed to save Alice's key pair: %w", err)
	}

	bob, err := keypair.Generate(types.CurveP256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Bob's key pair: %w", err)
	}
	if err := bob.Save(backend, "bob"); err != nil {
		return nil, fmt.Errorf("failed to save Bob's key pair: %w", err)
	}

	// Each party loads the counterpart's public key from storage and
	// derives the session key independently
	bobPub, err := keypair.LoadPublic(backend, "bob")
	if err != nil {
		return nil, fmt.Errorf("failed to load Bob's public key: %w", err)
	}
	alicePub, err := keypair.LoadPublic(backend, "alice")
	if err != nil {
		return nil, fmt.Errorf("failed to load Alice's public key: %w", err)
	}

	aliceKey, err := agreement.NewSessionKey(alice, bobPub)
	if err != nil {
		return nil, fmt.Errorf("Alice's derivation failed: %w", err)
	}
	bobKey, err := agreement.NewSessionKey(bob, alicePub)
	if err != nil {
		return nil, fmt.Errorf("Bob's derivation failed: %w", err)
	}

	nonce, err := rand.Nonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	tracker := aead.NewNonceTracker()
	if err := tracker.CheckAndRecord(nonce); err != nil {
		return nil, err
	}

	aliceCipher, err := aliceKey.Cipher()
	if err != nil {
		return nil, err
	}
	encrypted, err := aliceCipher.Encrypt([]byte(demoMessage), &types.EncryptOptions{Nonce: nonce})
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}

	bobCipher, err := bobKey.Cipher()
	if err != nil {
		return nil, err
	}
	decrypted, err := bobCipher.Decrypt(encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return &DemoResult{
		AlicePublic:     alice.PublicBase64(),
		BobPublic:       bob.PublicBase64(),
		AliceDerived:    aliceKey.Base64(),
		BobDerived:      bobKey.Base64(),
		KeysMatch:       bytes.Equal(aliceKey.Raw(), bobKey.Raw()),
		Encrypted:       encrypted,
		Decrypted:       string(decrypted),
		PlaintextsMatch: string(decrypted) == demoMessage,
	}, nil
}
