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
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"github.com/spf13/cobra"
)

// encryptCmd encrypts a message under a derived session key
var encryptCmd = &cobra.Command{
	Use:   "encrypt <name> [message]",
	Short: "Encrypt a message with a derived session key",
	Long: `Derive a session key from the named private key and the counterpart's
public key, then encrypt the message with the configured AEAD algorithm.
The message is taken from the argument or, when absent, read from stdin.

A specific 12-byte nonce may be supplied with --nonce (base64); otherwise
a fresh random nonce is generated. The ciphertext, nonce, and
authentication tag are printed base64 encoded.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := getConfig()
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		peer, _ := cmd.Flags().GetString("peer")
		nonceB64, _ := cmd.Flags().GetString("nonce")
		aadB64, _ := cmd.Flags().GetString("aad")

		if peer == "" {
			handleError(fmt.Errorf("--peer is required"))
			return
		}

		plaintext, err := readMessage(args)
		if err != nil {
			handleError(err)
			return
		}

		opts := &types.EncryptOptions{}
		if nonceB64 != "" {
			nonce, err := base64.StdEncoding.DecodeString(nonceB64)
			if err != nil {
				handleError(fmt.Errorf("invalid base64 nonce: %w", err))
				return
			}
			opts.Nonce = nonce
		}
		if aadB64 != "" {
			aad, err := base64.StdEncoding.DecodeString(aadB64)
			if err != nil {
				handleError(fmt.Errorf("invalid base64 additional data: %w", err))
				return
			}
			opts.AdditionalData = aad
		}

		sessionKey, err := deriveSessionKey(cfg, name, peer)
		if err != nil {
			handleError(err)
			return
		}

		cipher, err := sessionKey.Cipher()
		if err != nil {
			handleError(err)
			return
		}

		encrypted, err := cipher.Encrypt(plaintext, opts)
		if err != nil {
			handleError(fmt.Errorf("encryption failed: %w", err))
			return
		}

		if err := printer.PrintEncryptedData(encrypted); err != nil {
			handleError(err)
		}
	},
}

func init() {
	encryptCmd.Flags().String("peer", "", "peer public key (PEM file path or stored key name)")
	encryptCmd.Flags().String("nonce", "", "explicit 12-byte nonce (base64)")
	encryptCmd.Flags().String("aad", "", "additional authenticated data (base64)")
}

// readMessage returns the message argument or the full contents of stdin
func readMessage(args []string) ([]byte, error) {
	if len(args) > 1 {
		return []byte(args[1]), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read message from stdin: %w", err)
	}
	return data, nil
}
