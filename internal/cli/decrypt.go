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
	"os"

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"github.com/spf13/cobra"
)

// decryptCmd decrypts a message under a derived session key
var decryptCmd = &cobra.Command{
	Use:   "decrypt <name> <ciphertext>",
	Short: "Decrypt a message with a derived session key",
	Long: `Derive a session key from the named private key and the counterpart's
public key, then decrypt the base64 ciphertext. The nonce and
authentication tag from the encrypt step are required; any mismatch in
key, nonce, tag, or ciphertext fails with an authentication error.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := getConfig()
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		peer, _ := cmd.Flags().GetString("peer")
		nonceB64, _ := cmd.Flags().GetString("nonce")
		tagB64, _ := cmd.Flags().GetString("tag")
		aadB64, _ := cmd.Flags().GetString("aad")

		if peer == "" {
			handleError(fmt.Errorf("--peer is required"))
			return
		}
		if nonceB64 == "" || tagB64 == "" {
			handleError(fmt.Errorf("--nonce and --tag are required"))
			return
		}

		ciphertext, err := base64.StdEncoding.DecodeString(args[1])
		if err != nil {
			handleError(fmt.Errorf("invalid base64 ciphertext: %w", err))
			return
		}
		nonce, err := base64.StdEncoding.DecodeString(nonceB64)
		if err != nil {
			handleError(fmt.Errorf("invalid base64 nonce: %w", err))
			return
		}
		tag, err := base64.StdEncoding.DecodeString(tagB64)
		if err != nil {
			handleError(fmt.Errorf("invalid base64 tag: %w", err))
			return
		}

		var opts *types.DecryptOptions
		if aadB64 != "" {
			aad, err := base64.StdEncoding.DecodeString(aadB64)
			if err != nil {
				handleError(fmt.Errorf("invalid base64 additional data: %w", err))
				return
			}
			opts = &types.DecryptOptions{AdditionalData: aad}
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

		plaintext, err := cipher.Decrypt(&types.EncryptedData{
			Ciphertext: ciphertext,
			Nonce:      nonce,
			Tag:        tag,
			Algorithm:  sessionKey.Algorithm(),
		}, opts)
		if err != nil {
			handleError(fmt.Errorf("decryption failed: %w", err))
			return
		}

		if err := printer.PrintDecryptedData(string(plaintext)); err != nil {
			handleError(err)
		}
	},
}

func init() {
	decryptCmd.Flags().String("peer", "", "peer public key (PEM file path or stored key name)")
	decryptCmd.Flags().String("nonce", "", "nonce from the encrypt step (base64)")
	decryptCmd.Flags().String("tag", "", "authentication tag from the encrypt step (base64)")
	decryptCmd.Flags().String("aad", "", "additional authenticated data (base64)")
}
