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

	"github.com/jeremyhahn/go-keyexchange/pkg/keypair"
	"github.com/spf13/cobra"
)

// keygenCmd generates a new ECDH key pair
var keygenCmd = &cobra.Command{
	Use:   "keygen <name>",
	Short: "Generate a new ECDH key pair",
	Long: `Generate a new ECDH key pair on the configured curve and persist it
under the given name. The public key is printed in raw base64 and PEM
form for exchange with the counterpart.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := getConfig()
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		jwk, _ := cmd.Flags().GetBool("jwk")

		curve, err := cfg.ResolveCurve()
		if err != nil {
			handleError(err)
			return
		}

		printVerbose("Generating %s key pair: %s", curve, name)

		kp, err := keypair.Generate(curve)
		if err != nil {
			handleError(fmt.Errorf("failed to generate key pair: %w", err))
			return
		}

		backend, err := cfg.CreateStorage()
		if err != nil {
			handleError(fmt.Errorf("failed to create storage backend: %w", err))
			return
		}
		defer func() { _ = backend.Close() }()

		if err := kp.Save(backend, name); err != nil {
			handleError(fmt.Errorf("failed to save key pair: %w", err))
			return
		}

		if jwk {
			data, err := kp.PublicJWK()
			if err != nil {
				handleError(fmt.Errorf("failed to export JWK: %w", err))
				return
			}
			fmt.Fprintln(os.Stdout, string(data))
			return
		}

		publicPEM, err := keypair.EncodePublic(kp.Public())
		if err != nil {
			handleError(fmt.Errorf("failed to encode public key: %w", err))
			return
		}

		if err := printer.PrintKeyPair(name, kp, publicPEM); err != nil {
			handleError(err)
		}
	},
}

func init() {
	keygenCmd.Flags().Bool("jwk", false, "print the public key as a JSON Web Key")
}
