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
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-keyexchange/pkg/keypair"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintKeyPair prints a generated key pair's public half
func (p *Printer) PrintKeyPair(name string, kp *keypair.KeyPair, publicPEM []byte) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"name":           name,
			"id":             kp.ID(),
			"curve":          kp.Curve().String(),
			"public_key":     kp.PublicBase64(),
			"public_key_pem": string(publicPEM),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Name:   %s\n", name)
		fmt.Fprintf(p.writer, "ID:     %s\n", kp.ID())
		fmt.Fprintf(p.writer, "Curve:  %s\n", kp.Curve())
		fmt.Fprintf(p.writer, "Public: %s\n", kp.PublicBase64())
		fmt.Fprint(p.writer, string(publicPEM))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSessionKey prints a derived session key (base64 encoded)
func (p *Printer) PrintSessionKey(keyBase64, algorithm string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"session_key": keyBase64,
			"algorithm":   algorithm,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Session Key: %s\n", keyBase64)
		fmt.Fprintf(p.writer, "Algorithm:   %s\n", algorithm)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintEncryptedData prints encrypted data (ciphertext, nonce, tag all base64 encoded)
func (p *Printer) PrintEncryptedData(data *types.EncryptedData) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"ciphertext": base64.StdEncoding.EncodeToString(data.Ciphertext),
			"nonce":      base64.StdEncoding.EncodeToString(data.Nonce),
			"tag":        base64.StdEncoding.EncodeToString(data.Tag),
			"algorithm":  data.Algorithm,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Ciphertext: %s\n", base64.StdEncoding.EncodeToString(data.Ciphertext))
		fmt.Fprintf(p.writer, "Nonce:      %s\n", base64.StdEncoding.EncodeToString(data.Nonce))
		fmt.Fprintf(p.writer, "Tag:        %s\n", base64.StdEncoding.EncodeToString(data.Tag))
		fmt.Fprintf(p.writer, "Algorithm:  %s\n", data.Algorithm)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintDecryptedData prints decrypted plaintext
func (p *Printer) PrintDecryptedData(plaintext string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"plaintext": plaintext,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, plaintext)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status":  "success",
			"message": message,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintDemo prints the result of the end-to-end key exchange demo
func (p *Printer) PrintDemo(result *DemoResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"alice_public":     result.AlicePublic,
			"bob_public":       result.BobPublic,
			"alice_derived":    result.AliceDerived,
			"bob_derived":      result.BobDerived,
			"keys_match":       result.KeysMatch,
			"ciphertext":       base64.StdEncoding.EncodeToString(result.Encrypted.Ciphertext),
			"nonce":            base64.StdEncoding.EncodeToString(result.Encrypted.Nonce),
			"tag":              base64.StdEncoding.EncodeToString(result.Encrypted.Tag),
			"algorithm":        result.Encrypted.Algorithm,
			"decrypted":        result.Decrypted,
			"plaintexts_match": result.PlaintextsMatch,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Alice public key:  %s\n", result.AlicePublic)
		fmt.Fprintf(p.writer, "Bob public key:    %s\n", result.BobPublic)
		fmt.Fprintf(p.writer, "Alice derived key: %s\n", result.AliceDerived)
		fmt.Fprintf(p.writer, "Bob derived key:   %s\n", result.BobDerived)
		fmt.Fprintf(p.writer, "Derived keys match: %t\n", result.KeysMatch)
		fmt.Fprintf(p.writer, "Ciphertext: %s\n", base64.StdEncoding.EncodeToString(result.Encrypted.Ciphertext))
		fmt.Fprintf(p.writer, "Nonce:      %s\n", base64.StdEncoding.EncodeToString(result.Encrypted.Nonce))
		fmt.Fprintf(p.writer, "Tag:        %s\n", base64.StdEncoding.EncodeToString(result.Encrypted.Tag))
		fmt.Fprintf(p.writer, "Decrypted:  %s\n", result.Decrypted)
		fmt.Fprintf(p.writer, "Plaintexts match: %t\n", result.PlaintextsMatch)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints data as JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
