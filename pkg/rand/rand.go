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

// Package rand provides secure random byte generation for key material and
// AEAD nonces. It wraps the platform CSPRNG (crypto/rand) with length
// validation and full-read guarantees.
package rand

import (
	cryptorand "crypto/rand"
	"fmt"
	"io"
)

// NonceSize is the standard nonce/IV length in bytes for AES-GCM and
// ChaCha20-Poly1305 (96 bits, per NIST SP 800-38D).
const NonceSize = 12

// Reader is the entropy source used by this package. It defaults to the
// platform CSPRNG and is a variable only so tests can observe failures.
var Reader io.Reader = cryptorand.Reader

// Bytes returns n cryptographically secure random bytes.
// Returns an error if n is not positive or the entropy source fails.
func Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("rand: byte count must be positive, got %d", n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(Reader, buf); err != nil {
		return nil, fmt.Errorf("rand: failed to read random bytes: %w", err)
	}
	return buf, nil
}

// Nonce returns a random 12-byte nonce suitable for AES-GCM and
// ChaCha20-Poly1305. Each nonce must be used at most once per key.
func Nonce() ([]byte, error) {
	return Bytes(NonceSize)
}
