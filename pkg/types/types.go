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

// Package types contains shared type definitions used across go-keyexchange,
// including elliptic curve identifiers, encrypted data containers, and
// cipher interfaces. This package has no dependencies on the other library
// packages to prevent import cycles.
package types

import (
	"crypto/ecdh"
	"errors"
	"strings"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnknownCurve is returned when an elliptic curve string is not recognized.
	ErrUnknownCurve = errors.New("keyexchange: unknown elliptic curve")

	// ErrCurveMismatch is returned when two keys are bound to different curves.
	ErrCurveMismatch = errors.New("keyexchange: curve mismatch")

	// ErrInvalidKeySize is returned when symmetric key material has an
	// unsupported length.
	ErrInvalidKeySize = errors.New("keyexchange: invalid key size")

	// ErrInvalidNonceSize is returned when a nonce does not match the
	// cipher's required nonce length.
	ErrInvalidNonceSize = errors.New("keyexchange: invalid nonce size")

	// ErrAuthentication is returned when AEAD decryption fails to
	// authenticate the ciphertext, nonce, tag, or additional data.
	ErrAuthentication = errors.New("keyexchange: message authentication failed")

	// ErrNonceReuse is returned when a nonce is used more than once under
	// the same key.
	ErrNonceReuse = errors.New("keyexchange: nonce reuse detected")

	// ErrUnknownAlgorithm is returned when an AEAD algorithm string is not
	// recognized.
	ErrUnknownAlgorithm = errors.New("keyexchange: unknown AEAD algorithm")
)

// =============================================================================
// Curves
// =============================================================================

// Curve identifies a named curve supported for key agreement.
type Curve string

const (
	// Curve constants for ECDH key agreement
	CurveP256    Curve = "P-256"
	CurveP384    Curve = "P-384"
	CurveP521    Curve = "P-521"
	CurveX25519  Curve = "X25519"
	CurveUnknown Curve = "unknown"
)

// Curves is a list of all supported curves for iteration.
var Curves = []Curve{
	CurveP256,
	CurveP384,
	CurveP521,
	CurveX25519,
}

// String returns the string representation of the curve.
func (c Curve) String() string {
	return string(c)
}

// IsValid returns true if the curve is supported.
func (c Curve) IsValid() bool {
	switch c {
	case CurveP256, CurveP384, CurveP521, CurveX25519:
		return true
	default:
		return false
	}
}

// ECDH returns the crypto/ecdh curve implementation for this curve.
func (c Curve) ECDH() (ecdh.Curve, error) {
	switch c {
	case CurveP256:
		return ecdh.P256(), nil
	case CurveP384:
		return ecdh.P384(), nil
	case CurveP521:
		return ecdh.P521(), nil
	case CurveX25519:
		return ecdh.X25519(), nil
	default:
		return nil, ErrUnknownCurve
	}
}

// ParseCurve converts a string to a Curve. Common aliases (prime256v1,
// secp384r1, etc.) are accepted. Returns CurveUnknown if the string is not
// a supported curve.
func ParseCurve(s string) Curve {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p-256", "p256", "prime256v1", "secp256r1":
		return CurveP256
	case "p-384", "p384", "secp384r1":
		return CurveP384
	case "p-521", "p521", "secp521r1":
		return CurveP521
	case "x25519", "curve25519":
		return CurveX25519
	default:
		return CurveUnknown
	}
}

// =============================================================================
// AEAD Algorithms
// =============================================================================

const (
	// AlgorithmAES256GCM is AES-256 in Galois/Counter Mode.
	AlgorithmAES256GCM = "aes256-gcm"

	// AlgorithmChaCha20Poly1305 is the ChaCha20-Poly1305 AEAD.
	AlgorithmChaCha20Poly1305 = "chacha20-poly1305"
)

// =============================================================================
// Encryption Types
// =============================================================================

// EncryptOptions contains options for symmetric encryption operations.
type EncryptOptions struct {
	// Nonce is the nonce/IV to use for encryption. If nil, a random nonce
	// is generated. Must be exactly the cipher's nonce size when provided.
	Nonce []byte

	// AdditionalData is authenticated but not encrypted (AEAD AAD).
	AdditionalData []byte
}

// DecryptOptions contains options for symmetric decryption operations.
type DecryptOptions struct {
	// AdditionalData must match the value supplied at encryption time.
	AdditionalData []byte
}

// EncryptedData represents the result of an encryption operation.
type EncryptedData struct {
	// Ciphertext is the encrypted data
	Ciphertext []byte

	// Nonce is the nonce/IV used for encryption (must be stored with ciphertext)
	Nonce []byte

	// Tag is the authentication tag (16 bytes for GCM and ChaCha20-Poly1305)
	Tag []byte

	// Algorithm identifies the encryption algorithm used
	Algorithm string
}

// SessionCipher provides authenticated symmetric encryption and decryption
// under a derived session key. This is analogous to crypto.Signer for
// asymmetric operations.
type SessionCipher interface {
	// Encrypt encrypts plaintext with authentication.
	// Returns EncryptedData containing ciphertext, nonce, and tag.
	Encrypt(plaintext []byte, opts *EncryptOptions) (*EncryptedData, error)

	// Decrypt verifies authentication and decrypts the ciphertext.
	// Returns an error wrapping ErrAuthentication if verification fails.
	Decrypt(data *EncryptedData, opts *DecryptOptions) ([]byte, error)

	// NonceSize returns the required nonce length in bytes.
	NonceSize() int

	// Algorithm returns the AEAD algorithm identifier.
	Algorithm() string
}
