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

// Package agreement provides Elliptic Curve Diffie-Hellman (ECDH) key
// agreement for establishing shared symmetric keys between two parties.
//
// This package supports the NIST P-256, P-384, and P-521 curves plus X25519
// and uses HKDF (HMAC-based Key Derivation Function) for deriving session
// keys from shared secrets.
//
// Example usage:
//
//	// Generate key pairs for Alice and Bob
//	alice, _ := keypair.Generate(types.CurveP256)
//	bob, _ := keypair.Generate(types.CurveP256)
//
//	// Each party derives the session key from its own private key and the
//	// counterpart's public key; both derivations yield identical key bytes.
//	aliceKey, _ := agreement.NewSessionKey(alice, bob.Public())
//	bobKey, _ := agreement.NewSessionKey(bob, alice.Public())
//
//	// aliceKey.Raw() == bobKey.Raw()
package agreement

import (
	"crypto/ecdh"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jeremyhahn/go-keyexchange/pkg/aead"
	"github.com/jeremyhahn/go-keyexchange/pkg/keypair"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"golang.org/x/crypto/hkdf"
)

// sessionKeyInfo is the HKDF context label for session key derivation.
// It contains nothing party-specific so that both directions of the
// exchange derive identical key material.
const sessionKeyInfo = "go-keyexchange/session-key/v1"

// SessionKeySize is the derived session key length in bytes (AES-256).
const SessionKeySize = 32

// DeriveSharedSecret performs ECDH key agreement between a private key and
// a public key, returning the raw shared secret.
//
// Both keys must use the same curve. The shared secret is the raw output of
// the ECDH operation; use DeriveKey or NewSessionKey to turn it into
// encryption key material.
func DeriveSharedSecret(private *ecdh.PrivateKey, public *ecdh.PublicKey) ([]byte, error) {
	if private == nil {
		return nil, fmt.Errorf("agreement: private key cannot be nil")
	}
	if public == nil {
		return nil, fmt.Errorf("agreement: public key cannot be nil")
	}

	if private.Curve() != public.Curve() {
		return nil, fmt.Errorf("agreement: %w", types.ErrCurveMismatch)
	}

	sharedSecret, err := private.ECDH(public)
	if err != nil {
		return nil, fmt.Errorf("agreement: ECDH operation failed: %w", err)
	}

	return sharedSecret, nil
}

// DeriveKey derives a key of the specified length from a shared secret
// using HKDF-SHA256.
//
// Parameters:
//   - sharedSecret: The raw shared secret from ECDH
//   - salt: Optional salt value (can be nil)
//   - info: Context-specific information for key separation
//   - keyLength: Desired output key length in bytes
//
// HKDF provides key separation: different info values produce different
// keys from the same shared secret.
func DeriveKey(sharedSecret, salt, info []byte, keyLength int) ([]byte, error) {
	if sharedSecret == nil {
		return nil, fmt.Errorf("agreement: shared secret cannot be nil")
	}
	if keyLength <= 0 {
		return nil, fmt.Errorf("agreement: key length must be positive, got %d", keyLength)
	}

	reader := hkdf.New(sha256.New, sharedSecret, salt, info)

	derived := make([]byte, keyLength)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return nil, fmt.Errorf("agreement: HKDF derivation failed: %w", err)
	}

	return derived, nil
}

// SessionKey is a symmetric AEAD key derived from an ECDH exchange.
// The underlying key material is identical for both parties of the
// exchange.
type SessionKey struct {
	id        string
	algorithm string
	raw       []byte
}

// NewSessionKey derives a 256-bit AES-GCM session key from one party's key
// pair and the counterpart's public key. Deriving in either direction
// yields bit-identical key material.
func NewSessionKey(own *keypair.KeyPair, peer *ecdh.PublicKey) (*SessionKey, error) {
	return NewSessionKeyWithAlgorithm(own, peer, types.AlgorithmAES256GCM)
}

// NewSessionKeyWithAlgorithm derives a session key bound to the given AEAD
// algorithm. Both AES-256-GCM and ChaCha20-Poly1305 use 256-bit keys.
func NewSessionKeyWithAlgorithm(own *keypair.KeyPair, peer *ecdh.PublicKey, algorithm string) (*SessionKey, error) {
	if own == nil {
		return nil, fmt.Errorf("agreement: key pair cannot be nil")
	}

	switch algorithm {
	case types.AlgorithmAES256GCM, types.AlgorithmChaCha20Poly1305:
	default:
		return nil, fmt.Errorf("agreement: %w: %s", types.ErrUnknownAlgorithm, algorithm)
	}

	sharedSecret, err := DeriveSharedSecret(own.Private(), peer)
	if err != nil {
		return nil, err
	}

	raw, err := DeriveKey(sharedSecret, nil, []byte(sessionKeyInfo), SessionKeySize)
	if err != nil {
		return nil, err
	}

	return &SessionKey{
		id:        uuid.New().String(),
		algorithm: algorithm,
		raw:       raw,
	}, nil
}

// ID returns the unique identifier assigned to this session key instance.
// The two halves of an exchange hold distinct IDs for the same key bytes.
func (k *SessionKey) ID() string {
	return k.id
}

// Algorithm returns the AEAD algorithm this key is bound to.
func (k *SessionKey) Algorithm() string {
	return k.algorithm
}

// Raw returns a copy of the derived key material.
func (k *SessionKey) Raw() []byte {
	raw := make([]byte, len(k.raw))
	copy(raw, k.raw)
	return raw
}

// Base64 returns the derived key material as standard base64. The encoding
// is deterministic: identical key bytes always produce identical strings.
func (k *SessionKey) Base64() string {
	return base64.StdEncoding.EncodeToString(k.raw)
}

// Cipher returns a SessionCipher for this key's AEAD algorithm.
func (k *SessionKey) Cipher() (types.SessionCipher, error) {
	return aead.NewCipher(k.algorithm, k.raw)
}
