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

// Package keypair provides elliptic-curve key pair generation for ECDH key
// agreement. Key pairs are bound to a named curve (NIST P-256 by default)
// and are used only as input to key derivation; the package delegates all
// curve arithmetic to crypto/ecdh.
package keypair

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

// KeyPair holds an ECDH private/public key pair bound to a named curve.
// The private key never leaves the struct except through explicit encoding.
type KeyPair struct {
	id      string
	curve   types.Curve
	private *ecdh.PrivateKey
}

// Generate creates a new key pair on the given curve using the platform
// CSPRNG. The returned pair is assigned a unique identifier.
func Generate(curve types.Curve) (*KeyPair, error) {
	impl, err := curve.ECDH()
	if err != nil {
		return nil, fmt.Errorf("keypair: %w", err)
	}

	private, err := impl.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to generate %s key: %w", curve, err)
	}

	return &KeyPair{
		id:      uuid.New().String(),
		curve:   curve,
		private: private,
	}, nil
}

// FromPrivate wraps an existing crypto/ecdh private key in a KeyPair.
// The curve must match the key's actual curve.
func FromPrivate(curve types.Curve, private *ecdh.PrivateKey) (*KeyPair, error) {
	if private == nil {
		return nil, fmt.Errorf("keypair: private key cannot be nil")
	}

	impl, err := curve.ECDH()
	if err != nil {
		return nil, fmt.Errorf("keypair: %w", err)
	}
	if private.Curve() != impl {
		return nil, fmt.Errorf("keypair: key does not use curve %s: %w", curve, types.ErrCurveMismatch)
	}

	return &KeyPair{
		id:      uuid.New().String(),
		curve:   curve,
		private: private,
	}, nil
}

// ID returns the unique identifier assigned to this key pair.
func (kp *KeyPair) ID() string {
	return kp.id
}

// Curve returns the named curve this key pair is bound to.
func (kp *KeyPair) Curve() types.Curve {
	return kp.curve
}

// Private returns the ECDH private key.
func (kp *KeyPair) Private() *ecdh.PrivateKey {
	return kp.private
}

// Public returns the ECDH public key.
func (kp *KeyPair) Public() *ecdh.PublicKey {
	return kp.private.PublicKey()
}

// PublicBase64 returns the public key as standard base64. The encoding is
// deterministic: the same key always produces the same string. For NIST
// curves this is the uncompressed point; for X25519 the raw 32-byte value.
func (kp *KeyPair) PublicBase64() string {
	return PublicBase64(kp.Public())
}

// PublicBase64 returns the deterministic base64 encoding of a public key.
func PublicBase64(pub *ecdh.PublicKey) string {
	return base64.StdEncoding.EncodeToString(pub.Bytes())
}
