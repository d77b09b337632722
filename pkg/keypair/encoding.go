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

package keypair

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/jeremyhahn/go-keyexchange/pkg/storage"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

// PEM block types and storage key suffixes for persisted key material.
const (
	pemTypePublic  = "PUBLIC KEY"
	pemTypePrivate = "PRIVATE KEY"

	storagePrefix    = "keys/"
	privateKeySuffix = ".key.pem"
	publicKeySuffix  = ".pub.pem"
)

// EncodePublic encodes a public key as PKIX DER wrapped in PEM.
func EncodePublic(pub *ecdh.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to marshal public key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  pemTypePublic,
		Bytes: der,
	}), nil
}

// DecodePublic decodes a PKIX PEM public key into a crypto/ecdh public key.
func DecodePublic(data []byte) (*ecdh.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePublic {
		return nil, fmt.Errorf("keypair: invalid public key PEM")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to parse public key: %w", err)
	}

	switch pub := parsed.(type) {
	case *ecdh.PublicKey:
		return pub, nil
	case *ecdsa.PublicKey:
		converted, err := pub.ECDH()
		if err != nil {
			return nil, fmt.Errorf("keypair: failed to convert public key: %w", err)
		}
		return converted, nil
	default:
		return nil, fmt.Errorf("keypair: unsupported public key type %T", parsed)
	}
}

// EncodePrivate encodes a private key as PKCS#8 DER wrapped in PEM.
func EncodePrivate(private *ecdh.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(private)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to marshal private key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  pemTypePrivate,
		Bytes: der,
	}), nil
}

// DecodePrivate decodes a PKCS#8 PEM private key into a crypto/ecdh
// private key.
func DecodePrivate(data []byte) (*ecdh.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePrivate {
		return nil, fmt.Errorf("keypair: invalid private key PEM")
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to parse private key: %w", err)
	}

	switch private := parsed.(type) {
	case *ecdh.PrivateKey:
		return private, nil
	case *ecdsa.PrivateKey:
		converted, err := private.ECDH()
		if err != nil {
			return nil, fmt.Errorf("keypair: failed to convert private key: %w", err)
		}
		return converted, nil
	default:
		return nil, fmt.Errorf("keypair: unsupported private key type %T", parsed)
	}
}

// PublicJWK returns the key pair's public key as a JSON Web Key with the
// key pair ID as the JWK kid. X25519 keys are not supported.
func (kp *KeyPair) PublicJWK() ([]byte, error) {
	pub, err := ecdsaPublic(kp.curve, kp.Public())
	if err != nil {
		return nil, err
	}

	jwk := jose.JSONWebKey{
		Key:       pub,
		KeyID:     kp.id,
		Algorithm: string(jose.ECDH_ES),
		Use:       "enc",
	}
	data, err := jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to marshal JWK: %w", err)
	}
	return data, nil
}

// ecdsaPublic converts a NIST-curve ECDH public key to an ECDSA public key
// for interoperability with JOSE tooling.
func ecdsaPublic(curve types.Curve, pub *ecdh.PublicKey) (*ecdsa.PublicKey, error) {
	var ec elliptic.Curve
	switch curve {
	case types.CurveP256:
		ec = elliptic.P256()
	case types.CurveP384:
		ec = elliptic.P384()
	case types.CurveP521:
		ec = elliptic.P521()
	default:
		return nil, fmt.Errorf("keypair: JWK export not supported for %s", curve)
	}

	// crypto/ecdh returns the uncompressed point: 0x04 || X || Y
	raw := pub.Bytes()
	size := (ec.Params().BitSize + 7) / 8
	if len(raw) != 1+2*size || raw[0] != 4 {
		return nil, fmt.Errorf("keypair: unexpected public key encoding for %s", curve)
	}

	return &ecdsa.PublicKey{
		Curve: ec,
		X:     new(big.Int).SetBytes(raw[1 : 1+size]),
		Y:     new(big.Int).SetBytes(raw[1+size:]),
	}, nil
}

// Save persists the key pair under the given name: the private key as
// PKCS#8 PEM and the public key as PKIX PEM.
func (kp *KeyPair) Save(backend storage.Backend, name string) error {
	if name == "" {
		return storage.ErrInvalidID
	}

	privatePEM, err := EncodePrivate(kp.private)
	if err != nil {
		return err
	}
	publicPEM, err := EncodePublic(kp.Public())
	if err != nil {
		return err
	}

	if err := backend.Put(storagePrefix+name+privateKeySuffix, privatePEM, storage.DefaultOptions()); err != nil {
		return fmt.Errorf("keypair: failed to save private key %q: %w", name, err)
	}
	if err := backend.Put(storagePrefix+name+publicKeySuffix, publicPEM, storage.DefaultOptions()); err != nil {
		return fmt.Errorf("keypair: failed to save public key %q: %w", name, err)
	}

	return nil
}

// Load retrieves a previously saved key pair by name.
func Load(backend storage.Backend, name string) (*KeyPair, error) {
	data, err := backend.Get(storagePrefix + name + privateKeySuffix)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to load key pair %q: %w", name, err)
	}

	private, err := DecodePrivate(data)
	if err != nil {
		return nil, err
	}

	return FromPrivate(curveOf(private.Curve()), private)
}

// LoadPublic retrieves a previously saved public key by name. This is the
// path used to obtain a peer's public key for derivation.
func LoadPublic(backend storage.Backend, name string) (*ecdh.PublicKey, error) {
	data, err := backend.Get(storagePrefix + name + publicKeySuffix)
	if err != nil {
		return nil, fmt.Errorf("keypair: failed to load public key %q: %w", name, err)
	}
	return DecodePublic(data)
}

// curveOf maps a crypto/ecdh curve back to its named identifier.
func curveOf(curve ecdh.Curve) types.Curve {
	switch curve {
	case ecdh.P256():
		return types.CurveP256
	case ecdh.P384():
		return types.CurveP384
	case ecdh.P521():
		return types.CurveP521
	case ecdh.X25519():
		return types.CurveX25519
	default:
		return types.CurveUnknown
	}
}
