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

// Package aead provides authenticated encryption for derived session keys.
// AES-256-GCM and ChaCha20-Poly1305 are supported, with automatic algorithm
// selection based on CPU capabilities and optional nonce-reuse detection.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/jeremyhahn/go-keyexchange/pkg/rand"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length in bytes for both supported
// algorithms (AES-256-GCM and ChaCha20-Poly1305).
const KeySize = 32

// sessionCipher implements types.SessionCipher over a cipher.AEAD.
type sessionCipher struct {
	aead      cipher.AEAD
	algorithm string
}

// NewCipher creates a SessionCipher for the given algorithm and 256-bit key.
func NewCipher(algorithm string, key []byte) (types.SessionCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", types.ErrInvalidKeySize, len(key), KeySize)
	}

	var aeadCipher cipher.AEAD
	switch algorithm {
	case types.AlgorithmAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("aead: failed to create cipher: %w", err)
		}
		aeadCipher, err = cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("aead: failed to create GCM: %w", err)
		}
	case types.AlgorithmChaCha20Poly1305:
		var err error
		aeadCipher, err = chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("aead: failed to create ChaCha20-Poly1305: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownAlgorithm, algorithm)
	}

	return &sessionCipher{
		aead:      aeadCipher,
		algorithm: algorithm,
	}, nil
}

// Encrypt encrypts plaintext with authentication. An explicit nonce may be
// supplied through opts; otherwise a random 12-byte nonce is generated.
// The authentication tag is returned separately from the ciphertext.
func (c *sessionCipher) Encrypt(plaintext []byte, opts *types.EncryptOptions) (*types.EncryptedData, error) {
	if opts == nil {
		opts = &types.EncryptOptions{}
	}

	nonce := opts.Nonce
	if nonce == nil {
		var err error
		nonce, err = rand.Nonce()
		if err != nil {
			return nil, fmt.Errorf("aead: failed to generate nonce: %w", err)
		}
	} else if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", types.ErrInvalidNonceSize, len(nonce), c.aead.NonceSize())
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, opts.AdditionalData)

	// Seal appends the tag to the ciphertext
	tagSize := c.aead.Overhead()
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return &types.EncryptedData{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Tag:        tag,
		Algorithm:  c.algorithm,
	}, nil
}

// Decrypt verifies authentication and decrypts the ciphertext. Any mismatch
// of key, nonce, tag, ciphertext, or additional data yields an error
// wrapping types.ErrAuthentication; decryption never silently succeeds with
// wrong output.
func (c *sessionCipher) Decrypt(data *types.EncryptedData, opts *types.DecryptOptions) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("aead: encrypted data is nil")
	}
	if opts == nil {
		opts = &types.DecryptOptions{}
	}
	if len(data.Nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", types.ErrInvalidNonceSize, len(data.Nonce), c.aead.NonceSize())
	}

	// AEAD ciphers expect the tag appended to the ciphertext
	sealed := make([]byte, 0, len(data.Ciphertext)+len(data.Tag))
	sealed = append(sealed, data.Ciphertext...)
	sealed = append(sealed, data.Tag...)

	plaintext, err := c.aead.Open(nil, data.Nonce, sealed, opts.AdditionalData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAuthentication, err)
	}

	return plaintext, nil
}

// NonceSize returns the required nonce length in bytes.
func (c *sessionCipher) NonceSize() int {
	return c.aead.NonceSize()
}

// Algorithm returns the AEAD algorithm identifier.
func (c *sessionCipher) Algorithm() string {
	return c.algorithm
}
