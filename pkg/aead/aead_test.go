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

package aead

import (
	"testing"

	"github.com/jeremyhahn/go-keyexchange/pkg/rand"
	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKey returns a fresh random 256-bit key.
func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := rand.Bytes(KeySize)
	require.NoError(t, err)
	return key
}

// algorithms under test
var algorithms = []string{
	types.AlgorithmAES256GCM,
	types.AlgorithmChaCha20Poly1305,
}

// TestNewCipher tests cipher construction for supported algorithms
func TestNewCipher(t *testing.T) {
	for _, algorithm := range algorithms {
		t.Run(algorithm, func(t *testing.T) {
			c, err := NewCipher(algorithm, testKey(t))
			require.NoError(t, err)
			assert.Equal(t, algorithm, c.Algorithm())
			assert.Equal(t, rand.NonceSize, c.NonceSize())
		})
	}
}

// TestNewCipher_InvalidKeySize tests key length validation
func TestNewCipher_InvalidKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33} {
		key := make([]byte, size)
		_, err := NewCipher(types.AlgorithmAES256GCM, key)
		assert.ErrorIs(t, err, types.ErrInvalidKeySize, "size %d", size)
	}
}

// TestNewCipher_UnknownAlgorithm tests algorithm validation
func TestNewCipher_UnknownAlgorithm(t *testing.T) {
	_, err := NewCipher("aes128-cbc", testKey(t))
	assert.ErrorIs(t, err, types.ErrUnknownAlgorithm)
}

// TestEncryptDecrypt_RoundTrip tests decrypt(encrypt(P)) == P
func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	for _, algorithm := range algorithms {
		t.Run(algorithm, func(t *testing.T) {
			c, err := NewCipher(algorithm, testKey(t))
			require.NoError(t, err)

			plaintext := []byte("Hello, Deno 2.0!")
			encrypted, err := c.Encrypt(plaintext, nil)
			require.NoError(t, err)

			assert.Len(t, encrypted.Nonce, c.NonceSize())
			assert.Len(t, encrypted.Tag, 16)
			assert.Equal(t, algorithm, encrypted.Algorithm)
			assert.NotEqual(t, plaintext, encrypted.Ciphertext)

			decrypted, err := c.Decrypt(encrypted, nil)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		})
	}
}

// TestEncrypt_ExplicitNonce tests encryption under a caller-supplied IV
func TestEncrypt_ExplicitNonce(t *testing.T) {
	c, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	nonce, err := rand.Nonce()
	require.NoError(t, err)

	encrypted, err := c.Encrypt([]byte("payload"), &types.EncryptOptions{Nonce: nonce})
	require.NoError(t, err)
	assert.Equal(t, nonce, encrypted.Nonce)

	decrypted, err := c.Decrypt(encrypted, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), decrypted)
}

// TestEncrypt_InvalidNonceSize tests nonce length validation
func TestEncrypt_InvalidNonceSize(t *testing.T) {
	c, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	_, err = c.Encrypt([]byte("payload"), &types.EncryptOptions{Nonce: make([]byte, 8)})
	assert.ErrorIs(t, err, types.ErrInvalidNonceSize)
}

// TestDecrypt_WrongNonce tests that a different IV fails authentication
func TestDecrypt_WrongNonce(t *testing.T) {
	for _, algorithm := range algorithms {
		t.Run(algorithm, func(t *testing.T) {
			c, err := NewCipher(algorithm, testKey(t))
			require.NoError(t, err)

			encrypted, err := c.Encrypt([]byte("payload"), nil)
			require.NoError(t, err)

			other, err := rand.Nonce()
			require.NoError(t, err)
			encrypted.Nonce = other

			_, err = c.Decrypt(encrypted, nil)
			assert.ErrorIs(t, err, types.ErrAuthentication)
		})
	}
}

// TestDecrypt_WrongKey tests that a mismatched key fails authentication
func TestDecrypt_WrongKey(t *testing.T) {
	c1, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	c2, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	encrypted, err := c1.Encrypt([]byte("payload"), nil)
	require.NoError(t, err)

	_, err = c2.Decrypt(encrypted, nil)
	assert.ErrorIs(t, err, types.ErrAuthentication)
}

// TestDecrypt_TamperedCiphertext tests tamper detection
func TestDecrypt_TamperedCiphertext(t *testing.T) {
	c, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	encrypted, err := c.Encrypt([]byte("payload"), nil)
	require.NoError(t, err)

	encrypted.Ciphertext[0] ^= 0xff
	_, err = c.Decrypt(encrypted, nil)
	assert.ErrorIs(t, err, types.ErrAuthentication)
}

// TestDecrypt_TamperedTag tests tag tamper detection
func TestDecrypt_TamperedTag(t *testing.T) {
	c, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	encrypted, err := c.Encrypt([]byte("payload"), nil)
	require.NoError(t, err)

	encrypted.Tag[0] ^= 0xff
	_, err = c.Decrypt(encrypted, nil)
	assert.ErrorIs(t, err, types.ErrAuthentication)
}

// TestEncryptDecrypt_AdditionalData tests AAD binding
func TestEncryptDecrypt_AdditionalData(t *testing.T) {
	c, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	aad := []byte("header-v1")
	encrypted, err := c.Encrypt([]byte("payload"), &types.EncryptOptions{AdditionalData: aad})
	require.NoError(t, err)

	// Matching AAD succeeds
	decrypted, err := c.Decrypt(encrypted, &types.DecryptOptions{AdditionalData: aad})
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), decrypted)

	// Missing AAD fails
	_, err = c.Decrypt(encrypted, nil)
	assert.ErrorIs(t, err, types.ErrAuthentication)

	// Different AAD fails
	_, err = c.Decrypt(encrypted, &types.DecryptOptions{AdditionalData: []byte("header-v2")})
	assert.ErrorIs(t, err, types.ErrAuthentication)
}

// TestDecrypt_NilData tests nil input handling
func TestDecrypt_NilData(t *testing.T) {
	c, err := NewCipher(types.AlgorithmAES256GCM, testKey(t))
	require.NoError(t, err)

	_, err = c.Decrypt(nil, nil)
	assert.Error(t, err)
}

// TestSelectOptimal tests CPU-based algorithm selection
func TestSelectOptimal(t *testing.T) {
	algorithm := SelectOptimal()
	if HasAESNI() {
		assert.Equal(t, types.AlgorithmAES256GCM, algorithm)
	} else {
		assert.Equal(t, types.AlgorithmChaCha20Poly1305, algorithm)
	}
}
