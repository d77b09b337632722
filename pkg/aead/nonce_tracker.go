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
	"encoding/hex"
	"sync"

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

// NonceTracker provides thread-safe tracking of used nonces to prevent
// nonce reuse under a single session key.
//
// Nonce reuse in AEAD ciphers is catastrophic: reusing a nonce with the
// same AES-GCM key breaks authentication and can reveal the authentication
// key, and reusing a ChaCha20-Poly1305 nonce leaks keystream. NIST SP
// 800-38D and RFC 8439 both require each nonce to be used at most once per
// key.
//
// Memory usage grows with each recorded nonce; for long-lived keys,
// rotate the key and Clear the tracker instead of tracking unbounded.
type NonceTracker struct {
	nonces map[string]struct{} // Set of used nonces (hex encoded)
	mu     sync.RWMutex
}

// NewNonceTracker creates an empty nonce tracker.
func NewNonceTracker() *NonceTracker {
	return &NonceTracker{
		nonces: make(map[string]struct{}),
	}
}

// CheckAndRecord atomically checks whether a nonce has been used before
// and records it. Returns an error wrapping types.ErrNonceReuse if the
// nonce was previously recorded.
func (nt *NonceTracker) CheckAndRecord(nonce []byte) error {
	nonceHex := hex.EncodeToString(nonce)

	nt.mu.Lock()
	defer nt.mu.Unlock()

	if _, exists := nt.nonces[nonceHex]; exists {
		return types.ErrNonceReuse
	}

	nt.nonces[nonceHex] = struct{}{}
	return nil
}

// Contains reports whether a nonce has been recorded, without side effects.
func (nt *NonceTracker) Contains(nonce []byte) bool {
	nonceHex := hex.EncodeToString(nonce)

	nt.mu.RLock()
	defer nt.mu.RUnlock()

	_, exists := nt.nonces[nonceHex]
	return exists
}

// Count returns the number of unique nonces tracked.
func (nt *NonceTracker) Count() int {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	return len(nt.nonces)
}

// Clear removes all tracked nonces. Only clear when rotating to a new key;
// clearing and reusing nonces under the same key compromises security.
func (nt *NonceTracker) Clear() {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	nt.nonces = make(map[string]struct{})
}
