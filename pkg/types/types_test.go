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

package types

import (
	"crypto/ecdh"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseCurve tests curve string parsing including aliases
func TestParseCurve(t *testing.T) {
	tests := []struct {
		input    string
		expected Curve
	}{
		{"P-256", CurveP256},
		{"p256", CurveP256},
		{"prime256v1", CurveP256},
		{"secp256r1", CurveP256},
		{"P-384", CurveP384},
		{"secp384r1", CurveP384},
		{"P-521", CurveP521},
		{"p521", CurveP521},
		{"X25519", CurveX25519},
		{"curve25519", CurveX25519},
		{"  p-256  ", CurveP256},
		{"P-224", CurveUnknown},
		{"", CurveUnknown},
		{"rsa", CurveUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseCurve(tc.input))
		})
	}
}

// TestCurveECDH tests mapping to crypto/ecdh implementations
func TestCurveECDH(t *testing.T) {
	tests := []struct {
		curve    Curve
		expected ecdh.Curve
	}{
		{CurveP256, ecdh.P256()},
		{CurveP384, ecdh.P384()},
		{CurveP521, ecdh.P521()},
		{CurveX25519, ecdh.X25519()},
	}

	for _, tc := range tests {
		t.Run(tc.curve.String(), func(t *testing.T) {
			impl, err := tc.curve.ECDH()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, impl)
		})
	}

	// Unknown curve fails
	_, err := CurveUnknown.ECDH()
	assert.ErrorIs(t, err, ErrUnknownCurve)
}

// TestCurveIsValid tests curve validation
func TestCurveIsValid(t *testing.T) {
	for _, c := range Curves {
		assert.True(t, c.IsValid(), c.String())
	}
	assert.False(t, CurveUnknown.IsValid())
	assert.False(t, Curve("P-224").IsValid())
}
