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
	"runtime"

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
	"golang.org/x/sys/cpu"
)

// HasAESNI returns true if the CPU has AES-NI (AES New Instructions)
// support, which provides hardware acceleration for AES operations.
//
// Supported architectures:
//   - amd64: Checks X86.HasAES
//   - arm64: Checks ARM64.HasAES
//   - Other architectures return false
func HasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	default:
		return false
	}
}

// SelectOptimal selects the AEAD algorithm best suited to the current CPU.
//
// Selection logic:
//  1. If the CPU has AES-NI, use AES-256-GCM for best performance
//  2. Otherwise, use ChaCha20-Poly1305, which outperforms AES in software
//     and provides constant-time operations
func SelectOptimal() string {
	if HasAESNI() {
		return types.AlgorithmAES256GCM
	}
	return types.AlgorithmChaCha20Poly1305
}
