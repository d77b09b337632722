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

package cli

import (
	"testing"
)

func TestRunDemo(t *testing.T) {
	result, err := runDemo()
	if err != nil {
		t.Fatalf("runDemo() returned error: %v", err)
	}

	if !result.KeysMatch {
		t.Error("derived keys should match in both directions")
	}
	if result.AliceDerived != result.BobDerived {
		t.Errorf("AliceDerived = %v, BobDerived = %v", result.AliceDerived, result.BobDerived)
	}
	if result.AlicePublic == result.BobPublic {
		t.Error("Alice and Bob should have distinct public keys")
	}
	if result.Decrypted != demoMessage {
		t.Errorf("Decrypted = %q, want %q", result.Decrypted, demoMessage)
	}
	if !result.PlaintextsMatch {
		t.Error("plaintexts should match after the round trip")
	}
	if len(result.Encrypted.Nonce) != 12 {
		t.Errorf("nonce length = %d, want 12", len(result.Encrypted.Nonce))
	}
	if len(result.Encrypted.Ciphertext) != len(demoMessage) {
		t.Errorf("ciphertext length = %d, want %d", len(result.Encrypted.Ciphertext), len(demoMessage))
	}
	if len(result.Encrypted.Tag) != 16 {
		t.Errorf("tag length = %d, want 16", len(result.Encrypted.Tag))
	}
}

func TestRunDemo_FreshKeysEachRun(t *testing.T) {
	first, err := runDemo()
	if err != nil {
		t.Fatalf("runDemo() returned error: %v", err)
	}
	second, err := runDemo()
	if err != nil {
		t.Fatalf("runDemo() returned error: %v", err)
	}

	if first.AliceDerived == second.AliceDerived {
		t.Error("independent runs should derive distinct session keys")
	}
}
