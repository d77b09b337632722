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

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Backend != "file" {
		t.Errorf("Backend = %v, want file", cfg.Backend)
	}
	if cfg.Curve != "p256" {
		t.Errorf("Curve = %v, want p256", cfg.Curve)
	}
	if cfg.Algorithm != "auto" {
		t.Errorf("Algorithm = %v, want auto", cfg.Algorithm)
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("OutputFormat = %v, want text", cfg.OutputFormat)
	}
	if cfg.Verbose {
		t.Error("Verbose should be false by default")
	}
}

func TestConfig_CreateStorage(t *testing.T) {
	cfg := NewConfig()
	cfg.Backend = "memory"

	backend, err := cfg.CreateStorage()
	if err != nil {
		t.Fatalf("CreateStorage() returned error: %v", err)
	}
	if backend == nil {
		t.Fatal("CreateStorage() returned nil")
	}
	_ = backend.Close()

	cfg.Backend = "file"
	cfg.KeyDir = t.TempDir()
	backend, err = cfg.CreateStorage()
	if err != nil {
		t.Fatalf("CreateStorage() returned error: %v", err)
	}
	_ = backend.Close()

	cfg.Backend = "redis"
	if _, err := cfg.CreateStorage(); err == nil {
		t.Error("CreateStorage() should fail for an unknown backend")
	}
}

func TestConfig_ResolveCurve(t *testing.T) {
	tests := []struct {
		name    string
		curve   string
		want    types.Curve
		wantErr bool
	}{
		{"p256", "p256", types.CurveP256, false},
		{"p384", "p384", types.CurveP384, false},
		{"p521", "p521", types.CurveP521, false},
		{"x25519", "x25519", types.CurveX25519, false},
		{"unknown", "p999", types.CurveUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Curve = tt.curve

			got, err := cfg.ResolveCurve()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveCurve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolveCurve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ResolveAlgorithm(t *testing.T) {
	cfg := NewConfig()

	cfg.Algorithm = types.AlgorithmAES256GCM
	if got, err := cfg.ResolveAlgorithm(); err != nil || got != types.AlgorithmAES256GCM {
		t.Errorf("ResolveAlgorithm() = %v, %v", got, err)
	}

	cfg.Algorithm = types.AlgorithmChaCha20Poly1305
	if got, err := cfg.ResolveAlgorithm(); err != nil || got != types.AlgorithmChaCha20Poly1305 {
		t.Errorf("ResolveAlgorithm() = %v, %v", got, err)
	}

	// Auto resolves to one of the two supported algorithms
	cfg.Algorithm = "auto"
	got, err := cfg.ResolveAlgorithm()
	if err != nil {
		t.Fatalf("ResolveAlgorithm() returned error: %v", err)
	}
	if got != types.AlgorithmAES256GCM && got != types.AlgorithmChaCha20Poly1305 {
		t.Errorf("ResolveAlgorithm() = %v, want a supported algorithm", got)
	}

	cfg.Algorithm = "des"
	if _, err := cfg.ResolveAlgorithm(); err == nil {
		t.Error("ResolveAlgorithm() should fail for an unknown algorithm")
	}
}
