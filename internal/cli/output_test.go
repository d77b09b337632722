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
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-keyexchange/pkg/types"
)

func TestPrinter_PrintSessionKey_Text(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("text", &buf)

	if err := printer.PrintSessionKey("a2V5", "aes256-gcm"); err != nil {
		t.Fatalf("PrintSessionKey() returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "a2V5") {
		t.Errorf("output missing session key: %q", out)
	}
	if !strings.Contains(out, "aes256-gcm") {
		t.Errorf("output missing algorithm: %q", out)
	}
}

func TestPrinter_PrintSessionKey_JSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("json", &buf)

	if err := printer.PrintSessionKey("a2V5", "aes256-gcm"); err != nil {
		t.Fatalf("PrintSessionKey() returned error: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out["session_key"] != "a2V5" {
		t.Errorf("session_key = %v, want a2V5", out["session_key"])
	}
	if out["algorithm"] != "aes256-gcm" {
		t.Errorf("algorithm = %v, want aes256-gcm", out["algorithm"])
	}
}

func TestPrinter_PrintEncryptedData(t *testing.T) {
	data := &types.EncryptedData{
		Ciphertext: []byte{0x01, 0x02},
		Nonce:      []byte{0x03, 0x04},
		Tag:        []byte{0x05, 0x06},
		Algorithm:  types.AlgorithmAES256GCM,
	}

	var buf bytes.Buffer
	printer := NewPrinter("json", &buf)
	if err := printer.PrintEncryptedData(data); err != nil {
		t.Fatalf("PrintEncryptedData() returned error: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out["ciphertext"] != base64.StdEncoding.EncodeToString(data.Ciphertext) {
		t.Errorf("ciphertext = %v", out["ciphertext"])
	}
	if out["nonce"] != base64.StdEncoding.EncodeToString(data.Nonce) {
		t.Errorf("nonce = %v", out["nonce"])
	}
	if out["tag"] != base64.StdEncoding.EncodeToString(data.Tag) {
		t.Errorf("tag = %v", out["tag"])
	}
}

func TestPrinter_PrintError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("text", &buf)

	if err := printer.PrintError(errors.New("boom")); err != nil {
		t.Fatalf("PrintError() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("xml", &buf)

	if err := printer.PrintSuccess("ok"); err == nil {
		t.Error("PrintSuccess() should fail for an unknown format")
	}
}

func TestPrinter_PrintDemo(t *testing.T) {
	result := &DemoResult{
		AlicePublic:     "YWxpY2U=",
		BobPublic:       "Ym9i",
		AliceDerived:    "a2V5",
		BobDerived:      "a2V5",
		KeysMatch:       true,
		Encrypted:       &types.EncryptedData{Ciphertext: []byte{0x01}, Nonce: []byte{0x02}, Tag: []byte{0x03}, Algorithm: types.AlgorithmAES256GCM},
		Decrypted:       "Hello, Deno 2.0!",
		PlaintextsMatch: true,
	}

	var buf bytes.Buffer
	printer := NewPrinter("text", &buf)
	if err := printer.PrintDemo(result); err != nil {
		t.Fatalf("PrintDemo() returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"YWxpY2U=", "Ym9i", "a2V5", "true", "Hello, Deno 2.0!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
