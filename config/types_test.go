// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"testing"
)

func TestSectionLookup(t *testing.T) {
	cfg := Config{
		"scan": map[string]interface{}{"timeout_seconds": float64(30)},
	}

	if got := cfg.Section("scan"); got == nil {
		t.Fatal("Section(scan) = nil, want section")
	}
	if got := cfg.Section("missing"); got != nil {
		t.Errorf("Section(missing) = %v, want nil", got)
	}
	if got := cfg.Section(""); got == nil {
		t.Error("Section(\"\") = nil, want root section")
	}

	var nilCfg Config
	if got := nilCfg.Section("scan"); got != nil {
		t.Errorf("nil config Section = %v, want nil", got)
	}
}

func TestRegisterDefaultsDoesNotOverwrite(t *testing.T) {
	cfg := Config{
		"table": map[string]interface{}{"cell_padding": float64(3)},
	}
	cfg.RegisterDefaults("table", Section{
		"cell_padding":  1,
		"zebra_stripes": true,
	})

	if got := cfg.GetInt("table", "cell_padding", 0); got != 3 {
		t.Errorf("cell_padding = %d, want existing value 3", got)
	}
	if got := cfg.GetBool("table", "zebra_stripes", false); got != true {
		t.Error("zebra_stripes default was not filled in")
	}
}

func TestRegisterDefaultsCreatesSection(t *testing.T) {
	cfg := make(Config)
	cfg.RegisterDefaults("history", Section{"max_entries": 500})

	if got := cfg.GetInt("history", "max_entries", 0); got != 500 {
		t.Errorf("max_entries = %d, want 500", got)
	}
}

func TestTypedGetters(t *testing.T) {
	cfg := Config{
		"scan": map[string]interface{}{
			"working_dir":     "/work",
			"timeout_seconds": float64(20),
			"as_number":       json.Number("7"),
			"wrong_type":      "nope",
		},
		"table": map[string]interface{}{"zebra_stripes": false},
	}

	if got := cfg.GetString("scan", "working_dir", ""); got != "/work" {
		t.Errorf("GetString = %q, want /work", got)
	}
	if got := cfg.GetString("scan", "missing", "fallback"); got != "fallback" {
		t.Errorf("GetString missing = %q, want fallback", got)
	}
	if got := cfg.GetInt("scan", "timeout_seconds", 15); got != 20 {
		t.Errorf("GetInt = %d, want 20", got)
	}
	if got := cfg.GetInt("scan", "as_number", 0); got != 7 {
		t.Errorf("GetInt json.Number = %d, want 7", got)
	}
	if got := cfg.GetInt("scan", "wrong_type", 9); got != 9 {
		t.Errorf("GetInt wrong type = %d, want default 9", got)
	}
	if got := cfg.GetBool("table", "zebra_stripes", true); got != false {
		t.Error("GetBool = true, want stored false")
	}
	if got := cfg.GetBool("missing", "key", true); got != true {
		t.Error("GetBool missing section = false, want default true")
	}
}
