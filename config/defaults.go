// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in defaults for every cloctui config section.

package config

func applyDefaults(cfg Config) {
	cfg.RegisterDefaults("scan", Section{
		"timeout_seconds": 15,
		"working_dir":     "",
	})
	cfg.RegisterDefaults("table", Section{
		"cell_padding":   1,
		"min_path_width": 15,
		"zebra_stripes":  true,
	})
	cfg.RegisterDefaults("history", Section{
		"enabled":     true,
		"max_entries": 500,
	})
}
