/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid != Defaults().Grid {
		t.Fatalf("grid defaults not applied: %#v", cfg.Grid)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("grid: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error for malformed yaml")
	}
}

func TestSaveLoadRoundTripKeepsZeroSecondaryLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Grid.Interval = 24
	cfg.Grid.SecondaryLines = 0
	cfg.Grid.StrictColors = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Grid.Interval != 24 || got.Grid.SecondaryLines != 0 || !got.Grid.StrictColors {
		t.Fatalf("grid section not round-tripped: %#v", got.Grid)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWithoutGridSectionKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: DEBUG\n  format: json\n  source: true\n  file: /tmp/gf.log\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid != Defaults().Grid {
		t.Fatalf("grid defaults changed without a grid section: %#v", cfg.Grid)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/gf.log" {
		t.Fatalf("logging fields not merged correctly: %#v", cfg.Logging)
	}
}

func TestLoadPartialGridSectionKeepsOtherDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "grid:\n  interval: 50\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Defaults().Grid
	want.Interval = 50
	if cfg.Grid != want {
		t.Fatalf("got %#v, want %#v", cfg.Grid, want)
	}
}

func TestLoadExplicitZeroMaxLinesDisablesCap(t *testing.T) {
	cfg, err := Load(writeConfig(t, "grid:\n  max_lines: 0\n  secondary_lines: 0\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid.MaxLines != 0 || cfg.Grid.SecondaryLines != 0 {
		t.Fatalf("explicit zeroes not kept: %#v", cfg.Grid)
	}
	if cfg.Grid.Engine().MaxLines != 0 {
		t.Fatalf("engine still capped: %#v", cfg.Grid.Engine())
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != len(envKeys) {
		t.Fatalf("got %d keys, want %d", len(keys), len(envKeys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}

func TestEnvOverridesGrid(t *testing.T) {
	t.Setenv(EnvGridInterval, "12.5")
	t.Setenv(EnvGridSecondaryLines, "3")
	t.Setenv(EnvGridPrimaryColor, "#00ff00")
	t.Setenv(EnvGridStrictColors, "yes")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	p := cfg.Grid.Parameters()
	if p.GridInterval != 12.5 || p.SecondaryLines != 3 || p.PrimaryColor != "#00ff00" || !cfg.Grid.StrictColors {
		t.Fatalf("env overrides not applied: %#v", cfg.Grid)
	}
	if name, ok := EnvOverrideFor("grid.interval"); !ok || name != EnvGridInterval {
		t.Fatalf("EnvOverrideFor(grid.interval) = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("grid.secondary_weight"); ok {
		t.Fatalf("secondary_weight should not be reported as overridden")
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv(EnvGridInterval, "wide")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid.Interval != Defaults().Grid.Interval {
		t.Fatalf("unparseable override should be ignored, got %v", cfg.Grid.Interval)
	}
}
