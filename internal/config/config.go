/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gridfill/internal/grid"
)

// AppConfig is the user-editable YAML configuration. Environment variables are
// read-only overrides applied after the file is merged over the defaults.
//
// config_version: bump when the structure changes incompatibly.

// GridConfig holds the defaults used when a command omits grid parameters.
type GridConfig struct {
	Interval        float64 `yaml:"interval"`
	PrimaryWeight   float64 `yaml:"primary_weight"`
	SecondaryLines  int     `yaml:"secondary_lines"`
	SecondaryWeight float64 `yaml:"secondary_weight"`
	PrimaryColor    string  `yaml:"primary_color"`
	SecondaryColor  string  `yaml:"secondary_color"`
	// StrictColors turns malformed hex colors into parameter errors instead
	// of silently painting them black.
	StrictColors bool `yaml:"strict_colors"`
	// MaxLines rejects intervals that would flood the container; 0 disables.
	MaxLines int `yaml:"max_lines"`
}

type ExportConfig struct {
	Scale        float64 `yaml:"scale"`
	MaxPreviewPx int     `yaml:"max_preview_px"`
	Background   string  `yaml:"background"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Grid          GridConfig    `yaml:"grid"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Grid: GridConfig{
			Interval:        100,
			PrimaryWeight:   2,
			SecondaryLines:  1,
			SecondaryWeight: 1,
			PrimaryColor:    "#FF0000",
			SecondaryColor:  "#FF9999",
			MaxLines:        20000,
		},
		Export:  ExportConfig{Scale: 1, MaxPreviewPx: 2048, Background: "#FFFFFF"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Parameters converts the grid defaults into engine parameters.
func (g GridConfig) Parameters() grid.Parameters {
	return grid.Parameters{
		GridInterval:    g.Interval,
		PrimaryWeight:   g.PrimaryWeight,
		SecondaryLines:  g.SecondaryLines,
		SecondaryWeight: g.SecondaryWeight,
		PrimaryColor:    g.PrimaryColor,
		SecondaryColor:  g.SecondaryColor,
	}
}

// Engine returns a grid engine configured from the grid section.
func (g GridConfig) Engine() grid.Engine {
	return grid.Engine{StrictColors: g.StrictColors, MaxLines: g.MaxLines}
}

// Env var names used as overrides.
const (
	EnvGridInterval        = "GF_GRID_INTERVAL"
	EnvGridPrimaryWeight   = "GF_GRID_PRIMARY_WEIGHT"
	EnvGridSecondaryLines  = "GF_GRID_SECONDARY_LINES"
	EnvGridSecondaryWeight = "GF_GRID_SECONDARY_WEIGHT"
	EnvGridPrimaryColor    = "GF_GRID_PRIMARY_COLOR"
	EnvGridSecondaryColor  = "GF_GRID_SECONDARY_COLOR"
	EnvGridStrictColors    = "GF_GRID_STRICT_COLORS"
	EnvGridMaxLines        = "GF_GRID_MAX_LINES"
	EnvExportScale         = "GF_EXPORT_SCALE"
	EnvExportMaxPreviewPx  = "GF_EXPORT_MAX_PREVIEW_PX"
	EnvLogLevel            = "GF_LOG_LEVEL"
	EnvLogFormat           = "GF_LOG_FORMAT"
	EnvLogSource           = "GF_LOG_SOURCE"
	EnvLogFile             = "GF_LOG_FILE"
)

// envKeys maps dotted config keys to their override variables.
var envKeys = map[string]string{
	"grid.interval":         EnvGridInterval,
	"grid.primary_weight":   EnvGridPrimaryWeight,
	"grid.secondary_lines":  EnvGridSecondaryLines,
	"grid.secondary_weight": EnvGridSecondaryWeight,
	"grid.primary_color":    EnvGridPrimaryColor,
	"grid.secondary_color":  EnvGridSecondaryColor,
	"grid.strict_colors":    EnvGridStrictColors,
	"grid.max_lines":        EnvGridMaxLines,
	"export.scale":          EnvExportScale,
	"export.max_preview_px": EnvExportMaxPreviewPx,
	"logging.level":         EnvLogLevel,
	"logging.format":        EnvLogFormat,
	"logging.source":        EnvLogSource,
	"logging.file":          EnvLogFile,
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "gridfill")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "gridfill")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "gridfill")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "gridfill")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config at path (or the per-user path when empty), applies
// defaults and merges environment overrides. A missing file is not an error;
// a malformed one is.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		var set presence
		if err := yaml.Unmarshal(data, &set); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg, set)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML to path (or the per-user path when empty).
func Save(path string, cfg AppConfig) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// presence records which keys a config file spells out, for fields whose
// zero value is a meaningful setting.
type presence struct {
	Grid struct {
		SecondaryLines *int  `yaml:"secondary_lines"`
		StrictColors   *bool `yaml:"strict_colors"`
		MaxLines       *int  `yaml:"max_lines"`
	} `yaml:"grid"`
	Logging struct {
		Source *bool `yaml:"source"`
	} `yaml:"logging"`
}

func mergeInto(dst *AppConfig, src *AppConfig, set presence) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Grid.Interval != 0 {
		dst.Grid.Interval = src.Grid.Interval
	}
	if src.Grid.PrimaryWeight != 0 {
		dst.Grid.PrimaryWeight = src.Grid.PrimaryWeight
	}
	if set.Grid.SecondaryLines != nil {
		dst.Grid.SecondaryLines = *set.Grid.SecondaryLines
	}
	if set.Grid.StrictColors != nil {
		dst.Grid.StrictColors = *set.Grid.StrictColors
	}
	if set.Grid.MaxLines != nil {
		dst.Grid.MaxLines = *set.Grid.MaxLines
	}
	if src.Grid.SecondaryWeight != 0 {
		dst.Grid.SecondaryWeight = src.Grid.SecondaryWeight
	}
	if v := strings.TrimSpace(src.Grid.PrimaryColor); v != "" {
		dst.Grid.PrimaryColor = v
	}
	if v := strings.TrimSpace(src.Grid.SecondaryColor); v != "" {
		dst.Grid.SecondaryColor = v
	}

	if src.Export.Scale != 0 {
		dst.Export.Scale = src.Export.Scale
	}
	if src.Export.MaxPreviewPx != 0 {
		dst.Export.MaxPreviewPx = src.Export.MaxPreviewPx
	}
	if v := strings.TrimSpace(src.Export.Background); v != "" {
		dst.Export.Background = v
	}

	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	if set.Logging.Source != nil {
		dst.Logging.Source = *set.Logging.Source
	}
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	floatEnv(EnvGridInterval, &cfg.Grid.Interval)
	floatEnv(EnvGridPrimaryWeight, &cfg.Grid.PrimaryWeight)
	intEnv(EnvGridSecondaryLines, &cfg.Grid.SecondaryLines)
	floatEnv(EnvGridSecondaryWeight, &cfg.Grid.SecondaryWeight)
	if v := strings.TrimSpace(os.Getenv(EnvGridPrimaryColor)); v != "" {
		cfg.Grid.PrimaryColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGridSecondaryColor)); v != "" {
		cfg.Grid.SecondaryColor = v
	}
	boolEnv(EnvGridStrictColors, &cfg.Grid.StrictColors)
	intEnv(EnvGridMaxLines, &cfg.Grid.MaxLines)
	floatEnv(EnvExportScale, &cfg.Export.Scale)
	intEnv(EnvExportMaxPreviewPx, &cfg.Export.MaxPreviewPx)

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	boolEnv(EnvLogSource, &cfg.Logging.Source)
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func floatEnv(key string, dst *float64) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func intEnv(key string, dst *int) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func boolEnv(key string, dst *bool) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		lv := strings.ToLower(v)
		*dst = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
}

// Keys lists the dotted config keys that have an environment override, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(envKeys))
}

// EnvOverrideFor returns the env var name if the dotted key is currently
// overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
