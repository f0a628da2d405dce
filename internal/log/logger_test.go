/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestInitWritesJSONToRotatingFile checks that the file handler receives JSON
// records carrying the static and contextual attributes.
func TestInitWritesJSONToRotatingFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "gridfill.log")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "console", File: fpath, Writer: &console})
	t.Cleanup(func() { Init(Options{Writer: &bytes.Buffer{}}) })

	l := WithOperation(WithComponent("engine"), "generate")
	l.Info("grid generated", slog.Int("lines", 12))

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	if m["app"] != "gridfill" {
		t.Fatalf("app attr = %v", m["app"])
	}
	if m["component"] != "engine" || m["op"] != "generate" {
		t.Fatalf("context attrs missing: %v", m)
	}
	if m["lines"] != float64(12) {
		t.Fatalf("lines attr = %v", m["lines"])
	}
	if !strings.Contains(console.String(), "grid generated") {
		t.Fatalf("console output missing message: %q", console.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GF_LOG_LEVEL", "warn")
	t.Setenv("GF_LOG_FORMAT", "json")
	t.Setenv("GF_LOG_SOURCE", "true")
	t.Setenv("GF_LOG_FILE", "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}
	if v := getenv("GF_SURELY_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{level: slog.LevelWarn, w: &buf}

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should not be enabled at warn level")
	}
	h2 := h.WithAttrs([]slog.Attr{slog.String("frame", "Frame 1")}).WithGroup("grid")

	r := slog.NewRecord(time.Now(), slog.LevelError, "generation failed", 0)
	r.AddAttrs(slog.Int("n", 42), slog.Float64("interval", 12.5), slog.Bool("strict", true))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ERR", "generation failed", "grid.frame=Frame 1", "grid.n=42", "grid.interval=12.5", "grid.strict=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, " WARNING ": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
