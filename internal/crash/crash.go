/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report and a snapshot of unsaved work.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "gridfill/internal/log"
	"gridfill/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Saver is a document that can be written to disk.
type Saver interface {
	Dirty() bool
	Save(path string) error
}

// Scope holds what Recover preserves. Fields may be filled in after the
// deferred call was set up.
type Scope struct {
	// Dir receives the report and snapshot; the temp dir when empty.
	Dir string
	// Doc is snapshotted when it has unsaved changes.
	Doc Saver
}

// Recover captures a panic, logs it with the stack trace, writes a crash
// report and a snapshot of the open document, then exits with code 2.
//
// Usage: defer crash.Recover(scope)
func Recover(s *Scope) {
	r := recover()
	if r == nil {
		return
	}
	if s == nil {
		s = &Scope{}
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(s.dir(), r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if path, err := snapshot(s); err != nil {
		l.Error("crash snapshot failed", slog.Any("err", err))
	} else if path != "" {
		l.Info("crash snapshot written", slog.String("path", path))
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func (s *Scope) dir() string {
	if s.Dir != "" {
		return s.Dir
	}
	return os.TempDir()
}

func stamp() string { return time.Now().Format("20060102-150405") }

// snapshot saves a dirty document beside the report. It returns "" when
// there was nothing to save.
func snapshot(s *Scope) (string, error) {
	if s.Doc == nil || !s.Doc.Dirty() {
		return "", nil
	}
	path := filepath.Join(s.dir(), fmt.Sprintf("crash-%s.json", stamp()))
	if err := s.Doc.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

func writeReport(dir string, panicVal any, stack []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure crash dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp()))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "gridfill Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
