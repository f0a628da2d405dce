/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridfill/internal/canvas"
)

func TestWriteReportCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := writeReport(dir, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written outside %s: %s", dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "gridfill Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") || !strings.Contains(s, "stacktrace") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestScopeDirDefaultsToTemp(t *testing.T) {
	if got := (&Scope{}).dir(); got != os.TempDir() {
		t.Fatalf("dir() = %q, want %q", got, os.TempDir())
	}
}

type failingDoc struct{}

func (failingDoc) Dirty() bool       { return true }
func (failingDoc) Save(string) error { return errors.New("disk full") }

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	doc := canvas.New("Doc")
	if path, err := snapshot(&Scope{Dir: dir, Doc: doc}); err != nil || path != "" {
		t.Fatalf("clean document should not be snapshotted: %q %v", path, err)
	}
	doc.Add(canvas.NewFrame("F", 10, 10))
	path, err := snapshot(&Scope{Dir: dir, Doc: doc})
	if err != nil || path == "" {
		t.Fatalf("snapshot: %q %v", path, err)
	}
	if _, err := canvas.Load(path); err != nil {
		t.Fatalf("snapshot is not a loadable document: %v", err)
	}
	if _, err := snapshot(&Scope{Dir: dir, Doc: failingDoc{}}); err == nil {
		t.Fatalf("expected save error to surface")
	}
}

// TestRecoverWritesReportAndSnapshot ensures Recover handles a panic, writes a
// report and snapshot, and does not terminate the test process due to injected exitFn.
func TestRecoverWritesReportAndSnapshot(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	dir := t.TempDir()
	doc := canvas.New("Doc")
	scope := &Scope{}
	func() {
		defer Recover(scope)
		scope.Dir = dir
		scope.Doc = doc
		doc.Add(canvas.NewFrame("Unsaved", 10, 10))
		panic("boom")
	}()

	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
	var report, snap string
	files, _ := os.ReadDir(dir)
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(dir, f.Name())
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".json"):
			snap = filepath.Join(dir, f.Name())
		}
	}
	if report == "" || snap == "" {
		t.Fatalf("expected report and snapshot, got %v", files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
	}()
	if called {
		t.Fatalf("exit must not be called without a panic")
	}
}
