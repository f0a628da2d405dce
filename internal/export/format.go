/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names an output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF}

// ParseFormat normalizes s and checks it is supported.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format: %q (want svg, png or pdf)", s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f, err == nil
}

// Write renders sc in format f.
func Write(w io.Writer, f Format, sc Scene, opt Options) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, sc, opt)
	case FormatPNG:
		return WritePNG(w, sc, opt)
	case FormatPDF:
		return WritePDF(w, sc, opt)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// WriteFile renders sc to path, creating parent directories as needed.
func WriteFile(path string, f Format, sc Scene, opt Options) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", f, cerr)
		}
	}()
	return Write(out, f, sc, opt)
}
