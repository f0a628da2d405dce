/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package materialize turns grid line descriptors into rectangles inside a
// host container and removes previously generated lines.
package materialize

import (
	"fmt"
	"log/slog"
	"strings"

	"gridfill/internal/grid"
	"gridfill/internal/host"
	"gridfill/internal/log"
)

// removable lists the node types a previous run may have left behind.
var removable = map[string]bool{
	host.TypeLine:      true,
	host.TypeVector:    true,
	host.TypeRectangle: true,
}

// IsGridLine reports whether s was produced by a previous generation.
func IsGridLine(s host.Shape) bool {
	return removable[s.Type()] && strings.HasPrefix(s.Name(), grid.LabelPrefix)
}

// Materializer applies descriptors through the host capability interfaces.
type Materializer struct {
	Log *slog.Logger
}

// New returns a Materializer logging under the materialize component.
func New() *Materializer {
	return &Materializer{Log: log.WithComponent("materialize")}
}

func (m *Materializer) logger() *slog.Logger {
	if m == nil || m.Log == nil {
		return log.WithComponent("materialize")
	}
	return m.Log
}

// Clear removes every earlier grid line from c and returns how many were removed.
func (m *Materializer) Clear(c host.Container) (int, error) {
	removed := 0
	for _, child := range c.Children() {
		if !IsGridLine(child) {
			continue
		}
		if err := c.RemoveChild(child); err != nil {
			return removed, fmt.Errorf("remove %q: %w", child.Name(), err)
		}
		removed++
	}
	m.logger().Debug("cleared grid lines", "container", c.Name(), "removed", removed)
	return removed, nil
}

// Apply creates one rectangle per descriptor, in order, and appends it to c.
func (m *Materializer) Apply(f host.Factory, c host.Container, lines []grid.Descriptor) (int, error) {
	for i, d := range lines {
		r, err := f.CreateRectangle()
		if err != nil {
			return i, fmt.Errorf("create line %d: %w", i, err)
		}
		r.SetName(d.Label)
		x, y, w, h := Placement(d)
		r.SetPosition(x, y)
		if err := r.Resize(w, h); err != nil {
			return i, fmt.Errorf("size %s: %w", d.Label, err)
		}
		r.SetSolidFill(host.Color{R: d.Color.R, G: d.Color.G, B: d.Color.B})
		if err := c.AppendChild(r); err != nil {
			return i, fmt.Errorf("append %s: %w", d.Label, err)
		}
	}
	m.logger().Debug("applied grid lines", "container", c.Name(), "created", len(lines))
	return len(lines), nil
}

// Replace clears earlier grid lines from c and applies lines.
func (m *Materializer) Replace(f host.Factory, c host.Container, lines []grid.Descriptor) (removed, created int, err error) {
	removed, err = m.Clear(c)
	if err != nil {
		return removed, 0, err
	}
	created, err = m.Apply(f, c, lines)
	return removed, created, err
}

// Placement returns the rectangle a descriptor occupies: vertical lines are
// centered on x and span the height, horizontal lines are centered on y and
// span the width.
func Placement(d grid.Descriptor) (x, y, w, h float64) {
	half := d.Thickness / 2
	if d.Axis == grid.Vertical {
		return d.Center - half, 0, d.Thickness, d.Span
	}
	return 0, d.Center - half, d.Span, d.Thickness
}
