/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a frame and its contents to SVG, PNG or PDF so a
// generated grid can be previewed outside the host.
package export

import (
	"github.com/lucasb-eyer/go-colorful"

	"gridfill/internal/canvas"
	"gridfill/internal/host"
)

// Item is one filled rectangle in frame coordinates.
type Item struct {
	Name  string
	Rect  canvas.Rect
	Color canvas.Color
}

// Scene is a flattened, clipped view of one frame in paint order.
type Scene struct {
	Name       string
	Width      float64
	Height     float64
	Background canvas.Color
	Items      []Item
}

// Options controls rendering.
//   - Scale: output pixels per canvas unit (PNG size, SVG width/height attributes)
//   - MaxPx: PNG output is rendered at a lower scale to fit MaxPx×MaxPx; 0 disables
//   - Background: used when the frame has no solid fill
//   - Outline: draw a hairline around the frame
type Options struct {
	Scale      float64
	MaxPx      int
	Background canvas.Color
	Outline    bool
}

func (o Options) scale() float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	return 1
}

// Build flattens frame into a Scene. Every node with a solid fill becomes an
// item drawn as its bounding rectangle; frames clip their descendants.
func Build(frame *canvas.Node, opt Options) Scene {
	sc := Scene{Name: frame.Name, Width: frame.Width, Height: frame.Height, Background: opt.Background}
	if c, ok := frame.SolidFill(); ok {
		sc.Background = c
	}
	clip := canvas.R(0, 0, frame.Width, frame.Height)
	for _, ch := range frame.Children {
		sc.Items = collect(sc.Items, ch, 0, 0, clip)
	}
	return sc
}

func collect(items []Item, n *canvas.Node, dx, dy float64, clip canvas.Rect) []Item {
	r := n.Bounds().Translate(dx, dy).Intersect(clip)
	if r.Empty() {
		return items
	}
	if c, ok := n.SolidFill(); ok {
		items = append(items, Item{Name: n.Name, Rect: r, Color: c})
	}
	if n.Type == host.TypeFrame {
		clip = r
	}
	for _, ch := range n.Children {
		items = collect(items, ch, dx+n.X, dy+n.Y, clip)
	}
	return items
}

func hexColor(c canvas.Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func rgb255(c canvas.Color) (r, g, b uint8) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
}
