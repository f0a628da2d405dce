/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package host declares the narrow capabilities the grid tool needs from a
// design host: reading the selection, creating rectangles, managing a
// container's children, and talking back to the user.
package host

// NodeType names used by hosts. Only FRAME is a valid grid container.
const (
	TypeFrame     = "FRAME"
	TypeRectangle = "RECTANGLE"
	TypeLine      = "LINE"
	TypeVector    = "VECTOR"
	TypeGroup     = "GROUP"
	TypeText      = "TEXT"
	TypeEllipse   = "ELLIPSE"
)

// Color is a normalized RGB triple, each channel in [0,1].
type Color struct {
	R, G, B float64
}

// Shape is any node on the host canvas.
type Shape interface {
	ID() string
	Type() string
	Name() string
	SetName(name string)
	Width() float64
	Height() float64
	SetPosition(x, y float64)
	Resize(w, h float64) error
	SetSolidFill(c Color)
}

// Container is a shape that owns ordered children.
type Container interface {
	Shape
	Children() []Shape
	AppendChild(s Shape) error
	RemoveChild(s Shape) error
}

// Factory creates detached rectangles that can later be appended to a container.
type Factory interface {
	CreateRectangle() (Shape, error)
}

// Host is the full surface a session needs.
type Host interface {
	Factory
	Selection() []Shape
	// OnSelectionChange registers fn and returns a function that unregisters it.
	OnSelectionChange(fn func()) (cancel func())
	Notify(message string)
	Close()
}

// Selector is implemented by hosts that let the caller change the selection.
type Selector interface {
	Select(ids ...string) error
}

// AsContainer reports whether s can hold children.
func AsContainer(s Shape) (Container, bool) {
	c, ok := s.(Container)
	return c, ok
}
