/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"github.com/google/uuid"

	"gridfill/internal/host"
)

// Color is a normalized RGB triple as stored in documents.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// FillSolid is the only paint type the canvas renders.
const FillSolid = "SOLID"

// Paint is one entry of a node's fill list.
type Paint struct {
	Type  string `json:"type"`
	Color Color  `json:"color"`
}

// Node is one item of the document's scene graph. X and Y are relative to the
// parent node; top-level nodes are positioned on the page.
type Node struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Fills    []Paint `json:"fills,omitempty"`
	Children []*Node `json:"children,omitempty"`

	parent *Node
}

// NewNode returns a node of the given type with a fresh id.
func NewNode(typ, name string, w, h float64) *Node {
	return &Node{ID: uuid.NewString(), Type: typ, Name: name, Width: w, Height: h}
}

// NewFrame returns a white frame of the given size.
func NewFrame(name string, w, h float64) *Node {
	n := NewNode(host.TypeFrame, name, w, h)
	n.Fills = []Paint{{Type: FillSolid, Color: Color{R: 1, G: 1, B: 1}}}
	return n
}

// Bounds returns the node rectangle in its parent's coordinates.
func (n *Node) Bounds() Rect { return R(n.X, n.Y, n.Width, n.Height) }

// Parent returns the containing node, or nil for top-level and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// IsContainer reports whether the node type can hold children.
func (n *Node) IsContainer() bool {
	return n.Type == host.TypeFrame || n.Type == host.TypeGroup
}

// SolidFill returns the first solid paint, if any.
func (n *Node) SolidFill() (Color, bool) {
	for _, p := range n.Fills {
		if p.Type == FillSolid {
			return p.Color, true
		}
	}
	return Color{}, false
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
	child.parent = nil
	return true
}

func (n *Node) link() {
	for _, c := range n.Children {
		c.parent = n
		c.link()
	}
}
