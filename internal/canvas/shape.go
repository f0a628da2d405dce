/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"errors"
	"fmt"

	"gridfill/internal/host"
)

// shape adapts a Node to host.Shape. Every mutation marks the document dirty.
type shape struct {
	doc *Document
	n   *Node
}

func (s *shape) ID() string      { return s.n.ID }
func (s *shape) Type() string    { return s.n.Type }
func (s *shape) Name() string    { return s.n.Name }
func (s *shape) Width() float64  { return s.n.Width }
func (s *shape) Height() float64 { return s.n.Height }

// Node exposes the underlying scene-graph node.
func (s *shape) Node() *Node { return s.n }

func (s *shape) SetName(name string) {
	s.n.Name = name
	s.doc.touch()
}

func (s *shape) SetPosition(x, y float64) {
	s.n.X, s.n.Y = x, y
	s.doc.touch()
}

func (s *shape) Resize(w, h float64) error {
	if !(w >= MinSize) || !(h >= MinSize) {
		return fmt.Errorf("resize %s to %gx%g: width and height must be at least %g", s.n.Name, w, h, MinSize)
	}
	s.n.Width, s.n.Height = w, h
	s.doc.touch()
	return nil
}

func (s *shape) SetSolidFill(c host.Color) {
	s.n.Fills = []Paint{{Type: FillSolid, Color: Color{R: c.R, G: c.G, B: c.B}}}
	s.doc.touch()
}

// container adds child management for frames and groups.
type container struct {
	*shape
}

func (c *container) Children() []host.Shape {
	out := make([]host.Shape, len(c.n.Children))
	for i, ch := range c.n.Children {
		out[i] = c.doc.Shape(ch)
	}
	return out
}

// AppendChild moves s to the end of this container, detaching it from its
// previous parent first.
func (c *container) AppendChild(s host.Shape) error {
	child, err := c.own(s)
	if err != nil {
		return err
	}
	for p := c.n; p != nil; p = p.parent {
		if p == child {
			return errors.New("append child: a node cannot contain itself")
		}
	}
	if child.parent != nil {
		child.parent.detach(child)
	} else {
		c.doc.removeTopLevel(child)
	}
	child.parent = c.n
	c.n.Children = append(c.n.Children, child)
	c.doc.touch()
	return nil
}

// RemoveChild deletes s from this container.
func (c *container) RemoveChild(s host.Shape) error {
	child, err := c.own(s)
	if err != nil {
		return err
	}
	if !c.n.detach(child) {
		return fmt.Errorf("remove child: %q is not a child of %q", child.Name, c.n.Name)
	}
	c.doc.dropFromSelection(child)
	c.doc.touch()
	return nil
}

func (c *container) own(s host.Shape) (*Node, error) {
	var n *Node
	switch v := s.(type) {
	case *shape:
		if v.doc == c.doc {
			n = v.n
		}
	case *container:
		if v.doc == c.doc {
			n = v.n
		}
	}
	if n == nil {
		return nil, fmt.Errorf("shape %q does not belong to document %q", s.ID(), c.doc.Name)
	}
	return n, nil
}
