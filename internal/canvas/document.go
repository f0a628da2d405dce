/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas is an in-memory design document: a tree of frames and
// shapes with a current selection. It implements the host capabilities the
// grid session drives and is persisted as a JSON file.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"gridfill/internal/event"
	"gridfill/internal/host"
	"gridfill/internal/log"
)

// MinSize is the smallest width or height a shape can be resized to.
const MinSize = 0.01

// Default appearance of a freshly created rectangle.
var (
	DefaultRectSize = 100.0
	DefaultRectFill = Color{R: 0.85, G: 0.85, B: 0.85}
)

// Document is not safe for concurrent use; callers serialize access.
type Document struct {
	Name  string
	Nodes []*Node

	selection []string
	changes   event.Bus[[]string]
	notices   []string
	dirty     bool
	closed    bool
}

var (
	_ host.Host     = (*Document)(nil)
	_ host.Selector = (*Document)(nil)
)

// New returns an empty document.
func New(name string) *Document {
	return &Document{Name: name}
}

// Add appends n as a top-level node.
func (d *Document) Add(n *Node) {
	n.parent = nil
	d.Nodes = append(d.Nodes, n)
	n.link()
	d.dirty = true
}

// Find returns the node with the given id anywhere in the tree.
func (d *Document) Find(id string) *Node {
	var found *Node
	d.walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Resolve looks a node up by id first, then by exact name in depth-first order.
func (d *Document) Resolve(ref string) (*Node, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty node reference")
	}
	if n := d.Find(ref); n != nil {
		return n, nil
	}
	var found *Node
	d.walk(func(n *Node) bool {
		if found == nil && n.Name == ref {
			found = n
		}
		return found == nil
	})
	if found == nil {
		return nil, fmt.Errorf("no node with id or name %q", ref)
	}
	return found, nil
}

func (d *Document) walk(fn func(*Node) bool) {
	for _, n := range d.Nodes {
		n.Walk(fn)
	}
}

// Shape wraps n in the host capability interface. Frames and groups are
// returned as host.Container.
func (d *Document) Shape(n *Node) host.Shape {
	h := &shape{doc: d, n: n}
	if n.IsContainer() {
		return &container{shape: h}
	}
	return h
}

// Select replaces the selection and notifies selection listeners.
func (d *Document) Select(ids ...string) error {
	for _, id := range ids {
		if d.Find(id) == nil {
			return fmt.Errorf("select: unknown node %q", id)
		}
	}
	d.selection = append([]string(nil), ids...)
	d.changes.Publish(d.SelectionIDs())
	return nil
}

// SelectionIDs returns a copy of the selected node ids.
func (d *Document) SelectionIDs() []string {
	return append([]string(nil), d.selection...)
}

// Selection returns the selected nodes that still exist in the tree.
func (d *Document) Selection() []host.Shape {
	out := make([]host.Shape, 0, len(d.selection))
	for _, id := range d.selection {
		if n := d.Find(id); n != nil {
			out = append(out, d.Shape(n))
		}
	}
	return out
}

// OnSelectionChange registers fn for selection changes.
func (d *Document) OnSelectionChange(fn func()) (cancel func()) {
	return d.changes.Subscribe(func([]string) { fn() })
}

// CreateRectangle returns a detached rectangle with default size and fill.
func (d *Document) CreateRectangle() (host.Shape, error) {
	if d.closed {
		return nil, errors.New("document is closed")
	}
	n := NewNode(host.TypeRectangle, "Rectangle", DefaultRectSize, DefaultRectSize)
	n.Fills = []Paint{{Type: FillSolid, Color: DefaultRectFill}}
	return d.Shape(n), nil
}

// Notify records a user-facing message.
func (d *Document) Notify(message string) {
	d.notices = append(d.notices, message)
	log.WithComponent("canvas").Info("notify", "document", d.Name, "message", message)
}

// Notices returns the messages passed to Notify so far.
func (d *Document) Notices() []string {
	return append([]string(nil), d.notices...)
}

// Close marks the document closed; further shape creation fails.
func (d *Document) Close() { d.closed = true }

// Closed reports whether Close has been called.
func (d *Document) Closed() bool { return d.closed }

// Dirty reports whether the tree changed since it was loaded or saved.
func (d *Document) Dirty() bool { return d.dirty }

func (d *Document) touch() { d.dirty = true }

// dropFromSelection removes the ids of n and its descendants from the selection.
func (d *Document) dropFromSelection(n *Node) {
	if len(d.selection) == 0 {
		return
	}
	gone := map[string]bool{}
	n.Walk(func(c *Node) bool {
		gone[c.ID] = true
		return true
	})
	kept := d.selection[:0:0]
	for _, id := range d.selection {
		if !gone[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) != len(d.selection) {
		d.selection = kept
		d.changes.Publish(d.SelectionIDs())
	}
}

// removeTopLevel detaches n from the page if it is a top-level node.
func (d *Document) removeTopLevel(n *Node) bool {
	for i, c := range d.Nodes {
		if c == n {
			d.Nodes = append(d.Nodes[:i:i], d.Nodes[i+1:]...)
			return true
		}
	}
	return false
}
