/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"gridfill/internal/grid"
	"gridfill/internal/selection"
)

// Message types exchanged with the UI.
const (
	TypeGenerateGrid    = "generate-grid"
	TypeCancel          = "cancel"
	TypeSelect          = "select"
	TypeSelectionUpdate = "selection-update"
	TypeGridGenerated   = "grid-generated"
	TypeError           = "error"
)

// Command is a message from the UI to the session.
type Command struct {
	Type   string           `json:"type"`
	Params *grid.Parameters `json:"params,omitempty"`
	IDs    []string         `json:"ids,omitempty"`
}

// Event is a message from the session to the UI.
type Event interface {
	Kind() string
}

// SelectionUpdate reports the validity of the current selection.
type SelectionUpdate struct {
	Type string `json:"type"`
	selection.Status
}

func (e SelectionUpdate) Kind() string { return e.Type }

// NewSelectionUpdate wraps a selection status.
func NewSelectionUpdate(s selection.Status) SelectionUpdate {
	return SelectionUpdate{Type: TypeSelectionUpdate, Status: s}
}

// GridGenerated reports the closed-form statistics of a finished generation.
type GridGenerated struct {
	Type  string     `json:"type"`
	Stats grid.Stats `json:"stats"`
}

func (e GridGenerated) Kind() string { return e.Type }

// NewGridGenerated wraps stats.
func NewGridGenerated(s grid.Stats) GridGenerated {
	return GridGenerated{Type: TypeGridGenerated, Stats: s}
}

// Error carries a human-readable failure message.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e Error) Kind() string { return e.Type }

// NewError wraps a message.
func NewError(msg string) Error {
	return Error{Type: TypeError, Message: msg}
}
