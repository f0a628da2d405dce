/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package selection decides whether the current host selection is a valid
// target for grid generation.
package selection

import (
	"fmt"
	"math"
	"strings"

	"gridfill/internal/grid"
	"gridfill/internal/host"
)

// User-facing messages.
const (
	MsgNothingSelected = "Please select a frame to fill with a grid."
	MsgTooMany         = "Please select only one frame at a time."
	MsgRequireOne      = "Please select exactly one frame to fill with a grid."
)

// Frame summarizes a valid target with its size rounded to whole pixels.
type Frame struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Status is the result of validating a selection.
type Status struct {
	HasValidSelection bool   `json:"hasValidSelection"`
	SelectedFrame     *Frame `json:"selectedFrame"`
	Message           string `json:"message"`
}

// Validate applies the selection rules in priority order: empty, more than
// one, wrong type, then valid.
func Validate(shapes []host.Shape) Status {
	switch {
	case len(shapes) == 0:
		return Status{Message: MsgNothingSelected}
	case len(shapes) > 1:
		return Status{Message: MsgTooMany}
	}
	s := shapes[0]
	if s.Type() != host.TypeFrame {
		return Status{Message: fmt.Sprintf("Please select a frame (not a %s).", strings.ToLower(s.Type()))}
	}
	f := &Frame{
		Name:   s.Name(),
		Width:  int(math.Round(s.Width())),
		Height: int(math.Round(s.Height())),
	}
	return Status{
		HasValidSelection: true,
		SelectedFrame:     f,
		Message:           fmt.Sprintf("Selected frame: %s (%d×%dpx)", f.Name, f.Width, f.Height),
	}
}

// Require re-validates at execution time and returns the single selected
// frame as a container.
func Require(shapes []host.Shape) (host.Container, error) {
	if len(shapes) != 1 || shapes[0].Type() != host.TypeFrame {
		return nil, &grid.SelectionError{Message: MsgRequireOne}
	}
	c, ok := host.AsContainer(shapes[0])
	if !ok {
		return nil, &grid.SelectionError{Message: MsgRequireOne}
	}
	return c, nil
}
