/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package grid computes evenly spaced grid lines for a rectangular container.
//
// Generation is pure: given the container size and the parameters it returns
// the ordered line descriptors plus closed-form statistics. Turning the
// descriptors into shapes is the job of the materialize package.
package grid

import (
	"fmt"
	"math"
)

// Parameters are the user inputs for one generation call.
type Parameters struct {
	GridInterval    float64 `json:"gridInterval"`
	PrimaryWeight   float64 `json:"primaryWeight"`
	SecondaryLines  int     `json:"secondaryLines"`
	SecondaryWeight float64 `json:"secondaryWeight"`
	PrimaryColor    string  `json:"primaryColor"`
	SecondaryColor  string  `json:"secondaryColor"`
}

// Dimensions is the size of the target container.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}

type Role uint8

const (
	Primary Role = iota
	Secondary
)

func (r Role) String() string {
	if r == Secondary {
		return "Secondary"
	}
	return "Primary"
}

// LabelPrefix marks every generated shape so a later run can find and
// remove it.
const LabelPrefix = "Grid Line"

// Label returns the shape name for a line of the given role and axis,
// e.g. "Grid Line (Primary Vertical)".
func Label(r Role, a Axis) string {
	return LabelPrefix + " (" + r.String() + " " + a.String() + ")"
}

// Descriptor is one line before it becomes a shape. Center is measured along
// the axis the line is perpendicular to (x for vertical lines); Span is the
// full container dimension the line covers.
type Descriptor struct {
	Axis      Axis
	Role      Role
	Center    float64
	Thickness float64
	Span      float64
	Color     RGB
	Label     string
}

// Stats are the line counts reported back to the UI. The H counts are laid
// out across the width and the V counts across the height.
type Stats struct {
	PrimaryLinesH   int `json:"primaryLinesH"`
	PrimaryLinesV   int `json:"primaryLinesV"`
	SecondaryLinesH int `json:"secondaryLinesH"`
	SecondaryLinesV int `json:"secondaryLinesV"`
	TotalLines      int `json:"totalLines"`
}

// Result is the output of a generation call.
type Result struct {
	Lines []Descriptor
	Stats Stats
}

// Engine generates grids. The zero value is lenient about colors.
type Engine struct {
	// StrictColors rejects malformed hex colors instead of using black.
	StrictColors bool
	// MaxLines caps the closed-form line total; 0 means no cap.
	MaxLines int
}

// Generate runs the zero Engine.
func Generate(dims Dimensions, p Parameters) (Result, error) {
	return Engine{}.Generate(dims, p)
}

// Generate validates p against dims and computes every line in creation
// order: primary vertical, secondary vertical, primary horizontal, secondary
// horizontal. On error no lines are returned.
func (e Engine) Generate(dims Dimensions, p Parameters) (Result, error) {
	if err := Validate(dims, p); err != nil {
		return Result{}, err
	}
	if e.MaxLines > 0 {
		if n := estimate(dims, p); n > float64(e.MaxLines) {
			return Result{}, &ParameterError{
				Field:   "gridInterval",
				Message: fmt.Sprintf("Grid would create about %.0f lines; the limit is %d.", n, e.MaxLines),
			}
		}
	}
	primary, secondary, err := e.colors(p)
	if err != nil {
		return Result{}, err
	}

	lines := make([]Descriptor, 0, int(min(estimate(dims, p), 4096)))
	lines = appendPrimary(lines, Vertical, dims.Width, dims.Height, p, primary)
	lines = appendSecondary(lines, Vertical, dims.Width, dims.Height, p, secondary)
	lines = appendPrimary(lines, Horizontal, dims.Height, dims.Width, p, primary)
	lines = appendSecondary(lines, Horizontal, dims.Height, dims.Width, p, secondary)

	return Result{Lines: lines, Stats: ComputeStats(dims, p)}, nil
}

// LineCeiling bounds every grid regardless of Engine.MaxLines.
const LineCeiling = 10_000_000

// Validate checks the preconditions of Generate.
func Validate(dims Dimensions, p Parameters) error {
	// written so that NaN fails too
	if !(p.GridInterval > 0) || !(p.GridInterval <= math.Max(dims.Width, dims.Height)) {
		return &ParameterError{Field: "gridInterval", Message: "Grid interval must be positive and smaller than frame dimensions."}
	}
	if !validWeight(p.PrimaryWeight) {
		return &ParameterError{Field: "primaryWeight", Message: "Primary line weight must be a positive number."}
	}
	if p.SecondaryLines < 0 {
		return &ParameterError{Field: "secondaryLines", Message: "Secondary line count must not be negative."}
	}
	if p.SecondaryLines > 0 && !validWeight(p.SecondaryWeight) {
		return &ParameterError{Field: "secondaryWeight", Message: "Secondary line weight must be a positive number."}
	}
	if n := estimate(dims, p); n > LineCeiling {
		return &ParameterError{
			Field:   "secondaryLines",
			Message: fmt.Sprintf("Grid would create about %.0f lines; the limit is %d.", n, LineCeiling),
		}
	}
	return nil
}

func validWeight(w float64) bool { return w > 0 && !math.IsInf(w, 1) }

func (e Engine) colors(p Parameters) (RGB, RGB, error) {
	if !e.StrictColors {
		return HexToRGB(p.PrimaryColor), HexToRGB(p.SecondaryColor), nil
	}
	primary, err := ParseHex(p.PrimaryColor)
	if err != nil {
		return Black, Black, err
	}
	secondary, err := ParseHex(p.SecondaryColor)
	if err != nil {
		return Black, Black, err
	}
	return primary, secondary, nil
}

// appendPrimary walks a running sum from 0 while it stays <= extent, so the
// far edge only gets a line when the sum lands on it exactly.
func appendPrimary(dst []Descriptor, axis Axis, extent, span float64, p Parameters, c RGB) []Descriptor {
	label := Label(Primary, axis)
	for pos := 0.0; pos <= extent; pos += p.GridInterval {
		dst = append(dst, Descriptor{
			Axis:      axis,
			Role:      Primary,
			Center:    pos,
			Thickness: p.PrimaryWeight,
			Span:      span,
			Color:     c,
			Label:     label,
		})
	}
	return dst
}

// appendSecondary splits every primary interval starting before extent into
// SecondaryLines+1 parts and emits the inner division points that fall
// strictly inside extent.
func appendSecondary(dst []Descriptor, axis Axis, extent, span float64, p Parameters, c RGB) []Descriptor {
	if p.SecondaryLines <= 0 {
		return dst
	}
	label := Label(Secondary, axis)
	step := p.GridInterval / (float64(p.SecondaryLines) + 1)
	for start := 0.0; start < extent; start += p.GridInterval {
		for k := 1; k <= p.SecondaryLines; k++ {
			pos := start + step*float64(k)
			if pos >= extent {
				continue
			}
			dst = append(dst, Descriptor{
				Axis:      axis,
				Role:      Secondary,
				Center:    pos,
				Thickness: p.SecondaryWeight,
				Span:      span,
				Color:     c,
				Label:     label,
			})
		}
	}
	return dst
}

// ComputeStats derives the line counts arithmetically from dims and p. It
// does not look at generated lines; see Count for that.
func ComputeStats(dims Dimensions, p Parameters) Stats {
	intervalsH := int(math.Floor(dims.Width / p.GridInterval))
	intervalsV := int(math.Floor(dims.Height / p.GridInterval))
	s := Stats{
		PrimaryLinesH: intervalsH + 1,
		PrimaryLinesV: intervalsV + 1,
	}
	if p.SecondaryLines > 0 {
		s.SecondaryLinesH = intervalsH * p.SecondaryLines
		s.SecondaryLinesV = intervalsV * p.SecondaryLines
	}
	s.TotalLines = s.PrimaryLinesH + s.PrimaryLinesV + s.SecondaryLinesH + s.SecondaryLinesV
	return s
}

// Count tallies lines into the same buckets as ComputeStats. A difference
// between the two points at an edge case the closed form miscounts (a
// partial last interval, or float drift in the running sum).
func Count(lines []Descriptor) Stats {
	var s Stats
	for _, l := range lines {
		switch {
		case l.Role == Primary && l.Axis == Vertical:
			s.PrimaryLinesH++
		case l.Role == Primary && l.Axis == Horizontal:
			s.PrimaryLinesV++
		case l.Role == Secondary && l.Axis == Vertical:
			s.SecondaryLinesH++
		default:
			s.SecondaryLinesV++
		}
	}
	s.TotalLines = len(lines)
	return s
}

// estimate is the closed-form total in float64 so absurd inputs cannot
// overflow before they are rejected.
func estimate(dims Dimensions, p Parameters) float64 {
	n := float64(max(p.SecondaryLines, 0))
	h := math.Floor(dims.Width / p.GridInterval)
	v := math.Floor(dims.Height / p.GridInterval)
	return (h + 1) + (v + 1) + (h+v)*n
}
