/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package grid

import (
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color with channels normalized to [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Black is returned for any color string that does not parse.
var Black = RGB{}

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// IsHex reports whether s is a six digit hex color with an optional '#'.
func IsHex(s string) bool { return hexPattern.MatchString(s) }

// HexToRGB converts "#RRGGBB" or "RRGGBB" (any case) to a normalized RGB.
// Anything else yields Black rather than an error.
func HexToRGB(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		return Black
	}
	return c
}

// ParseHex is the strict form of HexToRGB.
func ParseHex(s string) (RGB, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return Black, &ParameterError{Field: "color", Message: fmt.Sprintf("Invalid color %q: expected #RRGGBB.", s)}
	}
	c, err := colorful.Hex("#" + m[1] + m[2] + m[3])
	if err != nil {
		return Black, &ParameterError{Field: "color", Message: fmt.Sprintf("Invalid color %q: %v", s, err)}
	}
	// go back through the 8-bit channels so 0xFF maps to exactly 1.0
	r, g, b := c.RGB255()
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}
