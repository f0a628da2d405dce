/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func params(interval float64, secondary int) Parameters {
	return Parameters{
		GridInterval:    interval,
		PrimaryWeight:   2,
		SecondaryLines:  secondary,
		SecondaryWeight: 1,
		PrimaryColor:    "#FF0000",
		SecondaryColor:  "#00FF00",
	}
}

// centers collects the positions of all lines with the given role and axis.
func centers(lines []Descriptor, r Role, a Axis) []float64 {
	var out []float64
	for _, l := range lines {
		if l.Role == r && l.Axis == a {
			out = append(out, l.Center)
		}
	}
	return out
}

func TestGenerate_EndToEnd(t *testing.T) {
	res, err := Generate(Dimensions{Width: 300, Height: 200}, params(100, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := Stats{PrimaryLinesH: 4, PrimaryLinesV: 3, SecondaryLinesH: 3, SecondaryLinesV: 2, TotalLines: 12}
	if diff := cmp.Diff(want, res.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Count(res.Lines)); diff != "" {
		t.Fatalf("closed form disagrees with emitted lines (-want +got):\n%s", diff)
	}

	checks := []struct {
		role Role
		axis Axis
		want []float64
	}{
		{Primary, Vertical, []float64{0, 100, 200, 300}},
		{Secondary, Vertical, []float64{50, 150, 250}},
		{Primary, Horizontal, []float64{0, 100, 200}},
		{Secondary, Horizontal, []float64{50, 150}},
	}
	for _, c := range checks {
		if diff := cmp.Diff(c.want, centers(res.Lines, c.role, c.axis)); diff != "" {
			t.Fatalf("%s %s centers (-want +got):\n%s", c.role, c.axis, diff)
		}
	}
}

func TestGenerate_DescriptorFields(t *testing.T) {
	res, err := Generate(Dimensions{Width: 300, Height: 200}, params(100, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	first := res.Lines[0]
	want := Descriptor{Axis: Vertical, Role: Primary, Center: 0, Thickness: 2, Span: 200, Color: RGB{R: 1}, Label: "Grid Line (Primary Vertical)"}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("first descriptor (-want +got):\n%s", diff)
	}
	last := res.Lines[len(res.Lines)-1]
	want = Descriptor{Axis: Horizontal, Role: Secondary, Center: 150, Thickness: 1, Span: 300, Color: RGB{G: 1}, Label: "Grid Line (Secondary Horizontal)"}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("last descriptor (-want +got):\n%s", diff)
	}
}

func TestGenerate_CreationOrder(t *testing.T) {
	res, err := Generate(Dimensions{Width: 300, Height: 200}, params(100, 2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// groups must appear as contiguous blocks in this order
	order := []string{Label(Primary, Vertical), Label(Secondary, Vertical), Label(Primary, Horizontal), Label(Secondary, Horizontal)}
	var seen []string
	for _, l := range res.Lines {
		if len(seen) == 0 || seen[len(seen)-1] != l.Label {
			seen = append(seen, l.Label)
		}
	}
	if diff := cmp.Diff(order, seen); diff != "" {
		t.Fatalf("creation order (-want +got):\n%s", diff)
	}
}

func TestGenerate_BoundaryLandsOnEdge(t *testing.T) {
	res, err := Generate(Dimensions{Width: 100, Height: 50}, params(100, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 100}, centers(res.Lines, Primary, Vertical)); diff != "" {
		t.Fatalf("vertical centers (-want +got):\n%s", diff)
	}
	if res.Stats.PrimaryLinesH != 2 || res.Stats.PrimaryLinesV != 1 {
		t.Fatalf("stats = %+v", res.Stats)
	}
}

func TestGenerate_NoLineForcedOnFarEdge(t *testing.T) {
	res, err := Generate(Dimensions{Width: 250, Height: 100}, params(100, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 100, 200}, centers(res.Lines, Primary, Vertical)); diff != "" {
		t.Fatalf("vertical centers (-want +got):\n%s", diff)
	}
}

func TestGenerate_NoSecondaryLines(t *testing.T) {
	res, err := Generate(Dimensions{Width: 300, Height: 200}, params(50, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, l := range res.Lines {
		if l.Role == Secondary {
			t.Fatalf("unexpected secondary line %+v", l)
		}
	}
	if res.Stats.SecondaryLinesH != 0 || res.Stats.SecondaryLinesV != 0 {
		t.Fatalf("secondary stats should be zero: %+v", res.Stats)
	}
	if res.Stats.TotalLines != len(res.Lines) {
		t.Fatalf("total %d != emitted %d", res.Stats.TotalLines, len(res.Lines))
	}
}

func TestGenerate_PrimaryCountMatchesClosedForm(t *testing.T) {
	cases := []struct{ w, h, interval float64 }{
		{300, 200, 100},
		{250, 100, 100},
		{99, 10, 33},
		{1000, 1, 7},
		{64, 64, 0.25},
		{10, 5, 2.5},
		{5, 10, 10},
	}
	for _, c := range cases {
		res, err := Generate(Dimensions{Width: c.w, Height: c.h}, params(c.interval, 0))
		if err != nil {
			t.Fatalf("Generate(%v): %v", c, err)
		}
		got := len(centers(res.Lines, Primary, Vertical))
		want := int(math.Floor(c.w/c.interval)) + 1
		if got != want || res.Stats.PrimaryLinesH != want {
			t.Fatalf("%v: emitted %d, stat %d, want %d", c, got, res.Stats.PrimaryLinesH, want)
		}
		gotH := len(centers(res.Lines, Primary, Horizontal))
		if gotH != res.Stats.PrimaryLinesV {
			t.Fatalf("%v: horizontal emitted %d, stat %d", c, gotH, res.Stats.PrimaryLinesV)
		}
	}
}

// A partial last interval still receives the secondary lines that fit, but
// the closed form only counts whole intervals. The difference is kept and
// surfaced through Count.
func TestCountDiffersOnPartialLastInterval(t *testing.T) {
	res, err := Generate(Dimensions{Width: 260, Height: 100}, params(100, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff([]float64{50, 150, 250}, centers(res.Lines, Secondary, Vertical)); diff != "" {
		t.Fatalf("secondary vertical centers (-want +got):\n%s", diff)
	}
	if res.Stats.SecondaryLinesH != 2 {
		t.Fatalf("closed form secondary H = %d, want 2", res.Stats.SecondaryLinesH)
	}
	if Count(res.Lines).SecondaryLinesH != 3 {
		t.Fatalf("counted secondary H = %d, want 3", Count(res.Lines).SecondaryLinesH)
	}
}

func TestGenerate_SecondaryStopsBeforeEdge(t *testing.T) {
	// 3 secondaries per interval at 25, 50, 75; the last interval is cut at 230
	res, err := Generate(Dimensions{Width: 230, Height: 100}, params(100, 3))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []float64{25, 50, 75, 125, 150, 175, 225}
	if diff := cmp.Diff(want, centers(res.Lines, Secondary, Vertical)); diff != "" {
		t.Fatalf("secondary vertical centers (-want +got):\n%s", diff)
	}
}

func TestGenerate_CentersWithinBleed(t *testing.T) {
	dims := Dimensions{Width: 333, Height: 121}
	res, err := Generate(dims, params(37, 4))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, l := range res.Lines {
		limit := dims.Width
		if l.Axis == Horizontal {
			limit = dims.Height
		}
		if l.Center < -l.Thickness/2 || l.Center > limit+l.Thickness/2 {
			t.Fatalf("line %+v outside [-t/2, %v+t/2]", l, limit)
		}
	}
}

func TestGenerate_InvalidInterval(t *testing.T) {
	dims := Dimensions{Width: 300, Height: 200}
	for _, interval := range []float64{0, -10, 301, math.NaN(), math.Inf(1)} {
		res, err := Generate(dims, params(interval, 1))
		if err == nil {
			t.Fatalf("interval %v: expected error", interval)
		}
		if !errors.Is(err, ErrParameter) {
			t.Fatalf("interval %v: expected ErrParameter, got %v", interval, err)
		}
		if len(res.Lines) != 0 {
			t.Fatalf("interval %v: partial output %d lines", interval, len(res.Lines))
		}
	}
	if _, err := Generate(dims, params(300, 0)); err != nil {
		t.Fatalf("interval equal to max dimension should pass: %v", err)
	}
}

func TestEngine_StrictColors(t *testing.T) {
	p := params(100, 1)
	p.SecondaryColor = "#12"
	if res, err := Generate(Dimensions{Width: 300, Height: 200}, p); err != nil || res.Lines[len(res.Lines)-1].Color != Black {
		t.Fatalf("lenient engine should fall back to black, err=%v", err)
	}
	_, err := Engine{StrictColors: true}.Generate(Dimensions{Width: 300, Height: 200}, p)
	if !errors.Is(err, ErrParameter) {
		t.Fatalf("strict engine should reject malformed color, got %v", err)
	}
}

func TestEngine_MaxLines(t *testing.T) {
	_, err := Engine{MaxLines: 10}.Generate(Dimensions{Width: 300, Height: 200}, params(100, 1))
	if !errors.Is(err, ErrParameter) {
		t.Fatalf("expected line cap to reject 12 lines, got %v", err)
	}
	if _, err := (Engine{MaxLines: 12}).Generate(Dimensions{Width: 300, Height: 200}, params(100, 1)); err != nil {
		t.Fatalf("12 lines should fit a cap of 12: %v", err)
	}
}

func TestGenerate_InvalidWeights(t *testing.T) {
	dims := Dimensions{Width: 300, Height: 200}
	bad := []float64{0, -1, math.NaN(), math.Inf(1)}
	for _, w := range bad {
		p := params(100, 1)
		p.PrimaryWeight = w
		var pe *ParameterError
		if _, err := Generate(dims, p); !errors.As(err, &pe) || pe.Field != "primaryWeight" {
			t.Fatalf("primary weight %v: expected primaryWeight error, got %v", w, err)
		}
		p = params(100, 1)
		p.SecondaryWeight = w
		if _, err := Generate(dims, p); !errors.As(err, &pe) || pe.Field != "secondaryWeight" {
			t.Fatalf("secondary weight %v: expected secondaryWeight error, got %v", w, err)
		}
	}
	// the secondary weight is unused without secondary lines
	p := params(100, 0)
	p.SecondaryWeight = 0
	if _, err := Generate(dims, p); err != nil {
		t.Fatalf("zero secondary weight without secondary lines: %v", err)
	}
}

func TestGenerate_NegativeSecondaryLines(t *testing.T) {
	_, err := Generate(Dimensions{Width: 300, Height: 200}, params(100, -1))
	if !errors.Is(err, ErrParameter) {
		t.Fatalf("expected ErrParameter, got %v", err)
	}
}

func TestGenerate_LineCeilingWithoutEngineCap(t *testing.T) {
	dims := Dimensions{Width: 300, Height: 200}
	for _, n := range []int{50_000_000, math.MaxInt} {
		res, err := Engine{}.Generate(dims, params(100, n))
		if !errors.Is(err, ErrParameter) {
			t.Fatalf("secondary lines %d: expected ErrParameter, got %v", n, err)
		}
		if len(res.Lines) != 0 {
			t.Fatalf("secondary lines %d: partial output", n)
		}
	}
}
