/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"gridfill/internal/canvas"
)

// RenderPNG rasterizes sc with anti-aliasing, so lines thinner than a pixel
// or off the pixel grid blend into their neighbours. The result is
// rasterized directly at a scale that fits opt.MaxPx when set.
func RenderPNG(sc Scene, opt Options) image.Image {
	scale := fitScale(sc.Width, sc.Height, opt.scale(), opt.MaxPx)
	pixW, pixH := pixels(sc.Width*scale), pixels(sc.Height*scale)

	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(sc.Background)), image.Point{}, draw.Src)

	z := vector.NewRasterizer(pixW, pixH)
	for _, it := range sc.Items {
		r := it.Rect
		x0, y0 := float32(r.X*scale), float32(r.Y*scale)
		x1, y1 := float32(r.MaxX()*scale), float32(r.MaxY()*scale)
		z.Reset(pixW, pixH)
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(toRGBA(it.Color)), image.Point{})
	}
	if opt.Outline {
		strokeRect(img, 0, 0, pixW-1, pixH-1, color.RGBA{A: 255})
	}
	return img
}

// pixels rounds a scaled extent up, ignoring float noise left by fitScale.
func pixels(v float64) int { return max(1, int(math.Ceil(v-1e-6))) }

// fitScale lowers scale so that a w×h scene stays within maxPx on both axes.
func fitScale(w, h, scale float64, maxPx int) float64 {
	if maxPx <= 0 {
		return scale
	}
	limit := float64(maxPx)
	if w*scale > limit {
		scale = limit / w
	}
	if h*scale > limit {
		scale = limit / h
	}
	return scale
}

// WritePNG renders sc and encodes it as PNG.
func WritePNG(w io.Writer, sc Scene, opt Options) error {
	if err := imaging.Encode(w, RenderPNG(sc, opt), imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toRGBA(c canvas.Color) color.RGBA {
	r, g, b := rgb255(c)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}
