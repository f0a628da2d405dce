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
	"io"

	"github.com/jung-kurt/gofpdf"

	"gridfill/internal/canvas"
	"gridfill/internal/version"
)

// WritePDF renders sc as a single-page PDF. One canvas unit maps to one
// point, so grid lines stay vector and exact at any zoom.
func WritePDF(w io.Writer, sc Scene, opt Options) error {
	size := gofpdf.SizeType{Wd: sc.Width, Ht: sc.Height}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           size,
		OrientationStr: "",
	})
	pdf.SetTitle(sc.Name, true)
	pdf.SetCreator("gridfill "+version.Version, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", size)

	setFillColor(pdf, sc.Background)
	pdf.Rect(0, 0, sc.Width, sc.Height, "F")
	for _, it := range sc.Items {
		r := it.Rect
		setFillColor(pdf, it.Color)
		pdf.Rect(r.X, r.Y, r.W, r.H, "F")
	}
	if opt.Outline {
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.5)
		pdf.Rect(0, 0, sc.Width, sc.Height, "D")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setFillColor(pdf *gofpdf.Fpdf, c canvas.Color) {
	r, g, b := rgb255(c)
	pdf.SetFillColor(int(r), int(g), int(b))
}
