/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gridfill/internal/export"
	"gridfill/internal/grid"
	"gridfill/internal/host"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		frameRef string
		format   string
		out      string
		scale    float64
		maxPx    int
		outline  bool
	)
	cmd := &cobra.Command{
		Use:   "preview <document.json>",
		Short: "Render a frame and its grid to SVG, PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			doc, err := a.openDocument(args[0])
			if err != nil {
				return err
			}

			var f export.Format
			switch {
			case format != "":
				if f, err = export.ParseFormat(format); err != nil {
					return err
				}
			default:
				var ok bool
				if f, ok = export.FormatFromPath(out); !ok {
					return fmt.Errorf("cannot infer format from %q; use --format", out)
				}
			}

			var frameID string
			if frameRef != "" {
				n, err := doc.Resolve(frameRef)
				if err != nil {
					return err
				}
				frameID = n.ID
			} else {
				sel := doc.SelectionIDs()
				if len(sel) != 1 {
					return errors.New("select exactly one frame or pass --frame")
				}
				frameID = sel[0]
			}
			frame := doc.Find(frameID)
			if frame.Type != host.TypeFrame {
				return fmt.Errorf("%q is a %s, not a frame", frame.Name, frame.Type)
			}

			opt := export.Options{
				Scale:      a.cfg.Export.Scale,
				MaxPx:      a.cfg.Export.MaxPreviewPx,
				Background: toCanvasColor(grid.HexToRGB(a.cfg.Export.Background)),
				Outline:    outline,
			}
			if cmd.Flags().Changed("scale") {
				opt.Scale = scale
			}
			if cmd.Flags().Changed("max-px") {
				opt.MaxPx = maxPx
			}
			sc := export.Build(frame, opt)
			if err := export.WriteFile(out, f, sc, opt); err != nil {
				return err
			}
			a.log.Info("preview written", "path", out, "format", string(f), "items", len(sc.Items))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s preview of %q to %s\n", f, frame.Name, out)
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&frameRef, "frame", "", "frame id or name (default: the document's selection)")
	fl.StringVar(&format, "format", "", "svg, png or pdf (default: from --out extension)")
	fl.StringVarP(&out, "out", "o", "", "output file")
	fl.Float64Var(&scale, "scale", 1, "output pixels per canvas unit")
	fl.IntVar(&maxPx, "max-px", 0, "downscale PNG output to fit this many pixels (0 disables)")
	fl.BoolVar(&outline, "outline", false, "draw a hairline around the frame")
	return cmd
}
