/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"gridfill/internal/session"
)

// logUI stands in for the panel in one-shot commands, which report results
// on stdout themselves.
type logUI struct{ log *slog.Logger }

func (u logUI) Post(ev session.Event) error {
	u.log.Debug("event", slog.String("type", ev.Kind()))
	return nil
}

func (u logUI) OnMessage(func([]byte)) func() { return func() {} }

func newGenerateCmd(a *app) *cobra.Command {
	var (
		frameRef        string
		out             string
		interval        float64
		primaryWeight   float64
		secondaryLines  int
		secondaryWeight float64
		primaryColor    string
		secondaryColor  string
		strictColors    bool
	)
	cmd := &cobra.Command{
		Use:   "generate <document.json>",
		Short: "Fill a frame with a grid and save the document",
		Long: "Fill a frame with a grid and save the document.\n" +
			"Grid flags that are not given fall back to the grid section of the config file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openDocument(args[0])
			if err != nil {
				return err
			}
			if frameRef != "" {
				n, err := doc.Resolve(frameRef)
				if err != nil {
					return err
				}
				if err := doc.Select(n.ID); err != nil {
					return err
				}
			}

			p := a.cfg.Grid.Parameters()
			flags := cmd.Flags()
			if flags.Changed("interval") {
				p.GridInterval = interval
			}
			if flags.Changed("primary-weight") {
				p.PrimaryWeight = primaryWeight
			}
			if flags.Changed("secondary-lines") {
				p.SecondaryLines = secondaryLines
			}
			if flags.Changed("secondary-weight") {
				p.SecondaryWeight = secondaryWeight
			}
			if flags.Changed("primary-color") {
				p.PrimaryColor = primaryColor
			}
			if flags.Changed("secondary-color") {
				p.SecondaryColor = secondaryColor
			}
			engine := a.cfg.Grid.Engine()
			if flags.Changed("strict-colors") {
				engine.StrictColors = strictColors
			}

			ctrl := session.Open(doc, logUI{log: a.log}, session.Options{Engine: engine})
			defer ctrl.Close()
			stats, err := ctrl.Generate(p)
			if err != nil {
				return err
			}

			target := args[0]
			if out != "" {
				target = out
			}
			if err := doc.Save(target); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
	f := cmd.Flags()
	f.StringVar(&frameRef, "frame", "", "frame id or name (default: the document's selection)")
	f.StringVarP(&out, "out", "o", "", "write the result here instead of overwriting the input")
	f.Float64Var(&interval, "interval", 0, "distance between primary lines")
	f.Float64Var(&primaryWeight, "primary-weight", 0, "primary line thickness")
	f.IntVar(&secondaryLines, "secondary-lines", 0, "secondary lines per primary interval")
	f.Float64Var(&secondaryWeight, "secondary-weight", 0, "secondary line thickness")
	f.StringVar(&primaryColor, "primary-color", "", "primary line color (#RRGGBB)")
	f.StringVar(&secondaryColor, "secondary-color", "", "secondary line color (#RRGGBB)")
	f.BoolVar(&strictColors, "strict-colors", false, "reject malformed colors instead of using black")
	return cmd
}
