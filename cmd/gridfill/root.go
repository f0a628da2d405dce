/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"gridfill/internal/canvas"
	"gridfill/internal/config"
	"gridfill/internal/crash"
	"gridfill/internal/grid"
	applog "gridfill/internal/log"
	"gridfill/internal/version"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfgPath string
	cfg     config.AppConfig
	scope   *crash.Scope
	log     *slog.Logger
}

func newRootCmd(scope *crash.Scope) *cobra.Command {
	a := &app{scope: scope, cfg: config.Defaults()}
	root := &cobra.Command{
		Use:           "gridfill",
		Short:         "Fill design frames with primary and secondary grid lines.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			applog.Init(applog.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.Source,
				File:      cfg.Logging.File,
				Writer:    cmd.ErrOrStderr(),
			})
			a.log = applog.WithComponent("cli")
			a.log.Debug("start", slog.String("cmd", cmd.Name()), slog.Int("args", len(args)))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "config file (default is the per-user gridfill/config.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newNewCmd(a),
		newGenerateCmd(a),
		newPreviewCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// openDocument loads path and registers it for crash snapshots.
func (a *app) openDocument(path string) (*canvas.Document, error) {
	doc, err := canvas.Load(path)
	if err != nil {
		return nil, err
	}
	a.scope.Dir = filepath.Dir(path)
	a.scope.Doc = doc
	a.log.Info("document opened", slog.String("path", path), slog.String("name", doc.Name))
	return doc, nil
}

func toCanvasColor(c grid.RGB) canvas.Color {
	return canvas.Color{R: c.R, G: c.G, B: c.B}
}
