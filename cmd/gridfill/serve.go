/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gridfill/internal/session"
)

func newServeCmd(a *app) *cobra.Command {
	var noSave bool
	cmd := &cobra.Command{
		Use:   "serve <document.json>",
		Short: "Run a grid session over JSON lines on stdin/stdout",
		Long: "Run a grid session over JSON lines on stdin/stdout.\n" +
			"The session ends on cancel, end of input or an interrupt signal; the\n" +
			"document is written back when it changed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := a.openDocument(path)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tr := session.NewStdio(cmd.InOrStdin(), cmd.OutOrStdout())
			ctrl := session.Open(doc, tr, session.Options{Engine: a.cfg.Grid.Engine()})

			g, gctx := errgroup.WithContext(ctx)
			runCtx, cancelRun := context.WithCancel(gctx)
			defer cancelRun()
			g.Go(func() error {
				defer cancelRun()
				return tr.Run(runCtx)
			})
			g.Go(func() error {
				select {
				case <-ctrl.Done():
					cancelRun()
				case <-runCtx.Done():
				}
				return nil
			})
			err = g.Wait()
			ctrl.Close()
			if err != nil {
				return err
			}

			if doc.Dirty() && !noSave {
				if err := doc.Save(path); err != nil {
					return err
				}
				a.log.Info("document saved", slog.String("path", path))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSave, "no-save", false, "leave the document file untouched")
	return cmd
}
