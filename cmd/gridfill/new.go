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
	"os"

	"github.com/spf13/cobra"

	"gridfill/internal/canvas"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		name          string
		frameName     string
		width, height float64
		force         bool
	)
	cmd := &cobra.Command{
		Use:   "new <document.json>",
		Short: "Create a document holding one selected frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !(width > 0) || !(height > 0) {
				return errors.New("frame width and height must be positive")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			doc := canvas.New(name)
			frame := canvas.NewFrame(frameName, width, height)
			doc.Add(frame)
			if err := doc.Select(frame.ID); err != nil {
				return err
			}
			if err := doc.Save(path); err != nil {
				return err
			}
			a.log.Info("document created", "path", path, "frame", frame.ID)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Created %s with frame %q (%s)\n", path, frameName, frame.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "Untitled", "document name")
	cmd.Flags().StringVar(&frameName, "frame-name", "Frame 1", "name of the frame")
	cmd.Flags().Float64Var(&width, "width", 1440, "frame width")
	cmd.Flags().Float64Var(&height, "height", 1024, "frame height")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
