/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package version exposes build metadata for the CLI and crash reports.
package version

import (
	"fmt"
	"runtime"
)

// Version, Commit and BuildTime are set via -ldflags at build time.
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns a one-line version banner.
func String() string {
	return fmt.Sprintf("gridfill %s (commit %s, built %s, %s)", Version, Commit, BuildTime, runtime.Version())
}
