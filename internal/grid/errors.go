/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package grid

import "errors"

// Sentinels for errors.Is; the concrete types carry the user-facing message.
var (
	ErrSelection = errors.New("invalid selection")
	ErrParameter = errors.New("invalid grid parameters")
)

// SelectionError reports a zero, multiple or wrong-kind selection at
// generation time.
type SelectionError struct{ Message string }

func (e *SelectionError) Error() string        { return e.Message }
func (e *SelectionError) Is(target error) bool { return target == ErrSelection }

// ParameterError reports grid parameters that cannot produce a grid.
type ParameterError struct {
	Field   string
	Message string
}

func (e *ParameterError) Error() string        { return e.Message }
func (e *ParameterError) Is(target error) bool { return target == ErrParameter }
