/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gridfill/internal/event"
	"gridfill/internal/log"
)

// maxLine bounds a single protocol message.
const maxLine = 1024 * 1024

// Stdio speaks the JSON-lines protocol: one command per input line, one
// event per output line.
type Stdio struct {
	in  io.Reader
	log *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder

	messages event.Bus[[]byte]
}

var _ UI = (*Stdio)(nil)

// NewStdio returns a transport reading commands from in and writing events to out.
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: in, enc: json.NewEncoder(out), log: log.WithComponent("stdio")}
}

// Post writes one event line. Concurrent calls are serialized.
func (s *Stdio) Post(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(ev); err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Kind(), err)
	}
	return nil
}

// OnMessage registers fn for every non-empty input line.
func (s *Stdio) OnMessage(fn func(msg []byte)) (cancel func()) {
	return s.messages.Subscribe(fn)
}

// Run reads input until EOF or until ctx is done. Each line is delivered to
// the subscribers before the next one is read.
func (s *Stdio) Run(ctx context.Context) error {
	lines := make(chan []byte)
	errc := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			msg := append([]byte(nil), line...)
			select {
			case lines <- msg:
			case <-stop:
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-lines:
			// both cases can be ready at once; a finished session takes no more input
			if ctx.Err() != nil {
				return nil
			}
			s.messages.Publish(msg)
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("read commands: %w", err)
			}
			s.log.Debug("input closed")
			return nil
		}
	}
}
