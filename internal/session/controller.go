/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session wires the UI protocol to the grid components for one
// open host document. A Controller owns its subscriptions and releases them
// on Close.
package session

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"gridfill/internal/grid"
	"gridfill/internal/host"
	"gridfill/internal/log"
	"gridfill/internal/materialize"
	"gridfill/internal/selection"
)

// SuccessNotice is shown by the host after a grid was generated.
const SuccessNotice = "Grid generated successfully!"

var (
	// ErrInFlight rejects a generation while another one runs for the same frame.
	ErrInFlight = errors.New("A grid is already being generated for this frame.")
	// ErrNoSelector is returned for select commands on hosts that cannot change the selection.
	ErrNoSelector = errors.New("This host does not support changing the selection.")
	// ErrClosed is returned for commands after the session was closed.
	ErrClosed = errors.New("session is closed")
)

//go:embed command.schema.json
var commandSchemaJSON []byte

var commandSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(commandSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("session: invalid embedded command schema: %v", err))
	}
	return s
}()

// UI is the panel side of the protocol.
type UI interface {
	Post(ev Event) error
	// OnMessage registers fn for raw JSON commands and returns a function that unregisters it.
	OnMessage(fn func(msg []byte)) (cancel func())
}

// Options tune a Controller.
type Options struct {
	Engine grid.Engine
	Logger *slog.Logger
}

// Controller is the explicit state of one session.
type Controller struct {
	host   host.Host
	ui     UI
	engine grid.Engine
	mat    *materialize.Materializer
	log    *slog.Logger

	mu       sync.Mutex
	inflight map[string]bool
	closed   bool
	cancels  []func()
	done     chan struct{}
}

// Open starts a session: it subscribes to host selection changes and UI
// messages and pushes the initial selection state.
func Open(h host.Host, ui UI, opts Options) *Controller {
	l := opts.Logger
	if l == nil {
		l = log.WithComponent("session")
	}
	c := &Controller{
		host:     h,
		ui:       ui,
		engine:   opts.Engine,
		mat:      materialize.New(),
		log:      l,
		inflight: map[string]bool{},
		done:     make(chan struct{}),
	}
	c.cancels = append(c.cancels,
		h.OnSelectionChange(c.PushSelection),
		ui.OnMessage(c.HandleMessage),
	)
	c.PushSelection()
	c.log.Info("session opened")
	return c
}

// Done is closed once the session is closed.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Close cancels both subscriptions and closes the host. It is safe to call repeatedly.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancels := c.cancels
	c.cancels = nil
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	c.host.Close()
	close(c.done)
	c.log.Info("session closed")
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// PushSelection sends the current selection status to the UI.
func (c *Controller) PushSelection() {
	st := selection.Validate(c.host.Selection())
	c.post(NewSelectionUpdate(st))
}

// HandleMessage validates a raw command and dispatches it. Failures are
// reported to the UI as error events.
func (c *Controller) HandleMessage(msg []byte) {
	cmd, err := DecodeCommand(msg)
	if err != nil {
		c.log.Warn("rejected message", "err", err)
		c.post(NewError(err.Error()))
		return
	}
	if err := c.Dispatch(cmd); err != nil {
		c.post(NewError(err.Error()))
	}
}

// DecodeCommand checks msg against the command schema and decodes it.
func DecodeCommand(msg []byte) (Command, error) {
	res, err := commandSchema.Validate(gojsonschema.NewBytesLoader(msg))
	if err != nil {
		return Command{}, fmt.Errorf("Invalid message: %w", err)
	}
	if !res.Valid() {
		problems := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			problems = append(problems, e.String())
		}
		return Command{}, fmt.Errorf("Invalid message: %s", strings.Join(problems, "; "))
	}
	var cmd Command
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return Command{}, fmt.Errorf("Invalid message: %w", err)
	}
	return cmd, nil
}

// Dispatch runs one command to completion. The returned error carries the
// message the UI should show.
func (c *Controller) Dispatch(cmd Command) error {
	if c.isClosed() {
		return ErrClosed
	}
	l := log.WithOperation(c.log, cmd.Type)
	switch cmd.Type {
	case TypeGenerateGrid:
		if cmd.Params == nil {
			return errors.New("Invalid message: missing params")
		}
		_, err := c.Generate(*cmd.Params)
		if err != nil {
			l.Warn("generation failed", "err", err)
		}
		return err
	case TypeCancel:
		c.Close()
		return nil
	case TypeSelect:
		sel, ok := c.host.(host.Selector)
		if !ok {
			return ErrNoSelector
		}
		return sel.Select(cmd.IDs...)
	default:
		l.Debug("ignoring unknown message type")
		return nil
	}
}

// Generate fills the selected frame with a fresh grid, replacing any grid
// lines from an earlier run, and reports the stats to the UI.
func (c *Controller) Generate(p grid.Parameters) (grid.Stats, error) {
	frame, err := selection.Require(c.host.Selection())
	if err != nil {
		return grid.Stats{}, err
	}
	id := frame.ID()
	if !c.acquire(id) {
		return grid.Stats{}, ErrInFlight
	}
	defer c.release(id)

	start := time.Now()
	l := c.log.With(slog.String("frame", frame.Name()))
	if !c.engine.StrictColors {
		for _, col := range []string{p.PrimaryColor, p.SecondaryColor} {
			if !grid.IsHex(col) {
				l.Warn("invalid color, using black", "color", col)
			}
		}
	}

	dims := grid.Dimensions{Width: frame.Width(), Height: frame.Height()}
	res, err := c.engine.Generate(dims, p)
	if err != nil {
		return grid.Stats{}, err
	}
	if counted := grid.Count(res.Lines); counted != res.Stats {
		l.Warn("reported stats differ from created lines", "reported", res.Stats.TotalLines, "created", counted.TotalLines)
	}

	removed, created, err := c.mat.Replace(c.host, frame, res.Lines)
	if err != nil {
		return grid.Stats{}, err
	}
	c.post(NewGridGenerated(res.Stats))
	c.host.Notify(SuccessNotice)
	l.Info("grid generated", "removed", removed, "created", created, "total", res.Stats.TotalLines, "elapsed", time.Since(start))
	return res.Stats, nil
}

func (c *Controller) acquire(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] {
		return false
	}
	c.inflight[id] = true
	return true
}

func (c *Controller) release(id string) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
}

func (c *Controller) post(ev Event) {
	if err := c.ui.Post(ev); err != nil {
		c.log.Error("post event", "type", ev.Kind(), "err", err)
	}
}
