/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var schemaJSON []byte

var schema = mustSchema(schemaJSON)

func mustSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("canvas: invalid embedded schema: %v", err))
	}
	return s
}

// SchemaError lists the reasons a document failed schema validation.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "document does not conform to schema: " + strings.Join(e.Problems, "; ")
}

type fileFormat struct {
	Name      string   `json:"name"`
	Nodes     []*Node  `json:"nodes"`
	Selection []string `json:"selection"`
}

// Parse validates data against the document schema and builds a Document.
// Nodes without an id get a fresh one; duplicate ids and selections that
// reference missing nodes are rejected.
func Parse(data []byte) (*Document, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if !res.Valid() {
		se := &SchemaError{}
		for _, e := range res.Errors() {
			se.Problems = append(se.Problems, e.String())
		}
		return nil, se
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	d := &Document{Name: f.Name, Nodes: f.Nodes}
	seen := map[string]bool{}
	var dup string
	d.walk(func(n *Node) bool {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if seen[n.ID] && dup == "" {
			dup = n.ID
		}
		seen[n.ID] = true
		return true
	})
	if dup != "" {
		return nil, fmt.Errorf("parse document: duplicate node id %q", dup)
	}
	for _, n := range d.Nodes {
		n.parent = nil
		n.link()
	}
	for _, id := range f.Selection {
		if !seen[id] {
			return nil, fmt.Errorf("parse document: selection references unknown node %q", id)
		}
	}
	d.selection = f.Selection
	return d, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	d, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *Document) file() fileFormat {
	f := fileFormat{Name: d.Name, Nodes: d.Nodes, Selection: d.selection}
	if f.Nodes == nil {
		f.Nodes = []*Node{}
	}
	if f.Selection == nil {
		f.Selection = []string{}
	}
	return f
}

// MarshalJSON writes the document in its file format.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.file())
}

// Save writes the document to path with transactional semantics: the data
// goes to a temp file in the same directory which is then renamed over path.
func (d *Document) Save(path string) error {
	if d == nil {
		return errors.New("nil document")
	}
	if path == "" {
		return errors.New("save document: empty path")
	}
	data, err := json.MarshalIndent(d.file(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure document dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		return fmt.Errorf("write temp document: %w", err)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace document: %w", err)
	}
	d.dirty = false
	return nil
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
