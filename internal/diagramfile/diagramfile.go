// Package diagramfile stores diagrams as JSON documents.
package diagramfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/diagram"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/entropy"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils/permissions"
)

const (
	KindSimple  = "simple"
	KindComplex = "complex"
)

// Cell is one value placed at a grid position.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// Document is the on-disk form of a diagram. Cells are kept in insertion
// order, which is part of the secret.
type Document struct {
	Kind     string    `json:"kind"`
	Cells    []Cell    `json:"cells"`
	Alphabet []string  `json:"alphabet,omitempty"`
	Created  time.Time `json:"created"`
}

// FromDiagram captures d and an optional value alphabet.
func FromDiagram(d diagram.Diagram, alphabet []string) *Document {
	doc := &Document{
		Kind:     KindComplex,
		Alphabet: alphabet,
		Created:  time.Now().UTC(),
	}
	if _, ok := d.(*diagram.Simple); ok {
		doc.Kind = KindSimple
	}
	for _, e := range d.Entries() {
		doc.Cells = append(doc.Cells, Cell{Row: e.Pos.Row, Col: e.Pos.Col, Value: e.Value})
	}
	return doc
}

// Validate checks the document without building the diagram.
func (doc *Document) Validate() error {
	if doc.Kind != KindSimple && doc.Kind != KindComplex {
		return gserrors.Field(gserrors.ErrInvalidVersion, "kind", doc.Kind)
	}
	if len(doc.Cells) == 0 {
		return gserrors.ErrEmptyDiagram
	}
	for _, c := range doc.Cells {
		if !(diagram.Position{Row: c.Row, Col: c.Col}).Valid() {
			return gserrors.Field(gserrors.ErrPositionOutOfRange, "cell", c)
		}
		if !utf8.ValidString(c.Value) {
			return gserrors.Field(gserrors.ErrInvalidCharacter, "value", fmt.Sprintf("%q", c.Value))
		}
		if doc.Kind == KindSimple && utf8.RuneCountInString(c.Value) != 1 {
			return gserrors.Field(gserrors.ErrInvalidCharacter, "value", c.Value)
		}
	}
	return nil
}

// Diagram builds the diagram described by doc.
func (doc *Document) Diagram() (diagram.Diagram, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	positions := make([]diagram.Position, len(doc.Cells))
	for i, c := range doc.Cells {
		positions[i] = diagram.Position{Row: c.Row, Col: c.Col}
	}

	if doc.Kind == KindSimple {
		values := make([]rune, len(doc.Cells))
		for i, c := range doc.Cells {
			values[i], _ = utf8.DecodeRuneInString(c.Value)
		}
		return diagram.NewSimple(values, positions)
	}

	values := make([]string, len(doc.Cells))
	for i, c := range doc.Cells {
		values[i] = c.Value
	}
	return diagram.NewComplex(values, positions)
}

// ValueAlphabet returns the document's alphabet, or nil when it has none.
func (doc *Document) ValueAlphabet() (entropy.Alphabet, error) {
	if len(doc.Alphabet) == 0 {
		return nil, nil
	}
	return entropy.NewListAlphabet(doc.Alphabet)
}

// Load reads and validates a diagram document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes doc to path readable only by its owner.
func Save(path string, doc *Document) error {
	return SaveWithMode(path, doc, permissions.DefaultFilePerms)
}

// SaveWithMode writes doc to path with the given permissions.
func SaveWithMode(path string, doc *Document, mode os.FileMode) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// The data only ever lands in a new file created with mode.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
