// Package diagram models the 7x7 grid of characters a secret is drawn on.
//
// A diagram is built once from parallel value and position lists and is
// read-only afterwards. The order in which cells were supplied is kept,
// because the entropy encoder consumes cells in that order.
package diagram

import (
	"strings"
	"unicode/utf8"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

const (
	Rows         = 7
	Cols         = 7
	Cells        = Rows * Cols
	MaxCellChars = 50
)

// Position addresses one grid cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Index returns the linear cell index row*7 + col.
func (p Position) Index() int {
	return p.Row*Cols + p.Col
}

// Valid reports whether p lies on the grid.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// PositionAt converts a linear cell index back to a Position.
func PositionAt(index int) Position {
	return Position{Row: index / Cols, Col: index % Cols}
}

// Entry is one occupied cell of the occupied sequence.
type Entry struct {
	Pos   Position
	Value string
}

// Diagram is the read-only view shared by simple and complex diagrams.
type Diagram interface {
	// Entries returns the occupied sequence in caller order.
	Entries() []Entry
	// Len returns the number of occupied cells.
	Len() int
	// At returns the content of a cell.
	At(row, col int) (string, bool)
	// Grid returns a copy of the cell contents.
	Grid() [Rows][Cols]string
}

type grid struct {
	entries []Entry
	cells   [Rows][Cols]string
}

func (g *grid) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

func (g *grid) Len() int {
	return len(g.entries)
}

func (g *grid) At(row, col int) (string, bool) {
	if !(Position{Row: row, Col: col}).Valid() {
		return "", false
	}
	v := g.cells[row][col]
	return v, v != ""
}

func (g *grid) Grid() [Rows][Cols]string {
	return g.cells
}

// String renders the grid one row per line, "." marking empty cells.
func (g *grid) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g.cells[r][c] == "" {
				sb.WriteByte('.')
			} else {
				sb.WriteString(g.cells[r][c])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Simple holds at most one character per cell.
type Simple struct {
	grid
}

// NewSimple builds a diagram placing values[i] at positions[i].
func NewSimple(values []rune, positions []Position) (*Simple, error) {
	if err := checkLists(len(values), len(positions)); err != nil {
		return nil, err
	}

	d := &Simple{}
	for i, pos := range positions {
		if !pos.Valid() {
			return nil, gserrors.Field(gserrors.ErrPositionOutOfRange, "position", pos)
		}
		if !utf8.ValidRune(values[i]) {
			return nil, gserrors.Field(gserrors.ErrInvalidCharacter, "value", values[i])
		}
		if d.cells[pos.Row][pos.Col] != "" {
			return nil, gserrors.Field(gserrors.ErrDuplicatePosition, "position", pos)
		}
		v := string(values[i])
		d.cells[pos.Row][pos.Col] = v
		d.entries = append(d.entries, Entry{Pos: pos, Value: v})
	}
	return d, nil
}

// Runes returns the values of the occupied sequence in caller order.
func (d *Simple) Runes() []rune {
	out := make([]rune, len(d.entries))
	for i, e := range d.entries {
		out[i], _ = utf8.DecodeRuneInString(e.Value)
	}
	return out
}

// Complex holds a string of up to MaxCellChars characters per cell.
// Repeated positions append to the cell in call order.
type Complex struct {
	grid
}

// NewComplex builds a diagram appending values[i] to the cell at positions[i].
func NewComplex(values []string, positions []Position) (*Complex, error) {
	if err := checkLists(len(values), len(positions)); err != nil {
		return nil, err
	}

	d := &Complex{}
	slot := make(map[int]int)
	for i, pos := range positions {
		if !pos.Valid() {
			return nil, gserrors.Field(gserrors.ErrPositionOutOfRange, "position", pos)
		}
		v := values[i]
		if v == "" {
			return nil, gserrors.Field(gserrors.ErrEmptyCell, "position", pos)
		}
		if !utf8.ValidString(v) {
			return nil, gserrors.Field(gserrors.ErrInvalidCharacter, "value", v)
		}

		cell := d.cells[pos.Row][pos.Col] + v
		if n := utf8.RuneCountInString(cell); n > MaxCellChars {
			return nil, gserrors.Field(gserrors.ErrCellTooLong, "position", pos)
		}
		d.cells[pos.Row][pos.Col] = cell

		if at, ok := slot[pos.Index()]; ok {
			d.entries[at].Value = cell
			continue
		}
		slot[pos.Index()] = len(d.entries)
		d.entries = append(d.entries, Entry{Pos: pos, Value: cell})
	}
	return d, nil
}

func checkLists(values, positions int) error {
	if values != positions {
		return gserrors.Field(gserrors.ErrLengthMismatch, "positions", positions)
	}
	if values == 0 {
		return gserrors.ErrEmptyDiagram
	}
	return nil
}
