package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

func TestNewSimple(t *testing.T) {
	values := []rune("🍔🍟🌭🍦🍩")
	positions := []Position{{1, 1}, {1, 5}, {5, 5}, {5, 1}, {3, 3}}

	d, err := NewSimple(values, positions)
	require.NoError(t, err)
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, values, d.Runes())

	v, ok := d.At(5, 5)
	assert.True(t, ok)
	assert.Equal(t, "🌭", v)

	_, ok = d.At(0, 0)
	assert.False(t, ok)
	_, ok = d.At(9, 0)
	assert.False(t, ok)

	entries := d.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, Position{5, 1}, entries[3].Pos)
	assert.Equal(t, "🍦", entries[3].Value)

	// Entries hands out a copy.
	entries[0].Value = "x"
	v, _ = d.At(1, 1)
	assert.Equal(t, "🍔", v)
	assert.Equal(t, "🍔", d.Entries()[0].Value)
}

func TestNewSimpleErrors(t *testing.T) {
	testCases := []struct {
		name      string
		values    []rune
		positions []Position
		want      error
	}{
		{"length mismatch", []rune("ab"), []Position{{0, 0}}, gserrors.ErrLengthMismatch},
		{"empty", nil, nil, gserrors.ErrEmptyDiagram},
		{"row out of range", []rune("a"), []Position{{7, 0}}, gserrors.ErrPositionOutOfRange},
		{"negative col", []rune("a"), []Position{{0, -1}}, gserrors.ErrPositionOutOfRange},
		{"repeated cell", []rune("ab"), []Position{{2, 2}, {2, 2}}, gserrors.ErrDuplicatePosition},
		{"surrogate", []rune{0xD800}, []Position{{0, 0}}, gserrors.ErrInvalidCharacter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSimple(tc.values, tc.positions)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFullGrid(t *testing.T) {
	values := make([]rune, Cells)
	positions := make([]Position, Cells)
	for i := 0; i < Cells; i++ {
		values[i] = rune('A' + i)
		positions[i] = PositionAt(Cells - 1 - i)
	}
	d, err := NewSimple(values, positions)
	require.NoError(t, err)
	assert.Equal(t, Cells, d.Len())
	assert.Equal(t, strings.Count(d.String(), "\n"), Rows)
	assert.NotContains(t, d.String(), ".")
}

func TestNewComplexAppends(t *testing.T) {
	d, err := NewComplex(
		[]string{"abc", "🍔", "de", "f"},
		[]Position{{0, 0}, {6, 6}, {0, 0}, {3, 4}},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	v, ok := d.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, "abcde", v)

	entries := d.Entries()
	assert.Equal(t, []Entry{
		{Pos: Position{0, 0}, Value: "abcde"},
		{Pos: Position{6, 6}, Value: "🍔"},
		{Pos: Position{3, 4}, Value: "f"},
	}, entries)
}

func TestNewComplexLimits(t *testing.T) {
	long := strings.Repeat("😀", MaxCellChars)
	_, err := NewComplex([]string{long}, []Position{{0, 0}})
	require.NoError(t, err)

	_, err = NewComplex([]string{long, "x"}, []Position{{0, 0}, {0, 0}})
	assert.ErrorIs(t, err, gserrors.ErrCellTooLong)

	_, err = NewComplex([]string{""}, []Position{{0, 0}})
	assert.ErrorIs(t, err, gserrors.ErrEmptyCell)

	_, err = NewComplex([]string{"\xff"}, []Position{{0, 0}})
	assert.ErrorIs(t, err, gserrors.ErrInvalidCharacter)

	_, err = NewComplex([]string{"a"}, []Position{{0, 7}})
	assert.ErrorIs(t, err, gserrors.ErrPositionOutOfRange)
}

func TestPositionIndex(t *testing.T) {
	for i := 0; i < Cells; i++ {
		assert.Equal(t, i, PositionAt(i).Index())
	}
	assert.Equal(t, 8, Position{1, 1}.Index())
}
