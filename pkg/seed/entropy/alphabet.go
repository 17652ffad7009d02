package entropy

import (
	"unicode"
	"unicode/utf8"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// Alphabet assigns every cell value a unique digit in [0, Radix()).
type Alphabet interface {
	Radix() uint32
	Index(value string) (uint32, bool)
	Value(index uint32) (string, bool)
}

// CodePoints is the default alphabet for simple diagrams. Its digits are
// the Unicode scalar values in order with the surrogate block removed, so
// every digit below Radix() names exactly one character.
var CodePoints Alphabet = codePoints{}

const (
	surrogateFirst = 0xD800
	surrogateCount = 0xE000 - surrogateFirst
)

type codePoints struct{}

func (codePoints) Radix() uint32 {
	return unicode.MaxRune + 1 - surrogateCount
}

func (codePoints) Index(value string) (uint32, bool) {
	r, size := utf8.DecodeRuneInString(value)
	if size == 0 || size != len(value) || !utf8.ValidRune(r) || (r == utf8.RuneError && size == 1) {
		return 0, false
	}
	if r >= surrogateFirst {
		return uint32(r) - surrogateCount, true
	}
	return uint32(r), true
}

func (c codePoints) Value(index uint32) (string, bool) {
	if index >= c.Radix() {
		return "", false
	}
	if index >= surrogateFirst {
		index += surrogateCount
	}
	return string(rune(index)), true
}

// ListAlphabet is an explicit ordered list of values; a value's digit is
// its position in the list.
type ListAlphabet struct {
	values []string
	index  map[string]uint32
}

// NewListAlphabet builds an alphabet from unique, non-empty values.
func NewListAlphabet(values []string) (*ListAlphabet, error) {
	if len(values) == 0 {
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "alphabet", 0)
	}
	a := &ListAlphabet{
		values: make([]string, len(values)),
		index:  make(map[string]uint32, len(values)),
	}
	for i, v := range values {
		if v == "" {
			return nil, gserrors.Field(gserrors.ErrEmptyCell, "alphabet", i)
		}
		if _, dup := a.index[v]; dup {
			return nil, gserrors.Field(gserrors.ErrDuplicateValue, "alphabet", v)
		}
		a.values[i] = v
		a.index[v] = uint32(i)
	}
	return a, nil
}

func (a *ListAlphabet) Radix() uint32 {
	return uint32(len(a.values))
}

func (a *ListAlphabet) Index(value string) (uint32, bool) {
	i, ok := a.index[value]
	return i, ok
}

func (a *ListAlphabet) Value(index uint32) (string, bool) {
	if int(index) >= len(a.values) {
		return "", false
	}
	return a.values[index], true
}

// Values returns a copy of the ordered list.
func (a *ListAlphabet) Values() []string {
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}
