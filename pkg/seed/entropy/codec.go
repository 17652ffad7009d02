// Package entropy maps a diagram's occupied sequence onto a single integer
// and back.
//
// Each occupied cell contributes two digits, most significant first: its
// rank among the cells not yet used (radix 49-i, a partial-permutation
// Lehmer code) and its alphabet index (radix C). For n cells the numbers
// cover exactly [0, A(49,n)*C^n) where A(49,n) = 49!/(49-n)!.
package entropy

import (
	"sort"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/diagram"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// Capacity returns A(49,n) * radix^n, the number of distinct diagrams with
// n occupied cells.
func Capacity(n int, radix uint32) *Nat {
	c := NewNat(1)
	for i := 0; i < n; i++ {
		c.MulAdd(uint32(diagram.Cells-i), 0)
		c.MulAdd(radix, 0)
	}
	return c
}

// ByteLen returns the fixed serialized length for n cells over radix: the
// minimal number of bytes holding Capacity(n, radix) - 1.
func ByteLen(n int, radix uint32) int {
	c := Capacity(n, radix)
	c.decr()
	return max((c.BitLen()+7)/8, 1)
}

// Bits returns floor(log2(Capacity(n, radix))), the entropy a diagram of n
// cells carries when every placement is equally likely.
func Bits(n int, radix uint32) int {
	return Capacity(n, radix).BitLen() - 1
}

// Encode serializes the occupied sequence, in the given order, to a
// big-endian byte string of ByteLen(len(entries), alpha.Radix()) bytes.
func Encode(entries []diagram.Entry, alpha Alphabet) ([]byte, error) {
	n := len(entries)
	if n == 0 {
		return nil, gserrors.ErrEmptyDiagram
	}
	if n > diagram.Cells {
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "cells", n)
	}
	radix := alpha.Radix()

	pool := make([]int, diagram.Cells)
	for i := range pool {
		pool[i] = i
	}

	num := NewNat(0)
	defer num.Zero()

	for i, e := range entries {
		if !e.Pos.Valid() {
			return nil, gserrors.Field(gserrors.ErrPositionOutOfRange, "position", e.Pos)
		}
		p := e.Pos.Index()
		rank := sort.SearchInts(pool, p)
		if rank == len(pool) || pool[rank] != p {
			return nil, gserrors.Field(gserrors.ErrDuplicatePosition, "position", e.Pos)
		}
		pool = append(pool[:rank], pool[rank+1:]...)

		v, ok := alpha.Index(e.Value)
		if !ok || v >= radix {
			return nil, gserrors.Field(gserrors.ErrValueNotInAlphabet, "value", e.Value)
		}

		num.MulAdd(uint32(diagram.Cells-i), uint32(rank))
		num.MulAdd(radix, v)
	}

	return num.FillBytes(make([]byte, ByteLen(n, radix))), nil
}

// EncodeDiagram encodes d's occupied sequence.
func EncodeDiagram(d diagram.Diagram, alpha Alphabet) ([]byte, error) {
	return Encode(d.Entries(), alpha)
}

// Decode reverses Encode for a diagram of n occupied cells.
func Decode(data []byte, n int, alpha Alphabet) ([]diagram.Entry, error) {
	if n < 1 || n > diagram.Cells {
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "cells", n)
	}
	radix := alpha.Radix()
	if want := ByteLen(n, radix); len(data) != want {
		return nil, gserrors.Field(gserrors.ErrEntropyLength, "bytes", len(data))
	}

	num := NewNat(0).SetBytes(data)
	defer num.Zero()
	if num.Cmp(Capacity(n, radix)) >= 0 {
		return nil, gserrors.Field(gserrors.ErrEntropyRange, "bits", num.BitLen())
	}

	ranks := make([]uint32, n)
	values := make([]uint32, n)
	for i := n - 1; i >= 0; i-- {
		values[i] = num.DivMod(radix)
		ranks[i] = num.DivMod(uint32(diagram.Cells - i))
	}

	pool := make([]int, diagram.Cells)
	for i := range pool {
		pool[i] = i
	}

	entries := make([]diagram.Entry, n)
	for i := 0; i < n; i++ {
		r := int(ranks[i])
		p := pool[r]
		pool = append(pool[:r], pool[r+1:]...)

		v, ok := alpha.Value(values[i])
		if !ok {
			return nil, gserrors.Field(gserrors.ErrValueNotInAlphabet, "index", values[i])
		}
		entries[i] = diagram.Entry{Pos: diagram.PositionAt(p), Value: v}
	}
	return entries, nil
}
