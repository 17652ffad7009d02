package encode

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// MaxPasswordLength bounds the number of characters one call may produce.
const MaxPasswordLength = 4096

// EncodePassword draws length characters of cs from src without modulo
// bias. Each candidate is the next b bits of src, MSB first, where b is
// the bit length of len(table)-1; candidates not below len(table) are
// rejected. src must be able to supply as many bytes as rejection needs.
func EncodePassword(src io.Reader, cs Charset, length int) (string, error) {
	if length < 1 || length > MaxPasswordLength {
		return "", gserrors.Field(gserrors.ErrInvalidLength, "length", length)
	}
	table, err := cs.Table()
	if err != nil {
		return "", err
	}

	m := uint32(len(table))
	width := bits.Len32(m - 1)
	br := &bitReader{src: src}

	var sb strings.Builder
	for n := 0; n < length; {
		v, err := br.read(width)
		if err != nil {
			return "", fmt.Errorf("reading password entropy: %w", err)
		}
		if v >= m {
			continue
		}
		sb.WriteString(table[v])
		n++
	}
	br.wipe()
	return sb.String(), nil
}

// bitReader yields bits MSB first from an underlying byte stream.
type bitReader struct {
	src  io.Reader
	buf  [1]byte
	left int
}

func (r *bitReader) read(n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		if r.left == 0 {
			if _, err := io.ReadFull(r.src, r.buf[:]); err != nil {
				return 0, err
			}
			r.left = 8
		}
		r.left--
		v = v<<1 | uint32(r.buf[0]>>r.left&1)
	}
	return v, nil
}

func (r *bitReader) wipe() {
	r.buf[0] = 0
	r.left = 0
}
