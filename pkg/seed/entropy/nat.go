package entropy

// Nat is an unsigned arbitrary-precision integer stored as little-endian
// base 2^32 digits. It only supports the operations the mixed-radix codec
// needs: multiply-add and division by radices that fit in 32 bits.
type Nat struct {
	d []uint32
}

// NewNat returns a Nat holding v.
func NewNat(v uint32) *Nat {
	z := &Nat{}
	if v != 0 {
		z.d = []uint32{v}
	}
	return z
}

// MulAdd sets z = z*m + a.
func (z *Nat) MulAdd(m, a uint32) *Nat {
	carry := uint64(a)
	for i, x := range z.d {
		t := uint64(x)*uint64(m) + carry
		z.d[i] = uint32(t)
		carry = t >> 32
	}
	if carry != 0 {
		z.d = append(z.d, uint32(carry))
	}
	z.norm()
	return z
}

// DivMod sets z = z / d and returns z mod d. d must be non-zero.
func (z *Nat) DivMod(d uint32) uint32 {
	if d == 0 {
		panic("entropy: division by zero")
	}
	var rem uint64
	for i := len(z.d) - 1; i >= 0; i-- {
		cur := rem<<32 | uint64(z.d[i])
		z.d[i] = uint32(cur / uint64(d))
		rem = cur % uint64(d)
	}
	z.norm()
	return uint32(rem)
}

// IsZero reports whether z == 0.
func (z *Nat) IsZero() bool {
	return len(z.d) == 0
}

// BitLen returns the length of z in bits; 0 for zero.
func (z *Nat) BitLen() int {
	if len(z.d) == 0 {
		return 0
	}
	top := z.d[len(z.d)-1]
	n := 0
	for top != 0 {
		top >>= 1
		n++
	}
	return (len(z.d)-1)*32 + n
}

// Cmp returns -1, 0 or +1 as z is less than, equal to or greater than x.
func (z *Nat) Cmp(x *Nat) int {
	if len(z.d) != len(x.d) {
		if len(z.d) < len(x.d) {
			return -1
		}
		return 1
	}
	for i := len(z.d) - 1; i >= 0; i-- {
		switch {
		case z.d[i] < x.d[i]:
			return -1
		case z.d[i] > x.d[i]:
			return 1
		}
	}
	return 0
}

// SetBytes interprets buf as a big-endian unsigned integer.
func (z *Nat) SetBytes(buf []byte) *Nat {
	z.d = z.d[:0]
	for i := len(buf); i > 0; i -= 4 {
		var w uint32
		for j := max(i-4, 0); j < i; j++ {
			w = w<<8 | uint32(buf[j])
		}
		z.d = append(z.d, w)
	}
	z.norm()
	return z
}

// FillBytes writes z big-endian into buf, zero-padding on the left, and
// returns buf. It panics if z does not fit.
func (z *Nat) FillBytes(buf []byte) []byte {
	clear(buf)
	for i, w := range z.d {
		for k := 0; k < 4; k++ {
			b := byte(w >> (8 * k))
			pos := len(buf) - 1 - (i*4 + k)
			if pos < 0 {
				if b != 0 {
					panic("entropy: buffer too small")
				}
				continue
			}
			buf[pos] = b
		}
	}
	return buf
}

// Zero wipes the digits of z and sets it to 0.
func (z *Nat) Zero() {
	clear(z.d[:cap(z.d)])
	z.d = z.d[:0]
}

func (z *Nat) decr() {
	for i := range z.d {
		z.d[i]--
		if z.d[i] != 0xFFFFFFFF {
			break
		}
	}
	z.norm()
}

func (z *Nat) norm() {
	n := len(z.d)
	for n > 0 && z.d[n-1] == 0 {
		n--
	}
	z.d = z.d[:n]
}
