package entropy

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatAgainstBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	z := NewNat(0)
	ref := new(big.Int)

	for step := 0; step < 200; step++ {
		m := uint32(rng.Int63n(1 << 32))
		a := uint32(rng.Int63n(1 << 32))
		if m == 0 {
			m = 1
		}
		z.MulAdd(m, a)
		ref.Mul(ref, new(big.Int).SetUint64(uint64(m)))
		ref.Add(ref, new(big.Int).SetUint64(uint64(a)))

		require.Equal(t, ref.BitLen(), z.BitLen(), "step %d", step)
		size := (ref.BitLen() + 7) / 8
		require.Equal(t, ref.FillBytes(make([]byte, size)), z.FillBytes(make([]byte, size)))
	}

	for step := 0; step < 200 && !z.IsZero(); step++ {
		d := uint32(rng.Int63n(1<<32-2)) + 2
		rem := z.DivMod(d)
		q, r := new(big.Int).QuoRem(ref, new(big.Int).SetUint64(uint64(d)), new(big.Int))
		ref = q
		require.Equal(t, r.Uint64(), uint64(rem))
		require.Equal(t, ref.BitLen(), z.BitLen())
	}
}

func TestNatBytes(t *testing.T) {
	z := NewNat(0).SetBytes([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	assert.Equal(t, 33, z.BitLen())
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, z.FillBytes(make([]byte, 7)))
	assert.Panics(t, func() { z.FillBytes(make([]byte, 4)) })

	assert.True(t, NewNat(0).SetBytes([]byte{0, 0, 0}).IsZero())
	assert.Equal(t, 0, NewNat(5).Cmp(NewNat(0).SetBytes([]byte{5})))
	assert.Equal(t, 1, NewNat(0).SetBytes([]byte{1, 0, 0, 0, 0}).Cmp(NewNat(0xFFFFFFFF)))
}

func TestNatDecrBorrows(t *testing.T) {
	z := NewNat(0).SetBytes([]byte{0x01, 0x00, 0x00, 0x00, 0x00})
	z.decr()
	assert.Equal(t, 0, z.Cmp(NewNat(0xFFFFFFFF)))
}

func TestNatZeroWipes(t *testing.T) {
	z := NewNat(0).SetBytes([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE})
	digits := z.d[:cap(z.d)]
	z.Zero()
	assert.True(t, z.IsZero())
	for _, d := range digits {
		assert.Zero(t, d)
	}
}
