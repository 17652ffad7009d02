package bip85

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"io"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// Stream is the deterministic entropy of one derived key. Block 0 is
// HMAC-SHA512("bip-entropy-from-k", k); block i > 0 is
// HMAC-SHA512("bip-entropy-from-k", k || be32(i)). Blocks are produced on
// demand and read in counter order.
type Stream struct {
	key     [hdkey.KeySize]byte
	block   []byte
	pos     int
	counter uint64
	closed  bool
}

// NewStream returns the stream of the private key k.
func NewStream(k *hdkey.ExtendedKey) *Stream {
	s := &Stream{}
	copy(s.key[:], k.Key[:])
	return s
}

func (s *Stream) next() error {
	if s.counter > 0xFFFFFFFF {
		return io.EOF
	}
	msg := make([]byte, hdkey.KeySize, hdkey.KeySize+4)
	copy(msg, s.key[:])
	if s.counter > 0 {
		msg = binary.BigEndian.AppendUint32(msg, uint32(s.counter))
	}
	defer utils.Wipe(msg)

	mac := hmac.New(sha512.New, entropyHMACKey)
	mac.Write(msg)
	utils.Wipe(s.block)
	s.block = mac.Sum(s.block[:0])
	s.pos = 0
	s.counter++
	return nil
}

// Read fills p with the next len(p) bytes of the stream.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	n := 0
	for n < len(p) {
		if s.pos == len(s.block) {
			if err := s.next(); err != nil {
				return n, err
			}
		}
		c := copy(p[n:], s.block[s.pos:])
		s.pos += c
		n += c
	}
	return n, nil
}

// Bytes reads the next n bytes. On a fresh stream these are the first n.
func (s *Stream) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "bytes", n)
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(s, out); err != nil {
		utils.Wipe(out)
		return nil, err
	}
	return out, nil
}

// Blocks reports how many blocks have been generated so far.
func (s *Stream) Blocks() int {
	return int(s.counter)
}

// Close wipes the key and the buffered block.
func (s *Stream) Close() error {
	clear(s.key[:])
	utils.Wipe(s.block)
	s.block = nil
	s.pos = 0
	s.closed = true
	return nil
}
