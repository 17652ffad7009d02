// Package checksum provides the hash-based checksums used by the key
// serialization formats.
//
// Check-encoded strings are base58(payload || first 4 bytes of
// SHA256(SHA256(payload))).
package checksum

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// Algorithm represents supported checksum algorithms
type Algorithm int

const (
	DoubleSHA256 Algorithm = iota
	SHA256
	Hash160
)

// Size of the checksum appended by CheckEncode.
const Size = 4

func (a Algorithm) String() string {
	switch a {
	case DoubleSHA256:
		return "sha256d"
	case SHA256:
		return "sha256"
	case Hash160:
		return "hash160"
	default:
		return "unknown"
	}
}

// Sum calculates the full digest of data.
func Sum(data []byte, algorithm Algorithm) []byte {
	switch algorithm {
	case SHA256:
		return chainhash.HashB(data)
	case Hash160:
		return btcutil.Hash160(data)
	default:
		return chainhash.DoubleHashB(data)
	}
}

// CheckEncode base58check-encodes payload. The first payload byte is
// the leading version byte; payload must not be empty.
func CheckEncode(payload []byte) string {
	return base58.CheckEncode(payload[1:], payload[0])
}

// CheckDecode decodes a check-encoded string and verifies its checksum.
// The returned payload includes the version byte and excludes the checksum.
func CheckDecode(s string) ([]byte, error) {
	body, version, err := base58.CheckDecode(s)
	switch {
	case errors.Is(err, base58.ErrInvalidFormat):
		return nil, gserrors.Field(gserrors.ErrChecksumMismatch, "format", err.Error())
	case errors.Is(err, base58.ErrChecksum):
		return nil, gserrors.Field(gserrors.ErrChecksumMismatch, "checksum", err.Error())
	case err != nil:
		return nil, err
	}

	payload := make([]byte, 0, 1+len(body))
	payload = append(payload, version)
	payload = append(payload, body...)
	clear(body)
	return payload, nil
}

// Verify reports whether sum is the leading bytes of payload's
// double-SHA256.
func Verify(payload, sum []byte) bool {
	if len(sum) == 0 || len(sum) > chainhash.HashSize {
		return false
	}
	return bytes.Equal(Sum(payload, DoubleSHA256)[:len(sum)], sum)
}
