package hdkey

import (
	"encoding/binary"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// Pack serializes the key to its 78-byte BIP32 layout.
func (k *ExtendedKey) Pack() []byte {
	buf := make([]byte, SerializedSize)

	copy(buf[0:4], k.Version[:])
	buf[4] = k.Depth
	copy(buf[5:9], k.ParentFP[:])
	binary.BigEndian.PutUint32(buf[9:13], k.ChildIndex)
	copy(buf[13:45], k.ChainCode[:])
	buf[45] = 0x00
	copy(buf[46:78], k.Key[:])

	return buf
}

// Unpack deserializes a 78-byte BIP32 private key.
func (k *ExtendedKey) Unpack(data []byte) error {
	if len(data) != SerializedSize {
		return gserrors.Field(gserrors.ErrInvalidLength, "extended key", len(data))
	}

	var version [4]byte
	copy(version[:], data[0:4])
	if _, ok := networkForVersion(version); !ok {
		return gserrors.Field(gserrors.ErrInvalidVersion, "version", version)
	}
	if data[45] != 0x00 {
		return gserrors.Field(gserrors.ErrInvalidKey, "prefix", data[45])
	}

	if !ValidKey(data[46:78]) {
		return gserrors.Field(gserrors.ErrInvalidKey, "key", "out of range")
	}

	depth := data[4]
	index := binary.BigEndian.Uint32(data[9:13])
	var fp [4]byte
	copy(fp[:], data[5:9])
	if depth == 0 && (fp != [4]byte{} || index != 0) {
		return gserrors.Field(gserrors.ErrInvalidKey, "depth", depth)
	}

	k.Version = version
	k.Depth = depth
	k.ParentFP = fp
	k.ChildIndex = index
	copy(k.ChainCode[:], data[13:45])
	copy(k.Key[:], data[46:78])
	return nil
}

// String returns the base58check serialization (xprv.../tprv...).
func (k *ExtendedKey) String() string {
	raw := k.Pack()
	defer utils.Wipe(raw)
	return checksum.CheckEncode(raw)
}

// ParseExtendedKey decodes a base58check extended private key.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	raw, err := checksum.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(raw)

	k := &ExtendedKey{}
	if err := k.Unpack(raw); err != nil {
		return nil, err
	}
	return k, nil
}
