package encode

import (
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// compressedMarker follows the key when the public key is compressed.
const compressedMarker = 0x01

// WIF is a decoded Wallet Import Format private key.
type WIF struct {
	Network    hdkey.Network
	Key        [hdkey.KeySize]byte
	Compressed bool
}

// EncodeWIF serializes key as version || key || [0x01], base58check encoded.
func EncodeWIF(key []byte, net hdkey.Network, compressed bool) (string, error) {
	if len(key) != hdkey.KeySize {
		return "", gserrors.Field(gserrors.ErrInvalidKey, "length", len(key))
	}
	payload := make([]byte, 0, 1+hdkey.KeySize+1)
	payload = append(payload, net.WIFVersion())
	payload = append(payload, key...)
	if compressed {
		payload = append(payload, compressedMarker)
	}
	defer utils.Wipe(payload)
	return checksum.CheckEncode(payload), nil
}

// String re-encodes w.
func (w *WIF) String() string {
	s, _ := EncodeWIF(w.Key[:], w.Network, w.Compressed)
	return s
}

// DecodeWIF parses a WIF string and verifies its checksum.
func DecodeWIF(s string) (*WIF, error) {
	payload, err := checksum.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(payload)

	w := &WIF{}
	switch len(payload) {
	case 1 + hdkey.KeySize:
	case 1 + hdkey.KeySize + 1:
		if payload[len(payload)-1] != compressedMarker {
			return nil, gserrors.Field(gserrors.ErrInvalidKey, "marker", payload[len(payload)-1])
		}
		w.Compressed = true
	default:
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "wif", len(payload))
	}

	net, ok := hdkey.NetworkForWIF(payload[0])
	if !ok {
		return nil, gserrors.Field(gserrors.ErrInvalidVersion, "version", payload[0])
	}
	w.Network = net
	copy(w.Key[:], payload[1:1+hdkey.KeySize])
	return w, nil
}

// Zero wipes the private key.
func (w *WIF) Zero() {
	clear(w.Key[:])
}
