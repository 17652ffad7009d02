package encode

import (
	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
)

// witnessV0KeyHash is the OP_0 OP_PUSH20 prefix of a P2WPKH script.
var witnessV0KeyHash = []byte{0x00, 0x14}

// PublicKey returns the public key of w, compressed or not as w says.
func (w *WIF) PublicKey() []byte {
	priv, pub := btcec.PrivKeyFromBytes(w.Key[:])
	defer priv.Zero()
	if w.Compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

// PayToPubKeyHash returns the legacy base58 address of pub.
func PayToPubKeyHash(pub []byte, net hdkey.Network) string {
	payload := append([]byte{net.PubKeyHashVersion()}, checksum.Sum(pub, checksum.Hash160)...)
	return checksum.CheckEncode(payload)
}

// NestedWitnessPubKeyHash returns the P2SH-wrapped P2WPKH address of a
// compressed pub.
func NestedWitnessPubKeyHash(pub []byte, net hdkey.Network) string {
	script := append(append([]byte{}, witnessV0KeyHash...), checksum.Sum(pub, checksum.Hash160)...)
	payload := append([]byte{net.ScriptHashVersion()}, checksum.Sum(script, checksum.Hash160)...)
	return checksum.CheckEncode(payload)
}
