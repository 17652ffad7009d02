// Package hdkey implements BIP32 master key generation and hardened child
// key derivation over secp256k1.
//
// Only private, hardened derivation exists here. When a derived scalar is
// zero or not below the curve order the derivation is retried following
// SLIP-0010, so callers never see invalid key material.
package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// ExtendedKey is a private key with its chain code and position in the tree.
type ExtendedKey struct {
	Version    [4]byte
	Depth      uint8
	ParentFP   [4]byte
	ChildIndex uint32
	ChainCode  [ChainCodeSize]byte
	Key        [KeySize]byte
}

// NewMaster derives the master key from diagram entropy and a passphrase:
// HMAC-SHA512("Bitcoin seed", entropy || passphrase).
func NewMaster(entropy, passphrase []byte, net Network) (*ExtendedKey, error) {
	if len(entropy) == 0 {
		return nil, gserrors.Field(gserrors.ErrEntropyLength, "entropy", 0)
	}
	msg := make([]byte, 0, len(entropy)+len(passphrase))
	msg = append(msg, entropy...)
	msg = append(msg, passphrase...)
	defer utils.Wipe(msg)

	return MasterFromSeed(msg, net)
}

// MasterFromSeed derives the master key from a raw seed.
func MasterFromSeed(seed []byte, net Network) (*ExtendedKey, error) {
	if len(seed) == 0 {
		return nil, gserrors.Field(gserrors.ErrEntropyLength, "seed", 0)
	}

	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed)
	sum := mac.Sum(nil)
	defer func() { utils.Wipe(sum) }()

	for !ValidKey(sum[:KeySize]) {
		// Retry with the rejected output as the new message.
		mac.Reset()
		mac.Write(sum)
		next := mac.Sum(nil)
		utils.Wipe(sum)
		sum = next
	}

	master := &ExtendedKey{Version: net.PrivateVersion()}
	copy(master.Key[:], sum[:KeySize])
	copy(master.ChainCode[:], sum[KeySize:])
	return master, nil
}

// Child derives the hardened child at index.
func (k *ExtendedKey) Child(index uint32) (*ExtendedKey, error) {
	if !IsHardened(index) {
		return nil, gserrors.Field(gserrors.ErrNotHardened, "index", index)
	}
	if k.Depth == MaxDepth {
		return nil, gserrors.Field(gserrors.ErrInvalidPath, "depth", int(k.Depth)+1)
	}

	var parent secp256k1.ModNScalar
	if overflow := parent.SetByteSlice(k.Key[:]); overflow || parent.IsZero() {
		parent.Zero()
		return nil, gserrors.Field(gserrors.ErrInvalidKey, "depth", k.Depth)
	}
	defer parent.Zero()

	fp := k.Fingerprint()

	// 0x00 || key || ser32(index)
	data := make([]byte, 1+KeySize+4)
	copy(data[1:], k.Key[:])
	binary.BigEndian.PutUint32(data[1+KeySize:], index)
	defer utils.Wipe(data)

	mac := hmac.New(sha512.New, k.ChainCode[:])
	for {
		mac.Reset()
		mac.Write(data)
		sum := mac.Sum(nil)

		var child secp256k1.ModNScalar
		overflow := child.SetByteSlice(sum[:KeySize])
		if !overflow {
			child.Add(&parent)
			if !child.IsZero() {
				out := &ExtendedKey{
					Version:    k.Version,
					Depth:      k.Depth + 1,
					ParentFP:   fp,
					ChildIndex: index,
				}
				child.PutBytes(&out.Key)
				copy(out.ChainCode[:], sum[KeySize:])
				child.Zero()
				utils.Wipe(sum)
				return out, nil
			}
		}
		child.Zero()

		// SLIP-0010 retry: 0x01 || IR || ser32(index)
		data[0] = 0x01
		copy(data[1:1+KeySize], sum[KeySize:])
		utils.Wipe(sum)
	}
}

// DerivePath derives every segment of p in order.
func (k *ExtendedKey) DerivePath(p Path) (*ExtendedKey, error) {
	current := k.Clone()
	for _, index := range p {
		next, err := current.Child(index)
		current.Zero()
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// PublicKey returns the 33-byte compressed public key.
func (k *ExtendedKey) PublicKey() []byte {
	priv, pub := btcec.PrivKeyFromBytes(k.Key[:])
	defer priv.Zero()
	return pub.SerializeCompressed()
}

// Fingerprint returns the first 4 bytes of HASH160 of the public key.
func (k *ExtendedKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], checksum.Sum(k.PublicKey(), checksum.Hash160))
	return fp
}

// Network reports the network encoded in the version bytes.
func (k *ExtendedKey) Network() (Network, bool) {
	return networkForVersion(k.Version)
}

// Clone returns an independent copy of k.
func (k *ExtendedKey) Clone() *ExtendedKey {
	c := *k
	return &c
}

// ValidKey reports whether b is a usable private key: 0 < b < n.
func ValidKey(b []byte) bool {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	valid := !overflow && !s.IsZero()
	s.Zero()
	return valid
}

// Zero wipes the private key and chain code.
func (k *ExtendedKey) Zero() {
	clear(k.Key[:])
	clear(k.ChainCode[:])
}
