// Package bip38 protects a WIF private key with a passphrase following
// BIP38 (non EC-multiply mode).
package bip38

import (
	"crypto/aes"
	"strings"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 8
	derivedSize  = 64
	saltSize     = 4
	payloadSize  = 39 // prefix(2) flag(1) salt(4) encrypted halves(32)
	encodedSize  = 58
	encodedMark  = "6P"
	flagBase     = 0xC0
	flagCompress = 0x20
)

var (
	prefixNonEC = [2]byte{0x01, 0x42}
	prefixEC    = [2]byte{0x01, 0x43}
)

// Encrypt encrypts wif with passphrase. The passphrase is NFC normalized.
func Encrypt(wif, passphrase string) (string, error) {
	w, err := encode.DecodeWIF(wif)
	if err != nil {
		return "", err
	}
	defer w.Zero()

	salt := addressHash(w)
	derived, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	defer utils.Wipe(derived)

	half := utils.XOREncode(w.Key[:], derived[:hdkey.KeySize])
	defer utils.Wipe(half)

	block, err := aes.NewCipher(derived[hdkey.KeySize:])
	if err != nil {
		return "", err
	}

	payload := make([]byte, payloadSize)
	copy(payload, prefixNonEC[:])
	payload[2] = flagBase
	if w.Compressed {
		payload[2] |= flagCompress
	}
	copy(payload[3:], salt)
	block.Encrypt(payload[7:23], half[:aes.BlockSize])
	block.Encrypt(payload[23:39], half[aes.BlockSize:])

	return checksum.CheckEncode(payload), nil
}

// Decrypt recovers the WIF key of an encrypted key. A wrong passphrase is
// reported as gserrors.ErrWrongPassphrase.
func Decrypt(encrypted, passphrase string) (string, error) {
	if len(encrypted) != encodedSize || !strings.HasPrefix(encrypted, encodedMark) {
		return "", gserrors.Field(gserrors.ErrInvalidKey, "bip38", encrypted)
	}
	payload, err := checksum.CheckDecode(encrypted)
	if err != nil {
		return "", err
	}
	if len(payload) != payloadSize {
		return "", gserrors.Field(gserrors.ErrInvalidLength, "bip38", len(payload))
	}
	switch [2]byte{payload[0], payload[1]} {
	case prefixNonEC:
	case prefixEC:
		return "", gserrors.Field(gserrors.ErrInvalidVersion, "mode", "ec-multiply")
	default:
		return "", gserrors.Field(gserrors.ErrInvalidVersion, "prefix", payload[:2])
	}

	salt := payload[3:7]
	derived, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	defer utils.Wipe(derived)

	block, err := aes.NewCipher(derived[hdkey.KeySize:])
	if err != nil {
		return "", err
	}
	half := make([]byte, hdkey.KeySize)
	block.Decrypt(half[:aes.BlockSize], payload[7:23])
	block.Decrypt(half[aes.BlockSize:], payload[23:39])
	key := utils.XORDecode(half, derived[:hdkey.KeySize])
	utils.Wipe(half)
	defer utils.Wipe(key)

	if !hdkey.ValidKey(key) {
		return "", gserrors.ErrWrongPassphrase
	}

	w := &encode.WIF{Compressed: payload[2]&flagCompress != 0}
	copy(w.Key[:], key)
	defer w.Zero()

	// The salt is the address hash; it also tells the network.
	for _, net := range []hdkey.Network{hdkey.Mainnet, hdkey.Testnet} {
		w.Network = net
		if checksum.Verify([]byte(address(w)), salt) {
			return w.String(), nil
		}
	}
	return "", gserrors.ErrWrongPassphrase
}

func address(w *encode.WIF) string {
	return encode.PayToPubKeyHash(w.PublicKey(), w.Network)
}

func addressHash(w *encode.WIF) []byte {
	return checksum.Sum([]byte(address(w)), checksum.DoubleSHA256)[:saltSize]
}

func deriveKey(passphrase string, salt []byte) ([]byte, error) {
	pass := []byte(norm.NFC.String(passphrase))
	defer utils.Wipe(pass)
	return scrypt.Key(pass, salt, scryptN, scryptR, scryptP, derivedSize)
}
