package hdkey

import (
	"fmt"
	"strings"
)

// Fixed values shared with every BIP32 implementation.

// ============================================================================
// Derivation
// ============================================================================

const (
	HardenedOffset = 0x80000000 // first hardened child index (2^31)
	MaxDepth       = 255

	KeySize        = 32
	ChainCodeSize  = 32
	SerializedSize = 78 // version(4) depth(1) fingerprint(4) index(4) chain(32) 0x00 key(32)
)

// masterHMACKey is the domain separation key for master key generation.
var masterHMACKey = []byte("Bitcoin seed")

// ============================================================================
// Networks
// ============================================================================

// Network selects version bytes for serialized keys.
type Network int

const (
	Mainnet Network = iota
	Testnet
)

var (
	mainnetPrivate = [4]byte{0x04, 0x88, 0xAD, 0xE4} // xprv
	testnetPrivate = [4]byte{0x04, 0x35, 0x83, 0x94} // tprv
)

const (
	mainnetWIF = 0x80
	testnetWIF = 0xEF

	mainnetPubKeyHash = 0x00
	testnetPubKeyHash = 0x6F
	mainnetScriptHash = 0x05
	testnetScriptHash = 0xC4
)

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// ParseNetwork parses "mainnet" or "testnet".
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet", "main", "bitcoin":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	default:
		return Mainnet, fmt.Errorf("unknown network: %s", s)
	}
}

// PrivateVersion returns the extended private key version bytes.
func (n Network) PrivateVersion() [4]byte {
	if n == Testnet {
		return testnetPrivate
	}
	return mainnetPrivate
}

// WIFVersion returns the WIF version byte.
func (n Network) WIFVersion() byte {
	if n == Testnet {
		return testnetWIF
	}
	return mainnetWIF
}

// PubKeyHashVersion returns the P2PKH address version byte.
func (n Network) PubKeyHashVersion() byte {
	if n == Testnet {
		return testnetPubKeyHash
	}
	return mainnetPubKeyHash
}

// ScriptHashVersion returns the P2SH address version byte.
func (n Network) ScriptHashVersion() byte {
	if n == Testnet {
		return testnetScriptHash
	}
	return mainnetScriptHash
}

// NetworkForWIF maps a WIF version byte back to its network.
func NetworkForWIF(version byte) (Network, bool) {
	switch version {
	case mainnetWIF:
		return Mainnet, true
	case testnetWIF:
		return Testnet, true
	default:
		return Mainnet, false
	}
}

func networkForVersion(version [4]byte) (Network, bool) {
	switch version {
	case mainnetPrivate:
		return Mainnet, true
	case testnetPrivate:
		return Testnet, true
	default:
		return Mainnet, false
	}
}
