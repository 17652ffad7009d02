package bip85

// Path segments. Every segment is used hardened.
const (
	// PurposeBIP85 is the first segment of every derivation path.
	PurposeBIP85 uint32 = 83696968

	AppWIF      uint32 = 2
	AppXPRV     uint32 = 32
	AppMnemonic uint32 = 39
	AppPassword uint32 = 707764
)

const (
	// BlockSize is the number of bytes produced per stream block.
	BlockSize = 64

	// MaxIndex is the largest index that can still be hardened.
	MaxIndex uint32 = 1<<31 - 1

	// MnemonicListWords is the path word count shared by MnemonicList.
	MnemonicListWords = 24
)

var entropyHMACKey = []byte("bip-entropy-from-k")

// MnemonicListCounts lists the sentence lengths MnemonicList returns,
// longest first.
var MnemonicListCounts = []int{24, 21, 18, 15, 12}
