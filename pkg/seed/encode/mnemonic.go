// Package encode renders raw entropy as the artifacts users handle:
// BIP39 mnemonics, WIF private keys and charset passwords.
package encode

import (
	"crypto/sha512"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

const (
	bitsPerWord     = 11
	seedIterations  = 2048
	seedSize        = 64
	mnemonicSaltTag = "mnemonic"
)

// MnemonicEntropySizes lists the accepted entropy lengths in bytes.
var MnemonicEntropySizes = []int{16, 20, 24, 28, 32}

// WordCountForEntropy maps an entropy length to its word count.
func WordCountForEntropy(size int) (int, bool) {
	for _, s := range MnemonicEntropySizes {
		if s == size {
			return size * 3 / 4, true
		}
	}
	return 0, false
}

// EntropyForWordCount maps a word count to its entropy length.
func EntropyForWordCount(words int) (int, bool) {
	size := words * 4 / 3
	if words%3 != 0 {
		return 0, false
	}
	if n, ok := WordCountForEntropy(size); ok && n == words {
		return size, true
	}
	return 0, false
}

// Mnemonic is a BIP39 sentence with its language.
type Mnemonic struct {
	Language Language
	Words    []string
}

// EncodeMnemonic converts 16/20/24/28/32 bytes of entropy to a 12/15/18/21/24
// word sentence.
func EncodeMnemonic(entropy []byte, lang Language) (*Mnemonic, error) {
	words, ok := WordCountForEntropy(len(entropy))
	if !ok {
		return nil, gserrors.Field(gserrors.ErrEntropyLength, "entropy", len(entropy))
	}
	list, err := lang.Wordlist()
	if err != nil {
		return nil, err
	}

	// entropy || first checksum byte; only len/4 bits of it are read.
	buf := make([]byte, len(entropy)+1)
	copy(buf, entropy)
	buf[len(entropy)] = checksum.Sum(entropy, checksum.SHA256)[0]
	defer utils.Wipe(buf)

	m := &Mnemonic{Language: lang, Words: make([]string, words)}
	for i := 0; i < words; i++ {
		m.Words[i] = list[readBits(buf, i*bitsPerWord, bitsPerWord)]
	}
	return m, nil
}

// ParseMnemonic parses a sentence in any supported language. The language
// is the single one that contains every word and validates the checksum.
func ParseMnemonic(sentence string) (*Mnemonic, error) {
	words := splitWords(sentence)
	if _, ok := EntropyForWordCount(len(words)); !ok {
		return nil, gserrors.Field(gserrors.ErrInvalidMnemonic, "words", len(words))
	}

	var found []*Mnemonic
	known := false
	for _, lang := range Languages {
		m, err := parseIn(words, lang)
		switch {
		case err == nil:
			found = append(found, m)
			known = true
		case errors.Is(err, gserrors.ErrChecksumMismatch):
			known = true
		}
	}

	switch {
	case len(found) == 1:
		return found[0], nil
	case len(found) == 2 && found[0].Language == ChineseSimplified && found[1].Language == ChineseTraditional:
		// Shared characters sit at the same index in both Chinese lists.
		return found[0], nil
	case len(found) > 1:
		names := make([]string, len(found))
		for i, m := range found {
			names[i] = m.Language.String()
		}
		return nil, gserrors.Field(gserrors.ErrAmbiguousWords, "languages", strings.Join(names, ","))
	case known:
		return nil, gserrors.Field(gserrors.ErrChecksumMismatch, "mnemonic", len(words))
	default:
		return nil, gserrors.Field(gserrors.ErrUnknownWord, "mnemonic", len(words))
	}
}

// ParseMnemonicIn parses a sentence in a known language.
func ParseMnemonicIn(sentence string, lang Language) (*Mnemonic, error) {
	words := splitWords(sentence)
	if _, ok := EntropyForWordCount(len(words)); !ok {
		return nil, gserrors.Field(gserrors.ErrInvalidMnemonic, "words", len(words))
	}
	return parseIn(words, lang)
}

func parseIn(words []string, lang Language) (*Mnemonic, error) {
	list, err := lang.Wordlist()
	if err != nil {
		return nil, err
	}
	m := &Mnemonic{Language: lang, Words: make([]string, len(words))}
	for i, w := range words {
		idx, ok := lang.IndexOf(w)
		if !ok {
			return nil, gserrors.Field(gserrors.ErrUnknownWord, "word", w)
		}
		m.Words[i] = list[idx]
	}
	if _, err := m.Entropy(); err != nil {
		return nil, err
	}
	return m, nil
}

// Indices returns the wordlist index of each word.
func (m *Mnemonic) Indices() ([]int, error) {
	out := make([]int, len(m.Words))
	for i, w := range m.Words {
		idx, ok := m.Language.IndexOf(w)
		if !ok {
			return nil, gserrors.Field(gserrors.ErrUnknownWord, "word", w)
		}
		out[i] = idx
	}
	return out, nil
}

// Entropy recovers the entropy bytes and verifies the checksum bits.
func (m *Mnemonic) Entropy() ([]byte, error) {
	size, ok := EntropyForWordCount(len(m.Words))
	if !ok {
		return nil, gserrors.Field(gserrors.ErrInvalidMnemonic, "words", len(m.Words))
	}
	indices, err := m.Indices()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size+1)
	for i, idx := range indices {
		writeBits(buf, i*bitsPerWord, bitsPerWord, uint32(idx))
	}

	entropy := buf[:size]
	csBits := size / 4
	mask := byte(0xFF << (8 - csBits))
	want := checksum.Sum(entropy, checksum.SHA256)[0] & mask
	if buf[size]&mask != want {
		utils.Wipe(buf)
		return nil, gserrors.Field(gserrors.ErrChecksumMismatch, "mnemonic", m.Language.String())
	}
	buf[size] = 0
	return entropy, nil
}

// String joins the words with single spaces.
func (m *Mnemonic) String() string {
	return strings.Join(m.Words, " ")
}

// Seed computes the BIP39 seed:
// PBKDF2-HMAC-SHA512(NFKD(sentence), "mnemonic"+NFKD(passphrase), 2048).
func (m *Mnemonic) Seed(passphrase string) []byte {
	password := []byte(norm.NFKD.String(m.String()))
	salt := []byte(mnemonicSaltTag + norm.NFKD.String(passphrase))
	defer utils.Wipe(password, salt)
	return pbkdf2.Key(password, salt, seedIterations, seedSize, sha512.New)
}

// Master derives the BIP32 master key of the BIP39 seed.
func (m *Mnemonic) Master(passphrase string, net hdkey.Network) (*hdkey.ExtendedKey, error) {
	seed := m.Seed(passphrase)
	defer utils.Wipe(seed)
	return hdkey.MasterFromSeed(seed, net)
}

func splitWords(sentence string) []string {
	return strings.FieldsFunc(sentence, unicode.IsSpace)
}

// readBits returns n bits (n <= 24) of buf starting at bit offset, MSB first.
func readBits(buf []byte, offset, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		bit := offset + i
		v = v<<1 | uint32(buf[bit/8]>>(7-bit%8)&1)
	}
	return v
}

func writeBits(buf []byte, offset, n int, v uint32) {
	for i := 0; i < n; i++ {
		bit := offset + i
		if v>>(n-1-i)&1 == 1 {
			buf[bit/8] |= 1 << (7 - bit%8)
		}
	}
}
