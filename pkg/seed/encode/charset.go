package encode

import (
	"strings"
	"sync"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// CharsetVersion identifies the ordering of every table below. Any change
// to a table changes every password generated from it and must bump this.
const CharsetVersion = 1

// Charset is a named, ordered password alphabet.
type Charset int

const (
	Legacy   Charset = iota // BIP85 base64 alphabet
	Distinct                // no look-alike characters
	Emoji                   // 64 single code point emoji
	Mixture                 // Distinct followed by Emoji
	Unicode                 // CJK Unified Ideographs U+4E00..U+9FFF
)

// Charsets lists every supported charset.
var Charsets = []Charset{Legacy, Distinct, Emoji, Mixture, Unicode}

// ============================================================================
// Tables
// ============================================================================

const (
	legacyTable   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	distinctTable = "@#$%&*123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	emojiTable    = "😊😍😛😭😎👽💀👻✋👌👉👍❤💋🙏💪" +
		"🐵🐶🐴🐷🐔🐸🐍🐬🌻🌷🌱🌴🌵🍀🍄🍒" +
		"🍔🍟🍕🍦🍺🍉🍌🍎🏠⏰💊☕🚗🚲✈🚀" +
		"☀🌙⭐⚡☔🌈🔥💧🎄🎁🎈🎉🔔🏆🔒🔑"

	unicodeFirst = 0x4E00
	unicodeLast  = 0x9FFF
)

var tables = sync.OnceValue(func() map[Charset][]string {
	split := func(s string) []string { return strings.Split(s, "") }

	cjk := make([]string, 0, unicodeLast-unicodeFirst+1)
	for r := rune(unicodeFirst); r <= unicodeLast; r++ {
		cjk = append(cjk, string(r))
	}

	return map[Charset][]string{
		Legacy:   split(legacyTable),
		Distinct: split(distinctTable),
		Emoji:    split(emojiTable),
		Mixture:  split(distinctTable + emojiTable),
		Unicode:  cjk,
	}
})

func (c Charset) String() string {
	switch c {
	case Legacy:
		return "legacy"
	case Distinct:
		return "distinct"
	case Emoji:
		return "emoji"
	case Mixture:
		return "mixture"
	case Unicode:
		return "unicode"
	default:
		return "unknown"
	}
}

// ParseCharset parses a charset name as printed by String.
func ParseCharset(name string) (Charset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range Charsets {
		if c.String() == key {
			return c, nil
		}
	}
	if key == "base64" {
		return Legacy, nil
	}
	return Legacy, gserrors.Field(gserrors.ErrUnsupportedCharset, "charset", name)
}

// Table returns the ordered characters of c. The slice is shared and must
// not be modified.
func (c Charset) Table() ([]string, error) {
	t, ok := tables()[c]
	if !ok {
		return nil, gserrors.Field(gserrors.ErrUnsupportedCharset, "charset", int(c))
	}
	return t, nil
}

// Contains reports whether ch is one character of c.
func (c Charset) Contains(ch string) bool {
	t, err := c.Table()
	if err != nil {
		return false
	}
	for _, v := range t {
		if v == ch {
			return true
		}
	}
	return false
}
