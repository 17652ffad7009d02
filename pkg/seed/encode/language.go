package encode

import (
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// Language is a BIP39 wordlist language. Its numeric value is the BIP85
// language code used in mnemonic derivation paths.
type Language uint32

const (
	English            Language = 0
	Japanese           Language = 1
	Korean             Language = 2
	Spanish            Language = 3
	ChineseSimplified  Language = 4
	ChineseTraditional Language = 5
	French             Language = 6
	Italian            Language = 7
	Czech              Language = 8
	Portuguese         Language = 9
)

// Languages lists every language in BIP85 code order.
var Languages = []Language{
	English, Japanese, Korean, Spanish, ChineseSimplified,
	ChineseTraditional, French, Italian, Czech, Portuguese,
}

var languageNames = map[Language]string{
	English:            "english",
	Japanese:           "japanese",
	Korean:             "korean",
	Spanish:            "spanish",
	ChineseSimplified:  "chinese-simplified",
	ChineseTraditional: "chinese-traditional",
	French:             "french",
	Italian:            "italian",
	Czech:              "czech",
	Portuguese:         "portuguese",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "unknown"
}

// Code returns the BIP85 language code.
func (l Language) Code() uint32 {
	return uint32(l)
}

// ParseLanguage accepts a language name or a short alias such as "en".
func ParseLanguage(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	switch key {
	case "en":
		return English, nil
	case "ja", "jp":
		return Japanese, nil
	case "ko", "kr":
		return Korean, nil
	case "es":
		return Spanish, nil
	case "zh", "zh-hans", "chinese", "chinese-simplified":
		return ChineseSimplified, nil
	case "zh-hant", "chinese-traditional":
		return ChineseTraditional, nil
	case "fr":
		return French, nil
	case "it":
		return Italian, nil
	case "cs", "cz":
		return Czech, nil
	case "pt":
		return Portuguese, nil
	}
	for l, name := range languageNames {
		if name == key {
			return l, nil
		}
	}
	return English, gserrors.Field(gserrors.ErrUnsupportedLanguage, "language", s)
}

// Wordlist returns the 2048 words of l.
func (l Language) Wordlist() ([]string, error) {
	switch l {
	case English:
		return wordlists.English, nil
	case Japanese:
		return wordlists.Japanese, nil
	case Korean:
		return wordlists.Korean, nil
	case Spanish:
		return wordlists.Spanish, nil
	case ChineseSimplified:
		return wordlists.ChineseSimplified, nil
	case ChineseTraditional:
		return wordlists.ChineseTraditional, nil
	case French:
		return wordlists.French, nil
	case Italian:
		return wordlists.Italian, nil
	case Czech:
		return wordlists.Czech, nil
	default:
		// Portuguese has a BIP85 code but no wordlist in this build.
		return nil, gserrors.Field(gserrors.ErrUnsupportedLanguage, "language", l.String())
	}
}

// wordIndex maps NFKD-normalized words of each language to their index.
var wordIndex = sync.OnceValue(func() map[Language]map[string]int {
	out := make(map[Language]map[string]int, len(Languages))
	for _, l := range Languages {
		list, err := l.Wordlist()
		if err != nil {
			continue
		}
		idx := make(map[string]int, len(list))
		for i, w := range list {
			idx[norm.NFKD.String(w)] = i
		}
		out[l] = idx
	}
	return out
})

// IndexOf returns the position of word in l's wordlist.
func (l Language) IndexOf(word string) (int, bool) {
	idx, ok := wordIndex()[l]
	if !ok {
		return 0, false
	}
	i, ok := idx[norm.NFKD.String(word)]
	return i, ok
}
