package encode

import (
	"bytes"
	"encoding/base64"
	"io"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

func TestCharsetTables(t *testing.T) {
	expected := map[Charset]int{
		Legacy:   64,
		Distinct: 64,
		Emoji:    64,
		Mixture:  128,
		Unicode:  0x9FFF - 0x4E00 + 1,
	}
	for cs, size := range expected {
		table, err := cs.Table()
		require.NoError(t, err)
		assert.Len(t, table, size, cs.String())

		seen := make(map[string]bool, len(table))
		for _, ch := range table {
			assert.Equal(t, 1, utf8.RuneCountInString(ch), "%s entry %q", cs, ch)
			assert.False(t, seen[ch], "%s repeats %q", cs, ch)
			seen[ch] = true
		}
	}

	emoji, err := Emoji.Table()
	require.NoError(t, err)
	assert.Equal(t, "😊", emoji[0])
	assert.Equal(t, "🔑", emoji[63])

	cjk, err := Unicode.Table()
	require.NoError(t, err)
	assert.Equal(t, "一", cjk[0])
	assert.Equal(t, "鿿", cjk[len(cjk)-1])

	_, err = Charset(17).Table()
	assert.ErrorIs(t, err, gserrors.ErrUnsupportedCharset)
}

func TestMixtureTableLayout(t *testing.T) {
	distinct, err := Distinct.Table()
	require.NoError(t, err)
	emoji, err := Emoji.Table()
	require.NoError(t, err)
	mixture, err := Mixture.Table()
	require.NoError(t, err)

	// Indices 64..127 select each emoji exactly once.
	expected := make([]string, 0, len(distinct)+len(emoji))
	expected = append(expected, distinct...)
	expected = append(expected, emoji...)
	assert.Equal(t, expected, mixture)
	assert.Equal(t, emoji[0], mixture[64])
	assert.Equal(t, emoji[1], mixture[65])
	assert.Equal(t, emoji[63], mixture[127])
}

func TestParseCharset(t *testing.T) {
	for _, cs := range Charsets {
		parsed, err := ParseCharset(cs.String())
		require.NoError(t, err)
		assert.Equal(t, cs, parsed)
	}

	cs, err := ParseCharset(" Base64 ")
	require.NoError(t, err)
	assert.Equal(t, Legacy, cs)

	_, err = ParseCharset("hex")
	assert.ErrorIs(t, err, gserrors.ErrUnsupportedCharset)
}

func TestLegacyPasswordIsBase64(t *testing.T) {
	src := []byte{0x00, 0x10, 0x83, 0xfb, 0xef, 0xbe}
	pwd, err := EncodePassword(bytes.NewReader(src), Legacy, 8)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(src), pwd)
}

func TestPasswordRejectsOutOfRangeChunks(t *testing.T) {
	// 15 one bits (32767, above the table) then 15 zero bits (index 0).
	src := bytes.NewReader([]byte{0xFF, 0xFE, 0x00, 0x00})
	pwd, err := EncodePassword(src, Unicode, 1)
	require.NoError(t, err)
	assert.Equal(t, "一", pwd)
}

func TestPasswordErrors(t *testing.T) {
	_, err := EncodePassword(bytes.NewReader(nil), Legacy, 0)
	assert.ErrorIs(t, err, gserrors.ErrInvalidLength)

	_, err = EncodePassword(bytes.NewReader(nil), Legacy, MaxPasswordLength+1)
	assert.ErrorIs(t, err, gserrors.ErrInvalidLength)

	_, err = EncodePassword(bytes.NewReader(make([]byte, 64)), Charset(9), 10)
	assert.ErrorIs(t, err, gserrors.ErrUnsupportedCharset)

	// Six bytes give eight legacy characters, not nine.
	_, err = EncodePassword(bytes.NewReader(make([]byte, 6)), Legacy, 9)
	assert.ErrorIs(t, err, io.EOF)
}

func TestContains(t *testing.T) {
	assert.True(t, Mixture.Contains("@"))
	assert.True(t, Mixture.Contains("🔑"))
	assert.False(t, Distinct.Contains("0"))
	assert.False(t, Distinct.Contains("l"))
	assert.False(t, Charset(9).Contains("a"))
}
