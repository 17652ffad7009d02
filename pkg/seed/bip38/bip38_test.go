package bip38

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/checksum"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
)

var vectors = []struct {
	name       string
	passphrase string
	encrypted  string
	wif        string
}{
	{"uncompressed", "TestingOneTwoThree", "6PRVWUbkzzsbcVac2qwfssoUJAN1Xhrg6bNk8J7Nzm5H7kxEbn2Nh2ZoGg", "5KN7MzqK5wt2TP1fQCYyHBtDrXdJuXbUzm4A9rKAteGu3Qi5CVR"},
	{"uncompressed satoshi", "Satoshi", "6PRNFFkZc2NZ6dJqFfhRoFNMR9Lnyj7dYGrzdgXXVMXcxoKTePPX1dWByq", "5HtasZ6ofTHP6HCwTqTkLDuLQisYPah7aUnSKfC7h4hMUVw2gi5"},
	{"compressed", "TestingOneTwoThree", "6PYNKZ1EAgYgmQfmNVamxyXVWHzK5s6DGhwP4J5o44cvXdoY7sRzhtpUeo", "L44B5gGEpqEDRS9vVPz7QT35jcBG2r3CZwSwQ4fCewXAhAhqGVpP"},
	{"compressed satoshi", "Satoshi", "6PYLtMnXvfG3oJde97zRyLYFZCYizPU5T3LwgdYJz1fRhh16bU7u6PPmY7", "KwYgW8gcxj1JWJXhPSu4Fqwzfhp5Yfi42mdYmMa4XqK7NJxXUSK7"},
	{"unnormalized passphrase", "\u03d2\u0301\u0000\U00010400\U0001f4a9", "6PRW5o9FLp4gJDDVqJQKJFTpMvdsSGJxMYHtHaQBF3ooa8mwD69bapcDQn", "5Jajm8eQ22H3pGWLEVCXyvND8dQZhiQhoLJNKjYXk9roUFTMSZ4"},
	{"emoji passphrase", "🍔🍟🌭🍦", "6PYQEYUvYDGpvMnyoEoTFPovQ6ZxroRVUFUSqVGQ3zCf3vRP5nFGS934rm", "L4qD92jn8TTsZ8waNUtraR17ipZkzkvop3GkcNiFP3LJNVk9tXQT"},
}

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "bip38_test",
		Level: hclog.Trace,
	})
}

func TestVectors(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt vectors are slow")
	}
	logger := testLogger()

	for _, tc := range vectors {
		t.Run(tc.name, func(t *testing.T) {
			logger.Info("🧪 Encrypting", "test", tc.name)

			encrypted, err := Encrypt(tc.wif, tc.passphrase)
			require.NoError(t, err)
			assert.Equal(t, tc.encrypted, encrypted)

			wif, err := Decrypt(tc.encrypted, tc.passphrase)
			require.NoError(t, err)
			assert.Equal(t, tc.wif, wif)

			logger.Info("✅ Test passed", "test", tc.name)
		})
	}
}

func TestWrongPassphrase(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt vectors are slow")
	}
	_, err := Decrypt(vectors[0].encrypted, "TestingOneTwoFour")
	assert.ErrorIs(t, err, gserrors.ErrWrongPassphrase)
}

func TestTestnetKeyRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt vectors are slow")
	}
	w, err := encode.DecodeWIF(vectors[2].wif)
	require.NoError(t, err)
	w.Network = hdkey.Testnet
	testnet := w.String()

	encrypted, err := Encrypt(testnet, "pass")
	require.NoError(t, err)
	assert.NotEqual(t, vectors[2].encrypted, encrypted)

	wif, err := Decrypt(encrypted, "pass")
	require.NoError(t, err)
	assert.Equal(t, testnet, wif)
}

func TestDecryptRejectsMalformed(t *testing.T) {
	_, err := Decrypt("6Pshort", "x")
	assert.ErrorIs(t, err, gserrors.ErrInvalidKey)

	_, err = Decrypt("7"+vectors[0].encrypted[1:], "x")
	assert.ErrorIs(t, err, gserrors.ErrInvalidKey)

	corrupted := []byte(vectors[0].encrypted)
	corrupted[20] = 'z'
	if corrupted[20] == vectors[0].encrypted[20] {
		corrupted[20] = 'y'
	}
	_, err = Decrypt(string(corrupted), "x")
	assert.ErrorIs(t, err, gserrors.ErrChecksumMismatch)

	ec := make([]byte, payloadSize)
	copy(ec, prefixEC[:])
	encoded := checksum.CheckEncode(ec)
	require.Equal(t, "6PfKzduKZXAFXWMtJ19Vg9cSvbFg4va6U8p2VWzSjtHQCCLk3JSBpUvfpf", encoded)
	_, err = Decrypt(encoded, "x")
	assert.ErrorIs(t, err, gserrors.ErrInvalidVersion)
}

func TestEncryptRejectsBadWIF(t *testing.T) {
	_, err := Encrypt("not-a-wif", "x")
	assert.Error(t, err)
}
