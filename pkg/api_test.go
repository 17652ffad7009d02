package pkg

import (
	"encoding/hex"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/diagram"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/entropy"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
)

const scenarioPassphrase = "🚲🍀🌈"

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "pkg_test",
		Level: hclog.Trace,
	})
}

func foodDiagram(t *testing.T) *diagram.Simple {
	t.Helper()
	d, err := BuildSimple(
		[]rune("🍔🍟🌭🍦🍩"),
		[]diagram.Position{{Row: 1, Col: 1}, {Row: 1, Col: 5}, {Row: 5, Col: 5}, {Row: 5, Col: 1}, {Row: 3, Col: 3}},
	)
	require.NoError(t, err)
	return d
}

func TestScenario(t *testing.T) {
	logger := testLogger()
	d := foodDiagram(t)

	ent, err := DiagramEntropy(d, nil)
	require.NoError(t, err)
	assert.Equal(t, "00307a679a00fc528f528710f1343dcb69", hex.EncodeToString(ent))

	entries, err := DecodeDiagram(ent, d.Len(), nil)
	require.NoError(t, err)
	assert.Equal(t, d.Entries(), entries)

	master, err := DeriveMaster(d, nil, scenarioPassphrase, hdkey.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "xprv9s21ZrQH143K3VHT2yR6oCFcMkHHrScaw6B73gUrrFjF9t4v9EfRfQ3p5FPYuZf3y9SVLUymN3b9GCJSsZGEBF8uHcjWQvz8bKoxztAEYWp", master.String())

	g, err := NewGenerator(d, nil, scenarioPassphrase, hdkey.Mainnet, logger)
	require.NoError(t, err)
	defer g.Close()

	m, err := g.Mnemonic(encode.English, 15, 0)
	require.NoError(t, err)
	assert.Equal(t, "prevent try cluster hawk abuse drill dish fantasy business color fit club guide struggle rack", m.String())

	k, err := g.WIF(0)
	require.NoError(t, err)
	assert.Equal(t, "L3Y3xidZ4zDZXuo53LWvCTqr14BZzFP9neBeGsAMMDVTpu9A8BMM", k.WIF)

	x, err := g.XPRV(0)
	require.NoError(t, err)
	assert.Equal(t, "xprv9s21ZrQH143K3MBNxdkbPrKUDVuiY8ig4MsLky7vNAipJxKBBUYUf6e4pBY76MDyHP93PeTKcT4EjDuPkGGPLLUAayr8J5GpLwp3mnbV4af", x.String())

	pwd, err := g.Password(encode.Emoji, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "❤⚡🎄👌🍄😛😭❤🌙🏆👌☔😭🌱👍🎉🚗🌱🚀🍀", pwd)

	list, err := g.MnemonicList(encode.English, 0)
	require.NoError(t, err)
	assert.Equal(t, "distance venture box fantasy squirrel bind eager filter crush grow voice canoe protect suit inject tell hover oppose leisure ticket image piece human replace", list[0].String())

	logger.Info("✅ Scenario reproduced")
}

func TestPassphraseChangesEverything(t *testing.T) {
	d := foodDiagram(t)

	a, err := DeriveMaster(d, nil, scenarioPassphrase, hdkey.Mainnet)
	require.NoError(t, err)
	b, err := DeriveMaster(d, nil, "", hdkey.Mainnet)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestVerifyArtifacts(t *testing.T) {
	g, err := NewGenerator(foodDiagram(t), nil, scenarioPassphrase, hdkey.Testnet, testLogger())
	require.NoError(t, err)
	defer g.Close()

	assert.NoError(t, VerifyArtifactsWithLogger(g, 3, testLogger()))
}

func TestComplexDiagramNeedsAlphabet(t *testing.T) {
	d, err := BuildComplex(
		[]string{"ab", "c", "de"},
		[]diagram.Position{{Row: 0, Col: 0}, {Row: 6, Col: 6}, {Row: 0, Col: 0}},
	)
	require.NoError(t, err)

	_, err = NewGenerator(d, nil, "", hdkey.Mainnet, nil)
	assert.ErrorIs(t, err, ErrNoAlphabet)

	alpha, err := entropy.NewListAlphabet([]string{"abde", "c"})
	require.NoError(t, err)
	g, err := NewGenerator(d, alpha, "", hdkey.Mainnet, nil)
	require.NoError(t, err)
	defer g.Close()

	assert.NoError(t, VerifyArtifactsWithLogger(g, 0, testLogger()))
}

func TestClosedGenerator(t *testing.T) {
	g, err := NewGenerator(foodDiagram(t), nil, "", hdkey.Mainnet, nil)
	require.NoError(t, err)
	g.Close()
	g.Close()

	_, err = g.WIF(0)
	assert.ErrorIs(t, err, ErrGeneratorClosed)
	_, err = g.Password(encode.Legacy, 10, 0)
	assert.ErrorIs(t, err, ErrGeneratorClosed)
	assert.ErrorIs(t, VerifyArtifactsWithLogger(g, 0, testLogger()), ErrGeneratorClosed)
}

func TestDiagramEditsChangeMaster(t *testing.T) {
	logger := testLogger()

	scenario := func() ([]rune, []diagram.Position) {
		return []rune("🍔🍟🌭🍦🍩"),
			[]diagram.Position{{Row: 1, Col: 1}, {Row: 1, Col: 5}, {Row: 5, Col: 5}, {Row: 5, Col: 1}, {Row: 3, Col: 3}}
	}
	derive := func(values []rune, positions []diagram.Position) *hdkey.ExtendedKey {
		d, err := BuildSimple(values, positions)
		require.NoError(t, err)
		master, err := DeriveMaster(d, nil, scenarioPassphrase, hdkey.Mainnet)
		require.NoError(t, err)
		return master
	}

	base := derive(scenario())
	seen := map[string]string{base.String(): "unchanged"}

	testCases := []struct {
		name string
		edit func(values []rune, positions []diagram.Position)
	}{
		{"middle value replaced", func(v []rune, _ []diagram.Position) { v[2] = '🍕' }},
		{"last value replaced", func(v []rune, _ []diagram.Position) { v[4] = '🍪' }},
		{"first value off by one code point", func(v []rune, _ []diagram.Position) { v[0]++ }},
		{"first two positions swapped", func(_ []rune, p []diagram.Position) { p[0], p[1] = p[1], p[0] }},
		{"first and last positions swapped", func(_ []rune, p []diagram.Position) { p[0], p[4] = p[4], p[0] }},
		{"one cell moved to an empty cell", func(_ []rune, p []diagram.Position) { p[3] = diagram.Position{Row: 6, Col: 6} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger.Info("🧪 Editing diagram", "test", tc.name)

			values, positions := scenario()
			tc.edit(values, positions)
			edited := derive(values, positions)

			assert.NotEqual(t, base.Fingerprint(), edited.Fingerprint())
			assert.NotEqual(t, base.String(), edited.String())
			assert.NotEqual(t, base.Key, edited.Key)

			prev, dup := seen[edited.String()]
			assert.False(t, dup, "same master as %q", prev)
			seen[edited.String()] = tc.name

			logger.Info("✅ Master key changed", "test", tc.name)
		})
	}
}
