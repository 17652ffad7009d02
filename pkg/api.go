// Package pkg is the entry point for turning a diagram into wallet
// artifacts. It ties the diagram, entropy, key tree and BIP85 packages
// together and logs each step without logging secrets.
package pkg

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/bip85"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/diagram"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/entropy"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// BuildSimple builds a diagram with one character per cell.
func BuildSimple(values []rune, positions []diagram.Position) (*diagram.Simple, error) {
	return diagram.NewSimple(values, positions)
}

// BuildComplex builds a diagram with strings of up to 50 characters per cell.
func BuildComplex(values []string, positions []diagram.Position) (*diagram.Complex, error) {
	return diagram.NewComplex(values, positions)
}

// alphabetFor returns alpha, or the code point alphabet for simple diagrams.
func alphabetFor(d diagram.Diagram, alpha entropy.Alphabet) (entropy.Alphabet, error) {
	if alpha != nil {
		return alpha, nil
	}
	if _, ok := d.(*diagram.Simple); ok {
		return entropy.CodePoints, nil
	}
	return nil, ErrNoAlphabet
}

// DiagramEntropy encodes d into its entropy bytes. A nil alpha selects
// entropy.CodePoints for simple diagrams.
func DiagramEntropy(d diagram.Diagram, alpha entropy.Alphabet) ([]byte, error) {
	a, err := alphabetFor(d, alpha)
	if err != nil {
		return nil, err
	}
	return entropy.EncodeDiagram(d, a)
}

// DecodeDiagram recovers the n entries encoded in data.
func DecodeDiagram(data []byte, n int, alpha entropy.Alphabet) ([]diagram.Entry, error) {
	if alpha == nil {
		alpha = entropy.CodePoints
	}
	return entropy.Decode(data, n, alpha)
}

// DeriveMaster derives the master key of d protected by passphrase.
func DeriveMaster(d diagram.Diagram, alpha entropy.Alphabet, passphrase string, net hdkey.Network) (*hdkey.ExtendedKey, error) {
	ent, err := DiagramEntropy(d, alpha)
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(ent)

	pass := []byte(passphrase)
	defer utils.Wipe(pass)
	return hdkey.NewMaster(ent, pass, net)
}

// Generator derives every artifact of one diagram.
type Generator struct {
	diagram diagram.Diagram
	alpha   entropy.Alphabet
	engine  *bip85.Engine
	logger  hclog.Logger
}

// NewGenerator derives the master key of d and prepares a BIP85 engine
// over it. A nil logger discards log output.
func NewGenerator(d diagram.Diagram, alpha entropy.Alphabet, passphrase string, net hdkey.Network, logger hclog.Logger) (*Generator, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	a, err := alphabetFor(d, alpha)
	if err != nil {
		return nil, err
	}

	logger.Debug("🧩 Encoding diagram", "cells", d.Len(), "radix", a.Radix(),
		"bits", entropy.Bits(d.Len(), a.Radix()))
	master, err := DeriveMaster(d, a, passphrase, net)
	if err != nil {
		return nil, fmt.Errorf("deriving master key: %w", err)
	}
	defer master.Zero()

	fp := master.Fingerprint()
	logger.Info("🔐 Master key derived", "network", net, "fingerprint", fmt.Sprintf("%x", fp))

	engine, err := bip85.NewEngine(master)
	if err != nil {
		return nil, err
	}
	return &Generator{diagram: d, alpha: a, engine: engine, logger: logger}, nil
}

// Diagram returns the diagram the generator was built from.
func (g *Generator) Diagram() diagram.Diagram {
	return g.diagram
}

// Alphabet returns the value alphabet used for encoding.
func (g *Generator) Alphabet() entropy.Alphabet {
	return g.alpha
}

// Network returns the network of every derived artifact.
func (g *Generator) Network() hdkey.Network {
	return g.engine.Network()
}

func (g *Generator) check() error {
	if g.engine == nil {
		return ErrGeneratorClosed
	}
	return nil
}

// Mnemonic derives a BIP39 sentence.
func (g *Generator) Mnemonic(lang encode.Language, words int, index uint32) (*encode.Mnemonic, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	g.logger.Debug("📝 Deriving mnemonic", "language", lang, "words", words, "index", index)
	return g.engine.Mnemonic(lang, words, index)
}

// MnemonicList derives every sentence length from the 24-word path.
func (g *Generator) MnemonicList(lang encode.Language, index uint32) ([]*encode.Mnemonic, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	g.logger.Debug("📝 Deriving mnemonic list", "language", lang, "index", index)
	return g.engine.MnemonicList(lang, index)
}

// WIF derives a compressed private key and its address.
func (g *Generator) WIF(index uint32) (*bip85.WIFKey, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	g.logger.Debug("🗝️ Deriving WIF", "index", index)
	return g.engine.WIF(index)
}

// XPRV derives a child master extended key.
func (g *Generator) XPRV(index uint32) (*hdkey.ExtendedKey, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	g.logger.Debug("🌳 Deriving xprv", "index", index)
	return g.engine.XPRV(index)
}

// Password derives a password of length characters from cs.
func (g *Generator) Password(cs encode.Charset, length int, index uint32) (string, error) {
	if err := g.check(); err != nil {
		return "", err
	}
	g.logger.Debug("🔒 Deriving password", "charset", cs, "length", length, "index", index)
	return g.engine.Password(cs, length, index)
}

// Close wipes the master key. Later calls fail with ErrGeneratorClosed.
func (g *Generator) Close() {
	if g.engine != nil {
		g.engine.Close()
		g.engine = nil
	}
}
