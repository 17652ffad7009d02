// Package bip85 derives application entropy from a master key following
// BIP85, and extends it into an arbitrarily long deterministic stream.
package bip85

import (
	"fmt"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// Derive derives the key at path below root and returns its stream.
func Derive(root *hdkey.ExtendedKey, path hdkey.Path) (*Stream, error) {
	child, err := root.DerivePath(path)
	if err != nil {
		return nil, fmt.Errorf("deriving %s: %w", path, err)
	}
	defer child.Zero()
	return NewStream(child), nil
}

// Engine derives every application from one master key.
type Engine struct {
	root *hdkey.ExtendedKey
	net  hdkey.Network
}

// WIFKey is a derived private key with its nested SegWit address.
type WIFKey struct {
	WIF     string
	Address string
}

// NewEngine returns an engine over a copy of root. root must be a master
// key with known version bytes.
func NewEngine(root *hdkey.ExtendedKey) (*Engine, error) {
	if root == nil {
		return nil, gserrors.Field(gserrors.ErrInvalidKey, "root", nil)
	}
	net, ok := root.Network()
	if !ok {
		return nil, gserrors.Field(gserrors.ErrInvalidVersion, "version", fmt.Sprintf("%x", root.Version))
	}
	return &Engine{root: root.Clone(), net: net}, nil
}

// Network returns the network of the master key.
func (e *Engine) Network() hdkey.Network {
	return e.net
}

// Stream returns the entropy stream of app for p.
func (e *Engine) Stream(app Application, p Params) (*Stream, error) {
	path, err := app.Path(p)
	if err != nil {
		return nil, err
	}
	return Derive(e.root, path)
}

// Entropy returns the EntropySize(p) leading stream bytes of app.
func (e *Engine) Entropy(app Application, p Params) ([]byte, error) {
	s, err := e.Stream(app, p)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Bytes(app.EntropySize(p))
}

// Mnemonic derives a words-long sentence in lang.
func (e *Engine) Mnemonic(lang encode.Language, words int, index uint32) (*encode.Mnemonic, error) {
	ent, err := e.Entropy(registry[AppMnemonic], Params{Language: lang, Words: words, Index: index})
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(ent)
	return encode.EncodeMnemonic(ent, lang)
}

// MnemonicList derives the 24-word entropy at index and returns it
// truncated to every sentence length in MnemonicListCounts.
func (e *Engine) MnemonicList(lang encode.Language, index uint32) ([]*encode.Mnemonic, error) {
	ent, err := e.Entropy(registry[AppMnemonic], Params{Language: lang, Words: MnemonicListWords, Index: index})
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(ent)

	out := make([]*encode.Mnemonic, 0, len(MnemonicListCounts))
	for _, words := range MnemonicListCounts {
		size, _ := encode.EntropyForWordCount(words)
		m, err := encode.EncodeMnemonic(ent[:size], lang)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// WIF derives a compressed private key for the master key's network.
func (e *Engine) WIF(index uint32) (*WIFKey, error) {
	ent, err := e.Entropy(registry[AppWIF], Params{Index: index})
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(ent)

	w := &encode.WIF{Network: e.net, Compressed: true}
	copy(w.Key[:], ent)
	defer w.Zero()
	if !hdkey.ValidKey(w.Key[:]) {
		return nil, gserrors.Field(gserrors.ErrInvalidKey, "index", index)
	}

	return &WIFKey{
		WIF:     w.String(),
		Address: encode.NestedWitnessPubKeyHash(w.PublicKey(), e.net),
	}, nil
}

// XPRV derives a new master extended key: the first 32 bytes are the
// chain code and the last 32 the private key.
func (e *Engine) XPRV(index uint32) (*hdkey.ExtendedKey, error) {
	ent, err := e.Entropy(registry[AppXPRV], Params{Index: index})
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(ent)

	k := &hdkey.ExtendedKey{Version: e.net.PrivateVersion()}
	copy(k.ChainCode[:], ent[:hdkey.ChainCodeSize])
	copy(k.Key[:], ent[hdkey.ChainCodeSize:])
	if !hdkey.ValidKey(k.Key[:]) {
		k.Zero()
		return nil, gserrors.Field(gserrors.ErrInvalidKey, "index", index)
	}
	return k, nil
}

// Password derives a length-character password drawn from cs.
func (e *Engine) Password(cs encode.Charset, length int, index uint32) (string, error) {
	s, err := e.Stream(registry[AppPassword], Params{Charset: cs, Length: length, Index: index})
	if err != nil {
		return "", err
	}
	defer s.Close()
	return encode.EncodePassword(s, cs, length)
}

// Close wipes the engine's copy of the master key.
func (e *Engine) Close() {
	e.root.Zero()
}
