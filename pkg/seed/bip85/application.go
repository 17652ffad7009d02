package bip85

import (
	"fmt"
	"sort"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
)

// Params carries the per-call parameters of an application. Each
// application reads only the fields it needs.
type Params struct {
	Language encode.Language
	Words    int
	Length   int
	Index    uint32
	Charset  encode.Charset
}

// Application builds the derivation path of one BIP85 application.
type Application interface {
	// ID returns the application segment (e.g., AppMnemonic)
	ID() uint32

	// Name returns the human-readable name
	Name() string

	// Path returns the full hardened path below the master key
	Path(p Params) (hdkey.Path, error)

	// EntropySize returns the number of stream bytes the application
	// consumes up front. Passwords may read further.
	EntropySize(p Params) int
}

// BaseApplication provides the identity part of an Application.
type BaseApplication struct {
	AppID   uint32
	AppName string
}

func (a *BaseApplication) ID() uint32 {
	return a.AppID
}

func (a *BaseApplication) Name() string {
	return a.AppName
}

// path joins the fixed prefix, the application segment and segments,
// hardening all of them.
func (a *BaseApplication) path(segments ...uint32) (hdkey.Path, error) {
	for _, s := range segments {
		if s > MaxIndex {
			return nil, gserrors.Field(gserrors.ErrInvalidPath, "segment", s)
		}
	}
	return hdkey.NewPath(append([]uint32{PurposeBIP85, a.AppID}, segments...)...), nil
}

// MnemonicApp derives BIP39 entropy: 83696968'/39'/{language}'/{words}'/{index}'.
type MnemonicApp struct{ BaseApplication }

func (a *MnemonicApp) Path(p Params) (hdkey.Path, error) {
	if _, ok := encode.EntropyForWordCount(p.Words); !ok {
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "words", p.Words)
	}
	if _, err := p.Language.Wordlist(); err != nil {
		return nil, err
	}
	return a.path(p.Language.Code(), uint32(p.Words), p.Index)
}

func (a *MnemonicApp) EntropySize(p Params) int {
	size, _ := encode.EntropyForWordCount(p.Words)
	return size
}

// WIFApp derives a single private key: 83696968'/2'/{index}'.
type WIFApp struct{ BaseApplication }

func (a *WIFApp) Path(p Params) (hdkey.Path, error) {
	return a.path(p.Index)
}

func (a *WIFApp) EntropySize(Params) int {
	return hdkey.KeySize
}

// XPRVApp derives a new master extended key: 83696968'/32'/{index}'.
type XPRVApp struct{ BaseApplication }

func (a *XPRVApp) Path(p Params) (hdkey.Path, error) {
	return a.path(p.Index)
}

func (a *XPRVApp) EntropySize(Params) int {
	return hdkey.ChainCodeSize + hdkey.KeySize
}

// PasswordApp derives a password: 83696968'/707764'/{length}'/{index}'.
// The charset is not part of the path.
type PasswordApp struct{ BaseApplication }

func (a *PasswordApp) Path(p Params) (hdkey.Path, error) {
	if p.Length < 1 || p.Length > encode.MaxPasswordLength {
		return nil, gserrors.Field(gserrors.ErrInvalidLength, "length", p.Length)
	}
	if _, err := p.Charset.Table(); err != nil {
		return nil, err
	}
	return a.path(uint32(p.Length), p.Index)
}

func (a *PasswordApp) EntropySize(Params) int {
	return BlockSize
}

var registry = map[uint32]Application{
	AppMnemonic: &MnemonicApp{BaseApplication{AppID: AppMnemonic, AppName: "mnemonic"}},
	AppWIF:      &WIFApp{BaseApplication{AppID: AppWIF, AppName: "wif"}},
	AppXPRV:     &XPRVApp{BaseApplication{AppID: AppXPRV, AppName: "xprv"}},
	AppPassword: &PasswordApp{BaseApplication{AppID: AppPassword, AppName: "password"}},
}

// Get retrieves an application by ID.
func Get(id uint32) (Application, error) {
	app, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown application: %d'", id)
	}
	return app, nil
}

// Lookup finds an application by name.
func Lookup(name string) (Application, error) {
	for _, app := range registry {
		if app.Name() == name {
			return app, nil
		}
	}
	return nil, fmt.Errorf("unknown application: %q", name)
}

// Applications returns every registered application ordered by ID.
func Applications() []Application {
	out := make([]Application, 0, len(registry))
	for _, app := range registry {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
