package pkg

import (
	"bytes"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/glyphseed/go/glyphseed/pkg/logging"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/entropy"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
)

// verifyPasswordLength needs more than one 64-byte block for every charset.
const verifyPasswordLength = 100

// VerifyArtifactsWithLogger re-parses every artifact kind the generator
// produces at index and checks that it round trips.
func VerifyArtifactsWithLogger(g *Generator, index uint32, logger hclog.Logger) error {
	if err := g.check(); err != nil {
		return err
	}
	logger.Info("Verifying artifacts", "index", index)

	errors := []string{}
	fail := func(what string, err error) {
		errors = append(errors, fmt.Sprintf("%s: %v", what, err))
		logger.Error(what, "error", err)
	}

	if err := verifyEntropy(g); err != nil {
		fail("Entropy round trip failed", err)
	} else {
		logger.Info("✓ Diagram entropy decodes to the diagram")
	}

	if err := verifyMnemonics(g, index); err != nil {
		fail("Mnemonic round trip failed", err)
	} else {
		logger.Info("✓ Mnemonics parse back to their entropy")
	}

	if err := verifyWIF(g, index); err != nil {
		fail("WIF round trip failed", err)
	} else {
		logger.Info("✓ WIF checksum valid")
	}

	if err := verifyXPRV(g, index); err != nil {
		fail("XPRV round trip failed", err)
	} else {
		logger.Info("✓ XPRV checksum valid")
	}

	for _, cs := range encode.Charsets {
		if err := verifyPassword(g, cs, index); err != nil {
			fail("Password check failed", fmt.Errorf("%s: %w", cs, err))
		} else {
			logger.Info("✓ Password drawn from charset", "charset", cs)
		}
	}

	if len(errors) == 0 {
		logger.Info("✓ Artifact verification passed")
		return nil
	}
	logger.Error("✗ Artifact verification failed", "error_count", len(errors))
	for _, e := range errors {
		logger.Error("  Verification error", "details", e)
	}
	return fmt.Errorf("%w: %d checks", ErrVerificationFailed, len(errors))
}

// VerifyArtifacts verifies with default logger settings.
func VerifyArtifacts(g *Generator, index uint32) error {
	logger := logging.NewLogger("glyphseed-verify", logging.GetLogLevel(), nil)
	return VerifyArtifactsWithLogger(g, index, logger)
}

func verifyEntropy(g *Generator) error {
	ent, err := entropy.EncodeDiagram(g.diagram, g.alpha)
	if err != nil {
		return err
	}
	defer utils.Wipe(ent)

	if want := entropy.ByteLen(g.diagram.Len(), g.alpha.Radix()); len(ent) != want {
		return fmt.Errorf("entropy is %d bytes, want %d", len(ent), want)
	}
	entries, err := entropy.Decode(ent, g.diagram.Len(), g.alpha)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(entries, g.diagram.Entries()) {
		return fmt.Errorf("decoded entries differ from the diagram")
	}
	return nil
}

func verifyMnemonics(g *Generator, index uint32) error {
	list, err := g.MnemonicList(encode.English, index)
	if err != nil {
		return err
	}
	for _, m := range list {
		want, err := m.Entropy()
		if err != nil {
			return err
		}
		parsed, err := encode.ParseMnemonic(m.String())
		if err != nil {
			return err
		}
		got, err := parsed.Entropy()
		if err != nil {
			return err
		}
		same := bytes.Equal(want, got)
		utils.Wipe(want, got)
		if !same {
			return fmt.Errorf("%d-word entropy changed", len(m.Words))
		}
	}
	return nil
}

func verifyWIF(g *Generator, index uint32) error {
	k, err := g.WIF(index)
	if err != nil {
		return err
	}
	w, err := encode.DecodeWIF(k.WIF)
	if err != nil {
		return err
	}
	defer w.Zero()
	if !w.Compressed || w.Network != g.Network() {
		return fmt.Errorf("decoded %s compressed=%t", w.Network, w.Compressed)
	}
	if addr := encode.NestedWitnessPubKeyHash(w.PublicKey(), w.Network); addr != k.Address {
		return fmt.Errorf("address %s, want %s", addr, k.Address)
	}
	return nil
}

func verifyXPRV(g *Generator, index uint32) error {
	x, err := g.XPRV(index)
	if err != nil {
		return err
	}
	defer x.Zero()
	parsed, err := hdkey.ParseExtendedKey(x.String())
	if err != nil {
		return err
	}
	defer parsed.Zero()
	if !bytes.Equal(x.Pack(), parsed.Pack()) {
		return fmt.Errorf("serialization changed")
	}
	return nil
}

func verifyPassword(g *Generator, cs encode.Charset, index uint32) error {
	pwd, err := g.Password(cs, verifyPasswordLength, index)
	if err != nil {
		return err
	}
	if n := utf8.RuneCountInString(pwd); n != verifyPasswordLength {
		return fmt.Errorf("%d characters, want %d", n, verifyPasswordLength)
	}
	for _, r := range pwd {
		if !cs.Contains(string(r)) {
			return fmt.Errorf("%q is outside the charset", r)
		}
	}
	return nil
}
