package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/glyphseed/go/glyphseed/internal/diagramfile"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/logging"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/bip38"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/bip85"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/diagram"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/encode"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/entropy"
	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/hdkey"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils"
	"github.com/provide-io/glyphseed/go/glyphseed/pkg/utils/permissions"
)

// EnvNetwork sets the default for --network.
const EnvNetwork = "GLYPHSEED_NETWORK"

var errInvalidArgs = errors.New("❌ invalid arguments")

type options struct {
	diagramPath string
	passphrase  string
	network     string
	logLevel    string
	index       uint32
	versionFlag bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "glyphseed",
		Short:         "Derive wallet artifacts from a 7x7 diagram",
		Long:          `Derive BIP39 mnemonics, WIF keys, extended keys and passwords from a 7x7 diagram of characters and a passphrase.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.versionFlag {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.diagramPath, "diagram", "d", "", "Path to a diagram document")
	flags.StringVarP(&opts.passphrase, "passphrase", "p", "", "Passphrase mixed into the master key")
	flags.StringVar(&opts.network, "network", os.Getenv(EnvNetwork), "Network (mainnet, testnet)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.Uint32VarP(&opts.index, "index", "i", 0, "Derivation index")
	rootCmd.Flags().BoolVarP(&opts.versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		newInitCmd(opts),
		newEntropyCmd(opts),
		newMnemonicCmd(opts),
		newWIFCmd(opts),
		newXPRVCmd(opts),
		newPasswordCmd(opts),
		newVerifyCmd(opts),
		newBIP38Cmd(opts),
		newBIP39Cmd(opts),
		newAppsCmd(opts),
	)
	return rootCmd
}

func (o *options) logger() hclog.Logger {
	level := o.logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	return logging.NewLogger("glyphseed", level, nil)
}

func (o *options) net() (hdkey.Network, error) {
	net, err := hdkey.ParseNetwork(o.network)
	if err != nil {
		return net, fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return net, nil
}

func (o *options) load() (diagram.Diagram, entropy.Alphabet, error) {
	if o.diagramPath == "" {
		return nil, nil, fmt.Errorf("%w: --diagram is required", errInvalidArgs)
	}
	doc, err := diagramfile.Load(o.diagramPath)
	if err != nil {
		return nil, nil, err
	}
	if mode, private, err := permissions.CheckPrivate(o.diagramPath); err == nil && !private {
		o.logger().Warn("⚠️ Diagram file is readable by other users", "path", o.diagramPath,
			"mode", permissions.FormatOctal(mode))
	}
	d, err := doc.Diagram()
	if err != nil {
		return nil, nil, err
	}
	alpha, err := doc.ValueAlphabet()
	if err != nil {
		return nil, nil, err
	}
	return d, alpha, nil
}

func (o *options) generator() (*pkg.Generator, error) {
	net, err := o.net()
	if err != nil {
		return nil, err
	}
	d, alpha, err := o.load()
	if err != nil {
		return nil, err
	}
	return pkg.NewGenerator(d, alpha, o.passphrase, net, o.logger())
}

// withGenerator runs fn with a generator that is wiped afterwards.
func withGenerator(opts *options, fn func(g *pkg.Generator, p printer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		g, err := opts.generator()
		if err != nil {
			return err
		}
		defer g.Close()
		return fn(g, printer{w: cmd.OutOrStdout()})
	}
}

// parseCell parses "row,col=value".
func parseCell(s string) (diagramfile.Cell, error) {
	pos, value, ok := strings.Cut(s, "=")
	if !ok || value == "" {
		return diagramfile.Cell{}, fmt.Errorf("%w: cell %q is not row,col=value", errInvalidArgs, s)
	}
	r, c, ok := strings.Cut(pos, ",")
	if !ok {
		return diagramfile.Cell{}, fmt.Errorf("%w: cell %q is not row,col=value", errInvalidArgs, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return diagramfile.Cell{}, fmt.Errorf("%w: row of %q: %v", errInvalidArgs, s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return diagramfile.Cell{}, fmt.Errorf("%w: column of %q: %v", errInvalidArgs, s, err)
	}
	if !utf8.ValidString(value) {
		err := gserrors.Field(gserrors.ErrInvalidCharacter, "value", fmt.Sprintf("%q", value))
		return diagramfile.Cell{}, fmt.Errorf("%w: cell %q: %w", errInvalidArgs, s, err)
	}
	return diagramfile.Cell{Row: row, Col: col, Value: value}, nil
}

func newInitCmd(opts *options) *cobra.Command {
	var (
		cells    []string
		alphabet []string
		multi    bool
		force    bool
		mode     string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a diagram document",
		Long:  `Create a diagram document from cells given in insertion order as row,col=value. Rows and columns are 0 to 6.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.diagramPath == "" {
				return fmt.Errorf("%w: --diagram is required", errInvalidArgs)
			}
			if _, err := os.Stat(opts.diagramPath); err == nil && !force {
				return fmt.Errorf("%w: %s exists, use --force to overwrite", errInvalidArgs, opts.diagramPath)
			}

			doc := &diagramfile.Document{Kind: diagramfile.KindSimple, Alphabet: alphabet}
			if multi {
				doc.Kind = diagramfile.KindComplex
			}
			for _, s := range cells {
				cell, err := parseCell(s)
				if err != nil {
					return err
				}
				doc.Cells = append(doc.Cells, cell)
			}

			perm, err := permissions.ParseOctalString(mode)
			if err != nil {
				return fmt.Errorf("%w: %v", errInvalidArgs, err)
			}
			if !permissions.IsPrivate(perm) {
				opts.logger().Warn("⚠️ Diagram file will be readable by other users", "mode", permissions.FormatOctal(perm))
			}

			d, err := doc.Diagram()
			if err != nil {
				return err
			}
			var (
				alpha  entropy.Alphabet
				values []string
			)
			if len(alphabet) > 0 {
				list, err := entropy.NewListAlphabet(alphabet)
				if err != nil {
					return fmt.Errorf("%w: %w", errInvalidArgs, err)
				}
				alpha, values = list, list.Values()
			}
			// Refuse documents that cannot be derived from later.
			ent, err := pkg.DiagramEntropy(d, alpha)
			if err != nil {
				return err
			}
			utils.Wipe(ent)

			saved := diagramfile.FromDiagram(d, values)
			if err := diagramfile.SaveWithMode(opts.diagramPath, saved, perm); err != nil {
				return err
			}

			p := printer{w: cmd.OutOrStdout()}
			p.field("Saved", opts.diagramPath)
			fmt.Fprint(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&cells, "cell", "c", nil, "Cell as row,col=value (repeatable, order matters)")
	cmd.Flags().StringSliceVar(&alphabet, "alphabet", nil, "Ordered value alphabet (required for complex diagrams)")
	cmd.Flags().BoolVar(&multi, "complex", false, "Allow multi-character cells")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing document")
	cmd.Flags().StringVar(&mode, "mode", "", "File permissions in octal (default 0600)")
	return cmd
}

func newEntropyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "entropy",
		Short: "Show the entropy encoded by a diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, alpha, err := opts.load()
			if err != nil {
				return err
			}
			ent, err := pkg.DiagramEntropy(d, alpha)
			if err != nil {
				return err
			}
			defer utils.Wipe(ent)

			radix := entropy.CodePoints.Radix()
			if alpha != nil {
				radix = alpha.Radix()
			}
			p := printer{w: cmd.OutOrStdout()}
			p.field("Cells", d.Len())
			p.field("Bits", entropy.Bits(d.Len(), radix))
			p.secret("Entropy", hex.EncodeToString(ent))
			return nil
		},
	}
}

func newMnemonicCmd(opts *options) *cobra.Command {
	var (
		lang  string
		words int
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Derive a BIP39 mnemonic",
		RunE: withGenerator(opts, func(g *pkg.Generator, p printer) error {
			l, err := encode.ParseLanguage(lang)
			if err != nil {
				return err
			}
			if list {
				ms, err := g.MnemonicList(l, opts.index)
				if err != nil {
					return err
				}
				for _, m := range ms {
					p.secret(fmt.Sprintf("%d words", len(m.Words)), m.String())
				}
				return nil
			}
			m, err := g.Mnemonic(l, words, opts.index)
			if err != nil {
				return err
			}
			p.secret("Mnemonic", m.String())
			return nil
		}),
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "english", "Wordlist language")
	cmd.Flags().IntVarP(&words, "words", "w", 24, "Word count (12, 15, 18, 21, 24)")
	cmd.Flags().BoolVar(&list, "list", false, "Show every word count from the 24-word entropy")
	return cmd
}

func newWIFCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "wif",
		Short: "Derive a WIF private key",
		RunE: withGenerator(opts, func(g *pkg.Generator, p printer) error {
			k, err := g.WIF(opts.index)
			if err != nil {
				return err
			}
			p.secret("WIF", k.WIF)
			p.field("Address", k.Address)
			return nil
		}),
	}
}

func newXPRVCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "xprv",
		Short: "Derive an extended private key",
		RunE: withGenerator(opts, func(g *pkg.Generator, p printer) error {
			k, err := g.XPRV(opts.index)
			if err != nil {
				return err
			}
			defer k.Zero()
			p.secret("XPRV", k.String())
			return nil
		}),
	}
}

func newPasswordCmd(opts *options) *cobra.Command {
	var (
		charset string
		length  int
	)

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Derive a password",
		RunE: withGenerator(opts, func(g *pkg.Generator, p printer) error {
			cs, err := encode.ParseCharset(charset)
			if err != nil {
				return err
			}
			pwd, err := g.Password(cs, length, opts.index)
			if err != nil {
				return err
			}
			p.secret("Password", pwd)
			return nil
		}),
	}

	cmd.Flags().StringVar(&charset, "charset", "legacy", "Charset (legacy, distinct, emoji, mixture, unicode)")
	cmd.Flags().IntVar(&length, "length", 20, "Password length in characters")
	return cmd
}

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every artifact round trips",
		RunE: withGenerator(opts, func(g *pkg.Generator, p printer) error {
			level := opts.logLevel
			if level == "" {
				level = "info"
			}
			logger := logging.NewLogger("glyphseed-verify", level, nil)
			if err := pkg.VerifyArtifactsWithLogger(g, opts.index, logger); err != nil {
				return err
			}
			p.note("✓ all artifacts verified")
			return nil
		}),
	}
}

func newBIP38Cmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bip38",
		Short: "Protect WIF keys with a passphrase",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encrypt <wif>",
		Short: "Encrypt a WIF key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := bip38.Encrypt(args[0], opts.passphrase)
			if err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.field("Encrypted", out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decrypt <key>",
		Short: "Decrypt a BIP38 key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wif, err := bip38.Decrypt(args[0], opts.passphrase)
			if err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.secret("WIF", wif)
			return nil
		},
	})
	return cmd
}

func newBIP39Cmd(opts *options) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "bip39 <words...>",
		Short: "Show the BIP32 master key of a mnemonic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := opts.net()
			if err != nil {
				return err
			}
			m, err := parseMnemonic(strings.Join(args, " "), lang)
			if err != nil {
				return err
			}
			master, err := m.Master(opts.passphrase, net)
			if err != nil {
				return err
			}
			defer master.Zero()

			p := printer{w: cmd.OutOrStdout()}
			p.field("Language", m.Language)
			p.secret("XPRV", master.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Wordlist language (detected when empty)")
	return cmd
}

// parseMnemonic detects the wordlist unless lang names one.
func parseMnemonic(sentence, lang string) (*encode.Mnemonic, error) {
	if lang == "" {
		return encode.ParseMnemonic(sentence)
	}
	l, err := encode.ParseLanguage(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidArgs, err)
	}
	return encode.ParseMnemonicIn(sentence, l)
}

func newAppsCmd(opts *options) *cobra.Command {
	var (
		lang    string
		words   int
		length  int
		charset string
	)

	cmd := &cobra.Command{
		Use:   "apps [name|id]",
		Short: "List BIP85 applications and their derivation paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apps := bip85.Applications()
			if len(args) == 1 {
				app, err := lookupApp(args[0])
				if err != nil {
					return fmt.Errorf("%w: %w", errInvalidArgs, err)
				}
				apps = []bip85.Application{app}
			}

			l, err := encode.ParseLanguage(lang)
			if err != nil {
				return fmt.Errorf("%w: %w", errInvalidArgs, err)
			}
			cs, err := encode.ParseCharset(charset)
			if err != nil {
				return fmt.Errorf("%w: %w", errInvalidArgs, err)
			}
			params := bip85.Params{Language: l, Words: words, Length: length, Charset: cs, Index: opts.index}

			p := printer{w: cmd.OutOrStdout()}
			for _, app := range apps {
				path, err := app.Path(params)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", errInvalidArgs, app.Name(), err)
				}
				p.field(app.Name(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "english", "Mnemonic language")
	cmd.Flags().IntVar(&words, "words", 24, "Mnemonic word count")
	cmd.Flags().IntVar(&length, "length", 20, "Password length in characters")
	cmd.Flags().StringVar(&charset, "charset", "legacy", "Password charset")
	return cmd
}

// lookupApp resolves an application by numeric ID or by name.
func lookupApp(s string) (bip85.Application, error) {
	if id, err := strconv.ParseUint(s, 10, 32); err == nil {
		return bip85.Get(uint32(id))
	}
	return bip85.Lookup(s)
}
