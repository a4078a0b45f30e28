// Package ensip15 implements ENSIP-15 name normalization: mapping
// arbitrary user-supplied strings to a canonical form suitable as an
// Ethereum Name Service identifier, rejecting input that would be
// visually confusable, structurally illegal, or mix incompatible
// scripts.
//
// The package exposes three operations: Normalize (canonicalize or
// fail), Beautify (like Normalize but preserving presentational
// variants suitable for display), and Tokenize (always-succeeding
// diagnostic decomposition). All three are pure functions of their
// input and the Profile's static tables; a Profile is safe for
// concurrent use once constructed.
package ensip15

import (
	"strings"

	"github.com/ensnorm/ensip15/internal/cp"
	"github.com/ensnorm/ensip15/internal/emoji"
	"github.com/ensnorm/ensip15/internal/nfc"
	"github.com/ensnorm/ensip15/internal/pipeline"
	"github.com/ensnorm/ensip15/internal/tables"
	"github.com/ensnorm/ensip15/internal/token"
	"github.com/ensnorm/ensip15/internal/validate"
)

const greekLowerXi rune = 0x03BE
const greekUpperXi rune = 0x039E
const greekGroupName = "Greek"

// options configures a Profile at construction time, following the
// functional-options shape of a well-known IDNA mapper.
type options struct {
	bundle *tables.Bundle
}

// Option configures a Profile at creation time.
type Option func(*options)

// WithBundle overrides the embedded default static-table bundle. Use
// this to run against a test fixture or an externally loaded bundle;
// this package does not load a Bundle from disk.
func WithBundle(b tables.Bundle) Option {
	return func(o *options) { o.bundle = &b }
}

// Profile is an immutable, constructed-once set of static tables plus
// the derived emoji trie and NFC engine the pipeline and validator
// need. The zero value is not usable; construct with New.
type Profile struct {
	tables *tables.Tables
	trie   *emoji.Trie
	nfc    *nfc.Engine
}

// New builds a Profile. All static data is constructed eagerly here,
// not lazily on first use, so a malformed bundle fails at
// construction rather than mid-traversal.
func New(opts ...Option) (*Profile, error) {
	o := &options{}
	for _, f := range opts {
		f(o)
	}
	var tb *tables.Tables
	var err error
	if o.bundle != nil {
		tb, err = tables.Build(*o.bundle)
	} else {
		tb, err = tables.DefaultTables()
	}
	if err != nil {
		return nil, err
	}
	return &Profile{
		tables: tb,
		trie:   emoji.Build(tb.Emoji),
		nfc:    nfc.New(tb.NFC),
	}, nil
}

// Default is the package-level Profile built from the embedded
// default bundle, backing the package-level convenience functions.
var Default = mustDefault()

func mustDefault() *Profile {
	p, err := New()
	if err != nil {
		panic("ensip15: embedded default bundle failed validation: " + err.Error())
	}
	return p
}

// Normalize canonicalizes s using the package-level Default profile.
func Normalize(s string) (string, error) { return Default.Normalize(s) }

// Beautify is Normalize, preserving presentational variants, using the
// package-level Default profile.
func Beautify(s string) (string, error) { return Default.Beautify(s) }

// Tokenize decomposes s for diagnostics using the package-level
// Default profile. Never fails.
func Tokenize(s string) []*token.Label { return Default.Tokenize(s) }

// InvalidUTF8Error reports malformed input bytes.
type InvalidUTF8Error = cp.InvalidUTF8Error

// The remaining error kinds are defined by the validator and
// re-exported here as the root package's public, closed error set.
type (
	DisallowedError                     = validate.DisallowedError
	EmptyLabelError                     = validate.EmptyLabelError
	LeadingFencedError                  = validate.LeadingFencedError
	TrailingFencedError                 = validate.TrailingFencedError
	ConsecutiveFencedError              = validate.ConsecutiveFencedError
	LabelExtensionError                 = validate.LabelExtensionError
	MixedScriptError                    = validate.MixedScriptError
	CombiningMarkFirstError             = validate.CombiningMarkFirstError
	CombiningMarkAfterEmojiError        = validate.CombiningMarkAfterEmojiError
	CombiningMarkNotAllowedInGroupError = validate.CombiningMarkNotAllowedInGroupError
	NsmTooManyError                     = validate.NsmTooManyError
	NsmDuplicateError                   = validate.NsmDuplicateError
	WholeConfusableError                = validate.WholeConfusableError
)

// Normalize runs the full pipeline and validator over s, returning the
// canonical string or the first validation failure.
func (p *Profile) Normalize(s string) (string, error) {
	labels, err := p.process(s)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(labels))
	for i, lbl := range labels {
		parts[i] = renderLabel(lbl, false)
	}
	return strings.Join(parts, "."), nil
}

// Beautify is Normalize except emoji render from their FE0F-qualified
// canonical form, and U+03BE (ξ) is replaced with U+039E (Ξ) outside
// both emoji token spans and labels whose resolved group is Greek.
func (p *Profile) Beautify(s string) (string, error) {
	labels, err := p.process(s)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(labels))
	for i, lbl := range labels {
		parts[i] = renderLabel(lbl, true)
	}
	return strings.Join(parts, "."), nil
}

// Tokenize returns the pipeline's token stream before validation. It
// never fails: malformed UTF-8 decodes leniently (replacement runes
// become disallowed tokens) rather than aborting.
func (p *Profile) Tokenize(s string) []*token.Label {
	cps := cp.DecodeLenient(s)
	return pipeline.Tokenize(p.tables, p.trie, p.nfc, cps)
}

// process decodes s strictly, tokenizes, and validates every label,
// returning the first failure: validation is fail-fast per label, and
// the facade is fail-fast across labels too — the first invalid label
// reported wins.
func (p *Profile) process(s string) ([]*token.Label, error) {
	cps, err := cp.Decode(s)
	if err != nil {
		return nil, err
	}
	labels := pipeline.Tokenize(p.tables, p.trie, p.nfc, cps)
	for i, lbl := range labels {
		if _, err := validate.Label(p.tables, p.nfc, lbl, i); err != nil {
			return nil, err
		}
	}
	return labels, nil
}

func renderLabel(lbl *token.Label, beautify bool) string {
	applyXi := beautify && lbl.Type != greekGroupName
	var b strings.Builder
	for _, t := range lbl.Tokens {
		var cps []rune
		if beautify {
			cps = t.FlattenBeautify()
		} else {
			cps = t.Flatten()
		}
		if applyXi && t.Kind != token.Emoji {
			for _, r := range cps {
				if r == greekLowerXi {
					b.WriteRune(greekUpperXi)
				} else {
					b.WriteRune(r)
				}
			}
			continue
		}
		b.WriteString(string(cps))
	}
	return b.String()
}
