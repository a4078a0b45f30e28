// Package token defines the pipeline-internal token and label types:
// the tagged variant every pipeline stage (segmentation,
// classification, collapse, NFC, validation) shares.
package token

import (
	"fmt"
	"strings"

	"github.com/ensnorm/ensip15/internal/cp"
)

// Kind tags a Token's payload. After the pipeline completes, every
// Token in a label is Valid, Emoji, or Disallowed (Stop tokens are
// consumed by the label split); Mapped and Ignored appear only
// transiently during segmentation/collapse.
type Kind uint8

const (
	Valid Kind = iota
	Mapped
	Ignored
	Disallowed
	Emoji
	Stop
)

func (k Kind) String() string {
	switch k {
	case Valid:
		return "valid"
	case Mapped:
		return "mapped"
	case Ignored:
		return "ignored"
	case Disallowed:
		return "disallowed"
	case Emoji:
		return "emoji"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Token is the tagged variant produced by segmentation.
type Token struct {
	Kind Kind

	// Cps is the original input codepoints for this token (every kind).
	Cps []rune

	// MappedTo is the replacement sequence; set only for Kind == Mapped.
	MappedTo []rune

	// Canonical is the FE0F-qualified emoji form; set only for Kind == Emoji.
	Canonical []rune

	// NoFE0F is the Canonical form with FE0F removed; set only for Kind == Emoji.
	NoFE0F []rune

	// Offset is the codepoint offset of this token within the whole
	// input (all labels together), for diagnostics.
	Offset int
}

// Flatten returns the codepoints this token contributes to a label's
// final cps sequence: valid/mapped tokens contribute their payload,
// emoji contribute their no-FE0F form, stop/disallowed contribute
// nothing (so a label's Cps omits disallowed codepoints; the validator
// finds those by scanning the token list).
func (t Token) Flatten() []rune {
	switch t.Kind {
	case Valid:
		return t.Cps
	case Mapped:
		return t.MappedTo
	case Emoji:
		return t.NoFE0F
	default:
		return nil
	}
}

// FlattenBeautify is Flatten, except emoji tokens contribute their
// FE0F-qualified Canonical form instead of NoFE0F.
func (t Token) FlattenBeautify() []rune {
	if t.Kind == Emoji {
		return t.Canonical
	}
	return t.Flatten()
}

// String renders a diagnostic form of the token, escaping non-ASCII
// codepoints as {HEX}.
func (t Token) String() string {
	switch t.Kind {
	case Emoji:
		return fmt.Sprintf("emoji(%s)", cp.EscapeLabel(t.Canonical))
	case Disallowed:
		return fmt.Sprintf("disallowed(%s)", cp.EscapeLabel(t.Cps))
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, cp.EscapeLabel(t.Cps))
	}
}

// Label is a contiguous, stop-free run of tokens.
type Label struct {
	InputCps []rune
	Tokens   []Token

	// Type is assigned during validation: "ASCII", "Emoji", or a script
	// group name. Empty until validation runs.
	Type string
}

// Cps flattens the label's tokens into its final codepoint sequence.
func (l *Label) Cps() []rune {
	out := make([]rune, 0, len(l.InputCps))
	for _, t := range l.Tokens {
		out = append(out, t.Flatten()...)
	}
	return out
}

// String renders a diagnostic form of the label.
func (l *Label) String() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
