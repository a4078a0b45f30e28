package validate

import (
	"fmt"

	"github.com/ensnorm/ensip15/internal/cp"
)

// The error types below are the validator's closed error set. Each
// renders embedded codepoints through cp.EscapeRuneString/EscapeLabel
// so a non-printable-ASCII codepoint always appears as {HEX}.

type DisallowedError struct {
	Cp     rune
	Offset int
}

func (e *DisallowedError) Error() string {
	return fmt.Sprintf("disallowed character %s at offset %d", cp.EscapeRuneString(e.Cp), e.Offset)
}

type EmptyLabelError struct {
	LabelIndex int
}

func (e *EmptyLabelError) Error() string {
	return fmt.Sprintf("empty label at index %d", e.LabelIndex)
}

type LeadingFencedError struct{ Cp rune }

func (e *LeadingFencedError) Error() string {
	return fmt.Sprintf("leading fenced character %s", cp.EscapeRuneString(e.Cp))
}

type TrailingFencedError struct{ Cp rune }

func (e *TrailingFencedError) Error() string {
	return fmt.Sprintf("trailing fenced character %s", cp.EscapeRuneString(e.Cp))
}

type ConsecutiveFencedError struct{ Cps []rune }

func (e *ConsecutiveFencedError) Error() string {
	return fmt.Sprintf("consecutive fenced characters %s", cp.EscapeLabel(e.Cps))
}

type LabelExtensionError struct{ Cps []rune }

func (e *LabelExtensionError) Error() string {
	return fmt.Sprintf("label extension (hyphens at positions 3-4): %s", cp.EscapeLabel(e.Cps))
}

type MixedScriptError struct {
	Cp         rune
	PriorGroup string
}

func (e *MixedScriptError) Error() string {
	return fmt.Sprintf("mixed script: %s is not in group %q", cp.EscapeRuneString(e.Cp), e.PriorGroup)
}

type CombiningMarkFirstError struct{ Cp rune }

func (e *CombiningMarkFirstError) Error() string {
	return fmt.Sprintf("combining mark %s at label start", cp.EscapeRuneString(e.Cp))
}

type CombiningMarkAfterEmojiError struct{ Cp rune }

func (e *CombiningMarkAfterEmojiError) Error() string {
	return fmt.Sprintf("combining mark %s immediately after emoji", cp.EscapeRuneString(e.Cp))
}

type CombiningMarkNotAllowedInGroupError struct {
	Group string
	Cp    rune
}

func (e *CombiningMarkNotAllowedInGroupError) Error() string {
	return fmt.Sprintf("combining mark %s not allowed in group %q", cp.EscapeRuneString(e.Cp), e.Group)
}

type NsmTooManyError struct{ Run []rune }

func (e *NsmTooManyError) Error() string {
	return fmt.Sprintf("too many consecutive non-spacing marks: %s", cp.EscapeLabel(e.Run))
}

type NsmDuplicateError struct{ Cp rune }

func (e *NsmDuplicateError) Error() string {
	return fmt.Sprintf("duplicate non-spacing mark %s in run", cp.EscapeRuneString(e.Cp))
}

type WholeConfusableError struct {
	Group    string
	AltGroup string

	// Skeleton is every codepoint in the label that is a member of any
	// whole-confusable shared-codepoint set, in label order. Populated
	// by confusableSkeleton; may contain duplicates if
	// the same confusable codepoint occurs more than once.
	Skeleton []rune
}

func (e *WholeConfusableError) Error() string {
	return fmt.Sprintf("whole-script confusable: label resolves to %q but is confusable with %q via %s",
		e.Group, e.AltGroup, cp.EscapeLabel(e.Skeleton))
}
