// Package classify implements the single-codepoint classifier: an
// O(1) lookup that returns the first matching class in the order
// stop, valid, mapped, ignored, disallowed.
package classify

import (
	"github.com/ensnorm/ensip15/internal/cp"
	"github.com/ensnorm/ensip15/internal/tables"
)

// Class is the classifier's verdict for a single codepoint.
type Class uint8

const (
	Stop Class = iota
	Valid
	Mapped
	Ignored
	Disallowed
)

// Result carries the classification plus, for Mapped, the replacement
// sequence.
type Result struct {
	Class   Class
	Mapped  []rune // only set when Class == Mapped
}

// Classify returns the first matching class for r. Codepoints above
// cp.MaxCodepoint or in the surrogate range are always Disallowed,
// regardless of table content.
func Classify(tb *tables.Tables, r rune) Result {
	if r == tables.Stop {
		return Result{Class: Stop}
	}
	if r < 0 || r > cp.MaxCodepoint || cp.IsSurrogate(r) {
		return Result{Class: Disallowed}
	}
	if tb.Valid[r] {
		return Result{Class: Valid}
	}
	if seq, ok := tb.Mapped[r]; ok {
		return Result{Class: Mapped, Mapped: seq}
	}
	if tb.Ignored[r] {
		return Result{Class: Ignored}
	}
	return Result{Class: Disallowed}
}
