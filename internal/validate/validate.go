// Package validate implements the per-label validator: eleven ordered,
// fail-fast checks running from a label's pipeline-produced tokens to
// its final script-group classification.
package validate

import (
	"github.com/ensnorm/ensip15/internal/nfc"
	"github.com/ensnorm/ensip15/internal/tables"
	"github.com/ensnorm/ensip15/internal/token"
)

// Result is the successful outcome of validating one label.
type Result struct {
	Type string // "ASCII", "Emoji", or a script group name
}

// Label runs the eleven checks against lbl, in order, returning the
// first failure. labelIndex is used only for the EmptyLabel error.
func Label(tb *tables.Tables, eng *nfc.Engine, lbl *token.Label, labelIndex int) (*Result, error) {
	cps := lbl.Cps()

	// 1. Empty label.
	if len(cps) == 0 {
		return nil, &EmptyLabelError{LabelIndex: labelIndex}
	}

	// 2. Disallowed token present.
	for _, t := range lbl.Tokens {
		if t.Kind == token.Disallowed {
			return nil, &DisallowedError{Cp: t.Cps[0], Offset: t.Offset}
		}
	}

	// 3. ASCII fast path: every codepoint is strictly in [a-z0-9-] and
	// there is no emoji token. A label that is ASCII-range but contains
	// some other ASCII character (e.g. a fenced punctuation mark) falls
	// through to the general checks below instead of being rejected
	// here, so that scenarios like a lone apostrophe are reported as
	// fenced-placement errors rather than a generic ASCII failure.
	if isStrictASCIILabel(lbl, cps) {
		if len(cps) >= 4 && cps[2] == '-' && cps[3] == '-' && !hasACEPrefix(cps) {
			return nil, &LabelExtensionError{Cps: append([]rune(nil), cps[:4]...)}
		}
		lbl.Type = "ASCII"
		return &Result{Type: "ASCII"}, nil
	}

	// 4. Emoji-only label.
	if allEmoji(lbl) {
		lbl.Type = "Emoji"
		return &Result{Type: "Emoji"}, nil
	}

	// 5. Fenced check.
	if err := checkFenced(tb, cps); err != nil {
		return nil, err
	}

	units := buildUnits(tb, eng, cps, lbl)

	// 6-7. Script-group resolution over the flattened, emoji-marked
	// sequence. Combining marks are excluded from candidate narrowing
	// here: a group's cm set (not its primary/secondary sets) governs
	// which marks it allows, checked separately in step 8 below.
	group, err := resolveGroup(tb, units)
	if err != nil {
		return nil, err
	}

	// 8. Combining-mark rules.
	if err := checkCombiningMarks(eng, group, units); err != nil {
		return nil, err
	}

	// 9. NSM rules.
	if group.CheckNSM {
		if err := checkNSM(tb, cps); err != nil {
			return nil, err
		}
	}

	// 10. Whole-confusable check.
	if err := checkWholeConfusable(tb, group, cps); err != nil {
		return nil, err
	}

	// 11. Assign type.
	lbl.Type = group.Name
	return &Result{Type: group.Name}, nil
}

func isStrictASCIILabel(lbl *token.Label, cps []rune) bool {
	for _, t := range lbl.Tokens {
		if t.Kind == token.Emoji {
			return false
		}
	}
	for _, r := range cps {
		if !isASCIILabelChar(r) {
			return false
		}
	}
	return true
}

func isASCIILabelChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

// hasACEPrefix reports whether cps begins with the ASCII-Compatible
// Encoding prefix "xn--". cps has already passed through mapping, so
// the prefix can only ever appear lowercase here; the explicit
// upper-case check stays only as a guard against a caller handing
// Label unmapped cps directly.
func hasACEPrefix(cps []rune) bool {
	return len(cps) >= 4 &&
		(cps[0] == 'x' || cps[0] == 'X') &&
		(cps[1] == 'n' || cps[1] == 'N') &&
		cps[2] == '-' && cps[3] == '-'
}

func allEmoji(lbl *token.Label) bool {
	for _, t := range lbl.Tokens {
		if t.Kind != token.Emoji {
			return false
		}
	}
	return len(lbl.Tokens) > 0
}

// checkFenced rejects a label that starts or ends with fenced
// punctuation, or that contains a run of two or more consecutive
// fenced codepoints anywhere. A single interior fenced codepoint (not
// touching either edge) is tolerated — e.g. a lone apostrophe in
// "it's" — but two in a row, such as "a''b", are not: a run length of
// one is the only tolerated interior case.
func checkFenced(tb *tables.Tables, cps []rune) error {
	last := len(cps) - 1
	if tb.Fenced[cps[0]] {
		return &LeadingFencedError{Cp: cps[0]}
	}
	if tb.Fenced[cps[last]] {
		return &TrailingFencedError{Cp: cps[last]}
	}
	for i := 1; i < last; {
		if !tb.Fenced[cps[i]] {
			i++
			continue
		}
		j := i
		for j < last && tb.Fenced[cps[j]] {
			j++
		}
		if j-i > 1 {
			return &ConsecutiveFencedError{Cps: append([]rune(nil), cps[i:j]...)}
		}
		i = j
	}
	return nil
}

// unit is one position in a label's flattened-for-script-check view:
// either a real codepoint, or a single marker standing in for an
// entire emoji token.
type unit struct {
	cp         rune
	isEmoji    bool
	isMark     bool // non-zero combining class: excluded from script-group narrowing
	isFenced   bool // universally-allowed punctuation: excluded from script-group narrowing
	afterEmoji bool // true if the token immediately preceding this one was emoji
}

func buildUnits(tb *tables.Tables, eng *nfc.Engine, cps []rune, lbl *token.Label) []unit {
	units := make([]unit, 0, len(cps))
	prevWasEmoji := false
	for _, t := range lbl.Tokens {
		switch t.Kind {
		case token.Emoji:
			units = append(units, unit{isEmoji: true})
			prevWasEmoji = true
		case token.Valid:
			for i, r := range t.Flatten() {
				units = append(units, unit{
					cp:         r,
					isMark:     eng.CombiningClass(r) != 0,
					isFenced:   tb.Fenced[r],
					afterEmoji: i == 0 && prevWasEmoji,
				})
			}
			prevWasEmoji = false
		}
	}
	return units
}

// resolveGroup narrows the set of candidate script groups by
// progressive intersection over the script-identifying codepoints
// only — emoji markers, combining marks, and universally-allowed
// fenced punctuation carry no script identity of their own.
func resolveGroup(tb *tables.Tables, units []unit) (*tables.Group, error) {
	var candidates map[string]bool
	var lastGroupName string

	for _, u := range units {
		if u.isEmoji || u.isMark || u.isFenced {
			continue
		}
		groupsFor := groupsContaining(tb, u.cp)
		if candidates == nil {
			candidates = groupsFor
			continue
		}
		next := intersect(candidates, groupsFor)
		if len(next) == 0 {
			prior := lastGroupName
			if prior == "" {
				prior = firstOf(candidates)
			}
			return nil, &MixedScriptError{Cp: u.cp, PriorGroup: prior}
		}
		candidates = next
		lastGroupName = firstOf(candidates)
	}

	if len(candidates) == 0 {
		// No script-identifying codepoint: the label holds only emoji,
		// combining marks, and/or fenced punctuation. Fall back to the
		// first configured group; the mark checks that follow still apply.
		if len(tb.Groups) == 0 {
			return nil, &MixedScriptError{}
		}
		return tb.Groups[0], nil
	}

	for _, g := range tb.Groups {
		if candidates[g.Name] {
			return g, nil
		}
	}
	return nil, &MixedScriptError{}
}

func groupsContaining(tb *tables.Tables, r rune) map[string]bool {
	out := make(map[string]bool)
	for _, g := range tb.Groups {
		if g.Contains(r) {
			out[g.Name] = true
		}
	}
	return out
}

func intersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func firstOf(m map[string]bool) string {
	for k := range m {
		return k
	}
	return ""
}

// checkCombiningMarks enforces placement and group-membership rules
// for combining marks: none first, none immediately after an emoji,
// and membership in the resolved group's cm set otherwise.
func checkCombiningMarks(eng *nfc.Engine, group *tables.Group, units []unit) error {
	for i, u := range units {
		if u.isEmoji || eng.CombiningClass(u.cp) == 0 {
			continue
		}
		if group.CMAbsent {
			return &CombiningMarkNotAllowedInGroupError{Group: group.Name, Cp: u.cp}
		}
		if i == 0 {
			return &CombiningMarkFirstError{Cp: u.cp}
		}
		if u.afterEmoji {
			return &CombiningMarkAfterEmojiError{Cp: u.cp}
		}
		if !group.CM[u.cp] {
			return &CombiningMarkNotAllowedInGroupError{Group: group.Name, Cp: u.cp}
		}
	}
	return nil
}

// checkNSM enforces the non-spacing-mark run limits over the label's
// flattened codepoints (emoji contribute their no-FE0F codepoints,
// which are never members of the NSM set in practice, so runs
// naturally break at an emoji boundary).
func checkNSM(tb *tables.Tables, cps []rune) error {
	n := len(cps)
	i := 0
	for i < n {
		if !tb.NSM[cps[i]] {
			i++
			continue
		}
		start := i
		seen := make(map[rune]bool)
		for i < n && tb.NSM[cps[i]] {
			if seen[cps[i]] {
				return &NsmDuplicateError{Cp: cps[i]}
			}
			seen[cps[i]] = true
			i++
		}
		if i-start > tb.NSMMax {
			return &NsmTooManyError{Run: append([]rune(nil), cps[start:i]...)}
		}
	}
	return nil
}

// checkWholeConfusable rejects a label when the groups other than the
// resolved one that every confusable codepoint in it is shared with
// have a non-empty intersection, and every non-confusable codepoint
// also belongs to some group in that intersection.
func checkWholeConfusable(tb *tables.Tables, group *tables.Group, cps []rune) error {
	var candidates map[string]bool
	initialized := false
	hasConfusable := false

	for _, r := range cps {
		memberships, ok := tb.WholeIndex[r]
		if !ok {
			continue
		}
		hasConfusable = true
		groupsFor := make(map[string]bool)
		for _, m := range memberships {
			if m.Group != group.Name {
				groupsFor[m.Group] = true
			}
		}
		if !initialized {
			candidates = groupsFor
			initialized = true
		} else {
			candidates = intersect(candidates, groupsFor)
		}
	}

	if !hasConfusable || len(candidates) == 0 {
		return nil
	}

	for _, r := range cps {
		if _, confusable := tb.WholeIndex[r]; confusable {
			continue
		}
		if !belongsToAny(tb, candidates, r) {
			return nil
		}
	}

	return &WholeConfusableError{
		Group:    group.Name,
		AltGroup: firstOf(candidates),
		Skeleton: confusableSkeleton(tb, cps),
	}
}

// confusableSkeleton returns, in label order, every codepoint of cps
// that is itself a member of some whole-script-confusable shared set —
// the specific codepoints behind a WholeConfusableError, as opposed to
// just the resolved Group/AltGroup pair.
func confusableSkeleton(tb *tables.Tables, cps []rune) []rune {
	var out []rune
	for _, r := range cps {
		if _, ok := tb.WholeIndex[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

func belongsToAny(tb *tables.Tables, names map[string]bool, r rune) bool {
	for name := range names {
		g := tb.GroupByName[name]
		if g != nil && g.Contains(r) {
			return true
		}
	}
	return false
}
