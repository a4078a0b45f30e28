// Package nfc implements Unicode Normalization Form C: quick-check,
// canonical decomposition (including algorithmic Hangul
// decomposition), canonical-order reordering, and recomposition. The
// decompose/reorder/recompose structure and the stable insertion sort
// over combining-class runs are ported from a font-shaping engine's
// normalization pass, generalized here to run unconditionally (that
// engine only composed when a font glyph existed for the result; NFC
// has no such dependency).
package nfc

import "github.com/ensnorm/ensip15/internal/tables"

// Engine holds the indexed NFC tables and exposes the full pipeline as
// well as its individual phases, for testing and for selective use by
// the tokenizer.
type Engine struct {
	tb        tables.NFC
	composeOf map[[2]rune]rune
}

// New builds an Engine from the static NFC tables. The composition map
// is the inverse of the decomposition table, excluding any codepoint
// listed in tb.Exclusions and any decomposition that is not a
// canonical pair (singleton decompositions never recompose).
func New(tb tables.NFC) *Engine {
	e := &Engine{tb: tb, composeOf: make(map[[2]rune]rune, len(tb.Decomp))}
	for src, seq := range tb.Decomp {
		if len(seq) != 2 {
			continue
		}
		if tb.Exclusions[src] {
			continue
		}
		e.composeOf[[2]rune{seq[0], seq[1]}] = src
	}
	return e
}

// QuickCheck reports whether cps contains any codepoint in the table's
// qc set, or any Hangul jamo/syllable (whose decomposition/composition
// is algorithmic and never appears in the table). If it returns false,
// Normalize(cps) is guaranteed to be a no-op and callers may skip it
// entirely.
func (e *Engine) QuickCheck(cps []rune) bool {
	for _, r := range cps {
		if e.tb.QC[r] {
			return true
		}
		if isHangulL(r) || isHangulV(r) || isHangulT(r) || isHangulS(r) {
			return true
		}
	}
	return false
}

// CombiningClass returns the canonical combining class of r: the
// table's rank if present, or 0 (starter) otherwise. Hangul jamo are
// not in the table and so report 0.
func (e *Engine) CombiningClass(r rune) uint8 {
	if c, ok := e.tb.Ranks[r]; ok {
		return c
	}
	return 0
}

// Normalize runs the full NFC pipeline over cps: quick-check
// short-circuit, decompose, reorder, compose.
func (e *Engine) Normalize(cps []rune) []rune {
	if !e.QuickCheck(cps) {
		return cps
	}
	d := e.Decompose(cps)
	e.Reorder(d)
	return e.Compose(d)
}

// Decompose replaces each codepoint with its canonical decomposition,
// recursively, until no further decomposition applies. Hangul
// syllables in [hangulSBase, hangulSBase+hangulSCount) are decomposed
// algorithmically to their L/V[/T] jamo rather than via the table.
func (e *Engine) Decompose(cps []rune) []rune {
	out := make([]rune, 0, len(cps))
	for _, r := range cps {
		out = e.appendDecomposed(out, r)
	}
	return out
}

func (e *Engine) appendDecomposed(out []rune, r rune) []rune {
	if l, v, t, ok := hangulDecompose(r); ok {
		out = append(out, l, v)
		if t != 0 {
			out = append(out, t)
		}
		return out
	}
	seq, ok := e.tb.Decomp[r]
	if !ok {
		return append(out, r)
	}
	for _, c := range seq {
		out = e.appendDecomposed(out, c)
	}
	return out
}

// Reorder stable-sorts each maximal run of non-starters (combining
// class > 0) by combining class, via insertion sort: runs are short in
// practice and insertion sort is stable without extra bookkeeping.
func (e *Engine) Reorder(cps []rune) {
	n := len(cps)
	i := 0
	for i < n {
		if e.CombiningClass(cps[i]) == 0 {
			i++
			continue
		}
		start := i
		for i < n && e.CombiningClass(cps[i]) != 0 {
			i++
		}
		e.sortRun(cps[start:i])
	}
}

func (e *Engine) sortRun(run []rune) {
	for i := 1; i < len(run); i++ {
		ci := e.CombiningClass(run[i])
		j := i
		for j > 0 && e.CombiningClass(run[j-1]) > ci {
			j--
		}
		if i == j {
			continue
		}
		v := run[i]
		copy(run[j+1:i+1], run[j:i])
		run[j] = v
	}
}

// Compose scans left to right, combining the current starter with each
// following character via the composition map. A candidate is blocked
// if a non-starter left uncomposed since the current starter had a
// combining class greater than or equal to its own (the standard
// canonical-ordering blocking rule). For a starter candidate this means
// any intervening non-starter blocks it, so starter-with-starter
// composition — required for Hangul L+V and LV+T — applies only when
// the two are adjacent.
// Hangul composition is algorithmic; everything else goes through the
// composition map built in New.
func (e *Engine) Compose(cps []rune) []rune {
	if len(cps) < 2 {
		return cps
	}
	out := make([]rune, 0, len(cps))
	out = append(out, cps[0])
	starter := 0
	maxInterveningClass := int(-1)

	for i := 1; i < len(cps); i++ {
		cc := e.CombiningClass(cps[i])
		blocked := maxInterveningClass >= int(cc)
		if !blocked {
			if composed, ok := e.hangulCompose(out[starter], cps[i]); ok {
				out[starter] = composed
				continue
			}
			if composed, ok := e.composeOf[[2]rune{out[starter], cps[i]}]; ok {
				out[starter] = composed
				continue
			}
		}
		out = append(out, cps[i])
		if cc == 0 {
			starter = len(out) - 1
			maxInterveningClass = -1
		} else if int(cc) > maxInterveningClass {
			maxInterveningClass = int(cc)
		}
	}
	return out
}
