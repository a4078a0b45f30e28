// Package pipeline implements the tokenizer: the orchestration that
// turns raw input codepoints into the label/token stream the
// validator and facade consume. It never fails — malformed input
// surfaces as Disallowed tokens.
package pipeline

import (
	"github.com/ensnorm/ensip15/internal/classify"
	"github.com/ensnorm/ensip15/internal/emoji"
	"github.com/ensnorm/ensip15/internal/nfc"
	"github.com/ensnorm/ensip15/internal/tables"
	"github.com/ensnorm/ensip15/internal/token"
)

// Tokenize runs the full pipeline over cps: emoji/classifier
// segmentation, collapse, selective NFC, and label split on stops.
func Tokenize(tb *tables.Tables, tr *emoji.Trie, eng *nfc.Engine, cps []rune) []*token.Label {
	toks := segment(tb, tr, cps)
	toks = collapse(toks)
	toks = selectiveNFC(eng, toks)
	return split(toks)
}

// segment does longest-match emoji segmentation at every position,
// falling back to per-codepoint classification.
func segment(tb *tables.Tables, tr *emoji.Trie, cps []rune) []token.Token {
	var out []token.Token
	for i := 0; i < len(cps); {
		if seq, n, ok := tr.Match(cps, i); ok {
			out = append(out, token.Token{
				Kind:      token.Emoji,
				Cps:       append([]rune(nil), cps[i:i+n]...),
				Canonical: seq.Canonical,
				NoFE0F:    seq.NoFE0F,
				Offset:    i,
			})
			i += n
			continue
		}
		r := cps[i]
		res := classify.Classify(tb, r)
		switch res.Class {
		case classify.Stop:
			out = append(out, token.Token{Kind: token.Stop, Cps: []rune{r}, Offset: i})
		case classify.Valid:
			out = append(out, token.Token{Kind: token.Valid, Cps: []rune{r}, Offset: i})
		case classify.Mapped:
			out = append(out, token.Token{Kind: token.Mapped, Cps: []rune{r}, MappedTo: res.Mapped, Offset: i})
		case classify.Ignored:
			out = append(out, token.Token{Kind: token.Ignored, Cps: []rune{r}, Offset: i})
		default:
			out = append(out, token.Token{Kind: token.Disallowed, Cps: []rune{r}, Offset: i})
		}
		i++
	}
	return out
}

// collapse merges every maximal run of {valid, mapped} into a single
// valid token, dropping ignored tokens. Emoji, stop, and disallowed
// tokens are boundaries.
func collapse(toks []token.Token) []token.Token {
	var out []token.Token
	var run []rune
	runOffset := -1
	flush := func() {
		if run != nil {
			out = append(out, token.Token{Kind: token.Valid, Cps: run, Offset: runOffset})
			run = nil
			runOffset = -1
		}
	}
	for _, t := range toks {
		switch t.Kind {
		case token.Valid:
			if runOffset < 0 {
				runOffset = t.Offset
			}
			run = append(run, t.Cps...)
		case token.Mapped:
			if runOffset < 0 {
				runOffset = t.Offset
			}
			run = append(run, t.MappedTo...)
		case token.Ignored:
			// dropped silently
		default:
			flush()
			out = append(out, t)
		}
	}
	flush()
	return out
}

// selectiveNFC normalizes each collapsed valid token's codepoints only
// if the token might need it (qc set), then re-collapses in case
// normalization produced a boundary-adjacent change; NFC never
// introduces new boundaries in practice since it only rewrites within
// one already-maximal valid run, but recollapsing keeps the invariant
// explicit rather than assumed.
func selectiveNFC(eng *nfc.Engine, toks []token.Token) []token.Token {
	changed := false
	for i := range toks {
		if toks[i].Kind != token.Valid {
			continue
		}
		if !eng.QuickCheck(toks[i].Cps) {
			continue
		}
		normalized := eng.Normalize(toks[i].Cps)
		toks[i].Cps = normalized
		changed = true
	}
	if !changed {
		return toks
	}
	return recollapseValidRuns(toks)
}

func recollapseValidRuns(toks []token.Token) []token.Token {
	var out []token.Token
	var run []rune
	runOffset := -1
	flush := func() {
		if run != nil {
			out = append(out, token.Token{Kind: token.Valid, Cps: run, Offset: runOffset})
			run = nil
			runOffset = -1
		}
	}
	for _, t := range toks {
		if t.Kind == token.Valid {
			if runOffset < 0 {
				runOffset = t.Offset
			}
			run = append(run, t.Cps...)
			continue
		}
		flush()
		out = append(out, t)
	}
	flush()
	return out
}

// split cuts the token stream at every stop token. Empty labels are
// retained; the validator rejects them.
func split(toks []token.Token) []*token.Label {
	labels := []*token.Label{{}}
	cur := labels[0]
	for _, t := range toks {
		if t.Kind == token.Stop {
			labels = append(labels, &token.Label{})
			cur = labels[len(labels)-1]
			continue
		}
		cur.Tokens = append(cur.Tokens, t)
		cur.InputCps = append(cur.InputCps, t.Cps...)
	}
	return labels
}
