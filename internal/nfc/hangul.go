package nfc

// Algorithmic Hangul composition, per Unicode §3.12. Ported from a
// font shaper's Jamo composition arithmetic, generalized from
// "compose if the font has a glyph for the result" to "compose
// unconditionally", since NFC has no font dependency.
const (
	hangulLBase  rune = 0x1100
	hangulVBase  rune = 0x1161
	hangulTBase  rune = 0x11A7
	hangulSBase  rune = 0xAC00
	hangulLCount      = 19
	hangulVCount      = 21
	hangulTCount      = 28
	hangulNCount      = hangulVCount * hangulTCount // 588
	hangulSCount      = hangulLCount * hangulNCount // 11172
)

func isHangulL(r rune) bool { return r >= hangulLBase && r < hangulLBase+hangulLCount }
func isHangulV(r rune) bool { return r >= hangulVBase && r < hangulVBase+hangulVCount }
func isHangulT(r rune) bool { return r > hangulTBase && r < hangulTBase+hangulTCount }
func isHangulS(r rune) bool { return r >= hangulSBase && r < hangulSBase+hangulSCount }

// hangulDecompose decomposes a precomposed Hangul syllable into its
// leading, vowel, and (optional) trailing jamo. t is 0 when the
// syllable has no trailing consonant.
func hangulDecompose(r rune) (l, v, t rune, ok bool) {
	if !isHangulS(r) {
		return 0, 0, 0, false
	}
	sIndex := r - hangulSBase
	l = hangulLBase + sIndex/hangulNCount
	v = hangulVBase + (sIndex%hangulNCount)/hangulTCount
	tIndex := sIndex % hangulTCount
	if tIndex == 0 {
		return l, v, 0, true
	}
	t = hangulTBase + tIndex
	return l, v, t, true
}

// hangulCompose composes a starter (L, or an LV syllable) with a
// following jamo (V, or T), returning the composed syllable.
func (e *Engine) hangulCompose(starter, next rune) (rune, bool) {
	if isHangulL(starter) && isHangulV(next) {
		lIndex := starter - hangulLBase
		vIndex := next - hangulVBase
		return hangulSBase + (lIndex*hangulVCount+vIndex)*hangulTCount, true
	}
	if isHangulS(starter) && isHangulT(next) {
		sIndex := starter - hangulSBase
		if sIndex%hangulTCount == 0 {
			tIndex := next - hangulTBase
			return starter + tIndex, true
		}
	}
	return 0, false
}
