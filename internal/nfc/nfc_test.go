package nfc

import (
	"testing"

	"github.com/ensnorm/ensip15/internal/tables"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	tb := tables.NFC{
		Decomp: map[rune][]rune{
			0xE9: {'e', 0x301}, // é -> e + acute
		},
		Ranks: map[rune]uint8{0x301: 230},
		QC:    map[rune]bool{0xE9: true, 0x301: true},
	}
	return New(tb)
}

func TestQuickCheck(t *testing.T) {
	e := testEngine(t)
	if !e.QuickCheck([]rune{'e', 0xE9}) {
		t.Error("expected QuickCheck true for input containing é")
	}
	if e.QuickCheck([]rune{'a', 'b', 'c'}) {
		t.Error("expected QuickCheck false for plain ASCII")
	}
}

func TestDecompose(t *testing.T) {
	e := testEngine(t)
	got := e.Decompose([]rune{0xE9})
	want := []rune{'e', 0x301}
	if string(got) != string(want) {
		t.Errorf("Decompose(é) = %v, want %v", got, want)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	e := testEngine(t)
	got := e.Normalize([]rune{0xE9})
	want := []rune{0xE9}
	if string(got) != string(want) {
		t.Errorf("Normalize(é) = %v, want %v (recompose)", got, want)
	}
}

func TestNormalizeComposesBareSequence(t *testing.T) {
	e := testEngine(t)
	got := e.Normalize([]rune{'e', 0x301})
	want := []rune{0xE9}
	if string(got) != string(want) {
		t.Errorf("Normalize(e + acute) = %v, want %v", got, want)
	}
}

func TestReorderStableByClass(t *testing.T) {
	tb := tables.NFC{
		Ranks: map[rune]uint8{0x327: 202, 0x301: 230},
		QC:    map[rune]bool{0x327: true, 0x301: true},
	}
	e := New(tb)
	cps := []rune{'c', 0x301, 0x327} // acute(230) then cedilla(202): must reorder
	e.Reorder(cps)
	want := []rune{'c', 0x327, 0x301}
	if string(cps) != string(want) {
		t.Errorf("Reorder = %v, want %v", cps, want)
	}
}

func TestComposeStopsWhenNoFurtherPairExists(t *testing.T) {
	tb := tables.NFC{
		Decomp: map[rune][]rune{0xE9: {'e', 0x301}},
		Ranks:  map[rune]uint8{0x301: 230},
	}
	e := New(tb)
	// e + acute composes to é; the trailing second acute has no
	// registered (é, acute) pair, so it remains a separate codepoint.
	cps := []rune{'e', 0x301, 0x301}
	out := e.Compose(cps)
	if len(out) != 2 || out[0] != 0xE9 || out[1] != 0x301 {
		t.Errorf("Compose = %v, want [é, U+0301]", out)
	}
}

func TestHangulDecomposeCompose(t *testing.T) {
	e := New(tables.NFC{})
	const han = 0xAC00 // 가 = L(0x1100) + V(0x1161)
	l, v, tt, ok := hangulDecompose(han)
	if !ok {
		t.Fatal("expected Hangul decomposition")
	}
	if l != 0x1100 || v != 0x1161 || tt != 0 {
		t.Errorf("got L=%U V=%U T=%U", l, v, tt)
	}
	got := e.Normalize([]rune{l, v})
	if len(got) != 1 || got[0] != han {
		t.Errorf("Normalize(L,V) = %v, want [%U]", got, han)
	}
}
