package emoji

import "testing"

func TestMatchFullyQualified(t *testing.T) {
	tr := Build([][]rune{{0x1F44D, 0xFE0F}})
	cps := []rune{0x1F44D, 0xFE0F, 'x'}
	seq, n, ok := tr.Match(cps, 0)
	if !ok {
		t.Fatal("expected match")
	}
	if n != 2 {
		t.Errorf("consumed = %d, want 2", n)
	}
	if string(seq.NoFE0F) != string([]rune{0x1F44D}) {
		t.Errorf("NoFE0F = %v, want [0x1F44D]", seq.NoFE0F)
	}
}

func TestMatchUnqualifiedFE0FSkipped(t *testing.T) {
	tr := Build([][]rune{{0x1F44D, 0xFE0F}})
	cps := []rune{0x1F44D, 'x'}
	_, n, ok := tr.Match(cps, 0)
	if !ok {
		t.Fatal("expected match for unqualified form")
	}
	if n != 1 {
		t.Errorf("consumed = %d, want 1", n)
	}
}

func TestMatchLongestWins(t *testing.T) {
	tr := Build([][]rune{
		{0x1F468, 0x200D, 0x1F4BB},
		{0x1F468},
	})
	cps := []rune{0x1F468, 0x200D, 0x1F4BB}
	seq, n, ok := tr.Match(cps, 0)
	if !ok || n != 3 {
		t.Fatalf("expected longest match of length 3, got n=%d ok=%v", n, ok)
	}
	if len(seq.Canonical) != 3 {
		t.Errorf("Canonical length = %d, want 3", len(seq.Canonical))
	}
}

func TestMatchNone(t *testing.T) {
	tr := Build([][]rune{{0x1F44D}})
	cps := []rune{'a', 'b'}
	if _, _, ok := tr.Match(cps, 0); ok {
		t.Fatal("expected no match")
	}
}
