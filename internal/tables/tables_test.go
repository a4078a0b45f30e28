package tables

import "testing"

func minimalBundle() Bundle {
	return Bundle{
		Groups: []GroupSpec{
			{Name: "Latin", Primary: []rune{'a', 'b', 'c'}},
		},
		Mapped: map[string][]int{"65": {'a'}},
		NSMMax: 4,
	}
}

func TestBuildValidBundle(t *testing.T) {
	tb, err := Build(minimalBundle())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !tb.Valid['a'] {
		t.Error("expected 'a' to be valid via group primary")
	}
	if got := tb.Mapped['A']; string(got) != "a" {
		t.Errorf("Mapped['A'] = %q, want %q", string(got), "a")
	}
}

func TestBuildRejectsWrongNSMMax(t *testing.T) {
	b := minimalBundle()
	b.NSMMax = 2
	if _, err := Build(b); err == nil {
		t.Fatal("expected error for nsm_max != 4")
	}
}

func TestBuildRejectsMappedValidOverlap(t *testing.T) {
	b := minimalBundle()
	b.Mapped["97"] = []int{'b'} // 'a' is already valid via group primary
	if _, err := Build(b); err == nil {
		t.Fatal("expected error for codepoint both mapped and valid")
	}
}

func TestBuildRejectsStopAsMappingTarget(t *testing.T) {
	b := minimalBundle()
	b.Mapped["100"] = []int{'.'} // 'd' -> stop, and stop is never valid/fenced
	if _, err := Build(b); err == nil {
		t.Fatal("expected error for mapping target not in valid ∪ fenced")
	}
}

func TestBuildRejectsUnknownWholeTargetGroup(t *testing.T) {
	b := minimalBundle()
	b.Wholes = []WholeSpec{{Target: "Nonexistent", Shared: []rune{'a'}}}
	if _, err := Build(b); err == nil {
		t.Fatal("expected error for unknown whole-confusable target group")
	}
}

func TestBuildRejectsBadDecompLength(t *testing.T) {
	b := minimalBundle()
	b.NFC = NFCSpec{Decomp: map[string][]int{"97": {1, 2, 3}}}
	if _, err := Build(b); err == nil {
		t.Fatal("expected error for decomposition of length 3")
	}
}

func TestDefaultBundleBuilds(t *testing.T) {
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables returned error: %v", err)
	}
	if len(tb.Groups) == 0 {
		t.Error("expected at least one script group in the default bundle")
	}
	if !tb.Valid['a'] {
		t.Error("expected 'a' valid in the default bundle")
	}
}
