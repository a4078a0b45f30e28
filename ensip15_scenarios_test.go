package ensip15_test

import (
	"testing"

	"github.com/ensnorm/ensip15"
)

// scenario is one worked input/output pair: either Normalize succeeds
// and produces want, or it fails and the error's dynamic type matches
// wantErr.
type scenario struct {
	name    string
	in      string
	want    string
	wantErr interface{} // nil, or a pointer to a concrete error type
}

// TestScenarios runs the worked Normalize seeds: case mapping, the
// ACE-prefix carve-out, label extension, fenced-punctuation placement
// (trailing hyphen run, consecutive-interior, leading), NFC
// composition, same-script acceptance and confusable rejection, emoji
// preservation, and empty-label detection (both at the string's own
// start and mid-string). The beautify seed is covered separately by
// TestScenarioBeautifyAddsBackFE0F.
func TestScenarios(t *testing.T) {
	cyrillicA := string(rune(0x0430)) // а, Cyrillic, confusable with Latin a

	scenarios := []scenario{
		{
			name: "case mapping",
			in:   "Hello.ETH",
			want: "hello.eth",
		},
		{
			// "xn--" at positions 0-3 is the ACE/Punycode prefix, not a
			// label extension, even though positions 2-3 read "--".
			name: "ACE prefix is not a label extension",
			in:   "xn--ls8h.eth",
			want: "xn--ls8h.eth",
		},
		{
			name:    "label extension at positions 3-4",
			in:      "ab--cd",
			wantErr: &ensip15.LabelExtensionError{},
		},
		{
			name: "trailing hyphen run tolerated",
			in:   "abc---",
			want: "abc---",
		},
		{
			name:    "consecutive interior fenced characters rejected",
			in:      "a''b",
			wantErr: &ensip15.ConsecutiveFencedError{},
		},
		{
			name:    "leading fenced character rejected",
			in:      "'abc",
			wantErr: &ensip15.LeadingFencedError{},
		},
		{
			name: "NFC composes a decomposed sequence",
			in:   "cafe" + string(rune(0x0301)) + ".eth",
			want: "caf" + string(rune(0xE9)) + ".eth",
		},
		{
			name: "same script, accepted",
			in:   "paypal",
			want: "paypal",
		},
		{
			// Swapping the Latin 'a' for the confusable Cyrillic а mixes
			// scripts before a single resolved group is ever reached, so
			// this fails as MixedScript rather than WholeConfusable; both
			// are acceptable rejections for a visually-confusable swap.
			name:    "confusable substitution rejected",
			in:      "p" + cyrillicA + "ypal",
			wantErr: &ensip15.MixedScriptError{},
		},
		{
			name: "emoji with modifier preserved",
			in:   string([]rune{0x1F44D, 0x1F3FB}), // 👍🏻 thumbs up + light skin tone
			want: string([]rune{0x1F44D, 0x1F3FB}),
		},
		{
			name:    "empty input is an empty label",
			in:      "",
			wantErr: &ensip15.EmptyLabelError{},
		},
		{
			name:    "empty label mid-name",
			in:      "a..",
			wantErr: &ensip15.EmptyLabelError{},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			got, err := ensip15.Normalize(s.in)
			if s.wantErr == nil {
				if err != nil {
					t.Fatalf("Normalize(%q): unexpected error: %v", s.in, err)
				}
				if got != s.want {
					t.Errorf("Normalize(%q) = %q, want %q", s.in, got, s.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("Normalize(%q): expected error, got %q", s.in, got)
			}
			wantType := wantErrorType(s.wantErr)
			if gotType := errorType(err); gotType != wantType {
				t.Errorf("Normalize(%q): got error type %s, want %s", s.in, gotType, wantType)
			}
		})
	}
}

// TestScenarioEmptyLabelIndexing confirms the empty-label error carries
// the index of the first empty label, not merely "some label was
// empty" — "" is itself a single empty label at index 0, while "a.."
// reports index 1, the first of its two trailing empty labels.
func TestScenarioEmptyLabelIndexing(t *testing.T) {
	_, err := ensip15.Normalize("")
	elErr, ok := err.(*ensip15.EmptyLabelError)
	if !ok {
		t.Fatalf("Normalize(\"\"): got %T, want *EmptyLabelError", err)
	}
	if elErr.LabelIndex != 0 {
		t.Errorf("LabelIndex = %d, want 0", elErr.LabelIndex)
	}

	_, err = ensip15.Normalize("a..")
	elErr, ok = err.(*ensip15.EmptyLabelError)
	if !ok {
		t.Fatalf("Normalize(\"a..\"): got %T, want *EmptyLabelError", err)
	}
	if elErr.LabelIndex != 1 {
		t.Errorf("LabelIndex = %d, want 1", elErr.LabelIndex)
	}
}

// TestScenarioBeautifyAddsBackFE0F: the bundle's man-technologist
// sequence carries no FE0F-qualified variant to beautify toward, so
// this exercises the same add-back-FE0F behavior on the thumbs-up
// emoji, which does have one — Beautify of an unqualified thumbs up
// produces the fully FE0F-qualified form, matching display
// conventions the way a receiving application would render it.
func TestScenarioBeautifyAddsBackFE0F(t *testing.T) {
	got, err := ensip15.Beautify(string(rune(0x1F44D)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := string([]rune{0x1F44D, 0xFE0F})
	if got != want {
		t.Errorf("Beautify(thumbs up) = %v, want %v (FE0F-qualified)", []rune(got), []rune(want))
	}
}

func wantErrorType(wantErr interface{}) string {
	return errorType(wantErr.(error))
}

func errorType(err error) string {
	switch err.(type) {
	case *ensip15.DisallowedError:
		return "DisallowedError"
	case *ensip15.EmptyLabelError:
		return "EmptyLabelError"
	case *ensip15.LeadingFencedError:
		return "LeadingFencedError"
	case *ensip15.TrailingFencedError:
		return "TrailingFencedError"
	case *ensip15.ConsecutiveFencedError:
		return "ConsecutiveFencedError"
	case *ensip15.LabelExtensionError:
		return "LabelExtensionError"
	case *ensip15.MixedScriptError:
		return "MixedScriptError"
	case *ensip15.WholeConfusableError:
		return "WholeConfusableError"
	case *ensip15.CombiningMarkFirstError:
		return "CombiningMarkFirstError"
	case *ensip15.CombiningMarkAfterEmojiError:
		return "CombiningMarkAfterEmojiError"
	case *ensip15.CombiningMarkNotAllowedInGroupError:
		return "CombiningMarkNotAllowedInGroupError"
	case *ensip15.NsmTooManyError:
		return "NsmTooManyError"
	case *ensip15.NsmDuplicateError:
		return "NsmDuplicateError"
	default:
		return "unknown"
	}
}
