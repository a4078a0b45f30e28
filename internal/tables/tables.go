// Package tables builds the immutable static data the rest of the
// normalization pipeline reads: the mapping/ignored/valid/fenced sets,
// the NSM set, script groups, whole-confusable index, emoji sequence
// list, and NFC tables.
//
// Tables are constructed once, eagerly, from a Bundle — the raw,
// serialized form of that data — and never mutated afterward. Loading
// a Bundle from disk or any other external source is a collaborator's
// job; this package only validates and indexes whatever Bundle it is
// given.
package tables

import "fmt"

// GroupSpec is one script group, in Bundle form.
type GroupSpec struct {
	Name      string `json:"name"`
	Primary   []rune `json:"primary"`
	Secondary []rune `json:"secondary"`
	CM        []rune `json:"cm"`
	CMAbsent  bool   `json:"cm_absent"`
	CheckNSM  bool   `json:"check_nsm"`
}

// WholeSpec is one whole-confusable entry.
type WholeSpec struct {
	Target string `json:"target_group"`
	Shared []rune `json:"shared_codepoints"`
}

// NFCSpec is the raw NFC data.
type NFCSpec struct {
	Exclusions []rune           `json:"exclusions"`
	Decomp     map[string][]int `json:"decomp"` // cp (decimal string key) -> 1 or 2 cps
	Ranks      map[string]int   `json:"ranks"`  // cp (decimal string key) -> combining class
	QC         []rune           `json:"qc"`
}

// Bundle is the serialized, on-disk/embeddable form of a Tables set.
type Bundle struct {
	Groups  []GroupSpec      `json:"groups"`
	Mapped  map[string][]int `json:"mapped"` // cp (decimal string key) -> replacement sequence
	Ignored []rune           `json:"ignored"`
	Fenced  []rune           `json:"fenced"`
	NSM     []rune           `json:"nsm"`
	NSMMax  int              `json:"nsm_max"`
	Wholes  []WholeSpec      `json:"wholes"`
	Emoji   [][]rune         `json:"emoji"`
	NFC     NFCSpec          `json:"nfc"`
}

// Stop is U+002E ".", the label separator.
const Stop rune = '.'

// Group is a resolved, indexed script group.
type Group struct {
	Name      string
	Primary   map[rune]bool
	Secondary map[rune]bool
	CM        map[rune]bool
	CMAbsent  bool
	CheckNSM  bool
}

// Contains reports whether r identifies or is merely permitted in g.
func (g *Group) Contains(r rune) bool {
	return g.Primary[r] || g.Secondary[r]
}

// WholeMembership is one (group, shared-set) pair a confusable
// codepoint participates in.
type WholeMembership struct {
	Group  string
	Shared map[rune]bool
}

// NFC holds the indexed NFC tables.
type NFC struct {
	Exclusions map[rune]bool
	Decomp     map[rune][]rune
	Ranks      map[rune]uint8
	QC         map[rune]bool
}

// Tables is the complete, immutable static data set (component A).
// Construct with Build; never mutate after construction.
type Tables struct {
	Mapped      map[rune][]rune
	Ignored     map[rune]bool
	Valid       map[rune]bool
	Fenced      map[rune]bool
	NSM         map[rune]bool
	NSMMax      int
	Groups      []*Group
	GroupByName map[string]*Group
	WholeIndex  map[rune][]WholeMembership
	Emoji       [][]rune
	NFC         NFC
}

// Build validates a Bundle against every structural invariant and
// returns the indexed, immutable Tables. Construction fails fast: any
// invariant violation is reported rather than silently tolerated, so
// that a malformed bundle is caught at startup, not mid-traversal.
func Build(b Bundle) (*Tables, error) {
	t := &Tables{
		Mapped:      make(map[rune][]rune, len(b.Mapped)),
		Ignored:     toSet(b.Ignored),
		Valid:       make(map[rune]bool),
		Fenced:      toSet(b.Fenced),
		NSM:         toSet(b.NSM),
		NSMMax:      b.NSMMax,
		GroupByName: make(map[string]*Group, len(b.Groups)),
		WholeIndex:  make(map[rune][]WholeMembership),
		Emoji:       b.Emoji,
	}

	if b.NSMMax != 4 {
		return nil, fmt.Errorf("tables: nsm_max must be 4, got %d", b.NSMMax)
	}

	for key, seq := range b.Mapped {
		src, err := parseCp(key)
		if err != nil {
			return nil, fmt.Errorf("tables: mapped key %q: %w", key, err)
		}
		t.Mapped[src] = intsToRunes(seq)
	}

	// valid[] is not carried as an explicit Bundle field: every codepoint
	// that is neither mapped, ignored, nor the stop, and that appears as
	// primary/secondary/cm in some group, is valid. Fenced codepoints and
	// the global NSM set are likewise an overlay on valid, not a fourth
	// disjoint class: a combining mark is valid at the per-codepoint
	// classification level, and only restricted structurally (position,
	// group membership, run length) later in validation.
	for _, g := range b.Groups {
		for _, r := range g.Primary {
			t.Valid[r] = true
		}
		for _, r := range g.Secondary {
			t.Valid[r] = true
		}
		for _, r := range g.CM {
			t.Valid[r] = true
		}
	}
	for r := range t.Fenced {
		t.Valid[r] = true
	}
	for r := range t.NSM {
		t.Valid[r] = true
	}

	if err := checkDisjoint(t); err != nil {
		return nil, err
	}

	for _, gs := range b.Groups {
		if _, dup := t.GroupByName[gs.Name]; dup {
			return nil, fmt.Errorf("tables: duplicate group name %q", gs.Name)
		}
		g := &Group{
			Name:      gs.Name,
			Primary:   toSet(gs.Primary),
			Secondary: toSet(gs.Secondary),
			CM:        toSet(gs.CM),
			CMAbsent:  gs.CMAbsent,
			CheckNSM:  gs.CheckNSM,
		}
		t.Groups = append(t.Groups, g)
		t.GroupByName[g.Name] = g
	}

	for _, ws := range b.Wholes {
		if _, ok := t.GroupByName[ws.Target]; !ok {
			return nil, fmt.Errorf("tables: whole-confusable target group %q not defined", ws.Target)
		}
		shared := toSet(ws.Shared)
		for r := range shared {
			t.WholeIndex[r] = append(t.WholeIndex[r], WholeMembership{Group: ws.Target, Shared: shared})
		}
	}

	nfc, err := buildNFC(b.NFC)
	if err != nil {
		return nil, err
	}
	t.NFC = nfc

	if len(t.Mapped) > 0 || len(t.Valid) > 0 {
		if err := checkMappedTargets(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func checkDisjoint(t *Tables) error {
	for r := range t.Mapped {
		if t.Ignored[r] {
			return fmt.Errorf("tables: codepoint U+%04X is both mapped and ignored", r)
		}
		if t.Valid[r] {
			return fmt.Errorf("tables: codepoint U+%04X is both mapped and valid", r)
		}
		if r == Stop {
			return fmt.Errorf("tables: stop U+002E cannot be mapped")
		}
	}
	for r := range t.Ignored {
		if t.Valid[r] {
			return fmt.Errorf("tables: codepoint U+%04X is both ignored and valid", r)
		}
		if r == Stop {
			return fmt.Errorf("tables: stop U+002E cannot be ignored")
		}
	}
	if t.Valid[Stop] {
		return fmt.Errorf("tables: stop U+002E cannot be a member of valid")
	}
	return nil
}

// checkMappedTargets enforces that every codepoint in any mapped
// target sequence is itself in valid ∪ fenced.
func checkMappedTargets(t *Tables) error {
	for src, seq := range t.Mapped {
		for _, r := range seq {
			if !t.Valid[r] && !t.Fenced[r] {
				return fmt.Errorf("tables: mapping target U+%04X (from U+%04X) is not in valid ∪ fenced", r, src)
			}
		}
	}
	return nil
}

func buildNFC(spec NFCSpec) (NFC, error) {
	n := NFC{
		Exclusions: toSet(spec.Exclusions),
		Decomp:     make(map[rune][]rune, len(spec.Decomp)),
		Ranks:      make(map[rune]uint8, len(spec.Ranks)),
		QC:         toSet(spec.QC),
	}
	for key, seq := range spec.Decomp {
		src, err := parseCp(key)
		if err != nil {
			return NFC{}, fmt.Errorf("tables: nfc decomp key %q: %w", key, err)
		}
		if len(seq) != 1 && len(seq) != 2 {
			return NFC{}, fmt.Errorf("tables: nfc decomp of U+%04X has length %d, want 1 or 2", src, len(seq))
		}
		n.Decomp[src] = intsToRunes(seq)
	}
	for key, class := range spec.Ranks {
		r, err := parseCp(key)
		if err != nil {
			return NFC{}, fmt.Errorf("tables: nfc rank key %q: %w", key, err)
		}
		if class < 0 || class > 255 {
			return NFC{}, fmt.Errorf("tables: nfc rank of U+%04X out of range: %d", r, class)
		}
		n.Ranks[r] = uint8(class)
	}
	return n, nil
}

func toSet(rs []rune) map[rune]bool {
	s := make(map[rune]bool, len(rs))
	for _, r := range rs {
		s[r] = true
	}
	return s
}

func intsToRunes(xs []int) []rune {
	out := make([]rune, len(xs))
	for i, x := range xs {
		out[i] = rune(x)
	}
	return out
}

func parseCp(key string) (rune, error) {
	var v int
	if _, err := fmt.Sscanf(key, "%d", &v); err != nil {
		return 0, err
	}
	return rune(v), nil
}
