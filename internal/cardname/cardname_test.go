package cardname

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Gholdengo ex", "Gholdengo ex"},
		{"Gardevoir ex sv10_185", "Gardevoir ex"},
		{"Nest Ball PAL 123", "Nest Ball"},
		{"(sv7_28) Munkidori", "Munkidori"},
		{"Ultra Ball (3x)", "Ultra Ball"},
		{"Earthen Vessel from their hand", "Earthen Vessel"},
		{"Iono (2)", "Iono"},
		{"  Boss's   Orders  ", "Boss's Orders"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanStackedSuffixes(t *testing.T) {
	// One stripped suffix can expose another underneath.
	got := Clean("Nest Ball PAL 123 (2x)")
	if got != "Nest Ball" {
		t.Errorf("Clean stacked = %q, want %q", got, "Nest Ball")
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Gardevoir ex sv10_185",
		"(sv7_28) Munkidori (3x)",
		"Nest Ball PAL 123 (ace)",
		"Earthen Vessel from their hand",
		"plain name",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSplitEntry(t *testing.T) {
	cases := []struct {
		in        string
		wantName  string
		wantCount int
	}{
		{"Ultra Ball (3x)", "Ultra Ball", 3},
		{"Gholdengo ex (12x)", "Gholdengo ex", 12},
		{"Iono", "Iono", 1},
		{" Arven (2x) ", "Arven", 2},
	}
	for _, c := range cases {
		name, count := SplitEntry(c.in)
		if name != c.wantName || count != c.wantCount {
			t.Errorf("SplitEntry(%q) = (%q, %d), want (%q, %d)", c.in, name, count, c.wantName, c.wantCount)
		}
	}
}

func TestFormatEntryRoundTrip(t *testing.T) {
	entry := FormatEntry("Ultra Ball", 4)
	if entry != "Ultra Ball (4x)" {
		t.Fatalf("FormatEntry = %q", entry)
	}
	name, count := SplitEntry(entry)
	if name != "Ultra Ball" || count != 4 {
		t.Errorf("round trip = (%q, %d)", name, count)
	}
}
