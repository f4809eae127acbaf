// Package cardname normalizes raw card and Pokémon name tokens pulled out of
// match transcripts into the canonical names used as map keys everywhere else.
package cardname

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Leading parenthesized set code, e.g. "(sv7_28) Munkidori".
	reLeadingCode = regexp.MustCompile(`^\([A-Za-z0-9_]+\)\s*`)
	// Quantity suffix, e.g. "Ultra Ball (3x)" or "(2)".
	reQuantity = regexp.MustCompile(`\s*\(\d+x?\)$`)
	// Trailing set codes, e.g. "Gardevoir ex sv10_185" or "Nest Ball PAL 123".
	reCodeUnderscore = regexp.MustCompile(`(?i)\s+[a-z0-9]+_\d+$`)
	reCodeSpaced     = regexp.MustCompile(`\s+[A-Z]{2,4}\s+\d+$`)
	// Any remaining bracketed aside.
	reParenAside = regexp.MustCompile(`\s*\([^)]*\)`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// Trailing clauses the game client appends to card actions.
var clauseSuffixes = []string{
	" from their hand",
	" to the Active Spot",
	" to the Bench",
	" from their deck",
	" into their hand",
	" on top of their deck",
	" in play",
}

// Clean normalizes a raw name token: strips set codes, quantity suffixes,
// location clauses and bracketed asides, and collapses whitespace. It is
// idempotent and never fails; garbage in yields an empty or near-empty string
// which callers must treat as unknown and discard.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	// Stripping one suffix can expose another ("Ball PAL 123 (2x)"), so
	// iterate to a fixpoint.
	for {
		prev := s
		s = reLeadingCode.ReplaceAllString(s, "")
		s = reQuantity.ReplaceAllString(s, "")
		s = reCodeUnderscore.ReplaceAllString(s, "")
		s = reCodeSpaced.ReplaceAllString(s, "")
		for _, suffix := range clauseSuffixes {
			s = strings.TrimSuffix(s, suffix)
		}
		s = reParenAside.ReplaceAllString(s, "")
		s = reSpaces.ReplaceAllString(s, " ")
		s = strings.TrimSpace(s)
		if s == prev {
			break
		}
	}
	return s
}

var reEntry = regexp.MustCompile(`^(.*?)\s*\((\d+)x\)$`)

// SplitEntry parses a persisted "Name (Nx)" card entry back into its name and
// count. Entries without a recognizable count default to 1.
func SplitEntry(entry string) (string, int) {
	if m := reEntry.FindStringSubmatch(strings.TrimSpace(entry)); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil && n > 0 {
			return m[1], n
		}
		return m[1], 1
	}
	return strings.TrimSpace(entry), 1
}

// FormatEntry renders a card name and usage count in the persisted
// "Name (Nx)" form.
func FormatEntry(name string, count int) string {
	return fmt.Sprintf("%s (%dx)", name, count)
}
