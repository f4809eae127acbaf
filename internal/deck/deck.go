// Package deck parses and validates Pokémon TCG Live deck-list exports.
package deck

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Entry is one deck-list line: a count and the card name as exported,
// including any set code.
type Entry struct {
	Count int
	Name  string
}

func (e Entry) String() string {
	return fmt.Sprintf("%d %s", e.Count, e.Name)
}

// Deck is a parsed deck list, split by section.
type Deck struct {
	Pokemon  []Entry
	Trainers []Entry
	Energy   []Entry
}

// TotalCards is the sum of all entry counts across sections.
func (d *Deck) TotalCards() int {
	total := 0
	for _, sec := range [][]Entry{d.Pokemon, d.Trainers, d.Energy} {
		for _, e := range sec {
			total += e.Count
		}
	}
	return total
}

func (d *Deck) allEntries() []Entry {
	out := make([]Entry, 0, len(d.Pokemon)+len(d.Trainers)+len(d.Energy))
	out = append(out, d.Pokemon...)
	out = append(out, d.Trainers...)
	out = append(out, d.Energy...)
	return out
}

var reCardLine = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// Parse reads a deck-list export of the usual three-section form:
//
//	Pokémon: 17
//	3 Marnie's Impidimp DRI 134
//	Trainer: 35
//	...
//
// Lines outside any section and bare section-count lines are ignored.
func Parse(text string) *Deck {
	d := &Deck{}
	section := ""
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "Pokémon:") || strings.HasPrefix(line, "Pokemon:"):
			section = "pokemon"
			continue
		case strings.HasPrefix(line, "Trainer:"):
			section = "trainer"
			continue
		case strings.HasPrefix(line, "Energy:"):
			section = "energy"
			continue
		}
		m := reCardLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		count, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entry := Entry{Count: count, Name: strings.TrimSpace(m[2])}
		switch section {
		case "pokemon":
			d.Pokemon = append(d.Pokemon, entry)
		case "trainer":
			d.Trainers = append(d.Trainers, entry)
		case "energy":
			d.Energy = append(d.Energy, entry)
		}
	}
	return d
}

// isBasicEnergy reports whether a name is exempt from the four-copy rule.
func isBasicEnergy(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "basic") && strings.Contains(lower, "energy")
}

// Validate checks a parsed deck against the constructed-format rules: exactly
// 60 cards, at least one Pokémon, at least one Energy, and at most four copies
// of any card that isn't a basic energy. All violations are reported, not just
// the first.
func (d *Deck) Validate() []string {
	var errs []string
	if total := d.TotalCards(); total != 60 {
		errs = append(errs, fmt.Sprintf("deck must contain exactly 60 cards, got %d", total))
	}
	if len(d.Pokemon) == 0 {
		errs = append(errs, "deck must include at least one Pokémon")
	}
	if len(d.Energy) == 0 {
		errs = append(errs, "deck must include at least one Energy card")
	}
	counts := make(map[string]int)
	for _, e := range d.allEntries() {
		if isBasicEnergy(e.Name) {
			continue
		}
		counts[e.Name] += e.Count
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	// Deterministic error order.
	sort.Strings(names)
	for _, name := range names {
		if counts[name] > 4 {
			errs = append(errs, fmt.Sprintf("too many copies of %q: %d (max 4)", name, counts[name]))
		}
	}
	return errs
}

// Estimate builds a rough deck-list skeleton from the Pokémon observed in
// stored matches: two copies of rank cards, three of everything else, plus a
// stock trainer core to fill in by hand.
func Estimate(pokemonUsed []string) string {
	var b strings.Builder
	b.WriteString("Pokémon: (estimated)\n")
	for _, p := range pokemonUsed {
		copies := 3
		if strings.Contains(p, "ex") || strings.Contains(p, "V") {
			copies = 2
		}
		fmt.Fprintf(&b, "%d %s\n", copies, p)
	}
	b.WriteString("\nTrainer: (estimated)\n")
	b.WriteString("4 Professor's Research\n")
	b.WriteString("4 Ultra Ball\n")
	b.WriteString("3 Nest Ball\n")
	b.WriteString("2 Boss's Orders\n")
	b.WriteString("2 Switch\n")
	b.WriteString("\nEnergy: (estimated)\n")
	b.WriteString("// adjust energy types to the Pokémon above\n")
	return b.String()
}
