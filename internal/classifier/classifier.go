// Package classifier maps cleaned card names to coarse categories. It is
// deliberately conservative: the reference tables are incomplete, so names
// they don't cover come back Unknown rather than guessed. Guess provides the
// keyword fallback used when the external card-metadata lookup has nothing.
package classifier

import "strings"

// Category is the coarse classification of a cleaned name.
type Category int

const (
	Unknown Category = iota
	Pokemon
	Trainer
	Energy
	Ability
	Attack
)

func (c Category) String() string {
	switch c {
	case Pokemon:
		return "Pokemon"
	case Trainer:
		return "Trainer"
	case Energy:
		return "Energy"
	case Ability:
		return "Ability"
	case Attack:
		return "Attack"
	default:
		return "Unknown"
	}
}

// Tables holds the reference name sets the classifier matches against.
type Tables struct {
	Pokemon   map[string]struct{}
	Abilities map[string]struct{}
	Attacks   map[string]struct{}
	Trainers  map[string]struct{}
	Energies  map[string]struct{}
}

// Classifier classifies cleaned card names against a set of tables.
type Classifier struct {
	tables Tables
}

// New returns a Classifier over the given tables.
func New(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Default returns a Classifier loaded with the built-in reference tables.
func Default() *Classifier {
	return New(defaultTables())
}

// Classify returns exactly one category for the given cleaned name. Priority
// order, first match wins: attack-event shape, Pokémon table, ability table,
// attack table, trainer table, energy table, Unknown.
func (c *Classifier) Classify(name string) Category {
	// Attack events leak into card lists as full sentences like
	// "Make It Rain on Bob's Ralts for 60 damage".
	if strings.Contains(name, " on ") && strings.Contains(name, " for ") && strings.Contains(name, " damage") {
		return Attack
	}
	if _, ok := c.tables.Pokemon[name]; ok {
		return Pokemon
	}
	if _, ok := c.tables.Abilities[name]; ok {
		return Ability
	}
	if _, ok := c.tables.Attacks[name]; ok {
		return Attack
	}
	if _, ok := c.tables.Trainers[name]; ok {
		return Trainer
	}
	if _, ok := c.tables.Energies[name]; ok {
		return Energy
	}
	return Unknown
}

// TrainerCategory narrows a Trainer name to Item/Supporter by keyword, used
// when no authoritative metadata is available. Empty when no keyword applies.
func TrainerCategory(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range supporterKeywords {
		if strings.Contains(lower, kw) {
			return "Supporter"
		}
	}
	for _, kw := range itemKeywords {
		if strings.Contains(lower, kw) {
			return "Item"
		}
	}
	return ""
}

var supporterKeywords = []string{
	"professor", "researcher", "sycamore", "juniper", "oak", "cynthia", "marnie",
}

var itemKeywords = []string{
	"ball", "potion", "vessel", "device", "machine", "tool", "switch",
}

// Guess applies the keyword fallback heuristics for names the tables and the
// external lookup both miss: ball/potion-style names are treated as Trainer
// items, professor-style names as Trainer supporters, anything containing
// "energy" as Energy. Everything else stays Unknown.
func Guess(name string) Category {
	if TrainerCategory(name) != "" {
		return Trainer
	}
	if strings.Contains(strings.ToLower(name), "energy") {
		return Energy
	}
	return Unknown
}

// IsAbilityArtifact reports whether a stored card entry is a known ability or
// attack name rather than a physical card. The aggregator filters these out
// of card-usage tables.
func (c *Classifier) IsAbilityArtifact(name string) bool {
	switch c.Classify(name) {
	case Ability, Attack:
		return true
	}
	for artifact := range c.tables.Abilities {
		if strings.Contains(name, artifact) {
			return true
		}
	}
	lower := strings.ToLower(name)
	return strings.Contains(lower, "damage counter") || strings.Contains(lower, "prize card")
}
