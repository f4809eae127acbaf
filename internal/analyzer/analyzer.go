// Package analyzer ranks card effectiveness across stored matches, enriched
// with metadata from the card database where it resolves.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pokelog/go-tcg-metrics/internal/cardname"
	"github.com/pokelog/go-tcg-metrics/internal/model"
	"github.com/pokelog/go-tcg-metrics/internal/tcgapi"
)

// CardLookup resolves card names to metadata. Satisfied by *tcgapi.Client.
type CardLookup interface {
	LookupAll(ctx context.Context, names []string) map[string]tcgapi.CardInfo
}

// Analyzer computes card-level effectiveness and deck-composition reports.
type Analyzer struct {
	lookup CardLookup
}

// New returns an Analyzer backed by the given metadata lookup.
func New(lookup CardLookup) *Analyzer {
	return &Analyzer{lookup: lookup}
}

type cardTally struct {
	count   int // total copies observed
	wins    int // copies observed in winning decks
	matches int // matches the card appeared in
}

// tallyCards walks both players' stored card entries for every match.
func tallyCards(matches []model.MatchRecord) (map[string]*cardTally, []string) {
	tallies := make(map[string]*cardTally)
	var order []string
	for i := range matches {
		m := &matches[i]
		for _, entry := range append(append([]string{}, m.Player1Cards...), m.Player2Cards...) {
			raw, count := cardname.SplitEntry(entry)
			name := cardname.Clean(raw)
			if name == "" {
				continue
			}
			t, ok := tallies[name]
			if !ok {
				t = &cardTally{}
				tallies[name] = t
				order = append(order, name)
			}
			t.count += count
			t.matches++
		}
		for _, entry := range m.WinnerCards() {
			raw, count := cardname.SplitEntry(entry)
			name := cardname.Clean(raw)
			if t, ok := tallies[name]; ok {
				t.wins += count
			}
		}
	}
	return tallies, order
}

// minAnalysisMatches drops cards seen in a single match; one data point says
// nothing about effectiveness.
const minAnalysisMatches = 2

// AnalyzeCardEffectiveness scores every card seen in at least two matches:
// win rate over copies played, a usage-gated effectiveness tier, and the card
// database's supertype and category where available. Sorted by win rate.
func (a *Analyzer) AnalyzeCardEffectiveness(ctx context.Context, matches []model.MatchRecord) []model.CardStat {
	tallies, order := tallyCards(matches)

	var names []string
	for _, name := range order {
		if tallies[name].matches >= minAnalysisMatches {
			names = append(names, name)
		}
	}
	infos := a.lookup.LookupAll(ctx, names)

	out := make([]model.CardStat, 0, len(names))
	for _, name := range names {
		t := tallies[name]
		winRate := 0.0
		if t.count > 0 {
			winRate = float64(t.wins) / float64(t.count) * 100
		}
		stat := model.CardStat{
			Name:        name,
			Count:       t.count,
			WinRate:     winRate,
			AvgPerMatch: float64(t.count) / float64(t.matches),
		}
		info := infos[name]
		stat.Supertype = info.Supertype
		stat.TrainerCategory = info.TrainerCategory
		stat.PokemonType = info.PokemonType
		stat.Effectiveness, stat.Recommendation = tier(winRate, t.count)
		out = append(out, stat)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func tier(winRate float64, count int) (string, string) {
	switch {
	case winRate >= 60 && count >= 10:
		return model.TierHigh, "Highly effective card, worth a slot in more decks."
	case winRate >= 45 && count >= 5:
		return model.TierMedium, "Solid card, useful in the right archetype."
	case winRate < 30 && count >= 5:
		return model.TierLow, "Underperforming card, consider replacing it."
	default:
		return model.TierInsufficient, "Not enough data to judge effectiveness."
	}
}

// Recommendations condenses an effectiveness report into a few actionable
// deck-building notes.
func Recommendations(stats []model.CardStat) []string {
	var out []string

	var overpowered, underperforming, trainers []string
	for _, s := range stats {
		switch {
		case s.WinRate > 70 && s.Count >= 10 && s.Effectiveness == model.TierHigh:
			overpowered = append(overpowered, s.Name)
		case s.WinRate < 40 && s.Count >= 8 && s.Effectiveness == model.TierLow:
			underperforming = append(underperforming, s.Name)
		}
		if s.Supertype == "Trainer" && s.WinRate > 55 && s.Count >= 5 {
			trainers = append(trainers, s.Name)
		}
	}
	if len(overpowered) > 0 {
		out = append(out, fmt.Sprintf("Meta-defining cards: %s. Consider including them in your decks.",
			strings.Join(capList(overpowered, 3), ", ")))
	}
	if len(underperforming) > 0 {
		out = append(out, fmt.Sprintf("Popular but underperforming: %s. Consider more effective alternatives.",
			strings.Join(capList(underperforming, 2), ", ")))
	}
	if len(trainers) > 0 {
		out = append(out, fmt.Sprintf("High-impact trainer cards: %s.",
			strings.Join(capList(trainers, 3), ", ")))
	}
	return out
}

func capList(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// AnalyzeDeckComposition breaks the observed card pool down by supertype and
// trainer category, estimates average deck size from stored entries, and
// names the archetypes suggested by the dominant Pokémon types.
func (a *Analyzer) AnalyzeDeckComposition(ctx context.Context, matches []model.MatchRecord) *model.CompositionReport {
	tallies, order := tallyCards(matches)
	infos := a.lookup.LookupAll(ctx, order)

	rep := &model.CompositionReport{PokemonByType: make(map[string]int)}
	var pokemonNames, trainerNames []string
	for _, name := range order {
		info := infos[name]
		switch {
		case info.IsPokemon():
			rep.PokemonTotal++
			t := info.PokemonType
			if t == "" {
				t = "Colorless"
			}
			rep.PokemonByType[t]++
			pokemonNames = append(pokemonNames, name)
		case info.IsTrainer():
			rep.TrainerTotal++
			switch info.TrainerCategory {
			case "Supporter":
				rep.Supporters++
			case "Item", "ACE SPEC":
				rep.Items++
			case "Stadium":
				rep.Stadiums++
			case "Pokémon Tool":
				rep.Tools++
			}
			trainerNames = append(trainerNames, name)
		case info.IsEnergy():
			rep.EnergyTotal++
			if info.EnergyType == "Basic" {
				rep.BasicEnergy++
			} else {
				rep.SpecialEnergy++
			}
		}
	}

	if total := len(order); total > 0 {
		rep.PokemonRatio = float64(rep.PokemonTotal) / float64(total) * 100
		rep.TrainerRatio = float64(rep.TrainerTotal) / float64(total) * 100
		rep.EnergyRatio = float64(rep.EnergyTotal) / float64(total) * 100
	}

	rep.AvgDeckSize = avgDeckSize(matches)
	rep.Archetypes = archetypes(rep.PokemonByType)
	rep.MostEffectivePokemon = mostEffective(pokemonNames, tallies, 5)
	rep.MostEffectiveTrainers = mostEffective(trainerNames, tallies, 8)
	return rep
}

// mostEffective ranks names by deck win rate, requiring at least three
// appearances.
func mostEffective(names []string, tallies map[string]*cardTally, limit int) []model.UsageStat {
	var out []model.UsageStat
	for _, name := range names {
		t := tallies[name]
		if t.matches < 3 {
			continue
		}
		out = append(out, model.UsageStat{Name: name, Count: t.count, Wins: t.wins, Matches: t.matches})
	}
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].WinRate(), out[j].WinRate()
		if wi != wj {
			return wi > wj
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func avgDeckSize(matches []model.MatchRecord) float64 {
	totalCards, decks := 0, 0
	for i := range matches {
		for _, cards := range [][]string{matches[i].Player1Cards, matches[i].Player2Cards} {
			if len(cards) == 0 {
				continue
			}
			for _, entry := range cards {
				_, count := cardname.SplitEntry(entry)
				totalCards += count
			}
			decks++
		}
	}
	if decks == 0 {
		return 60
	}
	return float64(totalCards) / float64(decks)
}

func archetypes(byType map[string]int) []string {
	if len(byType) == 0 {
		return []string{"Mixed"}
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.SliceStable(types, func(i, j int) bool {
		if byType[types[i]] != byType[types[j]] {
			return byType[types[i]] > byType[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > 3 {
		types = types[:3]
	}
	return []string{types[0] + " Focus", strings.Join(types, "/") + " Mix"}
}
