package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/pokelog/go-tcg-metrics/internal/model"
	"github.com/pokelog/go-tcg-metrics/internal/tcgapi"
)

// stubLookup serves fixed metadata, falling back to name heuristics like the
// real client does when the API is unreachable.
type stubLookup struct {
	infos map[string]tcgapi.CardInfo
}

func (s stubLookup) LookupAll(ctx context.Context, names []string) map[string]tcgapi.CardInfo {
	out := make(map[string]tcgapi.CardInfo, len(names))
	for _, name := range names {
		if info, ok := s.infos[name]; ok {
			out[name] = info
		} else {
			out[name] = tcgapi.Fallback(name)
		}
	}
	return out
}

func effectivenessMatches() []model.MatchRecord {
	m := model.MatchRecord{
		Player1: "Alice", Player2: "Bob", Winner: "Alice",
		Player1Cards: []string{"Nest Ball (4x)"},
		Player2Cards: []string{"Nest Ball (2x)", "Potion (3x)", "Iono (1x)"},
	}
	return []model.MatchRecord{m, m}
}

func TestAnalyzeCardEffectivenessTiers(t *testing.T) {
	ana := New(stubLookup{})
	stats := ana.AnalyzeCardEffectiveness(context.Background(), effectivenessMatches())

	byName := make(map[string]model.CardStat)
	for _, s := range stats {
		byName[s.Name] = s
	}

	nest, ok := byName["Nest Ball"]
	if !ok {
		t.Fatalf("Nest Ball missing from %v", stats)
	}
	// 12 copies total, 8 in winning decks.
	if nest.Count != 12 {
		t.Errorf("Nest Ball count = %d, want 12", nest.Count)
	}
	if nest.WinRate < 66 || nest.WinRate > 67 {
		t.Errorf("Nest Ball win rate = %.1f, want ~66.7", nest.WinRate)
	}
	if nest.Effectiveness != model.TierHigh {
		t.Errorf("Nest Ball tier = %q, want High", nest.Effectiveness)
	}

	potion := byName["Potion"]
	if potion.Count != 6 || potion.WinRate != 0 {
		t.Errorf("Potion = %+v", potion)
	}
	if potion.Effectiveness != model.TierLow {
		t.Errorf("Potion tier = %q, want Low", potion.Effectiveness)
	}

	iono := byName["Iono"]
	if iono.Effectiveness != model.TierInsufficient {
		t.Errorf("Iono tier = %q, want insufficient", iono.Effectiveness)
	}

	// Sorted by win rate descending.
	if stats[0].Name != "Nest Ball" {
		t.Errorf("first row = %q, want Nest Ball", stats[0].Name)
	}
}

func TestAnalyzeCardEffectivenessDropsSingleMatchCards(t *testing.T) {
	matches := effectivenessMatches()
	matches[0].Player1Cards = append(matches[0].Player1Cards, "Rare Candy (2x)")
	ana := New(stubLookup{})
	for _, s := range ana.AnalyzeCardEffectiveness(context.Background(), matches) {
		if s.Name == "Rare Candy" {
			t.Error("single-match card should be dropped")
		}
	}
}

func TestAnalyzeCardEffectivenessUsesFallback(t *testing.T) {
	ana := New(stubLookup{})
	stats := ana.AnalyzeCardEffectiveness(context.Background(), effectivenessMatches())
	for _, s := range stats {
		if s.Name == "Nest Ball" {
			// No stub metadata, so the name heuristic applies.
			if s.Supertype != "Trainer" || s.TrainerCategory != "Item" {
				t.Errorf("Nest Ball metadata = %q/%q", s.Supertype, s.TrainerCategory)
			}
		}
	}
}

func TestRecommendations(t *testing.T) {
	stats := []model.CardStat{
		{Name: "Nest Ball", Count: 12, WinRate: 75, Effectiveness: model.TierHigh, Supertype: "Trainer"},
		{Name: "Potion", Count: 9, WinRate: 20, Effectiveness: model.TierLow},
	}
	recs := Recommendations(stats)
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	var sawStrong, sawWeak bool
	for _, r := range recs {
		if strings.Contains(r, "Nest Ball") {
			sawStrong = true
		}
		if strings.Contains(r, "Potion") {
			sawWeak = true
		}
	}
	if !sawStrong || !sawWeak {
		t.Errorf("recommendations = %v", recs)
	}
}

func compositionStub() stubLookup {
	return stubLookup{infos: map[string]tcgapi.CardInfo{
		"Gholdengo ex":         {Name: "Gholdengo ex", Supertype: "Pokémon", PokemonType: "Metal", FromAPI: true},
		"Nest Ball":            {Name: "Nest Ball", Supertype: "Trainer", TrainerCategory: "Item", FromAPI: true},
		"Boss's Orders":        {Name: "Boss's Orders", Supertype: "Trainer", TrainerCategory: "Supporter", FromAPI: true},
		"Basic Psychic Energy": {Name: "Basic Psychic Energy", Supertype: "Energy", EnergyType: "Basic", FromAPI: true},
	}}
}

func TestAnalyzeDeckComposition(t *testing.T) {
	matches := []model.MatchRecord{
		{
			Player1: "Alice", Player2: "Bob", Winner: "Alice",
			Player1Cards: []string{"Gholdengo ex (2x)", "Nest Ball (4x)", "Basic Psychic Energy (6x)"},
			Player2Cards: []string{"Boss's Orders (2x)"},
		},
	}
	ana := New(compositionStub())
	rep := ana.AnalyzeDeckComposition(context.Background(), matches)

	if rep.PokemonTotal != 1 || rep.TrainerTotal != 2 || rep.EnergyTotal != 1 {
		t.Errorf("totals = %d/%d/%d", rep.PokemonTotal, rep.TrainerTotal, rep.EnergyTotal)
	}
	if rep.Items != 1 || rep.Supporters != 1 {
		t.Errorf("trainer categories = items %d, supporters %d", rep.Items, rep.Supporters)
	}
	if rep.BasicEnergy != 1 || rep.SpecialEnergy != 0 {
		t.Errorf("energy split = %d/%d", rep.BasicEnergy, rep.SpecialEnergy)
	}
	if rep.PokemonByType["Metal"] != 1 {
		t.Errorf("pokemon by type = %v", rep.PokemonByType)
	}
	if rep.PokemonRatio != 25 || rep.TrainerRatio != 50 || rep.EnergyRatio != 25 {
		t.Errorf("ratios = %.1f/%.1f/%.1f", rep.PokemonRatio, rep.TrainerRatio, rep.EnergyRatio)
	}
	// Two non-empty card lists: 12 and 2 cards.
	if rep.AvgDeckSize != 7 {
		t.Errorf("avg deck size = %.1f, want 7", rep.AvgDeckSize)
	}
	if len(rep.Archetypes) != 2 || rep.Archetypes[0] != "Metal Focus" {
		t.Errorf("archetypes = %v", rep.Archetypes)
	}
}

func TestAnalyzeDeckCompositionEmpty(t *testing.T) {
	ana := New(stubLookup{})
	rep := ana.AnalyzeDeckComposition(context.Background(), nil)
	if rep.AvgDeckSize != 60 {
		t.Errorf("default deck size = %.1f, want 60", rep.AvgDeckSize)
	}
	if len(rep.Archetypes) != 1 || rep.Archetypes[0] != "Mixed" {
		t.Errorf("archetypes = %v", rep.Archetypes)
	}
}
