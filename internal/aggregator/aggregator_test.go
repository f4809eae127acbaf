package aggregator

import (
	"testing"

	"github.com/pokelog/go-tcg-metrics/internal/classifier"
	"github.com/pokelog/go-tcg-metrics/internal/model"
)

func testMatches() []model.MatchRecord {
	return []model.MatchRecord{
		{
			ID: "match1", UploadedAt: "2026-08-01",
			Player1: "Alice", Player2: "Bob",
			Winner: "Alice", FirstPlayer: "Alice", Turns: 5,
			Player1Pokemon: []string{"Gholdengo ex"},
			Player2Pokemon: []string{"Charizard ex"},
			Player1Cards:   []string{"Ultra Ball (2x)", "Make It Rain (2x)"},
			Player2Cards:   []string{"Ultra Ball (1x)"},
			Player1Prizes:  6, Player2Prizes: 2,
			Player1TotalDamage: 180, Player2TotalDamage: 120,
			AttacksUsed: []model.AttackEvent{
				{Pokemon: "Gholdengo ex", Attack: "Make It Rain", Damage: 180, Turn: 3, Player: model.SlotPlayer1},
				{Pokemon: "Charizard ex", Attack: "Fire Blast", Damage: 120, Turn: 2, Player: model.SlotPlayer2},
			},
			WinCondition: model.WinPrizeCards,
			Confidence:   model.Confidence{PlayersDetected: true, FirstPlayerDetected: true, WinnerDetected: true},
		},
		{
			ID: "match2", UploadedAt: "2026-08-02",
			Player1: "Alice", Player2: "Bob",
			Winner: "Alice", FirstPlayer: "Bob", Turns: 7,
			Player1Pokemon: []string{"Gholdengo ex"},
			Player2Pokemon: []string{"Charizard ex"},
			Player1Cards:   []string{"Ultra Ball (2x)"},
			Player2Cards:   []string{"Ultra Ball (1x)"},
			Player1Prizes:  6, Player2Prizes: 3,
			Player1TotalDamage: 90, Player2TotalDamage: 60,
			WinCondition: model.WinPrizeCards,
			Confidence:   model.Confidence{PlayersDetected: true, FirstPlayerDetected: true, WinnerDetected: true},
		},
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(nil)
	if stats.TotalMatches != 0 {
		t.Errorf("total matches = %d, want 0", stats.TotalMatches)
	}
	if len(stats.Players) != 0 || len(stats.Insights) != 0 {
		t.Errorf("empty input produced data: %+v", stats)
	}
}

func TestAggregateOverview(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	if stats.TotalMatches != 2 {
		t.Fatalf("total matches = %d", stats.TotalMatches)
	}
	if stats.AvgTurns != 6 {
		t.Errorf("avg turns = %.1f, want 6", stats.AvgTurns)
	}
	if stats.ShortestMatchID != "match1" || stats.ShortestTurns != 5 {
		t.Errorf("shortest = %s/%d", stats.ShortestMatchID, stats.ShortestTurns)
	}
	if stats.LongestMatchID != "match2" || stats.LongestTurns != 7 {
		t.Errorf("longest = %s/%d", stats.LongestMatchID, stats.LongestTurns)
	}
	if stats.ConcededMatches != 0 {
		t.Errorf("conceded = %d, want 0", stats.ConcededMatches)
	}
	if stats.TotalDamageDealt != 450 {
		t.Errorf("total damage = %d, want 450", stats.TotalDamageDealt)
	}
	if stats.TotalAttacks != 2 {
		t.Errorf("total attacks = %d, want 2", stats.TotalAttacks)
	}
}

func TestPlayerRankings(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	if len(stats.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(stats.Players))
	}
	alice := stats.Players[0]
	if alice.PlayerName != "Alice" {
		t.Fatalf("top player = %q, want Alice", alice.PlayerName)
	}
	if alice.Wins != 2 || alice.Losses != 0 {
		t.Errorf("Alice W/L = %d/%d", alice.Wins, alice.Losses)
	}
	if alice.WinRate() != 100 {
		t.Errorf("Alice win rate = %.1f, want 100", alice.WinRate())
	}
	if alice.TotalPrizes != 12 {
		t.Errorf("Alice prizes = %d, want 12", alice.TotalPrizes)
	}
	if alice.MostUsedPokemon != "Gholdengo ex" {
		t.Errorf("Alice most used pokemon = %q", alice.MostUsedPokemon)
	}
	if alice.MostUsedCard != "Ultra Ball" {
		t.Errorf("Alice most used card = %q", alice.MostUsedCard)
	}

	bob := stats.Players[1]
	if bob.Wins != 0 || bob.Losses != 2 || bob.WinRate() != 0 {
		t.Errorf("Bob = %+v", bob)
	}
}

func TestZeroMatchPlayerStats(t *testing.T) {
	s := model.PlayerStats{PlayerName: "Nobody"}
	if s.WinRate() != 0 || s.AvgTurns() != 0 || s.AvgPrizes() != 0 {
		t.Error("zero-match player should have zero rates, not NaN")
	}
}

func TestPokemonUsage(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	if len(stats.PokemonUsage) != 2 {
		t.Fatalf("pokemon usage = %v", stats.PokemonUsage)
	}
	for _, u := range stats.PokemonUsage {
		switch u.Name {
		case "Gholdengo ex":
			if u.Count != 2 || u.Wins != 2 {
				t.Errorf("Gholdengo = %+v", u)
			}
			if u.WinRate() != 100 {
				t.Errorf("Gholdengo win rate = %.1f", u.WinRate())
			}
		case "Charizard ex":
			if u.Count != 2 || u.Wins != 0 {
				t.Errorf("Charizard = %+v", u)
			}
		default:
			t.Errorf("unexpected pokemon %q", u.Name)
		}
	}
}

func TestCardUsageFiltersArtifacts(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	if len(stats.CardUsage) != 1 {
		t.Fatalf("card usage = %v, want only Ultra Ball", stats.CardUsage)
	}
	ub := stats.CardUsage[0]
	if ub.Name != "Ultra Ball" {
		t.Fatalf("card = %q", ub.Name)
	}
	// 2+1 copies in each of two matches; the winner (Alice) played 2 per match.
	if ub.Count != 6 || ub.Wins != 4 || ub.Matches != 2 {
		t.Errorf("Ultra Ball = %+v", ub)
	}
}

func TestCardUsageMinMatches(t *testing.T) {
	matches := testMatches()
	// A card seen in only one match must not appear.
	matches[0].Player1Cards = append(matches[0].Player1Cards, "Rare Candy (1x)")
	agg := New(classifier.Default())
	for _, u := range agg.Aggregate(matches).CardUsage {
		if u.Name == "Rare Candy" {
			t.Error("single-match card should be filtered out")
		}
	}
}

func TestFirstPlayerAdvantage(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	adv := stats.FirstPlayer
	if adv.TotalMatches != 2 {
		t.Fatalf("first-player matches = %d, want 2", adv.TotalMatches)
	}
	// Alice won both; she went first once.
	if adv.FirstPlayerWins != 1 || adv.FirstPlayerWinRate() != 50 {
		t.Errorf("advantage = %+v", adv)
	}
}

func TestFirstPlayerAdvantageSkipsUndetected(t *testing.T) {
	matches := testMatches()
	matches[1].Confidence.FirstPlayerDetected = false
	agg := New(classifier.Default())
	adv := agg.Aggregate(matches).FirstPlayer
	if adv.TotalMatches != 1 {
		t.Errorf("undetected first player should be skipped, got %d matches", adv.TotalMatches)
	}
}

func TestTurnHistogram(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	var short, mid int
	for _, b := range stats.TurnHistogram {
		switch b.Label {
		case "1-5 turns":
			short = b.Count
		case "6-10 turns":
			mid = b.Count
		}
	}
	if short != 1 || mid != 1 {
		t.Errorf("histogram buckets = %d/%d, want 1/1", short, mid)
	}
}

func TestMatchesPerDay(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	if len(stats.MatchesPerDay) != 2 {
		t.Fatalf("days = %v", stats.MatchesPerDay)
	}
	if stats.MatchesPerDay[0].Date != "2026-08-01" || stats.MatchesPerDay[0].Count != 1 {
		t.Errorf("first day = %+v", stats.MatchesPerDay[0])
	}
}

func TestTopDamage(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())

	if stats.TopDamage == nil {
		t.Fatal("top damage missing")
	}
	td := stats.TopDamage
	if td.Player != "Alice" || td.Pokemon != "Gholdengo ex" || td.Damage != 180 || td.MatchID != "match1" {
		t.Errorf("top damage = %+v", td)
	}
}

func TestTopDamageNilWithoutAttacks(t *testing.T) {
	matches := testMatches()
	matches[0].AttacksUsed = nil
	agg := New(classifier.Default())
	if td := agg.Aggregate(matches).TopDamage; td != nil {
		t.Errorf("top damage = %+v, want nil", td)
	}
}

func TestConcededEstimate(t *testing.T) {
	matches := testMatches()
	matches[1].Player1Prizes = 1
	matches[1].Player2Prizes = 0
	agg := New(classifier.Default())
	stats := agg.Aggregate(matches)
	if stats.ConcededMatches != 1 {
		t.Errorf("conceded = %d, want 1", stats.ConcededMatches)
	}
}

func TestInsightsPresent(t *testing.T) {
	agg := New(classifier.Default())
	stats := agg.Aggregate(testMatches())
	if len(stats.Insights) == 0 {
		t.Error("expected at least one insight")
	}
}
