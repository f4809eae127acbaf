// Package report renders match records and aggregate statistics as terminal
// tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pokelog/go-tcg-metrics/internal/cardname"
	"github.com/pokelog/go-tcg-metrics/internal/classifier"
	"github.com/pokelog/go-tcg-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// PrintMatchSummary prints a one-line header for a match.
func PrintMatchSummary(w io.Writer, m *model.MatchRecord) {
	fmt.Fprintf(w, "\n%s  |  Date: %s  |  Winner: %s (%s)  |  Turns: %d  |  ID: %s\n\n",
		m.Title, m.UploadedAt, m.Winner, m.WinCondition, m.Turns, shortID(m.ID))
}

// PrintMatchDetail prints the full per-player breakdown of a single match.
func PrintMatchDetail(w io.Writer, m *model.MatchRecord) {
	PrintMatchSummary(w, m)

	table := newTable(w)
	table.Header("", m.Player1, m.Player2)
	table.Append("Prizes", strconv.Itoa(m.Player1Prizes), strconv.Itoa(m.Player2Prizes))
	table.Append("Damage", strconv.Itoa(m.Player1TotalDamage), strconv.Itoa(m.Player2TotalDamage))
	table.Append("Pokemon", strings.Join(m.Player1Pokemon, ", "), strings.Join(m.Player2Pokemon, ", "))
	table.Render()

	if !m.Confidence.FirstPlayerDetected {
		fmt.Fprintln(w, "\nnote: first player not detected in transcript")
	}
}

// PrintMatchCards prints each player's stored card entries with their
// classified category.
func PrintMatchCards(w io.Writer, m *model.MatchRecord, cls *classifier.Classifier) {
	printCardTable(w, m.Player1, m.Player1Cards, cls)
	printCardTable(w, m.Player2, m.Player2Cards, cls)
}

func printCardTable(w io.Writer, player string, entries []string, cls *classifier.Classifier) {
	fmt.Fprintf(w, "\n%s's cards\n", player)
	table := newTable(w)
	table.Header("CARD", "COUNT", "CATEGORY")
	for _, e := range entries {
		name, count := cardname.SplitEntry(e)
		table.Append(name, strconv.Itoa(count), cls.Classify(name).String())
	}
	table.Render()
}

// PrintMatchList prints one row per stored match.
func PrintMatchList(w io.Writer, matches []model.MatchRecord) {
	table := newTable(w)
	table.Header("ID", "DATE", "PLAYERS", "WINNER", "TURNS", "CONDITION")
	for i := range matches {
		m := &matches[i]
		table.Append(
			shortID(m.ID),
			m.UploadedAt,
			fmt.Sprintf("%s vs %s", m.Player1, m.Player2),
			m.Winner,
			strconv.Itoa(m.Turns),
			m.WinCondition,
		)
	}
	table.Render()
}

// PrintPlayerRanking prints the player leaderboard sorted by wins.
func PrintPlayerRanking(w io.Writer, players []model.PlayerStats) {
	table := newTable(w)
	table.Header("PLAYER", "MATCHES", "W", "L", "WIN%", "AVG_TURNS", "AVG_PRIZES", "TOP_POKEMON", "TOP_CARD")
	for i := range players {
		p := &players[i]
		table.Append(
			p.PlayerName,
			strconv.Itoa(p.TotalMatches),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Losses),
			fmt.Sprintf("%.1f%%", p.WinRate()),
			fmt.Sprintf("%.1f", p.AvgTurns()),
			fmt.Sprintf("%.1f", p.AvgPrizes()),
			p.MostUsedPokemon,
			p.MostUsedCard,
		)
	}
	table.Render()
}

// PrintUsageTable prints a Pokémon or card usage table with win rates.
func PrintUsageTable(w io.Writer, title string, usage []model.UsageStat) {
	fmt.Fprintf(w, "\n%s\n", title)
	table := newTable(w)
	table.Header("NAME", "COUNT", "MATCHES", "WIN%")
	for i := range usage {
		u := &usage[i]
		table.Append(u.Name, strconv.Itoa(u.Count), strconv.Itoa(u.Matches), fmt.Sprintf("%.1f%%", u.WinRate()))
	}
	table.Render()
}

// PrintGameStats prints the aggregate overview, histogram and insights.
func PrintGameStats(w io.Writer, stats *model.GameStats) {
	if stats.TotalMatches == 0 {
		fmt.Fprintln(w, "no matches stored")
		return
	}

	fmt.Fprintf(w, "\nMatches: %d  |  Avg turns: %.1f  |  Avg prizes: %.1f  |  Conceded: %d (%.1f%%)\n",
		stats.TotalMatches, stats.AvgTurns, stats.AvgPrizesPerMatch, stats.ConcededMatches, stats.ConcededPct)
	fmt.Fprintf(w, "Damage dealt: %d total, %.1f per match  |  Attacks: %d total, %.1f per match\n",
		stats.TotalDamageDealt, stats.AvgDamagePerMatch, stats.TotalAttacks, stats.AvgAttacksPerMatch)
	fmt.Fprintf(w, "Shortest match: %d turns (%s)  |  Longest: %d turns (%s)\n",
		stats.ShortestTurns, shortID(stats.ShortestMatchID), stats.LongestTurns, shortID(stats.LongestMatchID))
	if stats.TopDamage != nil {
		fmt.Fprintf(w, "Biggest hit: %s's %s used %s for %d damage (%s)\n",
			stats.TopDamage.Player, stats.TopDamage.Pokemon, stats.TopDamage.Attack,
			stats.TopDamage.Damage, shortID(stats.TopDamage.MatchID))
	}
	if stats.FirstPlayer.TotalMatches > 0 {
		fmt.Fprintf(w, "First-player advantage: %.1f%% over %d matches\n",
			stats.FirstPlayer.FirstPlayerWinRate(), stats.FirstPlayer.TotalMatches)
	}

	fmt.Fprintln(w)
	PrintPlayerRanking(w, stats.Players)
	PrintUsageTable(w, "Pokemon usage", stats.PokemonUsage)
	PrintUsageTable(w, "Card usage", stats.CardUsage)

	fmt.Fprintln(w, "\nTurn distribution")
	table := newTable(w)
	table.Header("TURNS", "MATCHES")
	for _, b := range stats.TurnHistogram {
		table.Append(b.Label, strconv.Itoa(b.Count))
	}
	table.Render()

	if len(stats.MatchesPerDay) > 0 {
		fmt.Fprintln(w, "\nMatches per day")
		table := newTable(w)
		table.Header("DATE", "MATCHES")
		for _, d := range stats.MatchesPerDay {
			table.Append(d.Date, strconv.Itoa(d.Count))
		}
		table.Render()
	}

	if len(stats.Insights) > 0 {
		fmt.Fprintln(w, "\nInsights:")
		for _, in := range stats.Insights {
			fmt.Fprintf(w, "  - %s\n", in)
		}
	}
}

// PrintCardEffectiveness prints the analyzer's per-card effectiveness rows.
func PrintCardEffectiveness(w io.Writer, stats []model.CardStat) {
	table := newTable(w)
	table.Header("CARD", "TYPE", "CATEGORY", "COUNT", "AVG/MATCH", "WIN%", "TIER")
	for i := range stats {
		s := &stats[i]
		category := s.TrainerCategory
		if category == "" {
			category = s.PokemonType
		}
		table.Append(
			s.Name,
			s.Supertype,
			category,
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.1f", s.AvgPerMatch),
			fmt.Sprintf("%.1f%%", s.WinRate),
			s.Effectiveness,
		)
	}
	table.Render()
}

// PrintComposition prints the deck-composition report.
func PrintComposition(w io.Writer, rep *model.CompositionReport) {
	fmt.Fprintf(w, "\nCard pool: %.1f%% Pokemon, %.1f%% Trainer, %.1f%% Energy  |  Avg deck size: %.1f\n",
		rep.PokemonRatio, rep.TrainerRatio, rep.EnergyRatio, rep.AvgDeckSize)
	fmt.Fprintf(w, "Archetypes: %s\n\n", strings.Join(rep.Archetypes, ", "))

	table := newTable(w)
	table.Header("CATEGORY", "DISTINCT CARDS")
	table.Append("Pokemon", strconv.Itoa(rep.PokemonTotal))
	table.Append("Trainer", strconv.Itoa(rep.TrainerTotal))
	table.Append("  Supporters", strconv.Itoa(rep.Supporters))
	table.Append("  Items", strconv.Itoa(rep.Items))
	table.Append("  Stadiums", strconv.Itoa(rep.Stadiums))
	table.Append("  Tools", strconv.Itoa(rep.Tools))
	table.Append("Energy", strconv.Itoa(rep.EnergyTotal))
	table.Append("  Basic", strconv.Itoa(rep.BasicEnergy))
	table.Append("  Special", strconv.Itoa(rep.SpecialEnergy))
	table.Render()

	if len(rep.MostEffectivePokemon) > 0 {
		PrintUsageTable(w, "Most effective Pokemon", rep.MostEffectivePokemon)
	}
	if len(rep.MostEffectiveTrainers) > 0 {
		PrintUsageTable(w, "Most effective trainers", rep.MostEffectiveTrainers)
	}
}
