// Package aggregator computes cross-match statistics from stored match
// records: player rankings, Pokémon and card usage, first-player advantage,
// turn distribution and a handful of derived insights.
package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pokelog/go-tcg-metrics/internal/cardname"
	"github.com/pokelog/go-tcg-metrics/internal/classifier"
	"github.com/pokelog/go-tcg-metrics/internal/model"
)

const (
	maxPokemonUsage = 20
	maxCardUsage    = 25
	// minCardMatches drops cards seen in only one match from the usage table.
	minCardMatches = 2
)

// Aggregator turns match records into aggregate statistics.
type Aggregator struct {
	cls *classifier.Classifier
}

// New returns an Aggregator using the given classifier to filter ability and
// attack names out of card-usage tables.
func New(cls *classifier.Classifier) *Aggregator {
	return &Aggregator{cls: cls}
}

// Aggregate computes the full statistics report over the given matches.
// An empty input yields a zero-valued report, never an error.
func (a *Aggregator) Aggregate(matches []model.MatchRecord) *model.GameStats {
	stats := &model.GameStats{}
	if len(matches) == 0 {
		return stats
	}
	stats.TotalMatches = len(matches)

	totalTurns := 0
	totalPrizes := 0
	shortest := &matches[0]
	longest := &matches[0]
	for i := range matches {
		m := &matches[i]
		totalTurns += m.Turns
		totalPrizes += m.TotalPrizes()
		if m.Turns < shortest.Turns {
			shortest = m
		}
		if m.Turns > longest.Turns {
			longest = m
		}
		if isLikelyConceded(m) {
			stats.ConcededMatches++
		}
		stats.TotalDamageDealt += m.Player1TotalDamage + m.Player2TotalDamage
		stats.TotalAttacks += len(m.AttacksUsed)
	}
	n := float64(len(matches))
	stats.AvgTurns = float64(totalTurns) / n
	stats.AvgPrizesPerMatch = float64(totalPrizes) / n
	stats.AvgDamagePerMatch = float64(stats.TotalDamageDealt) / n
	stats.AvgAttacksPerMatch = float64(stats.TotalAttacks) / n
	stats.ConcededPct = float64(stats.ConcededMatches) / n * 100
	stats.ShortestMatchID = shortest.ID
	stats.ShortestTurns = shortest.Turns
	stats.LongestMatchID = longest.ID
	stats.LongestTurns = longest.Turns

	stats.Players = a.playerRankings(matches)
	stats.PokemonUsage = pokemonUsage(matches)
	stats.CardUsage = a.cardUsage(matches)
	stats.TurnHistogram = turnHistogram(matches)
	stats.MatchesPerDay = matchesPerDay(matches)
	stats.FirstPlayer = firstPlayerAdvantage(matches)
	stats.TopDamage = topDamage(matches)
	stats.Insights = insights(stats)
	return stats
}

// isLikelyConceded flags matches that probably ended in a concession the
// transcript never spelled out: almost no prizes taken, or a very early end
// with the winner barely ahead.
func isLikelyConceded(m *model.MatchRecord) bool {
	if m.WinCondition == model.WinConcede {
		return true
	}
	winnerPrizes := m.Player1Prizes
	if m.Winner == m.Player2 {
		winnerPrizes = m.Player2Prizes
	}
	return m.TotalPrizes() < 3 || (m.Turns < 3 && winnerPrizes < 2)
}

func (a *Aggregator) playerRankings(matches []model.MatchRecord) []model.PlayerStats {
	byName := make(map[string]*model.PlayerStats)
	order := []string{}
	get := func(name string) *model.PlayerStats {
		if s, ok := byName[name]; ok {
			return s
		}
		s := &model.PlayerStats{
			PlayerName:    name,
			PokemonCounts: make(map[string]int),
			CardCounts:    make(map[string]int),
		}
		byName[name] = s
		order = append(order, name)
		return s
	}

	for i := range matches {
		m := &matches[i]
		p1 := get(m.Player1)
		p2 := get(m.Player2)
		p1.TotalMatches++
		p2.TotalMatches++
		p1.TotalTurns += m.Turns
		p2.TotalTurns += m.Turns
		p1.TotalPrizes += m.Player1Prizes
		p2.TotalPrizes += m.Player2Prizes
		if m.Winner == m.Player2 {
			p2.Wins++
			p1.Losses++
		} else {
			p1.Wins++
			p2.Losses++
		}
		for _, p := range m.Player1Pokemon {
			p1.PokemonCounts[p]++
		}
		for _, p := range m.Player2Pokemon {
			p2.PokemonCounts[p]++
		}
		for _, entry := range m.Player1Cards {
			name, count := cardname.SplitEntry(entry)
			p1.CardCounts[cardname.Clean(name)] += count
		}
		for _, entry := range m.Player2Cards {
			name, count := cardname.SplitEntry(entry)
			p2.CardCounts[cardname.Clean(name)] += count
		}
	}

	out := make([]model.PlayerStats, 0, len(order))
	for _, name := range order {
		s := byName[name]
		s.MostUsedPokemon = maxKey(s.PokemonCounts)
		s.MostUsedCard = maxKey(s.CardCounts)
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	return out
}

func maxKey(counts map[string]int) string {
	best, bestCount := "", 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

func pokemonUsage(matches []model.MatchRecord) []model.UsageStat {
	usage := make(map[string]*model.UsageStat)
	order := []string{}
	for i := range matches {
		m := &matches[i]
		winners := make(map[string]struct{}, len(m.WinnerPokemon()))
		for _, p := range m.WinnerPokemon() {
			winners[p] = struct{}{}
		}
		for _, p := range append(append([]string{}, m.Player1Pokemon...), m.Player2Pokemon...) {
			u, ok := usage[p]
			if !ok {
				u = &model.UsageStat{Name: p}
				usage[p] = u
				order = append(order, p)
			}
			u.Count++
			u.Matches++
			if _, won := winners[p]; won {
				u.Wins++
			}
		}
	}
	return topUsage(usage, order, maxPokemonUsage, 0)
}

// cardUsage tallies stored "Name (Nx)" entries by copy count. Names the
// classifier recognizes as abilities or attacks are artifacts of transcript
// extraction, not cards, and are dropped.
func (a *Aggregator) cardUsage(matches []model.MatchRecord) []model.UsageStat {
	usage := make(map[string]*model.UsageStat)
	order := []string{}
	for i := range matches {
		m := &matches[i]
		winnerNames := make(map[string]int)
		for _, entry := range m.WinnerCards() {
			name, count := cardname.SplitEntry(entry)
			winnerNames[cardname.Clean(name)] += count
		}
		seen := make(map[string]struct{})
		for _, entry := range append(append([]string{}, m.Player1Cards...), m.Player2Cards...) {
			rawName, count := cardname.SplitEntry(entry)
			name := cardname.Clean(rawName)
			if name == "" || a.cls.IsAbilityArtifact(name) {
				continue
			}
			u, ok := usage[name]
			if !ok {
				u = &model.UsageStat{Name: name}
				usage[name] = u
				order = append(order, name)
			}
			u.Count += count
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				u.Matches++
			}
		}
		for name, count := range winnerNames {
			if u, ok := usage[name]; ok {
				u.Wins += count
			}
		}
	}
	return topUsage(usage, order, maxCardUsage, minCardMatches)
}

func topUsage(usage map[string]*model.UsageStat, order []string, limit, minMatches int) []model.UsageStat {
	out := make([]model.UsageStat, 0, len(order))
	for _, name := range order {
		u := usage[name]
		if u.Matches < minMatches {
			continue
		}
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var turnRanges = []struct {
	min, max int
	label    string
}{
	{1, 5, "1-5 turns"},
	{6, 10, "6-10 turns"},
	{11, 15, "11-15 turns"},
	{16, 20, "16-20 turns"},
	{21, 30, "21-30 turns"},
	{31, 1 << 30, "31+ turns"},
}

func turnHistogram(matches []model.MatchRecord) []model.TurnBucket {
	out := make([]model.TurnBucket, len(turnRanges))
	for i, r := range turnRanges {
		out[i].Label = r.label
	}
	for i := range matches {
		for j, r := range turnRanges {
			if matches[i].Turns >= r.min && matches[i].Turns <= r.max {
				out[j].Count++
				break
			}
		}
	}
	return out
}

func matchesPerDay(matches []model.MatchRecord) []model.DayCount {
	byDate := make(map[string]int)
	for i := range matches {
		date := matches[i].UploadedAt
		if len(date) > 10 {
			date = date[:10]
		}
		byDate[date]++
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	out := make([]model.DayCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.DayCount{Date: d, Count: byDate[d]})
	}
	return out
}

// firstPlayerAdvantage only counts matches whose first player was genuinely
// detected; defaulted values would bias the rate toward player1.
func firstPlayerAdvantage(matches []model.MatchRecord) model.FirstPlayerAdvantage {
	var adv model.FirstPlayerAdvantage
	for i := range matches {
		m := &matches[i]
		if !m.Confidence.FirstPlayerDetected {
			continue
		}
		adv.TotalMatches++
		if m.Winner == m.FirstPlayer {
			adv.FirstPlayerWins++
		}
	}
	return adv
}

func topDamage(matches []model.MatchRecord) *model.DamageRecord {
	var top *model.DamageRecord
	for i := range matches {
		m := &matches[i]
		for _, a := range m.AttacksUsed {
			if top != nil && a.Damage <= top.Damage {
				continue
			}
			player := m.Player1
			if a.Player == model.SlotPlayer2 {
				player = m.Player2
			}
			top = &model.DamageRecord{
				Player:  player,
				Pokemon: a.Pokemon,
				Attack:  a.Attack,
				Damage:  a.Damage,
				MatchID: m.ID,
			}
		}
	}
	return top
}

func insights(stats *model.GameStats) []string {
	var out []string
	if stats.TotalMatches == 0 {
		return out
	}

	if stats.AvgTurns < 8 {
		out = append(out, "Matches tend to be short, suggesting aggressive or lopsided matchups.")
	} else if stats.AvgTurns > 15 {
		out = append(out, "Matches run long, suggesting controlled, grindy strategies.")
	}

	if stats.ConcededPct > 30 {
		out = append(out, "High concession rate; the local meta may be unbalanced.")
	} else if stats.ConcededPct < 10 {
		out = append(out, "Low concession rate; matches are played out to the end.")
	}

	if len(stats.Players) > 0 {
		top := stats.Players[0]
		if top.WinRate() > 70 {
			out = append(out, fmt.Sprintf("%s dominates with a %.1f%% win rate.", top.PlayerName, top.WinRate()))
		}
	}

	if len(stats.PokemonUsage) > 0 {
		top := stats.PokemonUsage[0]
		out = append(out, fmt.Sprintf("%s is the most played Pokémon with %d appearances.", top.Name, top.Count))
		var dominant []string
		for _, u := range stats.PokemonUsage {
			if u.WinRate() > 70 && u.Count >= 3 {
				dominant = append(dominant, u.Name)
			}
		}
		if len(dominant) > 0 {
			out = append(out, "Dominant Pokémon: "+strings.Join(dominant, ", "))
		}
	}

	if len(stats.CardUsage) > 0 {
		top := stats.CardUsage[0]
		out = append(out, fmt.Sprintf("%s is the most used card with %d total copies played.", top.Name, top.Count))
	}

	if stats.FirstPlayer.TotalMatches >= 5 {
		rate := stats.FirstPlayer.FirstPlayerWinRate()
		switch {
		case rate > 60:
			out = append(out, fmt.Sprintf("Going first carries a clear advantage (%.1f%% win rate).", rate))
		case rate < 40:
			out = append(out, fmt.Sprintf("Going second is favored (%.1f%% win rate for the second player).", 100-rate))
		case rate >= 45 && rate <= 55:
			out = append(out, fmt.Sprintf("First and second player are evenly matched (%.1f%% vs %.1f%%).", rate, 100-rate))
		}
	}

	return out
}
