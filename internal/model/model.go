package model

// Win conditions recognized by the parser. WinPrizeCards is the default when
// a transcript carries no explicit end-of-game marker.
const (
	WinDeckOut    = "Deck out"
	WinConcede    = "Concede"
	WinBenchOut   = "Ran out of pokemon in bench"
	WinPrizeCards = "Prize cards"
)

// Player slot labels used in AttackEvent.Player.
const (
	SlotPlayer1 = "player1"
	SlotPlayer2 = "player2"
)

// AttackEvent is one attack extracted from a transcript line.
type AttackEvent struct {
	Pokemon string
	Attack  string
	Damage  int
	Turn    int
	Player  string // SlotPlayer1 or SlotPlayer2
}

// Confidence records which MatchRecord fields were actually detected in the
// transcript versus filled with defaults. The parser never fails; these flags
// are how callers tell a parsed value from a placeholder.
type Confidence struct {
	PlayersDetected      bool
	FirstPlayerDetected  bool
	TurnsDetected        bool
	WinnerDetected       bool
	WinConditionDetected bool
}

// MatchRecord is the structured result of parsing one match transcript.
type MatchRecord struct {
	ID         string // sha256 of the raw transcript, used as the idempotency key
	Title      string
	UploadedAt string // YYYY-MM-DD

	Player1     string
	Player2     string
	Winner      string
	FirstPlayer string
	Turns       int

	Player1Pokemon []string
	Player2Pokemon []string
	Player1Cards   []string // "Name (Nx)" entries, top 20 by count
	Player2Cards   []string

	Player1Prizes int
	Player2Prizes int

	Player1TotalDamage int
	Player2TotalDamage int

	AttacksUsed  []AttackEvent
	WinCondition string

	RawLog string

	Confidence Confidence
}

// WinnerCards returns the card entries of the winning side. Ties break to
// player1, matching the parser's winner fallback.
func (m *MatchRecord) WinnerCards() []string {
	if m.Winner == m.Player2 {
		return m.Player2Cards
	}
	return m.Player1Cards
}

// LoserCards returns the card entries of the losing side.
func (m *MatchRecord) LoserCards() []string {
	if m.Winner == m.Player2 {
		return m.Player1Cards
	}
	return m.Player2Cards
}

// WinnerPokemon returns the Pokémon set of the winning side.
func (m *MatchRecord) WinnerPokemon() []string {
	if m.Winner == m.Player2 {
		return m.Player2Pokemon
	}
	return m.Player1Pokemon
}

// TotalPrizes is the combined prize count of both players.
func (m *MatchRecord) TotalPrizes() int {
	return m.Player1Prizes + m.Player2Prizes
}

// ---- Aggregated statistics ----

// PlayerStats holds one player's totals across all stored matches.
type PlayerStats struct {
	PlayerName   string
	TotalMatches int
	Wins         int
	Losses       int
	TotalPrizes  int
	TotalTurns   int

	PokemonCounts map[string]int
	CardCounts    map[string]int

	MostUsedPokemon string
	MostUsedCard    string
}

func (s *PlayerStats) WinRate() float64 {
	if s.TotalMatches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalMatches) * 100
}

func (s *PlayerStats) AvgTurns() float64 {
	if s.TotalMatches == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.TotalMatches)
}

func (s *PlayerStats) AvgPrizes() float64 {
	if s.TotalMatches == 0 {
		return 0
	}
	return float64(s.TotalPrizes) / float64(s.TotalMatches)
}

// UsageStat is a usage count plus win rate for one Pokémon or card name.
type UsageStat struct {
	Name    string
	Count   int
	Wins    int
	Matches int
}

func (u *UsageStat) WinRate() float64 {
	if u.Count == 0 {
		return 0
	}
	return float64(u.Wins) / float64(u.Count) * 100
}

// FirstPlayerAdvantage measures how often the player who took the first turn
// won, over matches where the first player was actually detected.
type FirstPlayerAdvantage struct {
	TotalMatches    int
	FirstPlayerWins int
}

func (a *FirstPlayerAdvantage) FirstPlayerWinRate() float64 {
	if a.TotalMatches == 0 {
		return 0
	}
	return float64(a.FirstPlayerWins) / float64(a.TotalMatches) * 100
}

func (a *FirstPlayerAdvantage) SecondPlayerWins() int {
	return a.TotalMatches - a.FirstPlayerWins
}

// TurnBucket is one bar of the turn-count histogram.
type TurnBucket struct {
	Label string
	Count int
}

// DayCount is the number of matches uploaded on one date.
type DayCount struct {
	Date  string
	Count int
}

// DamageRecord is the single highest-damage attack found across all stored
// transcripts.
type DamageRecord struct {
	Player  string
	Pokemon string
	Attack  string
	Damage  int
	MatchID string
}

// GameStats is the full cross-match aggregate report.
type GameStats struct {
	TotalMatches       int
	AvgTurns           float64
	ShortestMatchID    string
	ShortestTurns      int
	LongestMatchID     string
	LongestTurns       int
	ConcededMatches    int
	ConcededPct        float64
	AvgPrizesPerMatch  float64
	TotalDamageDealt   int
	AvgDamagePerMatch  float64
	TotalAttacks       int
	AvgAttacksPerMatch float64

	Players        []PlayerStats // sorted by wins desc
	PokemonUsage   []UsageStat   // top 20 by count
	CardUsage      []UsageStat   // top 25 by count, matches >= 2
	TurnHistogram  []TurnBucket
	MatchesPerDay  []DayCount
	FirstPlayer    FirstPlayerAdvantage
	TopDamage      *DamageRecord // nil when no attack was found anywhere
	Insights       []string
}

// ---- Enhanced card analysis ----

// Effectiveness tiers assigned by the analyzer.
const (
	TierHigh         = "High"
	TierMedium       = "Medium"
	TierLow          = "Low"
	TierInsufficient = "Insufficient data"
)

// CardStat is the per-card effectiveness row produced by the analyzer.
type CardStat struct {
	Name            string
	Count           int
	WinRate         float64
	AvgPerMatch     float64
	Supertype       string // "Pokémon", "Trainer", "Energy", "Unknown"
	TrainerCategory string // "Item", "Supporter", "Stadium", "Pokémon Tool"; empty otherwise
	PokemonType     string // elemental type; empty for non-Pokémon
	Effectiveness   string
	Recommendation  string
}

// CompositionReport describes the overall deck makeup observed across matches.
type CompositionReport struct {
	PokemonTotal  int
	PokemonByType map[string]int
	TrainerTotal  int
	Supporters    int
	Items         int
	Stadiums      int
	Tools         int
	EnergyTotal   int
	BasicEnergy   int
	SpecialEnergy int

	PokemonRatio float64 // % of distinct card names
	TrainerRatio float64
	EnergyRatio  float64

	AvgDeckSize float64
	Archetypes  []string

	MostEffectivePokemon  []UsageStat
	MostEffectiveTrainers []UsageStat
}
