// Package parser turns raw Pokémon TCG Live match transcripts into structured
// match records. Parsing is best-effort and never fails: fields that cannot be
// recovered from the text fall back to defaults, and the returned Confidence
// flags say which is which.
package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pokelog/go-tcg-metrics/internal/cardname"
	"github.com/pokelog/go-tcg-metrics/internal/model"
)

// Substrings that disqualify an extracted token from being a card name. These
// catch game-state phrases that slip through the action patterns.
var skipSubstrings = []string{
	"Prize card", "prize card", "cards", "card", "damage", "turn", "hand",
	"deck", "discard pile", "bench", "active", "knocked out", "ko",
}

var (
	reAllDigits   = regexp.MustCompile(`^\d+$`)
	reShortAlpha  = regexp.MustCompile(`^(?i)[a-z]{1,2}$`)
	reConcededBy  = regexp.MustCompile(`(?i)(\w+) (?:conceded|has conceded|concedes)`)
	reWinsAnyCase = regexp.MustCompile(`(?i)(\w+) wins\.`)
)

// validCardName reports whether a cleaned token is plausible as a card name.
func validCardName(name string) bool {
	if len(name) <= 2 {
		return false
	}
	for _, s := range skipSubstrings {
		if strings.Contains(name, s) {
			return false
		}
	}
	if reAllDigits.MatchString(name) || reShortAlpha.MatchString(name) {
		return false
	}
	return true
}

type playerState struct {
	pokemon     []string
	pokemonSeen map[string]struct{}
	cards       map[string]int
	cardOrder   []string
	prizes      int
	totalDamage int
}

func newPlayerState() *playerState {
	return &playerState{
		pokemonSeen: make(map[string]struct{}),
		cards:       make(map[string]int),
	}
}

func (p *playerState) addPokemon(name string) {
	if _, ok := p.pokemonSeen[name]; !ok {
		p.pokemonSeen[name] = struct{}{}
		p.pokemon = append(p.pokemon, name)
	}
}

func (p *playerState) addCard(name string) {
	if _, ok := p.cards[name]; !ok {
		p.cardOrder = append(p.cardOrder, name)
	}
	p.cards[name]++
}

// maxStoredCards caps the per-player card list; transcripts mention far more
// tokens than are worth keeping.
const maxStoredCards = 20

// cardEntries shapes a player's card counts into sorted "Name (Nx)" entries,
// descending by count with name as the tiebreak, capped at maxStoredCards.
func (p *playerState) cardEntries() []string {
	names := make([]string, len(p.cardOrder))
	copy(names, p.cardOrder)
	sort.SliceStable(names, func(i, j int) bool {
		if p.cards[names[i]] != p.cards[names[j]] {
			return p.cards[names[i]] > p.cards[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > maxStoredCards {
		names = names[:maxStoredCards]
	}
	entries := make([]string, len(names))
	for i, n := range names {
		entries[i] = cardname.FormatEntry(n, p.cards[n])
	}
	return entries
}

// Parse extracts a structured record from a raw transcript. It always returns
// a usable record; the Confidence result marks which fields were genuinely
// detected rather than defaulted.
func Parse(text string) (*model.MatchRecord, model.Confidence) {
	var (
		player1, player2 string
		firstPlayer      string
		winner           string
		turns            int
		currentTurn      int
		attacks          []model.AttackEvent
	)
	p1 := newPlayerState()
	p2 := newPlayerState()

	lines := strings.Split(text, "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		ev := classifyLine(line, player1, player2)
		switch ev.kind {
		case lineCoinFlip:
			if player1 == "" {
				player1 = ev.player
			}
		case lineOpeningHand:
			if ev.player != player1 && player2 == "" {
				player2 = ev.player
			}
		case lineFirstPlayer:
			if firstPlayer == "" {
				firstPlayer = ev.player
			}
		case lineTurnHeader:
			if ev.turn > turns {
				turns = ev.turn
			}
			currentTurn = ev.turn
			if ev.turn == 1 && ev.player != "" && firstPlayer == "" {
				firstPlayer = ev.player
			}
		case lineAttack:
			slot := model.SlotPlayer2
			if ev.player == player1 {
				slot = model.SlotPlayer1
			}
			attacks = append(attacks, model.AttackEvent{
				Pokemon: ev.pokemon,
				Attack:  ev.attack,
				Damage:  ev.damage,
				Turn:    currentTurn,
				Player:  slot,
			})
			if ev.player == player1 {
				p1.totalDamage += ev.damage
			} else if ev.player == player2 {
				p2.totalDamage += ev.damage
			}
			// The possessive form also tells us which Pokémon was in play.
			if ev.pokemon != "Unknown Pokemon" {
				if st := stateFor(ev.player, player1, player2, p1, p2); st != nil {
					if name := cardname.Clean(ev.pokemon); validCardName(name) {
						st.addPokemon(name)
						st.addCard(name)
					}
				}
			}
		case linePrize:
			if st := stateFor(ev.player, player1, player2, p1, p2); st != nil {
				st.prizes += ev.prizes
			}
		case lineWinStatement:
			winner = ev.player
		case linePlayCard:
			st := stateFor(ev.player, player1, player2, p1, p2)
			if st == nil {
				break
			}
			name := cardname.Clean(ev.card)
			if !validCardName(name) {
				break
			}
			if ev.isPokemon {
				st.addPokemon(name)
			}
			st.addCard(name)
		}
	}

	winCondition, winner := resolveWinCondition(lines, winner, player1, player2)

	conf := model.Confidence{
		PlayersDetected:      player1 != "" && player2 != "",
		FirstPlayerDetected:  firstPlayer != "",
		TurnsDetected:        turns > 0,
		WinnerDetected:       winner != "",
		WinConditionDetected: winCondition != "",
	}

	rec := &model.MatchRecord{
		ID:                 HashLog(text),
		Player1:            fallback(player1, "Player 1"),
		Player2:            fallback(player2, "Player 2"),
		Winner:             fallback(winner, fallback(player1, "Unknown")),
		FirstPlayer:        fallback(firstPlayer, fallback(player1, "Player 1")),
		Turns:              max(turns, 1),
		Player1Pokemon:     p1.pokemon,
		Player2Pokemon:     p2.pokemon,
		Player1Cards:       p1.cardEntries(),
		Player2Cards:       p2.cardEntries(),
		Player1Prizes:      p1.prizes,
		Player2Prizes:      p2.prizes,
		Player1TotalDamage: p1.totalDamage,
		Player2TotalDamage: p2.totalDamage,
		AttacksUsed:        attacks,
		WinCondition:       fallback(winCondition, model.WinPrizeCards),
		RawLog:             text,
		Confidence:         conf,
	}
	return rec, conf
}

func stateFor(name, player1, player2 string, p1, p2 *playerState) *playerState {
	switch {
	case name != "" && name == player1:
		return p1
	case name != "" && name == player2:
		return p2
	default:
		return nil
	}
}

// resolveWinCondition scans the transcript for end-of-game markers. Later
// markers override earlier ones, so the line that actually ended the game wins
// when a transcript mentions several. A bare "X wins." only fills the winner
// when nothing more specific named one.
func resolveWinCondition(lines []string, winner, player1, player2 string) (string, string) {
	condition := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "deck ran out of cards") ||
			strings.Contains(lower, "ran out of cards") ||
			strings.Contains(lower, "no cards left"):
			condition = model.WinDeckOut
			if m := reWins.FindStringSubmatch(line); m != nil {
				winner = m[1]
			}
		case strings.Contains(lower, "concede"):
			condition = model.WinConcede
			if strings.Contains(lower, "opponent conceded") {
				if m := reWinsAnyCase.FindStringSubmatch(line); m != nil {
					winner = m[1]
				}
			} else if m := reConcededBy.FindStringSubmatch(line); m != nil {
				// The conceding player loses; flip only when the name maps to
				// a known player, otherwise keep whatever we already resolved.
				switch m[1] {
				case player1:
					winner = player2
				case player2:
					winner = player1
				}
			}
		case strings.Contains(lower, "ran out of pokemon") ||
			strings.Contains(lower, "no pokemon left") ||
			strings.Contains(lower, "all pokemon knocked out"):
			condition = model.WinBenchOut
			if m := reWins.FindStringSubmatch(line); m != nil {
				winner = m[1]
			}
		case strings.Contains(lower, "all prize cards taken") ||
			strings.Contains(lower, "6 prize cards") ||
			strings.Contains(lower, "game completed"):
			condition = model.WinPrizeCards
			if m := reWins.FindStringSubmatch(line); m != nil {
				winner = m[1]
			}
		}
		if winner == "" {
			if m := reWins.FindStringSubmatch(line); m != nil {
				winner = m[1]
			}
		}
	}
	return condition, winner
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// HashLog returns the hex sha256 of a raw transcript, used as the match ID and
// the idempotency key for storage.
func HashLog(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// MatchTitle renders the default display title for a parsed match.
func MatchTitle(rec *model.MatchRecord, seq int64) string {
	return fmt.Sprintf("%s vs %s - Match #%d", rec.Player1, rec.Player2, seq)
}
