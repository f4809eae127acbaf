package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// lineKind tags what a transcript line was recognized as. Rules are evaluated
// in a fixed order, so a line that could read as both a played card and a
// damage statement is classified exactly once.
type lineKind int

const (
	lineUnrecognized lineKind = iota
	lineCoinFlip              // discovers player1
	lineOpeningHand           // discovers player2
	lineFirstPlayer           // explicit go-first statement
	lineTurnHeader
	lineAttack
	linePrize
	lineWinStatement
	linePlayCard
)

// lineEvent is the extracted content of one recognized line.
type lineEvent struct {
	kind lineKind

	player string // acting player, as written in the transcript

	// lineTurnHeader
	turn int

	// lineAttack
	pokemon string
	attack  string
	damage  int

	// linePrize
	prizes int

	// linePlayCard
	card      string
	isPokemon bool
}

var (
	reDrewOpening   = regexp.MustCompile(`^(\w+) drew 7 cards`)
	reDecidedFirst  = regexp.MustCompile(`(\w+) decided to go first`)
	reTurnHeader    = regexp.MustCompile(`^Turn # (\d+)`)
	reTurnHeaderWho = regexp.MustCompile(`^Turn # 1 - (\w+)'s Turn`)
	reTurnParenWho  = regexp.MustCompile(`^Turn 1 \((\w+)\):`)
	reAttackFull    = regexp.MustCompile(`(\w+)'s (.+?) used (.+?) for (\d+) damage`)
	reAttackSimple  = regexp.MustCompile(`(\w+) used ([^.]+?) for (\d+) damage`)
	rePrize         = regexp.MustCompile(`(\w+) took (\d+|\w+) Prize cards?`)
	reWins          = regexp.MustCompile(`(\w+) wins\.`)

	rePlayedRanked = regexp.MustCompile(`played ([^.]+?)(?:\s+to|\.|$)`)
	rePossessive   = regexp.MustCompile(`(\w+)'s ([^.]+?) used`)
	rePlayedAny    = regexp.MustCompile(`played ([^.]+?)(?:\s+(?:to|from|on|\.|$))`)
	reAttached     = regexp.MustCompile(`attached ([^.]+?)(?:\s+(?:to|from|on|\.|$))`)
	reUsedAny      = regexp.MustCompile(`used ([^.]+?)(?:\s+(?:to|from|on|\.|$))`)
	reDrewSearched = regexp.MustCompile(`(?:drew|searched for|put) ([^.]+?)(?:\s+(?:from|into|to|\.|$))`)
	reEvolved      = regexp.MustCompile(`(?:evolved|evolving) ([^.]+?)(?:\s+(?:into|from|to|\.|$))`)
)

// rankSuffixes mark a played card as a Pokémon in the absence of anything
// better to go on.
var rankSuffixes = []string{" ex", " V", "GX", "VMAX", "VStar", "TAG TEAM"}

// classifyLine runs the ranked rule battery over one trimmed line. player1
// and player2 are the names discovered so far; empty names never match.
func classifyLine(line, player1, player2 string) lineEvent {
	// 1. Setup markers.
	if strings.Contains(line, "chose heads for the opening coin flip") {
		return lineEvent{kind: lineCoinFlip, player: strings.SplitN(line, " chose heads", 2)[0]}
	}
	if strings.Contains(line, "won the coin toss") {
		return lineEvent{kind: lineCoinFlip, player: strings.SplitN(line, " won the coin toss", 2)[0]}
	}
	if strings.Contains(line, "drew 7 cards for the opening hand") {
		if m := reDrewOpening.FindStringSubmatch(line); m != nil {
			return lineEvent{kind: lineOpeningHand, player: m[1]}
		}
	}

	// 2. Explicit go-first statements.
	if m := reDecidedFirst.FindStringSubmatch(line); m != nil {
		return lineEvent{kind: lineFirstPlayer, player: m[1]}
	}
	if strings.Contains(line, "chose to go first") {
		return lineEvent{kind: lineFirstPlayer, player: strings.SplitN(line, " chose to go first", 2)[0]}
	}

	// 3. Turn headers. "Turn # 1 - Name's Turn" doubles as a first-player
	// marker; "Turn 1 (Name):" is a header variant seen in older logs.
	if m := reTurnHeader.FindStringSubmatch(line); m != nil {
		ev := lineEvent{kind: lineTurnHeader}
		ev.turn, _ = strconv.Atoi(m[1])
		if who := reTurnHeaderWho.FindStringSubmatch(line); who != nil {
			ev.player = who[1]
		}
		return ev
	}
	if m := reTurnParenWho.FindStringSubmatch(line); m != nil {
		return lineEvent{kind: lineTurnHeader, turn: 1, player: m[1]}
	}

	// 4. Attacks with damage. The richer possessive form names the attacking
	// Pokémon; the simple form leaves it unknown.
	if strings.Contains(line, "used ") && strings.Contains(line, " damage") {
		if m := reAttackFull.FindStringSubmatch(line); m != nil {
			dmg, _ := strconv.Atoi(m[4])
			return lineEvent{kind: lineAttack, player: m[1], pokemon: strings.TrimSpace(m[2]), attack: strings.TrimSpace(m[3]), damage: dmg}
		}
		if m := reAttackSimple.FindStringSubmatch(line); m != nil {
			dmg, _ := strconv.Atoi(m[3])
			return lineEvent{kind: lineAttack, player: m[1], pokemon: "Unknown Pokemon", attack: strings.TrimSpace(m[2]), damage: dmg}
		}
	}

	// 5. Prize cards.
	if strings.Contains(line, "Prize card") && strings.Contains(line, "took ") {
		if m := rePrize.FindStringSubmatch(line); m != nil {
			return lineEvent{kind: linePrize, player: m[1], prizes: prizeCount(m[2])}
		}
	}

	// 6. Bare win statements.
	if m := reWins.FindStringSubmatch(line); m != nil {
		return lineEvent{kind: lineWinStatement, player: m[1]}
	}

	// 7. Card/Pokémon actions, only for lines opening with a known player.
	actor := ""
	if player1 != "" && strings.HasPrefix(line, player1) {
		actor = player1
	} else if player2 != "" && strings.HasPrefix(line, player2) {
		actor = player2
	}
	if actor != "" {
		if card, isPokemon, ok := extractCard(line); ok {
			return lineEvent{kind: linePlayCard, player: actor, card: card, isPokemon: isPokemon}
		}
	}

	return lineEvent{kind: lineUnrecognized}
}

// extractCard tries the seven card-action patterns in priority order; the
// first match wins.
func extractCard(line string) (card string, isPokemon bool, ok bool) {
	// Pattern 1: a played Pokémon betrayed by its rank suffix.
	if strings.Contains(line, "played ") && hasRankSuffix(line) {
		if m := rePlayedRanked.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true, true
		}
	}
	// Pattern 2: possessive ability/attack usage names the Pokémon itself.
	if strings.Contains(line, "'s ") && (strings.Contains(line, " used ") || strings.Contains(line, " ability ")) {
		if m := rePossessive.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2]), true, true
		}
	}
	// Pattern 3: any other played card (trainers, items, stadiums).
	if strings.Contains(line, "played ") {
		if m := rePlayedAny.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), false, true
		}
	}
	// Pattern 4: attached energy.
	if strings.Contains(line, "attached ") {
		if m := reAttached.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), false, true
		}
	}
	// Pattern 5: used items/supporters/abilities; damage lines were already
	// claimed by the attack rule.
	if strings.Contains(line, "used ") && !strings.Contains(line, " for ") && !strings.Contains(line, " damage") {
		if m := reUsedAny.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), false, true
		}
	}
	// Pattern 6: drawn, searched or placed cards.
	if strings.Contains(line, "drew ") || strings.Contains(line, "searched ") || strings.Contains(line, "put ") {
		if m := reDrewSearched.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), false, true
		}
	}
	// Pattern 7: evolutions.
	if strings.Contains(line, "evolved ") || strings.Contains(line, "evolving ") {
		if m := reEvolved.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true, true
		}
	}
	return "", false, false
}

func hasRankSuffix(line string) bool {
	for _, s := range rankSuffixes {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// prizeCount maps the quantity token of a prize line to an integer. Anything
// unrecognized counts as a single prize.
func prizeCount(token string) int {
	switch strings.ToLower(token) {
	case "2", "two":
		return 2
	case "3", "three":
		return 3
	default:
		return 1
	}
}
