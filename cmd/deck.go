package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/deck"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Deck-list tools",
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate <decklist.txt>",
	Short: "Validate a deck-list export against constructed-format rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckValidate,
}

var deckEstimateCmd = &cobra.Command{
	Use:   "estimate <player>",
	Short: "Estimate a deck list from a player's stored matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckEstimate,
}

func init() {
	deckCmd.AddCommand(deckValidateCmd)
	deckCmd.AddCommand(deckEstimateCmd)
}

func runDeckValidate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read deck list: %w", err)
	}

	d := deck.Parse(string(raw))
	fmt.Fprintf(os.Stdout, "Pokemon: %d entries  |  Trainers: %d  |  Energy: %d  |  Total cards: %d\n",
		len(d.Pokemon), len(d.Trainers), len(d.Energy), d.TotalCards())

	errs := d.Validate()
	if len(errs) == 0 {
		fmt.Fprintln(os.Stdout, "Deck is legal.")
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stdout, "  - %s\n", e)
	}
	return fmt.Errorf("deck has %d validation error(s)", len(errs))
}

func runDeckEstimate(cmd *cobra.Command, args []string) error {
	player := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.GetAllMatches()
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}

	seen := make(map[string]struct{})
	var pokemon []string
	for i := range matches {
		m := &matches[i]
		var used []string
		switch player {
		case m.Player1:
			used = m.Player1Pokemon
		case m.Player2:
			used = m.Player2Pokemon
		}
		for _, p := range used {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				pokemon = append(pokemon, p)
			}
		}
	}
	if len(pokemon) == 0 {
		fmt.Fprintf(os.Stdout, "No Pokémon recorded for player %q.\n", player)
		return nil
	}

	fmt.Fprint(os.Stdout, deck.Estimate(pokemon))
	return nil
}
