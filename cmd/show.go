package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/classifier"
	"github.com/pokelog/go-tcg-metrics/internal/report"
)

var showCards bool

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a stored match by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showCards, "cards", false, "also print each player's card usage")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "No match found with ID prefix %q\n", prefix)
		return nil
	}

	report.PrintMatchDetail(os.Stdout, rec)
	if showCards {
		report.PrintMatchCards(os.Stdout, rec, classifier.Default())
	}
	return nil
}
