package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/analyzer"
	"github.com/pokelog/go-tcg-metrics/internal/report"
)

var cardsComposition bool

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Analyze card effectiveness using the card database",
	Args:  cobra.NoArgs,
	RunE:  runCards,
}

func init() {
	cardsCmd.Flags().BoolVar(&cardsComposition, "composition", false, "show deck composition instead of per-card effectiveness")
}

func runCards(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.GetAllMatches()
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet.")
		return nil
	}

	ana := analyzer.New(newCardClient())
	ctx := cmd.Context()

	if cardsComposition {
		report.PrintComposition(os.Stdout, ana.AnalyzeDeckComposition(ctx, matches))
		return nil
	}

	stats := ana.AnalyzeCardEffectiveness(ctx, matches)
	report.PrintCardEffectiveness(os.Stdout, stats)
	if recs := analyzer.Recommendations(stats); len(recs) > 0 {
		fmt.Fprintln(os.Stdout, "\nRecommendations:")
		for _, r := range recs {
			fmt.Fprintf(os.Stdout, "  - %s\n", r)
		}
	}
	return nil
}
