package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/aggregator"
	"github.com/pokelog/go-tcg-metrics/internal/classifier"
	"github.com/pokelog/go-tcg-metrics/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics across all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.GetAllMatches()
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}

	agg := aggregator.New(classifier.Default())
	report.PrintGameStats(os.Stdout, agg.Aggregate(matches))
	return nil
}
