package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/classifier"
	"github.com/pokelog/go-tcg-metrics/internal/parser"
	"github.com/pokelog/go-tcg-metrics/internal/report"
	"github.com/pokelog/go-tcg-metrics/internal/storage"
)

var parseShowCards bool

var parseCmd = &cobra.Command{
	Use:   "parse <match.log>",
	Short: "Parse a match transcript and store the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseShowCards, "cards", false, "also print each player's card usage")
}

func runParse(cmd *cobra.Command, args []string) error {
	logPath := args[0]

	raw, err := os.ReadFile(logPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id := parser.HashLog(string(raw))
	exists, err := db.MatchExists(id)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Match %s already stored, showing cached results.\n", id[:12])
		return showByID(db, id)
	}

	rec, conf := parser.Parse(string(raw))
	rec.Title = parser.MatchTitle(rec, time.Now().Unix())
	rec.UploadedAt = time.Now().Format("2006-01-02")

	if !conf.PlayersDetected {
		fmt.Fprintln(os.Stderr, "warning: player names not detected, stored with placeholders")
	}
	if !conf.WinnerDetected {
		fmt.Fprintln(os.Stderr, "warning: no win statement found, winner defaulted")
	}

	if err := db.InsertMatch(rec); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	report.PrintMatchDetail(os.Stdout, rec)
	if parseShowCards {
		report.PrintMatchCards(os.Stdout, rec, classifier.Default())
	}
	return nil
}

func showByID(db *storage.DB, id string) error {
	rec, err := db.GetMatchByPrefix(id)
	if err != nil || rec == nil {
		return fmt.Errorf("match not found: %s", id)
	}
	report.PrintMatchDetail(os.Stdout, rec)
	if parseShowCards {
		report.PrintMatchCards(os.Stdout, rec, classifier.Default())
	}
	return nil
}
