package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/parser"
)

var reparseCmd = &cobra.Command{
	Use:   "reparse",
	Short: "Re-parse all stored raw transcripts with the current parser",
	Long:  "Re-runs the parser over every stored raw transcript and rewrites the derived fields. Use after parser improvements; titles and upload dates are preserved.",
	Args:  cobra.NoArgs,
	RunE:  runReparse,
}

func runReparse(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.GetAllMatches()
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}

	updated := 0
	for i := range matches {
		old := &matches[i]
		if old.RawLog == "" {
			fmt.Fprintf(os.Stderr, "skipping %s: no raw transcript stored\n", old.ID[:12])
			continue
		}
		rec, _ := parser.Parse(old.RawLog)
		rec.Title = old.Title
		rec.UploadedAt = old.UploadedAt
		if err := db.UpdateDerived(rec); err != nil {
			return fmt.Errorf("update %s: %w", old.ID[:12], err)
		}
		updated++
	}
	fmt.Fprintf(os.Stdout, "Re-parsed %d of %d stored matches.\n", updated, len(matches))
	return nil
}
