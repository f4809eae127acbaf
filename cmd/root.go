package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/config"
	"github.com/pokelog/go-tcg-metrics/internal/storage"
	"github.com/pokelog/go-tcg-metrics/internal/tcgapi"
)

var (
	dbPath  string
	cfgPath string
	cfg     = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "tcgmetrics",
	Short: "Pokemon TCG match-log metrics tool",
	Long:  "Parse Pokemon TCG Live match transcripts and compute player, Pokemon and card statistics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		if !cmd.Flags().Changed("db") && cfg.Storage.Path != "" {
			dbPath = cfg.Storage.Path
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".tcg-metrics", "matches.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.tcg-metrics/config.toml)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(reparseCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFrom(cfgPath)
	}
	return config.Load()
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func newCardClient() *tcgapi.Client {
	var opts []tcgapi.Option
	if cfg.API.BaseURL != "" {
		opts = append(opts, tcgapi.WithBaseURL(cfg.API.BaseURL))
	}
	if cfg.API.Key != "" {
		opts = append(opts, tcgapi.WithAPIKey(cfg.API.Key))
	}
	return tcgapi.NewClient(opts...)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
