package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokelog/go-tcg-metrics/internal/aggregator"
	"github.com/pokelog/go-tcg-metrics/internal/analyzer"
	"github.com/pokelog/go-tcg-metrics/internal/api"
	"github.com/pokelog/go-tcg-metrics/internal/classifier"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored matches and statistics over a JSON REST API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, else :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	if addr == "" {
		addr = ":8080"
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	srv := api.NewServer(db,
		aggregator.New(classifier.Default()),
		analyzer.New(newCardClient()),
	)

	fmt.Fprintf(os.Stdout, "Listening on %s\n", addr)
	return http.ListenAndServe(addr, srv.Router())
}
