package cmd

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/api"
	"github.com/gmtools/campaigner/journal"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the campaign over HTTP. Everything the CLI does is available
as JSON endpoints under /api; see the api package for the route table.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// Journal queries are optional; the /api/journal route 404s without
	// a queryable backend.
	audit, _ := e.journal.(journal.Reader)

	server := api.NewServer(e.store, e.engine, e.ledger, e.proposalSource(), audit)

	addr := e.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	slog.Info("serving campaign api", "addr", addr, "db", e.cfg.Database.Path)
	return http.ListenAndServe(addr, server.Handler())
}
