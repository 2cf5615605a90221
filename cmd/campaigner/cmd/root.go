package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/config"
	"github.com/gmtools/campaigner/engine"
	"github.com/gmtools/campaigner/journal"
	"github.com/gmtools/campaigner/ledger"
	"github.com/gmtools/campaigner/proposal"
	"github.com/gmtools/campaigner/store"
)

var rootCmd = &cobra.Command{
	Use:   "campaigner",
	Short: "A campaign calendar and economy simulator for tabletop games",
	Long: `Campaigner keeps a persistent campaign calendar and simulates the
economy that hangs off it.

It provides tools for:
  - Advancing the in-game date by days, weeks or months
  - Recurring income and expenses posted to bank accounts
  - Long-running follower objectives that burn funds as they progress
  - Branching objective events resolved by operator decisions
  - An append-only journal auditing everything a tick did`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

// env bundles the services a subcommand needs, built from the config
// file (or defaults when none is given).
type env struct {
	cfg     *config.Config
	store   store.Store
	journal journal.Journal
	engine  *engine.Engine
	ledger  *ledger.Service
}

func openEnv() (*env, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	st, err := store.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open campaign store: %w", err)
	}

	var j journal.Journal
	switch cfg.Journal.Type {
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.CSVPath)
	default:
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	}
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &env{
		cfg:     cfg,
		store:   st,
		journal: j,
		engine:  engine.New(st, j),
		ledger:  ledger.NewService(st, j),
	}, nil
}

func (e *env) proposalSource() proposal.Source {
	if e.cfg.Proposal.Type == "http" {
		return proposal.NewClient(e.cfg.Proposal.URL, e.cfg.Proposal.Token)
	}
	return proposal.NewStatic(e.cfg.Proposal.Seed)
}

func (e *env) Close() {
	if err := e.journal.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close journal: %v\n", err)
	}
	if err := e.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close store: %v\n", err)
	}
}
