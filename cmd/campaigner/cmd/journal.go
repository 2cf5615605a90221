package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the audit journal",
	Long: `Read back what past ticks did. Every posting, progress increment,
event resolution and skipped rule lands in the journal as it happens.

Examples:
  campaigner journal recent
  campaigner journal day 4712-03-15`,
}

var journalRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent journal entries",
	Args:  cobra.NoArgs,
	RunE:  runJournalRecent,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Show every entry recorded for one campaign day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalLimit int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRecentCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalRecentCmd.Flags().IntVarP(&journalLimit, "limit", "n", 50, "max entries to show")
}

func runJournalRecent(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	reader, err := auditReader(e)
	if err != nil {
		return err
	}
	entries, err := reader.Recent(journalLimit)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	day, err := calendar.Parse(args[0])
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	reader, err := auditReader(e)
	if err != nil {
		return err
	}
	entries, err := reader.EntriesByDate(day)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

// auditReader unwraps the query side of the journal. The CSV journal is
// append-only, so reads need the SQLite backend.
func auditReader(e *env) (journal.Reader, error) {
	reader, ok := e.journal.(journal.Reader)
	if !ok {
		return nil, fmt.Errorf("journal backend %q does not support queries, use sqlite", e.cfg.Journal.Type)
	}
	return reader, nil
}

func printEntries(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Println("No journal entries")
		return
	}
	for _, entry := range entries {
		amount := ""
		if !entry.Amount.IsZero() {
			amount = " " + entry.Amount.String()
		}
		fmt.Printf("%s  %-9s  %-20s%s  %s\n",
			entry.Date, entry.Kind, entry.Subject, amount, entry.Message)
	}
}
