package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/calendar"
)

var advanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Advance the campaign calendar",
	Long: `Advance the campaign date, applying recurring postings, objective
progress and event resolution for every elapsed time unit.

Subcommands:
  days N   - advance N single days
  weeks N  - advance N weeks (daily rules every day, weekly rules each 7th)
  months N - advance N calendar months (monthly rules at each boundary)

Examples:
  campaigner advance days 3
  campaigner advance months 1`,
}

var advanceDaysCmd = &cobra.Command{
	Use:   "days <n>",
	Short: "Advance n single days",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdvance(func(e *env, n int) (calendar.Date, error) { return e.engine.AdvanceDays(n) }),
}

var advanceWeeksCmd = &cobra.Command{
	Use:   "weeks <n>",
	Short: "Advance n weeks",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdvance(func(e *env, n int) (calendar.Date, error) { return e.engine.AdvanceWeeks(n) }),
}

var advanceMonthsCmd = &cobra.Command{
	Use:   "months <n>",
	Short: "Advance n calendar months",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdvance(func(e *env, n int) (calendar.Date, error) { return e.engine.AdvanceMonths(n) }),
}

func init() {
	rootCmd.AddCommand(advanceCmd)
	advanceCmd.AddCommand(advanceDaysCmd)
	advanceCmd.AddCommand(advanceWeeksCmd)
	advanceCmd.AddCommand(advanceMonthsCmd)
}

func runAdvance(advance func(*env, int) (calendar.Date, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("count must be a non-negative integer, got %q", args[0])
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		date, err := advance(e, n)
		if err != nil {
			return err
		}

		fmt.Printf("Campaign date is now %s\n", date)
		return nil
	}
}
