package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/store"
)

var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Show or set the campaign date",
	Long: `Show the current campaign date, or overwrite it without running any
rules. Setting the date is an escape hatch for correcting mistakes, not
a substitute for advancing.

Examples:
  campaigner date show
  campaigner date set 4712-03-01`,
}

var dateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current campaign date",
	Args:  cobra.NoArgs,
	RunE:  runDateShow,
}

var dateSetCmd = &cobra.Command{
	Use:   "set <YYYY-MM-DD>",
	Short: "Overwrite the campaign date without running rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runDateSet,
}

func init() {
	rootCmd.AddCommand(dateCmd)
	dateCmd.AddCommand(dateShowCmd)
	dateCmd.AddCommand(dateSetCmd)
}

func runDateShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	d, err := e.store.CurrentDate()
	if errors.Is(err, store.ErrNotFound) {
		fmt.Println("No campaign date set yet; use 'campaigner date set'")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(d)
	return nil
}

func runDateSet(cmd *cobra.Command, args []string) error {
	d, err := calendar.Parse(args[0])
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.engine.SetDate(d); err != nil {
		return err
	}

	fmt.Printf("Campaign date set to %s\n", d)
	return nil
}
