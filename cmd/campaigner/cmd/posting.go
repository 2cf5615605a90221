package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/campaign"
)

var postingCmd = &cobra.Command{
	Use:   "posting",
	Short: "Manage recurring income and expenses",
	Long: `List and create recurring postings: economic activities (income) and
fixed expenses.

Examples:
  campaigner posting list
  campaigner posting add "tavern income" --direction credit --amount 25 --cadence daily --account <id>
  campaigner posting add "garrison wages" --direction debit --amount 100 --cadence weekly --account <id>`,
}

var postingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring postings",
	Args:  cobra.NoArgs,
	RunE:  runPostingList,
}

var postingAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a recurring posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostingAdd,
}

var (
	postingDirection string
	postingAmount    string
	postingCadence   string
	postingAccountID string
)

func init() {
	rootCmd.AddCommand(postingCmd)
	postingCmd.AddCommand(postingListCmd)
	postingCmd.AddCommand(postingAddCmd)

	postingAddCmd.Flags().StringVar(&postingDirection, "direction", "", "credit (income) or debit (expense)")
	postingAddCmd.Flags().StringVar(&postingAmount, "amount", "", "amount per period")
	postingAddCmd.Flags().StringVar(&postingCadence, "cadence", "", "daily, weekly or monthly")
	postingAddCmd.Flags().StringVar(&postingAccountID, "account", "", "bound account id (optional)")
	postingAddCmd.MarkFlagRequired("direction")
	postingAddCmd.MarkFlagRequired("amount")
	postingAddCmd.MarkFlagRequired("cadence")
}

func runPostingList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	postings, err := e.store.Postings()
	if err != nil {
		return err
	}
	if len(postings) == 0 {
		fmt.Println("No postings")
		return nil
	}
	for _, p := range postings {
		account := p.AccountID
		if account == "" {
			account = "(unbound)"
		}
		fmt.Printf("%-36s  %-20s  %-6s  %-7s  %10s  %s\n",
			p.ID, p.Name, p.Direction, p.Cadence, p.Amount, account)
	}
	return nil
}

func runPostingAdd(cmd *cobra.Command, args []string) error {
	dir := campaign.Direction(postingDirection)
	if dir != campaign.Credit && dir != campaign.Debit {
		return fmt.Errorf("direction must be credit or debit, got %q", postingDirection)
	}
	cadence := campaign.Cadence(postingCadence)
	if !cadence.Valid() {
		return fmt.Errorf("cadence must be daily, weekly or monthly, got %q", postingCadence)
	}
	amount, err := decimal.NewFromString(postingAmount)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.store.CreatePosting(campaign.Posting{
		Name: args[0], Direction: dir, Amount: amount,
		Cadence: cadence, AccountID: postingAccountID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %s posting %s (%s)\n", p.Direction, p.Name, p.ID)
	return nil
}
