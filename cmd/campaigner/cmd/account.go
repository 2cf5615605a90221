package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/campaign"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage bank accounts",
	Long: `List bank accounts and move money between them manually.

Subcommands:
  list                          - list accounts and balances
  add <name>                    - create an account
  deposit <id> <amount>         - credit an account
  withdraw <id> <amount>        - debit an account (never below zero)
  transfer <from> <to> <amount> - move money between accounts`,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts and balances",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountAdd,
}

var accountDepositCmd = &cobra.Command{
	Use:   "deposit <id> <amount>",
	Short: "Credit an account",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountDeposit,
}

var accountWithdrawCmd = &cobra.Command{
	Use:   "withdraw <id> <amount>",
	Short: "Debit an account",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountWithdraw,
}

var accountTransferCmd = &cobra.Command{
	Use:   "transfer <from-id> <to-id> <amount>",
	Short: "Move money between accounts",
	Args:  cobra.ExactArgs(3),
	RunE:  runAccountTransfer,
}

var accountAddBalance string

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountDepositCmd)
	accountCmd.AddCommand(accountWithdrawCmd)
	accountCmd.AddCommand(accountTransferCmd)

	accountAddCmd.Flags().StringVarP(&accountAddBalance, "balance", "b", "0", "opening balance")
}

func runAccountList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	accounts, err := e.store.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts")
		return nil
	}
	for _, a := range accounts {
		fmt.Printf("%-36s  %-20s  %12s\n", a.ID, a.Name, a.Balance)
	}
	return nil
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	balance, err := decimal.NewFromString(accountAddBalance)
	if err != nil {
		return fmt.Errorf("parse balance: %w", err)
	}
	if balance.IsNegative() {
		return fmt.Errorf("opening balance must be non-negative")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.store.CreateAccount(campaign.Account{Name: args[0], Balance: balance})
	if err != nil {
		return err
	}

	fmt.Printf("Created account %s (%s) with balance %s\n", a.Name, a.ID, a.Balance)
	return nil
}

func runAccountDeposit(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.ledger.Deposit(args[0], amount)
	if err != nil {
		return err
	}

	fmt.Printf("%s now holds %s\n", a.Name, a.Balance)
	return nil
}

func runAccountWithdraw(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.ledger.Withdraw(args[0], amount)
	if err != nil {
		return err
	}

	fmt.Printf("%s now holds %s\n", a.Name, a.Balance)
	return nil
}

func runAccountTransfer(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.ledger.Transfer(args[0], args[1], amount); err != nil {
		return err
	}

	fmt.Printf("Transferred %s\n", amount)
	return nil
}
