package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/campaign"
)

var objectiveCmd = &cobra.Command{
	Use:   "objective",
	Short: "Manage follower objectives",
	Long: `List, create and start follower objectives. An objective burns funds
from its bound account each tick while it is in progress; once it has
accumulated 100% progress it completes.

Examples:
  campaigner objective list
  campaigner objective add "build watchtower" --cost 1000 --months 10 --account <id>
  campaigner objective start <id>`,
}

var objectiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objectives",
	Args:  cobra.NoArgs,
	RunE:  runObjectiveList,
}

var objectiveAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an objective",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectiveAdd,
}

var objectiveStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start an objective on the current campaign date",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectiveStart,
}

var (
	objectiveCost      string
	objectiveMonths    string
	objectiveAccountID string
)

func init() {
	rootCmd.AddCommand(objectiveCmd)
	objectiveCmd.AddCommand(objectiveListCmd)
	objectiveCmd.AddCommand(objectiveAddCmd)
	objectiveCmd.AddCommand(objectiveStartCmd)

	objectiveAddCmd.Flags().StringVar(&objectiveCost, "cost", "", "total cost to completion")
	objectiveAddCmd.Flags().StringVar(&objectiveMonths, "months", "", "estimated months to completion")
	objectiveAddCmd.Flags().StringVar(&objectiveAccountID, "account", "", "funding account id (optional)")
	objectiveAddCmd.MarkFlagRequired("cost")
	objectiveAddCmd.MarkFlagRequired("months")
}

func runObjectiveList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	objectives, err := e.store.Objectives()
	if err != nil {
		return err
	}
	if len(objectives) == 0 {
		fmt.Println("No objectives")
		return nil
	}
	for _, o := range objectives {
		started := "-"
		if o.StartDate != nil {
			started = o.StartDate.String()
		}
		fmt.Printf("%-36s  %-20s  %-11s  %6s%%  cost %s over %s months  started %s\n",
			o.ID, o.Name, o.Status, o.Progress.StringFixed(2),
			o.TotalCost, o.EstimatedMonths, started)
	}
	return nil
}

func runObjectiveAdd(cmd *cobra.Command, args []string) error {
	cost, err := decimal.NewFromString(objectiveCost)
	if err != nil {
		return fmt.Errorf("parse cost: %w", err)
	}
	months, err := decimal.NewFromString(objectiveMonths)
	if err != nil {
		return fmt.Errorf("parse months: %w", err)
	}
	if !months.IsPositive() {
		return fmt.Errorf("months must be positive")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	o, err := e.store.CreateObjective(campaign.Objective{
		Name:                args[0],
		Status:              campaign.StatusNotStarted,
		EstimatedMonths:     months,
		BaseEstimatedMonths: months,
		TotalCost:           cost,
		AccountID:           objectiveAccountID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created objective %s (%s)\n", o.Name, o.ID)
	return nil
}

func runObjectiveStart(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	o, err := e.engine.StartObjective(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Started %s on %s\n", o.Name, o.StartDate)
	return nil
}
