package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gmtools/campaigner/campaign"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage objective events",
	Long: `Raise branching complications against in-progress objectives and
decide their outcomes. A raised event pulls candidate outcomes from the
configured proposal source; the clock will not act on it until an
outcome is chosen, and the next tick sweeps the decision into the
objective exactly once.

Examples:
  campaigner event pending
  campaigner event add <objective-id> "bandits raid the site"
  campaigner event choose <event-id> 1`,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	Args:  cobra.NoArgs,
	RunE:  runEventList,
}

var eventPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List events waiting on a decision",
	Args:  cobra.NoArgs,
	RunE:  runEventPending,
}

var eventAddCmd = &cobra.Command{
	Use:   "add <objective-id> <description>",
	Short: "Raise an event against an objective",
	Args:  cobra.ExactArgs(2),
	RunE:  runEventAdd,
}

var eventChooseCmd = &cobra.Command{
	Use:   "choose <event-id> <option-index>",
	Short: "Choose one of an event's proposed outcomes",
	Args:  cobra.ExactArgs(2),
	RunE:  runEventChoose,
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventPendingCmd)
	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventChooseCmd)
}

func runEventList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	events, err := e.store.Events()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events")
		return nil
	}
	for _, ev := range events {
		state := "pending"
		switch {
		case ev.Handled:
			state = "handled"
		case ev.Decided():
			state = "decided"
		}
		fmt.Printf("%-36s  %-8s  objective %s  %s\n", ev.ID, state, ev.ObjectiveID, ev.Description)
	}
	return nil
}

func runEventPending(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	events, err := e.store.PendingEvents()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No pending events")
		return nil
	}
	for _, ev := range events {
		fmt.Printf("%s  objective %s\n  %s\n", ev.ID, ev.ObjectiveID, ev.Description)
		for i, opt := range ev.Options {
			printOption(i, opt)
		}
	}
	return nil
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	objective, err := e.store.Objective(args[0])
	if err != nil {
		return err
	}
	if objective.Status != campaign.StatusInProgress {
		return fmt.Errorf("objective %s is %s, events need IN_PROGRESS", objective.Name, objective.Status)
	}

	options, err := e.proposalSource().Propose(cmd.Context(), args[1])
	if err != nil {
		return fmt.Errorf("propose outcomes: %w", err)
	}

	ev, err := e.store.CreateEvent(campaign.Event{
		ObjectiveID: objective.ID,
		Description: args[1],
		Options:     options,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Raised event %s against %s\n", ev.ID, objective.Name)
	for i, opt := range ev.Options {
		printOption(i, opt)
	}
	return nil
}

func runEventChoose(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parse option index: %w", err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ev, err := e.store.Event(args[0])
	if err != nil {
		return err
	}
	if ev.Decided() {
		return fmt.Errorf("event %s already has a chosen outcome", ev.ID)
	}
	if index < 0 || index >= len(ev.Options) {
		return fmt.Errorf("option index %d out of range, event has %d options", index, len(ev.Options))
	}

	chosen := ev.Options[index]
	if err := e.store.ChooseOutcome(ev.ID, chosen); err != nil {
		return err
	}

	fmt.Printf("Chose %q; the next advance applies it\n", chosen.Text)
	return nil
}

func printOption(i int, opt campaign.Outcome) {
	switch {
	case opt.Fail:
		fmt.Printf("    [%d] %s (objective fails)\n", i, opt.Text)
	default:
		fmt.Printf("    [%d] %s (+%s months, +%s cost)\n", i, opt.Text, opt.ExtraMonths, opt.ExtraCost)
	}
}
