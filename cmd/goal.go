package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/ledger"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show savings goal progress",
	Args:  cobra.NoArgs,
	RunE:  runGoal,
}

var goalSetCmd = &cobra.Command{
	Use:   "set NAME AMOUNT",
	Short: "Set the savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalSet,
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoal(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderGoal(currency(), l.Progress()))
	return nil
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[1])
	if err != nil {
		return err
	}

	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := l.SetGoal(cmd.Context(), args[0], amount); err != nil {
		return err
	}
	goal, _ := l.Goal()
	fmt.Fprintf(cmd.OutOrStdout(), "  Savings goal %q set to %s\n", goal.Name, cli.FormatCurrency(currency(), goal.Amount))
	return nil
}
