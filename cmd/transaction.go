package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/ledger"
)

var flagCategory string

var incomeCmd = &cobra.Command{
	Use:   "income AMOUNT",
	Short: "Record income",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncome,
}

var expenseCmd = &cobra.Command{
	Use:   "expense AMOUNT",
	Short: "Record an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpense,
}

func init() {
	expenseCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Expense category (default Other)")
	rootCmd.AddCommand(incomeCmd, expenseCmd)
}

func runIncome(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		return err
	}

	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if _, err := l.AddIncome(cmd.Context(), amount); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added income of %s. Balance is now %s.\n",
		cli.FormatCurrency(currency(), amount), cli.FormatCurrency(currency(), l.Balance()))
	return nil
}

func runExpense(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		return err
	}

	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	tx, err := l.AddExpense(cmd.Context(), amount, flagCategory)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Recorded expense of %s (%s). Balance is now %s.\n",
		cli.FormatCurrency(currency(), amount), tx.Category, cli.FormatCurrency(currency(), l.Balance()))
	return nil
}
