package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/report"
)

var (
	flagMonth  string
	flagPeriod string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Totals, category breakdown and transactions",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Transactions for today, the last 7 days or this month",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	reportCmd.Flags().StringVarP(&flagMonth, "month", "m", "", "Only this month (YYYY-MM)")
	historyCmd.Flags().StringVarP(&flagPeriod, "period", "p", report.PeriodToday, "today, week or month")
	rootCmd.AddCommand(reportCmd, historyCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	txs := l.Transactions()
	if len(txs) == 0 {
		fmt.Fprintln(out, "\n  No transactions yet.")
		return nil
	}

	r := newReporter()
	rep := r.All(txs)
	if flagMonth != "" {
		if rep, err = r.ForMonth(txs, flagMonth); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderReport(currency(), l.Balance(), rep))
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	rep, err := newReporter().ForPeriod(l.Transactions(), flagPeriod)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderPeriod(currency(), rep))
	return nil
}
