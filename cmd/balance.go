package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current balance",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderBalance(currency(), l.Balance()))
	return nil
}
