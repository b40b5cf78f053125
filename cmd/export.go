package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/export"
	"github.com/theirongolddev/saku/internal/report"
)

var (
	flagFormat      string
	flagExportMonth string
	flagOut         string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions as csv, json, yaml or xlsx",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "F", string(export.CSV), "One of: "+export.FormatNames())
	exportCmd.Flags().StringVarP(&flagExportMonth, "month", "m", "", "Only this month (YYYY-MM)")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) (err error) {
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	if format == export.XLSX && flagOut == "" {
		return errors.New("xlsx export needs --out")
	}

	l, closeFn, err := openLedgerNoticing(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	txs := l.Transactions()
	if flagExportMonth != "" {
		if txs, err = report.FilterByMonth(txs, flagExportMonth); err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagOut, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", flagOut, cerr)
			}
		}()
		w = f
	}

	if err := export.Write(w, format, txs); err != nil {
		return err
	}
	if flagOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Exported %d transactions to %s\n", len(txs), flagOut)
	}
	return nil
}
