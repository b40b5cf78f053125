package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	path := flagConfig
	if path == "" {
		path = config.Path()
	}

	fmt.Fprintf(out, "  Config file: %s\n", path)
	if config.Exists() || flagConfig != "" {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Backend:   %s\n", appCfg.General.Backend)
	fmt.Fprintf(out, "    Data file: %s\n", appCfg.DataFile())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Display]")
	fmt.Fprintf(out, "    Currency: %s\n", appCfg.Display.Currency)
	fmt.Fprintf(out, "    Theme:    %s\n", cli.ActiveTheme().Name)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Report]")
	fmt.Fprintf(out, "    Overspend threshold: %s%%\n", appCfg.Threshold().Shift(2).StringFixed(0))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s\n", appCfg.Log.Level)
	if appCfg.Log.File != "" {
		fmt.Fprintf(out, "    File:  %s\n", appCfg.Log.File)
	} else {
		fmt.Fprintln(out, "    File:  stderr")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `saku setup` to reconfigure.")
	return nil
}
