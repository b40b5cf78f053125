package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/config"
	"github.com/theirongolddev/saku/internal/store"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	// Skips loadApp so a broken config can still be rewritten.
	setupCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	path := flagConfig
	if path == "" {
		path = config.Path()
	}

	// Start from the file itself so env and flag overrides are not persisted.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	threshold := strconv.FormatFloat(cfg.Report.OverspendThreshold, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Description("json keeps a single readable file; sqlite keeps a database.").
				Options(huh.NewOptions(string(store.BackendJSON), string(store.BackendSQLite))...).
				Value(&cfg.General.Backend),
			huh.NewInput().
				Title("Data file").
				Description("Leave blank for the default location.").
				Placeholder(config.DataDir()).
				Value(&cfg.General.DataFile),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency label").
				Value(&cfg.Display.Currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency must not be blank")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(cli.ThemeNames()...)...).
				Value(&cfg.Display.Theme),
			huh.NewInput().
				Title("Overspend warning threshold").
				Description("Warn when expenses exceed this share of income (0 to 1).").
				Value(&threshold).
				Validate(validateThreshold),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "  Setup cancelled; nothing saved.")
			return nil
		}
		return fmt.Errorf("running setup form: %w", err)
	}

	cfg.Report.OverspendThreshold, _ = strconv.ParseFloat(strings.TrimSpace(threshold), 64)
	cfg.Display.Currency = strings.TrimSpace(cfg.Display.Currency)
	cfg.General.DataFile = strings.TrimSpace(cfg.General.DataFile)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.SaveTo(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", path)
	fmt.Fprintln(out, "  Run `saku setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}

func validateThreshold(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || v > 1 {
		return errors.New("enter a number greater than 0 and at most 1")
	}
	return nil
}
