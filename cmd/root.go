// Package cmd implements the saku CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/config"
	"github.com/theirongolddev/saku/internal/ledger"
	applog "github.com/theirongolddev/saku/internal/log"
	"github.com/theirongolddev/saku/internal/menu"
	"github.com/theirongolddev/saku/internal/report"
	"github.com/theirongolddev/saku/internal/store"
)

var (
	flagConfig   string
	flagDataFile string
	flagBackend  string
	flagVerbose  bool
)

// Resolved by loadApp before any command runs.
var (
	appCfg  = config.DefaultConfig()
	logger  = applog.Discard()
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "saku",
	Short: "Personal allowance tracker",
	Long: "Record income and expenses, follow a savings goal and see where the money goes.\n" +
		"Run without a sub-command for the interactive menu.",
	SilenceUsage:      true,
	PersistentPreRunE: loadApp,
	PersistentPostRun: func(*cobra.Command, []string) { closeLog() },
	RunE:              runMenu,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		closeLog()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&flagDataFile, "data-file", "f", "", "Ledger data file")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// loadApp resolves configuration (defaults < file < .env/env < flags) and
// builds the logger.
func loadApp(_ *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	config.ApplyEnv(&cfg)

	if flagDataFile != "" {
		cfg.General.DataFile = flagDataFile
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	level, _ := applog.ParseLevel(cfg.Log.Level)
	var w io.Writer
	if cfg.Log.File != "" {
		f, err := applog.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	appCfg = cfg
	logger = applog.New(applog.Config{Level: level, Writer: w})
	cli.SetTheme(cfg.Display.Theme)
	return nil
}

func closeLog() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// openLedger opens the configured store and loads the ledger from it.
// The returned func closes the store.
func openLedger(ctx context.Context) (*ledger.Ledger, func(), error) {
	s, err := store.Open(store.Config{
		Backend: store.Backend(appCfg.General.Backend),
		Path:    appCfg.DataFile(),
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	applog.WithComponent(logger, applog.ComponentCmd).Debug("store opened", "backend", appCfg.General.Backend, "path", appCfg.DataFile())

	l := ledger.Open(ctx, s, logger)
	return l, func() { _ = s.Close() }, nil
}

// openLedgerNoticing is openLedger for one-shot commands: a reset ledger is
// reported on stderr.
func openLedgerNoticing(cmd *cobra.Command) (*ledger.Ledger, func(), error) {
	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	if l.Recovered() {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.Warn("  Saved data could not be read; starting with an empty ledger."))
	}
	return l, closeFn, nil
}

func newReporter() *report.Reporter {
	return report.New(appCfg.Threshold(), time.Now)
}

func currency() string {
	return appCfg.Display.Currency
}

func runMenu(cmd *cobra.Command, _ []string) error {
	l, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	m := menu.New(l, newReporter(), cmd.InOrStdin(), cmd.OutOrStdout(), menu.Options{
		Currency: currency(),
		Logger:   logger,
	})
	return m.Run(cmd.Context())
}
