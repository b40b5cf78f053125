package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/saku/internal/config"
	"github.com/theirongolddev/saku/internal/export"
	"github.com/theirongolddev/saku/internal/model"
	"github.com/theirongolddev/saku/internal/report"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// isolate points config and data lookups at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvLogLevel, "")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	flagConfig, flagDataFile, flagBackend, flagVerbose = "", "", "", false
	flagCategory, flagMonth, flagPeriod = "", "", report.PeriodToday
	flagFormat, flagExportMonth, flagOut = string(export.CSV), "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestIncomeExpenseBalance(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "income", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance is now Rp 1,000.")

	out, err = execute(t, "", "expense", "300", "--category", "  street   food ")
	require.NoError(t, err)
	assert.Contains(t, out, "(Street Food)")

	out, err = execute(t, "", "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Rp 700")

	_, err = os.Stat(filepath.Join(config.DataDir(), "data.json"))
	assert.NoError(t, err, "default data file not written")
}

func TestExpenseRejectedWithoutBalance(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "expense", "50")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientBalance)

	_, err = execute(t, "", "income", "zero")
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestGoalSetAndShow(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "income", "700")
	require.NoError(t, err)
	out, err := execute(t, "", "goal", "set", "Laptop", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, `"Laptop"`)

	out, err = execute(t, "", "goal")
	require.NoError(t, err)
	assert.Contains(t, out, "70.00%")
}

func TestReportAndHistory(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions yet.")

	_, err = execute(t, "", "income", "100")
	require.NoError(t, err)

	out, err = execute(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "TRANSACTION REPORT")

	_, err = execute(t, "", "report", "--month", "2024-13")
	assert.ErrorIs(t, err, model.ErrInvalidFormat)

	out, err = execute(t, "", "history", "--period", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEKLY TRANSACTIONS")

	_, err = execute(t, "", "history", "--period", "year")
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}

func TestExportJSONToFile(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "", "income", "100")
	require.NoError(t, err)
	_, err = execute(t, "", "expense", "40", "-c", "books")
	require.NoError(t, err)

	outPath := filepath.Join(dir, "out.json")
	_, err = execute(t, "", "export", "--format", "json", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var txs []model.Transaction
	require.NoError(t, json.Unmarshal(data, &txs))
	require.Len(t, txs, 2)
	assert.Equal(t, "Books", txs[0].Category)

	_, err = execute(t, "", "export", "--format", "xlsx")
	assert.Error(t, err, "xlsx to stdout should be refused")
}

func TestSQLiteBackendFlag(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "ledger.db")

	_, err := execute(t, "", "--backend", "sqlite", "--data-file", db, "income", "5")
	require.NoError(t, err)
	out, err := execute(t, "", "--backend", "sqlite", "--data-file", db, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Rp 5")
}

func TestInvalidBackendRejected(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "--backend", "csv", "balance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestMenuFromRoot(t *testing.T) {
	isolate(t)

	out, err := execute(t, "1\n250\n8\n")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Allowance Manager ===")
	assert.Contains(t, out, "Thank you!")

	out, err = execute(t, "", "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Rp 250")
}

func TestConfigFileAndEnvPrecedence(t *testing.T) {
	dir := isolate(t)

	cfgPath := filepath.Join(dir, "custom.toml")
	cfg := config.DefaultConfig()
	cfg.Display.Currency = "IDR"
	cfg.General.Backend = "sqlite"
	require.NoError(t, config.SaveTo(cfgPath, cfg))

	t.Setenv(config.EnvBackend, "json")

	out, err := execute(t, "", "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Currency: IDR")
	assert.Contains(t, out, "Backend:   json")
	assert.Contains(t, out, "Overspend threshold: 70%")
}

func TestThemeFromConfig(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "theme.toml")

	cfg := config.DefaultConfig()
	cfg.Display.Theme = "tokyo-night"
	require.NoError(t, config.SaveTo(cfgPath, cfg))

	out, err := execute(t, "", "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme:    tokyo-night")

	cfg.Display.Theme = "solarized"
	require.NoError(t, config.SaveTo(cfgPath, cfg))
	_, err = execute(t, "", "--config", cfgPath, "balance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme")
}
