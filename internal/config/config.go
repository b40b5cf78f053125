package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/saku/internal/cli"
	applog "github.com/theirongolddev/saku/internal/log"
	"github.com/theirongolddev/saku/internal/store"
)

// Environment variables that override the config file.
const (
	EnvDataFile = "SAKU_DATA_FILE"
	EnvBackend  = "SAKU_BACKEND"
	EnvLogLevel = "SAKU_LOG_LEVEL"
)

// Config holds all saku configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
	Report  ReportConfig  `toml:"report"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds storage settings.
type GeneralConfig struct {
	DataFile string `toml:"data_file,omitempty"`
	Backend  string `toml:"backend"`
}

// DisplayConfig holds output preferences.
type DisplayConfig struct {
	Currency string `toml:"currency"`
	Theme    string `toml:"theme"`
}

// ReportConfig holds report settings.
type ReportConfig struct {
	OverspendThreshold float64 `toml:"overspend_threshold"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend: string(store.BackendJSON),
		},
		Display: DisplayConfig{
			Currency: "Rp",
			Theme:    "flexoki-dark",
		},
		Report: ReportConfig{
			OverspendThreshold: 0.7,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "saku")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "saku")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "saku")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "saku")
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadEnv reads .env files into the process environment. Missing files are
// not an error; existing variables are never overwritten.
func LoadEnv(files ...string) error {
	for _, f := range envFiles(files) {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func envFiles(files []string) []string {
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}

// ApplyEnv overlays SAKU_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.General.DataFile = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.General.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !store.Backend(c.General.Backend).Valid() {
		return fmt.Errorf("invalid backend %q (want json or sqlite)", c.General.Backend)
	}
	if t := c.Report.OverspendThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("invalid overspend_threshold %v (want 0 < t <= 1)", t)
	}
	if strings.TrimSpace(c.Display.Currency) == "" {
		return errors.New("currency must not be blank")
	}
	if names := cli.ThemeNames(); !slices.Contains(names, c.Display.Theme) {
		return fmt.Errorf("invalid theme %q (want one of %s)", c.Display.Theme, strings.Join(names, ", "))
	}
	if _, err := applog.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Threshold returns the overspend threshold as an exact decimal.
func (c Config) Threshold() decimal.Decimal {
	return decimal.NewFromFloat(c.Report.OverspendThreshold)
}

// DataFile resolves where the ledger is stored: the configured path with
// "~" expanded, or data.json / data.db under DataDir.
func (c Config) DataFile() string {
	if p := c.General.DataFile; p != "" {
		return expandHome(p)
	}
	name := "data.json"
	if store.Backend(c.General.Backend) == store.BackendSQLite {
		name = "data.db"
	}
	return filepath.Join(DataDir(), name)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
