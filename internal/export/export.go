// Package export writes transactions out in spreadsheet and data formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/saku/internal/model"
	"github.com/theirongolddev/saku/internal/report"
)

// Format names an export encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
	XLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{CSV, JSON, YAML, XLSX}

// FormatNames returns Formats as a comma-separated list.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// SheetName is the worksheet XLSX exports write to.
const SheetName = "Transactions"

var header = []string{"id", "kind", "amount", "category", "timestamp"}

// ParseFormat accepts a format name case-insensitively; "yml" means YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, YAML, XLSX:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (want %s)", model.ErrInvalidFormat, s, FormatNames())
	}
}

// Write encodes txs to w, most recent first.
func Write(w io.Writer, format Format, txs []model.Transaction) error {
	sorted := report.SortRecentFirst(txs)

	switch format {
	case CSV:
		return writeCSV(w, sorted)
	case JSON:
		return writeJSON(w, sorted)
	case YAML:
		return writeYAML(w, sorted)
	case XLSX:
		return writeXLSX(w, sorted)
	default:
		return fmt.Errorf("%w: unknown export format %q", model.ErrInvalidFormat, format)
	}
}

func record(t model.Transaction) []string {
	return []string{
		t.ID,
		string(t.Kind),
		strconv.FormatInt(t.Amount, 10),
		t.Category,
		t.Timestamp.Format(time.RFC3339),
	}
}

func writeCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range txs {
		if err := cw.Write(record(t)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, txs []model.Transaction) error {
	if txs == nil {
		txs = []model.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txs); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, txs []model.Transaction) error {
	if txs == nil {
		txs = []model.Transaction{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(txs); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func writeXLSX(w io.Writer, txs []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	titles := make([]any, len(header))
	for i, h := range header {
		titles[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &titles); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, t := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{t.ID, string(t.Kind), t.Amount, t.Category, t.Timestamp.Format(time.RFC3339)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
