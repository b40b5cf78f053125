// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the label printed before every amount.
const DefaultCurrency = "Rp"

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatCurrency prefixes a separated amount with the currency label.
// e.g., ("Rp", 1500000) -> "Rp 1,500,000"
func FormatCurrency(label string, n int64) string {
	if label == "" {
		return FormatNumber(n)
	}
	return label + " " + FormatNumber(n)
}

// FormatPercent renders a 0-100 percentage with two decimals.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatTimestamp is the short form used in transaction lists.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("02-01-2006 15:04")
}

// FormatDateRange renders an inclusive day range, or "" when the range is
// unset or a single day.
func FormatDateRange(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	from, to := start.Local().Format("02-01-2006"), end.Local().Format("02-01-2006")
	if from == to {
		return ""
	}
	return from + " to " + to
}
