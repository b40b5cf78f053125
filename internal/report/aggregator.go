// Package report filters and aggregates ledger transactions for display.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/saku/internal/model"
)

// MonthLayout is the year-month filter format.
const MonthLayout = "2006-01"

// DefaultThreshold is the share of income expenses may reach before warning.
var DefaultThreshold = decimal.RequireFromString("0.7")

// Summary holds income and expense totals for a transaction set.
type Summary struct {
	TotalIncome  int64
	TotalExpense int64
}

// Net returns income minus expense.
func (s Summary) Net() int64 { return s.TotalIncome - s.TotalExpense }

// CategoryTotal is one row of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    int64
}

// ParseMonth parses "YYYY-MM" (single-digit months accepted).
func ParseMonth(ym string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-1", ym, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM month", model.ErrInvalidFormat, ym)
	}
	return t, nil
}

// FilterByMonth returns transactions in the given calendar month, local time.
func FilterByMonth(txs []model.Transaction, ym string) ([]model.Transaction, error) {
	month, err := ParseMonth(ym)
	if err != nil {
		return nil, err
	}

	var result []model.Transaction
	for _, t := range txs {
		local := t.Timestamp.Local()
		if local.Year() == month.Year() && local.Month() == month.Month() {
			result = append(result, t)
		}
	}
	return result, nil
}

// FilterByRange returns transactions whose local date falls within [start, end], inclusive.
func FilterByRange(txs []model.Transaction, start, end time.Time) []model.Transaction {
	from := startOfDay(start)
	to := startOfDay(end)

	var result []model.Transaction
	for _, t := range txs {
		day := startOfDay(t.Timestamp)
		if day.Before(from) || day.After(to) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// Summarize sums amounts by kind.
func Summarize(txs []model.Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case model.Income:
			s.TotalIncome += t.Amount
		case model.Expense:
			s.TotalExpense += t.Amount
		}
	}
	return s
}

// CategoryBreakdown sums expenses per category, largest first.
func CategoryBreakdown(txs []model.Transaction) []CategoryTotal {
	totals := make(map[string]int64)
	for _, t := range txs {
		if t.Kind != model.Expense {
			continue
		}
		totals[model.NormalizeCategory(t.Category)] += t.Amount
	}

	out := make([]CategoryTotal, 0, len(totals))
	for c, v := range totals {
		out = append(out, CategoryTotal{Category: c, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopCategory returns the largest category of a breakdown.
func TopCategory(breakdown []CategoryTotal) (CategoryTotal, bool) {
	if len(breakdown) == 0 {
		return CategoryTotal{}, false
	}
	return breakdown[0], true
}

// OverspendWarning flags expense above threshold × income, or any expense
// with no income at all.
func OverspendWarning(income, expense int64, threshold decimal.Decimal) (string, bool) {
	if income > 0 {
		limit := threshold.Mul(decimal.NewFromInt(income))
		if decimal.NewFromInt(expense).GreaterThan(limit) {
			return fmt.Sprintf("Warning: expenses have exceeded %s%% of income!",
				threshold.Mul(decimal.NewFromInt(100)).StringFixed(0)), true
		}
		return "", false
	}
	if expense > 0 {
		return "Warning: there are expenses but no income yet!", true
	}
	return "", false
}

// SortRecentFirst returns a copy ordered by timestamp, most recent first.
func SortRecentFirst(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func startOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}
