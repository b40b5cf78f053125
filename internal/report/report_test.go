package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/saku/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func income(t *testing.T, amt int64, at string) model.Transaction {
	return model.Transaction{Kind: model.Income, Amount: amt, Timestamp: mustTime(t, at)}
}

func expense(t *testing.T, amt int64, cat, at string) model.Transaction {
	return model.Transaction{Kind: model.Expense, Amount: amt, Category: cat, Timestamp: mustTime(t, at)}
}

func TestFilterByMonth(t *testing.T) {
	march := expense(t, 10, "Food", "2024-03-15T10:00:00")
	april := expense(t, 20, "Food", "2024-04-01T00:00:00")
	txs := []model.Transaction{march, april}

	got, err := FilterByMonth(txs, "2024-03")
	if err != nil {
		t.Fatalf("FilterByMonth: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 10 {
		t.Fatalf("FilterByMonth(2024-03) = %+v, want only the March transaction", got)
	}

	got, err = FilterByMonth(txs, "2024-4")
	if err != nil {
		t.Fatalf("single-digit month: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 20 {
		t.Fatalf("FilterByMonth(2024-4) = %+v", got)
	}

	for _, bad := range []string{"", "March", "2024/03", "2024-13", "24-03", "2024-03-15"} {
		if _, err := FilterByMonth(txs, bad); !errors.Is(err, model.ErrInvalidFormat) {
			t.Errorf("FilterByMonth(%q) err = %v, want ErrInvalidFormat", bad, err)
		}
	}
}

func TestFilterByRangeInclusive(t *testing.T) {
	txs := []model.Transaction{
		income(t, 1, "2024-03-08T23:59:59"),
		income(t, 2, "2024-03-09T00:00:00"),
		income(t, 3, "2024-03-15T23:59:59"),
		income(t, 4, "2024-03-16T00:00:00"),
	}
	start := mustTime(t, "2024-03-09T12:00:00")
	end := mustTime(t, "2024-03-15T08:00:00")

	got := FilterByRange(txs, start, end)
	if len(got) != 2 || got[0].Amount != 2 || got[1].Amount != 3 {
		t.Fatalf("FilterByRange = %+v, want amounts [2 3]", got)
	}
}

func TestSummarizeAndBreakdownAgree(t *testing.T) {
	txs := []model.Transaction{
		income(t, 1000, "2024-03-01T08:00:00"),
		expense(t, 150, "food", "2024-03-02T08:00:00"),
		expense(t, 300, "Transport", "2024-03-03T08:00:00"),
		expense(t, 200, "FOOD ", "2024-03-04T08:00:00"),
		expense(t, 50, "", "2024-03-05T08:00:00"),
	}

	s := Summarize(txs)
	if s.TotalIncome != 1000 || s.TotalExpense != 700 {
		t.Fatalf("Summarize = %+v, want 1000/700", s)
	}
	if s.Net() != 300 {
		t.Fatalf("Net = %d, want 300", s.Net())
	}

	bd := CategoryBreakdown(txs)
	want := []CategoryTotal{{"Food", 350}, {"Transport", 300}, {"Other", 50}}
	if len(bd) != len(want) {
		t.Fatalf("breakdown = %+v, want %+v", bd, want)
	}
	var sum int64
	for i := range want {
		if bd[i] != want[i] {
			t.Errorf("breakdown[%d] = %+v, want %+v", i, bd[i], want[i])
		}
		sum += bd[i].Total
	}
	if sum != s.TotalExpense {
		t.Fatalf("breakdown sum %d != total expense %d", sum, s.TotalExpense)
	}

	top, ok := TopCategory(bd)
	if !ok || top.Category != "Food" {
		t.Fatalf("TopCategory = %+v, %v", top, ok)
	}
	if _, ok := TopCategory(nil); ok {
		t.Fatal("TopCategory(nil) reported a category")
	}
}

func TestBreakdownTiesOrderedByName(t *testing.T) {
	txs := []model.Transaction{
		expense(t, 100, "Snacks", "2024-03-02T08:00:00"),
		expense(t, 100, "Books", "2024-03-02T09:00:00"),
	}
	bd := CategoryBreakdown(txs)
	if bd[0].Category != "Books" || bd[1].Category != "Snacks" {
		t.Fatalf("tie order = %+v", bd)
	}
}

func TestOverspendWarning(t *testing.T) {
	cases := []struct {
		income, expense int64
		warn            bool
		contains        string
	}{
		{1000, 750, true, "70%"},
		{1000, 600, false, ""},
		{1000, 700, false, ""}, // exactly at the threshold is fine
		{1000, 701, true, "70%"},
		{0, 10, true, "no income"},
		{0, 0, false, ""},
	}
	for _, tc := range cases {
		msg, warn := OverspendWarning(tc.income, tc.expense, DefaultThreshold)
		if warn != tc.warn {
			t.Errorf("OverspendWarning(%d, %d) warn = %v, want %v", tc.income, tc.expense, warn, tc.warn)
		}
		if tc.contains != "" && !strings.Contains(msg, tc.contains) {
			t.Errorf("OverspendWarning(%d, %d) msg = %q, want it to contain %q", tc.income, tc.expense, msg, tc.contains)
		}
	}

	if _, warn := OverspendWarning(1000, 600, decimal.RequireFromString("0.5")); !warn {
		t.Error("custom threshold 0.5 should warn at 600/1000")
	}
}

func TestSortRecentFirstIsStableCopy(t *testing.T) {
	a := income(t, 1, "2024-03-01T08:00:00")
	b := income(t, 2, "2024-03-03T08:00:00")
	c := income(t, 3, "2024-03-03T08:00:00")
	in := []model.Transaction{a, b, c}

	out := SortRecentFirst(in)
	if out[0].Amount != 2 || out[1].Amount != 3 || out[2].Amount != 1 {
		t.Fatalf("order = %d %d %d, want 2 3 1", out[0].Amount, out[1].Amount, out[2].Amount)
	}
	if in[0].Amount != 1 {
		t.Fatal("SortRecentFirst modified its input")
	}
}

func TestReporterPeriods(t *testing.T) {
	now := mustTime(t, "2024-03-15T18:00:00")
	r := New(decimal.Zero, func() time.Time { return now })
	if !r.Threshold.Equal(DefaultThreshold) {
		t.Fatalf("zero threshold not defaulted: %s", r.Threshold)
	}

	txs := []model.Transaction{
		income(t, 1000, "2024-02-28T09:00:00"),
		income(t, 500, "2024-03-09T09:00:00"),
		expense(t, 100, "Food", "2024-03-08T23:00:00"),
		expense(t, 400, "Food", "2024-03-15T07:00:00"),
	}

	today := r.Today(txs)
	if len(today.Transactions) != 1 || today.Summary.TotalExpense != 400 {
		t.Fatalf("Today = %+v", today)
	}
	if today.Warning == "" {
		t.Error("Today with expense and no income should warn")
	}

	week := r.Week(txs)
	if len(week.Transactions) != 2 {
		t.Fatalf("Week has %d transactions, want 2 (Mar 9 - Mar 15)", len(week.Transactions))
	}
	if week.Transactions[0].Amount != 400 {
		t.Fatal("Week not sorted most recent first")
	}
	if week.Warning == "" {
		t.Error("400 of 500 income should warn")
	}

	month := r.ThisMonth(txs)
	if len(month.Transactions) != 3 || month.Period != "March 2024" {
		t.Fatalf("ThisMonth = %d txs, period %q", len(month.Transactions), month.Period)
	}

	feb, err := r.ForMonth(txs, "2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if feb.Summary.TotalIncome != 1000 || feb.Top != nil || feb.Warning != "" {
		t.Fatalf("ForMonth(2024-02) = %+v", feb)
	}
	if feb.End.Day() != 29 {
		t.Fatalf("Feb 2024 end = %v, want the 29th", feb.End)
	}

	all := r.All(txs)
	if all.Top == nil || all.Top.Total != 500 {
		t.Fatalf("All top = %+v", all.Top)
	}

	if _, err := r.ForPeriod(txs, "year"); !errors.Is(err, model.ErrInvalidFormat) {
		t.Fatalf("ForPeriod(year) err = %v", err)
	}
	if rep, err := r.ForPeriod(txs, PeriodWeek); err != nil || len(rep.Transactions) != 2 {
		t.Fatalf("ForPeriod(week) = %d, %v", len(rep.Transactions), err)
	}
}
