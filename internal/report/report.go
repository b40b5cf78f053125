package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/saku/internal/model"
)

// Report is a fully computed view over one period.
type Report struct {
	Title        string
	Period       string // human label, empty for "all"
	Start, End   time.Time
	Transactions []model.Transaction // most recent first
	Summary      Summary
	Categories   []CategoryTotal
	Top          *CategoryTotal
	Warning      string
}

// Empty reports whether the period has no transactions.
func (r Report) Empty() bool { return len(r.Transactions) == 0 }

// Reporter builds period reports.
type Reporter struct {
	Threshold decimal.Decimal
	Now       func() time.Time
}

// New returns a Reporter. A zero threshold falls back to DefaultThreshold.
func New(threshold decimal.Decimal, now func() time.Time) *Reporter {
	if threshold.IsZero() {
		threshold = DefaultThreshold
	}
	if now == nil {
		now = time.Now
	}
	return &Reporter{Threshold: threshold, Now: now}
}

// Build computes totals, breakdown and warning for txs.
func (r *Reporter) Build(title, period string, txs []model.Transaction) Report {
	rep := Report{
		Title:        title,
		Period:       period,
		Transactions: SortRecentFirst(txs),
		Summary:      Summarize(txs),
		Categories:   CategoryBreakdown(txs),
	}
	if top, ok := TopCategory(rep.Categories); ok {
		rep.Top = &top
	}
	rep.Warning, _ = OverspendWarning(rep.Summary.TotalIncome, rep.Summary.TotalExpense, r.Threshold)
	return rep
}

// All reports every transaction.
func (r *Reporter) All(txs []model.Transaction) Report {
	return r.Build("TRANSACTION REPORT", "", txs)
}

// ForMonth reports a single "YYYY-MM" month.
func (r *Reporter) ForMonth(txs []model.Transaction, ym string) (Report, error) {
	month, err := ParseMonth(ym)
	if err != nil {
		return Report{}, err
	}
	filtered, _ := FilterByMonth(txs, ym)
	rep := r.Build("TRANSACTION REPORT", month.Format(MonthLayout), filtered)
	rep.Start = month
	rep.End = month.AddDate(0, 1, -1)
	return rep, nil
}

// Today reports [today, today].
func (r *Reporter) Today(txs []model.Transaction) Report {
	today := startOfDay(r.Now())
	rep := r.Build("TODAY'S TRANSACTIONS", today.Format("02-01-2006"), FilterByRange(txs, today, today))
	rep.Start, rep.End = today, today
	return rep
}

// Week reports the last 7 days, [today-6, today].
func (r *Reporter) Week(txs []model.Transaction) Report {
	today := startOfDay(r.Now())
	start := today.AddDate(0, 0, -6)
	rep := r.Build("WEEKLY TRANSACTIONS", "Last 7 days", FilterByRange(txs, start, today))
	rep.Start, rep.End = start, today
	return rep
}

// ThisMonth reports the current calendar month.
func (r *Reporter) ThisMonth(txs []model.Transaction) Report {
	now := r.Now().Local()
	ym := now.Format(MonthLayout)
	filtered, _ := FilterByMonth(txs, ym)
	rep := r.Build("MONTHLY TRANSACTIONS", now.Format("January 2006"), filtered)
	rep.Start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	rep.End = rep.Start.AddDate(0, 1, -1)
	return rep
}

// Period names accepted by ForPeriod.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// ForPeriod dispatches on a period name.
func (r *Reporter) ForPeriod(txs []model.Transaction, period string) (Report, error) {
	switch period {
	case PeriodToday:
		return r.Today(txs), nil
	case PeriodWeek:
		return r.Week(txs), nil
	case PeriodMonth:
		return r.ThisMonth(txs), nil
	default:
		return Report{}, fmt.Errorf("%w: unknown period %q (want today, week or month)", model.ErrInvalidFormat, period)
	}
}
