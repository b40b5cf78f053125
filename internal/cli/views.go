package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/saku/internal/ledger"
	"github.com/theirongolddev/saku/internal/model"
	"github.com/theirongolddev/saku/internal/report"
)

const goalBarWidth = 40

var decimal100 = decimal.NewFromInt(100)

// RenderBalance renders the current balance line.
func RenderBalance(currency string, balance int64) string {
	var b strings.Builder
	b.WriteString(RenderTitle("CURRENT BALANCE"))
	b.WriteString("\n")
	b.WriteString("  " + Money(FormatCurrency(currency, balance)) + "\n")
	return b.String()
}

// RenderGoal renders the savings goal with a progress bar.
func RenderGoal(currency string, p ledger.Progress) string {
	if !p.Set {
		return Muted("  No savings goal set yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(RenderTitle("SAVINGS GOAL"))
	b.WriteString("\n")
	b.WriteString(Line("Goal:          ", valueStyle.Render(p.Goal.Name)) + "\n")
	b.WriteString(Line("Target:        ", FormatCurrency(currency, p.Goal.Amount)) + "\n")
	b.WriteString(Line("Balance:       ", FormatCurrency(currency, p.Balance)) + "\n")
	b.WriteString(Line("Progress:      ", FormatPercent(p.Percent)) + "\n")

	frac, _ := p.Percent.Div(decimal100).Float64()
	b.WriteString("  " + RenderGoalBar(frac, goalBarWidth) + "\n")

	if p.Reached {
		b.WriteString("\n  " + Good("Congratulations! Your savings goal has been reached!") + "\n")
	} else {
		b.WriteString(Line("Remaining:     ", FormatCurrency(currency, p.Goal.Amount-p.Balance)) + "\n")
	}
	return b.String()
}

// RenderReport renders the full report view: totals, category breakdown,
// top category, warning and the transaction table.
func RenderReport(currency string, balance int64, rep report.Report) string {
	var b strings.Builder

	b.WriteString(RenderTitle(rep.Title))
	b.WriteString("\n")
	if rep.Period != "" {
		b.WriteString(Line("Period:", rep.Period) + "\n")
	}
	if dates := FormatDateRange(rep.Start, rep.End); dates != "" {
		b.WriteString(Line("Dates: ", dates) + "\n")
	}
	if rep.Empty() {
		b.WriteString(Muted("  No transactions in this period.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(RenderTable(Table{
		Headers: []string{"Total Income", "Total Expense"},
		Rows: [][]string{{
			FormatCurrency(currency, rep.Summary.TotalIncome),
			FormatCurrency(currency, rep.Summary.TotalExpense),
		}},
	}))
	b.WriteString(Line("Current balance:", Money(FormatCurrency(currency, balance))) + "\n")

	if rep.Warning != "" {
		b.WriteString("\n  " + Warn(rep.Warning) + "\n")
	}

	if len(rep.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(renderCategories(currency, rep.Categories))
		if rep.Top != nil {
			b.WriteString(Line("Top spending:", fmt.Sprintf("%s (%s)",
				rep.Top.Category, FormatCurrency(currency, rep.Top.Total))) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(renderTransactions(currency, rep.Transactions))
	return b.String()
}

// RenderPeriod renders a compact history view: totals then a transaction list.
func RenderPeriod(currency string, rep report.Report) string {
	var b strings.Builder

	title := rep.Title
	if rep.Period != "" {
		title = fmt.Sprintf("%s  %s", rep.Title, rep.Period)
	}
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	if dates := FormatDateRange(rep.Start, rep.End); dates != "" {
		b.WriteString(Line("Dates:", dates) + "\n")
	}
	if rep.Empty() {
		b.WriteString(Muted("  No transactions in this period.") + "\n")
		return b.String()
	}

	b.WriteString(Line("Total income: ", FormatCurrency(currency, rep.Summary.TotalIncome)) + "\n")
	b.WriteString(Line("Total expense:", FormatCurrency(currency, rep.Summary.TotalExpense)) + "\n")
	if rep.Warning != "" {
		b.WriteString("  " + Warn(rep.Warning) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderTransactions(currency, rep.Transactions))
	return b.String()
}

func renderCategories(currency string, cats []report.CategoryTotal) string {
	maxTotal := cats[0].Total
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category,
			FormatCurrency(currency, c.Total),
			RenderShareBar(c.Total, maxTotal, 20),
		})
	}
	return RenderTable(Table{
		Title:       "Expenses by Category",
		Headers:     []string{"Category", "Amount", ""},
		Rows:        rows,
		LeftAligned: map[int]bool{2: true},
	})
}

func renderTransactions(currency string, txs []model.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		category := "-"
		if tx.Kind == model.Expense {
			category = tx.Category
		}
		amount := FormatCurrency(currency, tx.Amount)
		if tx.Kind == model.Expense {
			amount = "-" + amount
		}
		rows = append(rows, []string{
			FormatTimestamp(tx.Timestamp),
			tx.Kind.Title(),
			category,
			amount,
		})
	}
	return RenderTable(Table{
		Title:       "Transactions",
		Headers:     []string{"Time", "Type", "Category", "Amount"},
		Rows:        rows,
		LeftAligned: map[int]bool{1: true, 2: true},
	})
}
