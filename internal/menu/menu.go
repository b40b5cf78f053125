// Package menu runs the interactive numbered menu.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/theirongolddev/saku/internal/cli"
	"github.com/theirongolddev/saku/internal/ledger"
	applog "github.com/theirongolddev/saku/internal/log"
	"github.com/theirongolddev/saku/internal/model"
	"github.com/theirongolddev/saku/internal/report"
)

// Menu reads selections from in and writes views to out.
type Menu struct {
	ledger   *ledger.Ledger
	reporter *report.Reporter
	in       *bufio.Reader
	out      io.Writer
	currency string
	logger   *slog.Logger
}

// Options configures a Menu.
type Options struct {
	Currency string
	Logger   *slog.Logger
}

// New creates a menu over an open ledger.
func New(l *ledger.Ledger, r *report.Reporter, in io.Reader, out io.Writer, opts Options) *Menu {
	currency := opts.Currency
	if currency == "" {
		currency = cli.DefaultCurrency
	}
	return &Menu{
		ledger:   l,
		reporter: r,
		in:       bufio.NewReader(in),
		out:      out,
		currency: currency,
		logger:   applog.WithComponent(opts.Logger, applog.ComponentMenu),
	}
}

// errQuit ends the loop after the final save.
var errQuit = errors.New("quit")

const mainMenu = `
=== Allowance Manager ===
1. Add income
2. Add expense
3. View balance
4. Set savings goal
5. View savings goal
6. Transaction history
7. Report
8. Exit
`

const historyMenu = `
=== Transaction History ===
1. Today
2. Last 7 days
3. This month
4. Back
`

// Run loops until the user exits or input ends. Only a failed save is
// returned; every other error is printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	if m.ledger.Recovered() {
		m.println(cli.Warn("Saved data could not be read; starting with an empty ledger."))
	}

	for {
		m.print(mainMenu)
		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return m.exit(ctx)
		}

		err = m.dispatch(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			return m.exit(ctx)
		case isUserError(err):
			m.println(cli.Error(userMessage(err)))
		default:
			m.logger.Error("menu action failed", "choice", choice, "error", err)
			return err
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addIncome(ctx)
	case "2":
		return m.addExpense(ctx)
	case "3":
		m.print(cli.RenderBalance(m.currency, m.ledger.Balance()))
	case "4":
		return m.setGoal(ctx)
	case "5":
		m.print(cli.RenderGoal(m.currency, m.ledger.Progress()))
	case "6":
		return m.history()
	case "7":
		return m.report()
	case "8":
		return errQuit
	default:
		m.println(cli.Error("Invalid choice."))
	}
	return nil
}

func (m *Menu) exit(ctx context.Context) error {
	if err := m.ledger.Save(ctx); err != nil {
		m.logger.Error("final save failed", "error", err)
		return err
	}
	m.println("Thank you!")
	return nil
}

func (m *Menu) readAmount(label string) (int64, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	return ledger.ParseAmount(s)
}

func (m *Menu) addIncome(ctx context.Context) error {
	amount, err := m.readAmount("Income amount: ")
	if err != nil {
		return err
	}
	if _, err := m.ledger.AddIncome(ctx, amount); err != nil {
		return err
	}
	m.println(cli.Good(fmt.Sprintf("Added income of %s. Balance is now %s.",
		cli.FormatCurrency(m.currency, amount), cli.FormatCurrency(m.currency, m.ledger.Balance()))))
	return nil
}

func (m *Menu) addExpense(ctx context.Context) error {
	amount, err := m.readAmount("Expense amount: ")
	if err != nil {
		return err
	}
	// Checked before the category prompt.
	if amount > m.ledger.Balance() {
		return fmt.Errorf("%w: %d requested, %d available", model.ErrInsufficientBalance, amount, m.ledger.Balance())
	}

	category, err := m.prompt("Category (Food/Transport/...): ")
	if err != nil {
		return err
	}
	tx, err := m.ledger.AddExpense(ctx, amount, category)
	if err != nil {
		return err
	}
	m.println(cli.Good(fmt.Sprintf("Recorded expense of %s (%s). Balance is now %s.",
		cli.FormatCurrency(m.currency, amount), tx.Category, cli.FormatCurrency(m.currency, m.ledger.Balance()))))
	return nil
}

func (m *Menu) setGoal(ctx context.Context) error {
	name, err := m.prompt("Goal name: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: goal name must not be blank", model.ErrInvalidInput)
	}
	amount, err := m.readAmount("Goal amount: ")
	if err != nil {
		return err
	}
	if err := m.ledger.SetGoal(ctx, name, amount); err != nil {
		return err
	}
	m.println(cli.Good("Savings goal saved."))
	return nil
}

func (m *Menu) history() error {
	for {
		m.print(historyMenu)
		choice, err := m.prompt("Choose: ")
		if err != nil {
			return err
		}

		var period string
		switch choice {
		case "1":
			period = report.PeriodToday
		case "2":
			period = report.PeriodWeek
		case "3":
			period = report.PeriodMonth
		case "4":
			return nil
		default:
			m.println(cli.Error("Invalid choice."))
			continue
		}

		rep, err := m.reporter.ForPeriod(m.ledger.Transactions(), period)
		if err != nil {
			return err
		}
		m.print(cli.RenderPeriod(m.currency, rep))
	}
}

func (m *Menu) report() error {
	txs := m.ledger.Transactions()
	if len(txs) == 0 {
		m.println(cli.Muted("No transactions yet."))
		return nil
	}

	ym, err := m.prompt("Filter by month (YYYY-MM, blank for all): ")
	if err != nil {
		return err
	}

	rep := m.reporter.All(txs)
	if ym != "" {
		if rep, err = m.reporter.ForMonth(txs, ym); err != nil {
			return err
		}
	}
	m.print(cli.RenderReport(m.currency, m.ledger.Balance(), rep))
	return nil
}

// prompt prints label and returns the trimmed line. A final line without a
// newline is still returned; io.EOF comes only once input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	m.print(label)
	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		m.println("")
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) print(s string) {
	fmt.Fprint(m.out, s)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func isUserError(err error) bool {
	for _, target := range []error{
		model.ErrInvalidAmount,
		model.ErrInsufficientBalance,
		model.ErrInvalidInput,
		model.ErrInvalidFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidAmount):
		return "Invalid amount. Enter a whole number greater than 0."
	case errors.Is(err, model.ErrInsufficientBalance):
		return "Insufficient balance."
	case errors.Is(err, model.ErrInvalidInput):
		return "Goal name must not be blank."
	case errors.Is(err, model.ErrInvalidFormat):
		return "Invalid month filter. Use YYYY-MM."
	default:
		return err.Error()
	}
}
