// Package ledger owns the in-memory allowance state and its mutations.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	applog "github.com/theirongolddev/saku/internal/log"
	"github.com/theirongolddev/saku/internal/model"
	"github.com/theirongolddev/saku/internal/store"
)

// Ledger holds the single State for the process and persists it after every mutation.
type Ledger struct {
	store     store.Storage
	state     model.State
	recovered bool
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

// Open loads the state from s. A corrupt store is logged and the ledger
// starts empty; see Recovered.
func Open(ctx context.Context, s store.Storage, logger *slog.Logger) *Ledger {
	l := &Ledger{
		store:  s,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: applog.WithComponent(logger, applog.ComponentLedger),
	}

	st, err := s.Load(ctx)
	if err != nil {
		l.logger.Warn("starting with an empty ledger", "error", err)
		l.recovered = errors.Is(err, model.ErrPersistenceCorrupt)
	}
	l.state = st
	return l
}

// SetClock overrides the time source used to stamp transactions.
func (l *Ledger) SetClock(now func() time.Time) { l.now = now }

// Recovered reports whether Open discarded unreadable persisted data.
func (l *Ledger) Recovered() bool { return l.recovered }

// Balance returns the current balance.
func (l *Ledger) Balance() int64 { return l.state.Balance }

// Transactions returns a copy of the transaction list in insertion order.
func (l *Ledger) Transactions() []model.Transaction {
	return l.state.Clone().Transactions
}

// Goal returns the savings goal, if set.
func (l *Ledger) Goal() (model.Goal, bool) {
	if l.state.Goal == nil {
		return model.Goal{}, false
	}
	return *l.state.Goal, true
}

// State returns a copy of the full state.
func (l *Ledger) State() model.State { return l.state.Clone() }

// ParseAmount parses user input as a positive whole amount.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", model.ErrInvalidAmount, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: must be greater than 0", model.ErrInvalidAmount)
	}
	return n, nil
}

// AddIncome records money received.
func (l *Ledger) AddIncome(ctx context.Context, amount int64) (model.Transaction, error) {
	if amount <= 0 {
		return model.Transaction{}, fmt.Errorf("%w: must be greater than 0", model.ErrInvalidAmount)
	}
	// Balance never exceeds total income, so this bounds both.
	if room := l.state.IncomeHeadroom(); amount > room {
		return model.Transaction{}, fmt.Errorf("%w: %d exceeds the remaining headroom of %d", model.ErrInvalidAmount, amount, room)
	}

	t := model.Transaction{
		ID:        l.newID(),
		Kind:      model.Income,
		Amount:    amount,
		Timestamp: l.now(),
	}
	if err := l.mutate(ctx, func(st *model.State) {
		st.Balance += amount
		st.Transactions = append(st.Transactions, t)
	}); err != nil {
		return model.Transaction{}, err
	}

	l.logger.Debug("income recorded", "amount", amount, "balance", l.state.Balance)
	return t, nil
}

// AddExpense records money spent. Blank categories become model.DefaultCategory.
func (l *Ledger) AddExpense(ctx context.Context, amount int64, category string) (model.Transaction, error) {
	if amount <= 0 {
		return model.Transaction{}, fmt.Errorf("%w: must be greater than 0", model.ErrInvalidAmount)
	}
	if amount > l.state.Balance {
		return model.Transaction{}, fmt.Errorf("%w: %d requested, %d available",
			model.ErrInsufficientBalance, amount, l.state.Balance)
	}

	t := model.Transaction{
		ID:        l.newID(),
		Kind:      model.Expense,
		Amount:    amount,
		Category:  model.NormalizeCategory(category),
		Timestamp: l.now(),
	}
	if err := l.mutate(ctx, func(st *model.State) {
		st.Balance -= amount
		st.Transactions = append(st.Transactions, t)
	}); err != nil {
		return model.Transaction{}, err
	}

	l.logger.Debug("expense recorded", "amount", amount, "category", t.Category, "balance", l.state.Balance)
	return t, nil
}

// SetGoal replaces the savings goal.
func (l *Ledger) SetGoal(ctx context.Context, name string, amount int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: goal name cannot be empty", model.ErrInvalidInput)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: goal amount must be greater than 0", model.ErrInvalidAmount)
	}

	if err := l.mutate(ctx, func(st *model.State) {
		st.Goal = &model.Goal{Name: name, Amount: amount}
	}); err != nil {
		return err
	}

	l.logger.Debug("goal set", "name", name, "amount", amount)
	return nil
}

// Save persists the current state.
func (l *Ledger) Save(ctx context.Context) error {
	if err := l.store.Save(ctx, l.state); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// mutate applies fn and persists; on save failure the previous state is restored.
func (l *Ledger) mutate(ctx context.Context, fn func(st *model.State)) error {
	prev := l.state.Clone()
	fn(&l.state)
	if err := l.Save(ctx); err != nil {
		l.state = prev
		l.logger.Error("save failed, change discarded", "error", err)
		return err
	}
	return nil
}

// Progress describes how far the balance is toward the savings goal.
type Progress struct {
	Set     bool
	Goal    model.Goal
	Balance int64
	Percent decimal.Decimal // 0-100, two decimal places
	Reached bool
}

var hundred = decimal.NewFromInt(100)

// Progress computes min(balance / goal * 100, 100).
func (l *Ledger) Progress() Progress {
	return ComputeProgress(l.state.Balance, l.state.Goal)
}

// ComputeProgress is the pure form of Ledger.Progress.
func ComputeProgress(balance int64, goal *model.Goal) Progress {
	if goal == nil || goal.Amount <= 0 {
		return Progress{Balance: balance, Percent: decimal.Zero}
	}

	p := Progress{
		Set:     true,
		Goal:    *goal,
		Balance: balance,
		Reached: balance >= goal.Amount,
	}
	if p.Reached {
		p.Percent = hundred
		return p
	}
	p.Percent = decimal.NewFromInt(balance).
		Mul(hundred).
		Div(decimal.NewFromInt(goal.Amount)).
		Round(2)
	if p.Percent.GreaterThan(hundred) {
		p.Percent = hundred
	}
	return p
}
