// Package model defines domain types for the saku ledger.
package model

import (
	"fmt"
	"math"
	"time"
)

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Title returns the display label for the kind.
func (k Kind) Title() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return string(k)
	}
}

// Transaction is a single recorded income or expense. Never mutated after creation.
type Transaction struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Amount    int64     `json:"amount" yaml:"amount"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Signed returns the amount as it affects the balance.
func (t Transaction) Signed() int64 {
	if t.Kind == Expense {
		return -t.Amount
	}
	return t.Amount
}

// Goal is the savings target.
type Goal struct {
	Name   string
	Amount int64
}

// State is everything the ledger persists.
type State struct {
	Balance      int64
	Transactions []Transaction
	Goal         *Goal // nil when no goal is set
}

// Clone returns a deep copy so callers can mutate freely.
func (s State) Clone() State {
	out := State{Balance: s.Balance}
	if len(s.Transactions) > 0 {
		out.Transactions = make([]Transaction, len(s.Transactions))
		copy(out.Transactions, s.Transactions)
	}
	if s.Goal != nil {
		g := *s.Goal
		out.Goal = &g
	}
	return out
}

// SignedSum replays the transaction list.
func (s State) SignedSum() int64 {
	var sum int64
	for _, t := range s.Transactions {
		sum += t.Signed()
	}
	return sum
}

// TotalIncome sums every income transaction.
func (s State) TotalIncome() int64 {
	var sum int64
	for _, t := range s.Transactions {
		if t.Kind == Income {
			sum += t.Amount
		}
	}
	return sum
}

// IncomeHeadroom is how much more income fits before the totals overflow int64.
func (s State) IncomeHeadroom() int64 {
	return math.MaxInt64 - s.TotalIncome()
}

// Validate checks the ledger invariants. Stores call this on load.
func (s State) Validate() error {
	var running, income int64
	for i, t := range s.Transactions {
		if !t.Kind.Valid() {
			return fmt.Errorf("transaction %d: unknown kind %q", i, t.Kind)
		}
		if t.Amount <= 0 {
			return fmt.Errorf("transaction %d: non-positive amount %d", i, t.Amount)
		}
		if t.Timestamp.IsZero() {
			return fmt.Errorf("transaction %d: missing timestamp", i)
		}
		if t.Kind == Income {
			if t.Amount > math.MaxInt64-income {
				return fmt.Errorf("transaction %d: income total overflows", i)
			}
			income += t.Amount
		}
		running += t.Signed()
		if running < 0 {
			return fmt.Errorf("transaction %d: balance goes negative (%d)", i, running)
		}
	}
	if running != s.Balance {
		return fmt.Errorf("balance %d does not match transactions (%d)", s.Balance, running)
	}
	if s.Goal != nil && (s.Goal.Amount <= 0 || s.Goal.Name == "") {
		return fmt.Errorf("invalid savings goal %q/%d", s.Goal.Name, s.Goal.Amount)
	}
	return nil
}
