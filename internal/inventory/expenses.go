package inventory

import (
	"errors"
	"sort"
	"strings"
	"time"

	"printbazar/m/domain"
)

var (
	ErrExpenseTitle    = errors.New("expense title is required")
	ErrExpenseAmount   = errors.New("expense amount must be positive")
	ErrExpenseCategory = errors.New("unknown expense category")
)

// Ledger holds shop expenses. They only feed profit and loss as a total.
type Ledger struct {
	expenses []domain.Expense
}

func NewLedger(expenses []domain.Expense) *Ledger {
	l := &Ledger{}
	l.expenses = append(l.expenses, expenses...)
	return l
}

func (l *Ledger) Add(e domain.Expense) (domain.Expense, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return domain.Expense{}, ErrExpenseTitle
	}
	if !e.Amount.IsPositive() {
		return domain.Expense{}, ErrExpenseAmount
	}
	if !e.Category.Valid() {
		return domain.Expense{}, ErrExpenseCategory
	}
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	l.expenses = append(l.expenses, e)
	return e, nil
}

// List returns the expenses newest first.
func (l *Ledger) List() []domain.Expense {
	out := make([]domain.Expense, len(l.expenses))
	copy(out, l.expenses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (l *Ledger) Total() domain.Money {
	sum := domain.Zero
	for _, e := range l.expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
