package domain

import "time"

type ExpenseCategory string

const (
	ExpenseRent        ExpenseCategory = "Rent"
	ExpenseElectricity ExpenseCategory = "Electricity"
	ExpenseRawMaterial ExpenseCategory = "Raw Material"
	ExpenseRepairs     ExpenseCategory = "Repairs"
	ExpenseOther       ExpenseCategory = "Other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseRent, ExpenseElectricity, ExpenseRawMaterial, ExpenseRepairs, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID       string          `db:"id" json:"id"`
	Title    string          `db:"title" json:"title"`
	Amount   Money           `db:"amount" json:"amount"`
	Category ExpenseCategory `db:"category" json:"category"`
	Date     time.Time       `db:"date" json:"date"`
}
