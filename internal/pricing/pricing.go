// Package pricing turns line items into order totals. Everything here is pure.
package pricing

import (
	"github.com/shopspring/decimal"

	"printbazar/m/domain"
)

// DefaultUrgentFee is the flat surcharge added once to an urgent order.
var DefaultUrgentFee = domain.Rupees(50)

// Calculator derives order totals. The zero value charges no urgent fee.
type Calculator struct {
	UrgentFee domain.Money
}

// New returns a Calculator with the given flat urgent fee.
func New(urgentFee domain.Money) Calculator {
	return Calculator{UrgentFee: urgentFee}
}

// LineTotal is unit price times quantity.
func LineTotal(line domain.LineItem) domain.Money {
	return line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
}

// LineCost is unit cost times quantity.
func LineCost(line domain.LineItem) domain.Money {
	return line.UnitCost.Mul(decimal.NewFromInt(line.Quantity))
}

// Reprice overwrites the stored total of line with its derived value.
func Reprice(line *domain.LineItem) {
	line.TotalPrice = LineTotal(*line)
}

// Subtotal sums the line totals. Stored TotalPrice values are ignored.
func Subtotal(lines []domain.LineItem) domain.Money {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l))
	}
	return sum
}

// Totals prices a sequence of lines. An empty sequence yields all zeros,
// urgent or not.
func (c Calculator) Totals(lines []domain.LineItem, urgent bool) domain.Totals {
	if len(lines) == 0 {
		return domain.Totals{Subtotal: decimal.Zero, UrgentFee: decimal.Zero, Total: decimal.Zero, CostTotal: decimal.Zero, Profit: decimal.Zero}
	}
	subtotal := Subtotal(lines)
	costTotal := decimal.Zero
	for _, l := range lines {
		costTotal = costTotal.Add(LineCost(l))
	}
	fee := decimal.Zero
	if urgent {
		fee = c.UrgentFee
	}
	total := subtotal.Add(fee)
	return domain.Totals{
		Subtotal:  subtotal,
		UrgentFee: fee,
		Total:     total,
		CostTotal: costTotal,
		Profit:    total.Sub(costTotal),
	}
}
