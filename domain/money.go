package domain

import "github.com/shopspring/decimal"

// Money is an amount in rupees.
type Money = decimal.Decimal

// Rupees returns a whole-rupee amount.
func Rupees(v int64) Money {
	return decimal.NewFromInt(v)
}

// Zero is the zero amount.
var Zero = decimal.Zero
