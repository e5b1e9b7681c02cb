package pricing

import (
	"github.com/shopspring/decimal"

	"printbazar/m/domain"
)

// RateCard prices uploaded print jobs. Sides do not affect the price.
type RateCard struct {
	BlackWhitePage domain.Money
	ColorPage      domain.Money
	BindingFees    map[domain.Binding]domain.Money

	// Cost side, used for profit on print lines.
	PageCost     domain.Money
	BindingCosts map[domain.Binding]domain.Money
}

func DefaultRateCard() RateCard {
	return RateCard{
		BlackWhitePage: domain.Rupees(2),
		ColorPage:      domain.Rupees(10),
		BindingFees: map[domain.Binding]domain.Money{
			domain.BindingNone:   domain.Zero,
			domain.BindingSpiral: domain.Rupees(40),
			domain.BindingWire:   domain.Rupees(60),
			domain.BindingHard:   domain.Rupees(200),
		},
		PageCost: decimal.RequireFromString("0.5"),
		BindingCosts: map[domain.Binding]domain.Money{
			domain.BindingNone:   domain.Zero,
			domain.BindingSpiral: domain.Rupees(10),
			domain.BindingWire:   domain.Rupees(15),
			domain.BindingHard:   domain.Rupees(100),
		},
	}
}

func (r RateCard) PerPage(mode domain.PrintMode) domain.Money {
	if mode == domain.PrintColor {
		return r.ColorPage
	}
	return r.BlackWhitePage
}

// BindingFee returns the fixed fee for a binding; unknown bindings cost nothing.
func (r RateCard) BindingFee(b domain.Binding) domain.Money {
	if fee, ok := r.BindingFees[b]; ok {
		return fee
	}
	return decimal.Zero
}

// Quote is pageCount * perPageRate + bindingFee.
func (r RateCard) Quote(pageCount int, mode domain.PrintMode, binding domain.Binding) domain.Money {
	return r.PerPage(mode).Mul(decimal.NewFromInt(int64(pageCount))).Add(r.BindingFee(binding))
}

// Cost estimates the material cost of a print job.
func (r RateCard) Cost(pageCount int, binding domain.Binding) domain.Money {
	cost := r.PageCost.Mul(decimal.NewFromInt(int64(pageCount)))
	if c, ok := r.BindingCosts[binding]; ok {
		cost = cost.Add(c)
	}
	return cost
}
