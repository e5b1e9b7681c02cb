// Package insights holds the read-side projections over orders: windowed
// listings, money totals and the dashboard snapshot. Nothing here mutates its
// input.
package insights

import (
	"sort"
	"strings"
	"time"

	"printbazar/m/domain"
)

type Query struct {
	Period Period
	Tab    Tab
	Search string
	Now    time.Time
}

func matchSearch(o domain.Order, term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(o.CustomerName), lower) ||
		strings.Contains(strings.ToLower(o.ID), lower) ||
		strings.Contains(o.CustomerPhone, term)
}

// Filter applies the period, tab and search term and sorts newest first.
// The result holds copies.
func Filter(orders []domain.Order, q Query) []domain.Order {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	term := strings.TrimSpace(q.Search)
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !q.Period.Contains(o.CreatedAt, now) || !q.Tab.Match(o) || !matchSearch(o, term) {
			continue
		}
		out = append(out, o.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type Summary struct {
	Count           int          `json:"count"`
	Revenue         domain.Money `json:"revenue"`
	Profit          domain.Money `json:"profit"`
	CashCollected   domain.Money `json:"cash_collected"`
	OnlineCollected domain.Money `json:"online_collected"`
}

// Summarize totals orders. Collected amounts only count paid orders; a split
// payment lands in neither bucket.
func Summarize(orders []domain.Order) Summary {
	s := Summary{
		Revenue:         domain.Zero,
		Profit:          domain.Zero,
		CashCollected:   domain.Zero,
		OnlineCollected: domain.Zero,
	}
	for _, o := range orders {
		s.Count++
		s.Revenue = s.Revenue.Add(o.Total)
		s.Profit = s.Profit.Add(o.Profit)
		if o.PaymentStatus != domain.PaymentPaid {
			continue
		}
		switch {
		case o.PaymentMethod == domain.MethodCash:
			s.CashCollected = s.CashCollected.Add(o.Total)
		case o.PaymentMethod.Online():
			s.OnlineCollected = s.OnlineCollected.Add(o.Total)
		}
	}
	return s
}

type TabCount struct {
	Tab   Tab `json:"tab"`
	Count int `json:"count"`
}

// CountTabs counts the fixed tabs followed by one entry per category.
func CountTabs(orders []domain.Order, categories []string) []TabCount {
	tabs := []Tab{TabAll, TabPending, TabUnpaid, TabCompleted}
	for _, c := range categories {
		tabs = append(tabs, Tab(c))
	}
	out := make([]TabCount, len(tabs))
	for i, t := range tabs {
		out[i].Tab = t
		for _, o := range orders {
			if t.Match(o) {
				out[i].Count++
			}
		}
	}
	return out
}
