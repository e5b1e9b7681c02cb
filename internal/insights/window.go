package insights

import (
	"fmt"
	"strings"
	"time"

	"printbazar/m/domain"
)

// Period is a calendar time window over order creation times.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodAll       Period = "all"
)

// ParsePeriod accepts the period names; an empty string means all.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Bounds returns the half-open window [from, to) for now. A zero bound is
// open on that side.
func (p Period) Bounds(now time.Time) (from, to time.Time) {
	today := startOfDay(now)
	switch p {
	case PeriodToday:
		return today, time.Time{}
	case PeriodYesterday:
		return today.AddDate(0, 0, -1), today
	case PeriodWeek:
		return today.AddDate(0, 0, -6), time.Time{}
	case PeriodMonth:
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), time.Time{}
	}
	return time.Time{}, time.Time{}
}

// Contains reports whether t falls inside the window as seen from now.
func (p Period) Contains(t, now time.Time) bool {
	from, to := p.Bounds(now)
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// Label is the heading used for the period on the dashboard.
func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Today's"
	case PeriodYesterday:
		return "Yesterday's"
	case PeriodWeek:
		return "This Week's"
	case PeriodMonth:
		return "This Month's"
	}
	return "Total"
}

// Tab is a status window, or a category filter for any other value.
type Tab string

const (
	TabAll       Tab = "all"
	TabPending   Tab = "pending"
	TabUnpaid    Tab = "unpaid"
	TabCompleted Tab = "completed"
)

func pending(o domain.Order) bool {
	return o.Status != domain.StatusDelivered && o.Status != domain.StatusCancelled
}

// Match reports whether o belongs to the tab.
func (t Tab) Match(o domain.Order) bool {
	switch t {
	case "", TabAll:
		return true
	case TabPending:
		return pending(o)
	case TabUnpaid:
		return o.PaymentStatus != domain.PaymentPaid
	case TabCompleted:
		return o.Status == domain.StatusDelivered
	}
	return o.HasCategory(string(t))
}
