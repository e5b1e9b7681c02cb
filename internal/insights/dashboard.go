package insights

import (
	"time"

	"printbazar/m/domain"
)

// DailyPoint is one day of the trailing sales chart.
type DailyPoint struct {
	Date   string       `json:"date"`
	Day    string       `json:"day"`
	Sales  domain.Money `json:"sales"`
	Profit domain.Money `json:"profit"`
	Orders int          `json:"orders"`
}

type Dashboard struct {
	Period      Period             `json:"period"`
	Label       string             `json:"label"`
	Stats       Summary            `json:"stats"`
	Pending     Summary            `json:"pending"`
	PendingList []domain.Order     `json:"pending_list"`
	LowStock    []domain.StockItem `json:"low_stock"`
	Daily       []DailyPoint       `json:"daily"`
}

const chartDays = 7

// BuildDashboard computes the period stats plus the global pending queue,
// which ignores the period.
func BuildDashboard(orders []domain.Order, stock []domain.StockItem, period Period, now time.Time) Dashboard {
	periodOrders := Filter(orders, Query{Period: period, Now: now})
	pendingOrders := Filter(orders, Query{Period: PeriodAll, Tab: TabPending, Now: now})

	d := Dashboard{
		Period:      period,
		Label:       period.Label(),
		Stats:       Summarize(periodOrders),
		Pending:     Summarize(pendingOrders),
		PendingList: pendingOrders,
		LowStock:    []domain.StockItem{},
		Daily:       Daily(orders, now, chartDays),
	}
	for _, s := range stock {
		if s.Low() {
			d.LowStock = append(d.LowStock, s)
		}
	}
	return d
}

// Daily buckets order totals per calendar day for the last days days,
// oldest first, ending today.
func Daily(orders []domain.Order, now time.Time, days int) []DailyPoint {
	today := startOfDay(now)
	first := today.AddDate(0, 0, -(days - 1))
	points := make([]DailyPoint, days)
	for i := range points {
		day := first.AddDate(0, 0, i)
		points[i] = DailyPoint{
			Date:   day.Format("2006-01-02"),
			Day:    day.Format("Mon"),
			Sales:  domain.Zero,
			Profit: domain.Zero,
		}
	}
	for _, o := range orders {
		created := o.CreatedAt.In(now.Location())
		if created.Before(first) {
			continue
		}
		i := dayIndex(first, startOfDay(created), days)
		if i >= days {
			continue
		}
		points[i].Sales = points[i].Sales.Add(o.Total)
		points[i].Profit = points[i].Profit.Add(o.Profit)
		points[i].Orders++
	}
	return points
}

// dayIndex counts calendar days from first to day, stopping at limit.
func dayIndex(first, day time.Time, limit int) int {
	i := 0
	for d := first; d.Before(day); d = d.AddDate(0, 0, 1) {
		i++
		if i >= limit {
			break
		}
	}
	return i
}
