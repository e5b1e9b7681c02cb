package shop

import (
	"context"
	"strings"

	"printbazar/m/domain"
	"printbazar/m/internal/cart"
	"printbazar/m/internal/insights"
	"printbazar/m/internal/notify"
	"printbazar/m/internal/orders"
	"printbazar/m/internal/store"
)

// StaffItem is one entry of a staff-built order. Key names a line already on
// the order being edited; only its quantity is taken. Otherwise the entry is a
// catalog product when ProductID is set, or an ad-hoc item.
type StaffItem struct {
	Key       string
	ProductID string
	Name      string
	Category  string
	Price     domain.Money
	Cost      domain.Money
	Quantity  int64
}

type StaffOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Urgent        bool
	Items         []StaffItem
}

// BuildLines turns staff entries into order lines. Repeated catalog products
// merge into one line.
func (s *Shop) BuildLines(items []StaffItem) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildLinesLocked(items, nil)
}

// buildLinesLocked builds lines from items. Keyed items copy the matching line
// of existing, so snapshot prices and print details survive an edit.
func (s *Shop) buildLinesLocked(items []StaffItem, existing []domain.LineItem) ([]domain.LineItem, error) {
	draft := cart.New()
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		var line domain.LineItem
		if it.Key != "" {
			i := lineIndex(existing, it.Key)
			if i < 0 {
				return nil, notFound(ErrLineNotFound)
			}
			line = existing[i].Clone()
			line.Quantity = qty
		} else if it.ProductID != "" {
			p, ok := s.product(it.ProductID)
			if !ok {
				return nil, notFound(ErrProduct)
			}
			line = domain.CatalogLine(p, qty)
		} else {
			name := strings.TrimSpace(it.Name)
			if name == "" {
				return nil, invalid(ErrItemName, "items")
			}
			line = domain.ManualLine("custom-"+domain.NewID(), name, strings.TrimSpace(it.Category), it.Price, it.Cost, qty)
		}
		if _, err := draft.Merge(line); err != nil {
			return nil, invalid(err, "items")
		}
	}
	return draft.Lines(), nil
}

func lineIndex(lines []domain.LineItem, key string) int {
	for i := range lines {
		if lines[i].Key == key {
			return i
		}
	}
	return -1
}

// CreateOrder places a staff-entered order. Payment defaults to Cash.
func (s *Shop) CreateOrder(ctx context.Context, in StaffOrderInput) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := s.buildLinesLocked(in.Items, nil)
	if err != nil {
		return domain.Order{}, err
	}
	o, err := s.orders.Place(orders.PlaceInput{
		Customer: orders.Customer{Name: in.CustomerName, Phone: in.CustomerPhone},
		Lines:    lines,
		Urgent:   in.Urgent,
		Method:   domain.MethodCash,
	})
	if err != nil {
		return domain.Order{}, err
	}
	return o, s.persistLocked(ctx, store.KeyOrders, store.KeyStock)
}

func (s *Shop) Order(id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Get(id)
}

// mutateOrder runs fn under the lock and persists the orders on success.
func (s *Shop) mutateOrder(ctx context.Context, fn func() (domain.Order, error)) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := fn()
	if err != nil {
		return domain.Order{}, err
	}
	return o, s.persistLocked(ctx, store.KeyOrders)
}

func (s *Shop) UpdateOrder(ctx context.Context, id string, patch orders.Patch) (domain.Order, error) {
	return s.mutateOrder(ctx, func() (domain.Order, error) { return s.orders.Update(id, patch) })
}

// EditOrder applies patch and, when items is non-nil, replaces the order's
// lines with items. Totals are re-derived by the order manager.
func (s *Shop) EditOrder(ctx context.Context, id string, patch orders.Patch, items []StaffItem) (domain.Order, error) {
	return s.mutateOrder(ctx, func() (domain.Order, error) {
		if items != nil {
			current, err := s.orders.Get(id)
			if err != nil {
				return domain.Order{}, err
			}
			lines, err := s.buildLinesLocked(items, current.Items)
			if err != nil {
				return domain.Order{}, err
			}
			patch.Items = lines
		}
		return s.orders.Update(id, patch)
	})
}

func (s *Shop) AdvanceOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.mutateOrder(ctx, func() (domain.Order, error) { return s.orders.Advance(id) })
}

func (s *Shop) TransitionOrder(ctx context.Context, id string, next domain.OrderStatus) (domain.Order, error) {
	return s.mutateOrder(ctx, func() (domain.Order, error) { return s.orders.Transition(id, next) })
}

func (s *Shop) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.mutateOrder(ctx, func() (domain.Order, error) { return s.orders.Cancel(id) })
}

func (s *Shop) RecordPayment(ctx context.Context, id string, status domain.PaymentStatus, cash, online domain.Money) (domain.Order, error) {
	return s.mutateOrder(ctx, func() (domain.Order, error) { return s.orders.RecordPayment(id, status, cash, online) })
}

func (s *Shop) DeleteOrder(ctx context.Context, id string, confirm orders.Confirmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.orders.Delete(id, confirm); err != nil {
		return err
	}
	return s.persistLocked(ctx, store.KeyOrders)
}

// ListOrders filters with q; a zero q.Now means the shop clock.
func (s *Shop) ListOrders(q insights.Query) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Now.IsZero() {
		q.Now = s.now()
	}
	return insights.Filter(s.orders.List(), q)
}

func (s *Shop) TabCounts() []insights.TabCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insights.CountTabs(s.orders.List(), s.categories.List())
}

func (s *Shop) Dashboard(period insights.Period) insights.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insights.BuildDashboard(s.orders.List(), s.stock.Items(), period, s.now())
}

func (s *Shop) WhatsApp(id string) (notify.Handoff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.orders.Get(id)
	if err != nil {
		return notify.Handoff{}, err
	}
	return s.deps.WhatsApp.Handoff(o), nil
}
