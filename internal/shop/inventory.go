package shop

import (
	"context"
	"errors"

	"printbazar/m/domain"
	"printbazar/m/internal/inventory"
	"printbazar/m/internal/store"
)

func stockErr(err error) error {
	if errors.Is(err, inventory.ErrStockNotFound) {
		return notFound(err)
	}
	return invalid(err, "")
}

func (s *Shop) StockItems(category, term string) []domain.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock.Filter(category, term)
}

func (s *Shop) LowStock() []domain.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock.LowStock()
}

func (s *Shop) AddStock(ctx context.Context, item domain.StockItem) (domain.StockItem, error) {
	return s.mutateStock(ctx, func() (domain.StockItem, error) { return s.stock.Add(item) })
}

func (s *Shop) UpdateStock(ctx context.Context, id string, patch inventory.StockPatch) (domain.StockItem, error) {
	return s.mutateStock(ctx, func() (domain.StockItem, error) { return s.stock.Update(id, patch) })
}

// AdjustStock applies a quick +/- change, clamped at zero.
func (s *Shop) AdjustStock(ctx context.Context, id string, delta int64) (domain.StockItem, error) {
	return s.mutateStock(ctx, func() (domain.StockItem, error) { return s.stock.Adjust(id, delta) })
}

func (s *Shop) DeleteStock(ctx context.Context, id string) error {
	_, err := s.mutateStock(ctx, func() (domain.StockItem, error) { return domain.StockItem{}, s.stock.Delete(id) })
	return err
}

func (s *Shop) mutateStock(ctx context.Context, fn func() (domain.StockItem, error)) (domain.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := fn()
	if err != nil {
		return domain.StockItem{}, stockErr(err)
	}
	return it, s.persistLocked(ctx, store.KeyStock)
}

type ExpenseView struct {
	Expenses []domain.Expense `json:"expenses"`
	Total    domain.Money     `json:"total"`
}

func (s *Shop) Expenses() ExpenseView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExpenseView{Expenses: s.ledger.List(), Total: s.ledger.Total()}
}

func (s *Shop) AddExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	added, err := s.ledger.Add(e)
	if err != nil {
		return domain.Expense{}, invalid(err, "")
	}
	return added, s.persistLocked(ctx, store.KeyExpenses)
}
