// Package inventory tracks raw stock and shop expenses.
package inventory

import (
	"errors"
	"strings"

	"printbazar/m/domain"
)

var (
	ErrStockNotFound = errors.New("stock item not found")
	ErrStockName     = errors.New("stock item name is required")
	ErrStockCategory = errors.New("unknown stock category")
)

// StockPatch carries the editable fields of a stock item; nil fields are left alone.
type StockPatch struct {
	Name      *string
	Unit      *string
	Quantity  *int64
	Threshold *int64
	Category  *domain.StockCategory
}

// Stock is the raw material inventory. Quantities never drop below zero.
type Stock struct {
	items []domain.StockItem
}

func NewStock(items []domain.StockItem) *Stock {
	s := &Stock{}
	for _, it := range items {
		it.Quantity = clamp(it.Quantity)
		s.items = append(s.items, it)
	}
	return s
}

func clamp(q int64) int64 {
	if q < 0 {
		return 0
	}
	return q
}

func (s *Stock) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add validates item, assigns an id if missing and puts it first.
func (s *Stock) Add(item domain.StockItem) (domain.StockItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.StockItem{}, ErrStockName
	}
	if !item.Category.Valid() {
		return domain.StockItem{}, ErrStockCategory
	}
	if item.ID == "" {
		item.ID = domain.NewID()
	}
	if item.Unit == "" {
		item.Unit = "Unit"
	}
	item.Quantity = clamp(item.Quantity)
	s.items = append([]domain.StockItem{item}, s.items...)
	return item, nil
}

func (s *Stock) Update(id string, patch StockPatch) (domain.StockItem, error) {
	i := s.index(id)
	if i < 0 {
		return domain.StockItem{}, ErrStockNotFound
	}
	it := s.items[i]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.StockItem{}, ErrStockName
		}
		it.Name = name
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return domain.StockItem{}, ErrStockCategory
		}
		it.Category = *patch.Category
	}
	if patch.Unit != nil {
		it.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		it.Quantity = clamp(*patch.Quantity)
	}
	if patch.Threshold != nil {
		it.Threshold = *patch.Threshold
	}
	s.items[i] = it
	return it, nil
}

// Adjust adds delta to the quantity, clamping at zero.
func (s *Stock) Adjust(id string, delta int64) (domain.StockItem, error) {
	i := s.index(id)
	if i < 0 {
		return domain.StockItem{}, ErrStockNotFound
	}
	s.items[i].Quantity = clamp(s.items[i].Quantity + delta)
	return s.items[i], nil
}

func (s *Stock) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return ErrStockNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// DeductCategory takes n units from every item in category and reports how
// many items were touched.
func (s *Stock) DeductCategory(category domain.StockCategory, n int64) int {
	touched := 0
	for i := range s.items {
		if s.items[i].Category == category {
			s.items[i].Quantity = clamp(s.items[i].Quantity - n)
			touched++
		}
	}
	return touched
}

func (s *Stock) Items() []domain.StockItem {
	out := make([]domain.StockItem, len(s.items))
	copy(out, s.items)
	return out
}

// Filter narrows by category (empty or "All" for every category) and a
// case-insensitive name term.
func (s *Stock) Filter(category, term string) []domain.StockItem {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []domain.StockItem
	for _, it := range s.items {
		if category != "" && category != "All" && string(it.Category) != category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// LowStock lists the items at or below their threshold, computed on every call.
func (s *Stock) LowStock() []domain.StockItem {
	var out []domain.StockItem
	for _, it := range s.items {
		if it.Low() {
			out = append(out, it)
		}
	}
	return out
}
