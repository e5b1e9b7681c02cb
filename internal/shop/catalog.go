package shop

import (
	"context"
	"strings"

	"printbazar/m/domain"
	"printbazar/m/internal/store"
)

// Products lists the storefront catalog. The custom print base item is hidden.
func (s *Shop) Products(category, term string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	term = strings.ToLower(strings.TrimSpace(term))
	out := []domain.Product{}
	for _, p := range s.products {
		if p.Category == domain.CustomPrintCategory {
			continue
		}
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Shop) product(id string) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Shop) Product(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.product(id)
	if !ok {
		return domain.Product{}, notFound(ErrProduct)
	}
	return p, nil
}

// ToggleStock flips the inStock flag of a product. Quantity is left alone.
func (s *Shop) ToggleStock(ctx context.Context, id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].InStock = !s.products[i].InStock
			return s.products[i], s.persistLocked(ctx, store.KeyProducts)
		}
	}
	return domain.Product{}, notFound(ErrProduct)
}

func (s *Shop) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.List()
}

// AddCategory registers a product/order category. Adding an existing name is a no-op.
func (s *Shop) AddCategory(ctx context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(name) == "" {
		return nil, invalid(ErrCategory, "name")
	}
	if !s.categories.Add(name) {
		return s.categories.List(), nil
	}
	return s.categories.List(), s.persistLocked(ctx, store.KeyCategories)
}
