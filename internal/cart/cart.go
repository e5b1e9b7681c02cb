// Package cart holds the customer's priced line items.
package cart

import (
	"encoding/json"

	"printbazar/m/domain"
	"printbazar/m/internal/pricing"
)

// Cart is an ordered collection of lines keyed by line identity.
// Every mutation re-derives the touched line's TotalPrice.
type Cart struct {
	lines []domain.LineItem
	gen   uint64
}

// New builds a cart from previously stored lines. Invalid lines and repeated
// keys are dropped; totals are recomputed rather than trusted.
func New(lines ...domain.LineItem) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Validate() != nil || c.index(l.Key) >= 0 {
			continue
		}
		l = l.Clone()
		pricing.Reprice(&l)
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(key string) int {
	for i := range c.lines {
		if c.lines[i].Key == key {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() { c.gen++ }

// Generation changes whenever the cart is mutated.
func (c *Cart) Generation() uint64 { return c.gen }

// AddOrIncrement bumps the quantity of an existing line by one, or appends
// item. Catalog items arrive with quantity 1; preconfigured lines keep theirs.
func (c *Cart) AddOrIncrement(item domain.LineItem) (domain.LineItem, error) {
	if i := c.index(item.Key); i >= 0 {
		c.lines[i].Quantity++
		pricing.Reprice(&c.lines[i])
		c.touch()
		return c.lines[i].Clone(), nil
	}
	if item.Kind == domain.LineCatalog || item.Quantity < 1 {
		item.Quantity = 1
	}
	return c.add(item)
}

// Merge adds item.Quantity to an existing line with the same key, or appends item.
// Staff order entry uses it to add several units at once.
func (c *Cart) Merge(item domain.LineItem) (domain.LineItem, error) {
	if item.Quantity < 1 {
		return domain.LineItem{}, domain.ErrLineQuantity
	}
	if i := c.index(item.Key); i >= 0 {
		c.lines[i].Quantity += item.Quantity
		pricing.Reprice(&c.lines[i])
		c.touch()
		return c.lines[i].Clone(), nil
	}
	return c.add(item)
}

func (c *Cart) add(item domain.LineItem) (domain.LineItem, error) {
	if err := item.Validate(); err != nil {
		return domain.LineItem{}, err
	}
	item = item.Clone()
	pricing.Reprice(&item)
	c.lines = append(c.lines, item)
	c.touch()
	return item.Clone(), nil
}

// UpdateQuantity sets quantity to max(1, quantity+delta). Unknown keys are a no-op.
func (c *Cart) UpdateQuantity(key string, delta int64) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	q := c.lines[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.lines[i].Quantity = q
	pricing.Reprice(&c.lines[i])
	c.touch()
	return true
}

// Decrement lowers a line by one, removing it instead of going below 1.
func (c *Cart) Decrement(key string) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	if c.lines[i].Quantity <= 1 {
		return c.Remove(key)
	}
	return c.UpdateQuantity(key, -1)
}

// Remove deletes the line with key, if present.
func (c *Cart) Remove(key string) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.touch()
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.touch()
}

// Lines returns a deep copy of the lines in insertion order.
func (c *Cart) Lines() []domain.LineItem {
	return domain.CloneLines(c.lines)
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Subtotal is the sum of the line totals.
func (c *Cart) Subtotal() domain.Money {
	return pricing.Subtotal(c.lines)
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []domain.LineItem{}
	}
	return json.Marshal(lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []domain.LineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*c = *New(lines...)
	return nil
}
