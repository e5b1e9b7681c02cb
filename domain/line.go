package domain

import (
	"errors"
	"fmt"
)

// LineKind tags the variant of a priced line.
type LineKind string

const (
	// LineCatalog is a product picked from the catalog; its key is the product id.
	LineCatalog LineKind = "catalog"
	// LineCustomPrint is an uploaded document configured for printing.
	LineCustomPrint LineKind = "custom_print"
	// LineManual is an ad-hoc item typed in by staff.
	LineManual LineKind = "manual"
)

var (
	ErrLineKey      = errors.New("line key is required")
	ErrLineQuantity = errors.New("line quantity must be at least 1")
	ErrLineVariant  = errors.New("line variant does not match its details")
)

// LineItem is one priced entry in a cart or an order.
type LineItem struct {
	Key        string     `json:"key"`
	Kind       LineKind   `json:"kind"`
	ProductID  string     `json:"product_id,omitempty"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Image      string     `json:"image,omitempty"`
	UnitPrice  Money      `json:"unit_price"`
	UnitCost   Money      `json:"unit_cost"`
	Quantity   int64      `json:"quantity"`
	TotalPrice Money      `json:"total_price"`
	File       *PrintFile `json:"file,omitempty"`
}

// CatalogLine builds a line for a catalog product.
func CatalogLine(p Product, quantity int64) LineItem {
	return LineItem{
		Key:       p.ID,
		Kind:      LineCatalog,
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Image:     p.Image,
		UnitPrice: p.Price,
		UnitCost:  p.Cost,
		Quantity:  quantity,
	}
}

// CustomPrintLine builds a single-copy line for a configured print job.
func CustomPrintLine(key string, price, cost Money, file PrintFile) LineItem {
	return LineItem{
		Key:       key,
		Kind:      LineCustomPrint,
		Name:      "Print: " + file.Name,
		Category:  CustomPrintCategory,
		UnitPrice: price,
		UnitCost:  cost,
		Quantity:  1,
		File:      &file,
	}
}

// ManualLine builds a staff-entered line. An empty category becomes "Custom".
func ManualLine(key, name, category string, price, cost Money, quantity int64) LineItem {
	if category == "" {
		category = "Custom"
	}
	return LineItem{
		Key:       key,
		Kind:      LineManual,
		Name:      name,
		Category:  category,
		UnitPrice: price,
		UnitCost:  cost,
		Quantity:  quantity,
	}
}

// Validate checks that the line is well formed for its kind.
func (l LineItem) Validate() error {
	if l.Key == "" {
		return ErrLineKey
	}
	if l.Quantity < 1 {
		return ErrLineQuantity
	}
	switch l.Kind {
	case LineCatalog:
		if l.ProductID == "" || l.File != nil {
			return fmt.Errorf("%w: catalog line %s", ErrLineVariant, l.Key)
		}
	case LineCustomPrint:
		if l.File == nil || l.File.PageCount < 1 {
			return fmt.Errorf("%w: print line %s", ErrLineVariant, l.Key)
		}
	case LineManual:
		if l.File != nil {
			return fmt.Errorf("%w: manual line %s", ErrLineVariant, l.Key)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrLineVariant, l.Kind)
	}
	return nil
}

// Clone returns a copy that shares no memory with l.
func (l LineItem) Clone() LineItem {
	if l.File != nil {
		f := *l.File
		l.File = &f
	}
	return l
}

// CloneLines deep-copies a line slice.
func CloneLines(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}
