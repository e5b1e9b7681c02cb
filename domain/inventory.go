package domain

import "github.com/google/uuid"

type StockCategory string

const (
	StockPaper      StockCategory = "Paper"
	StockInk        StockCategory = "Ink"
	StockBinding    StockCategory = "Binding"
	StockCover      StockCategory = "Cover"
	StockLamination StockCategory = "Lamination"
	StockStationery StockCategory = "Stationery"
	StockOther      StockCategory = "Other"
)

// StockCategories lists the raw material categories in display order.
var StockCategories = []StockCategory{
	StockPaper, StockInk, StockBinding, StockCover, StockLamination, StockStationery, StockOther,
}

func (c StockCategory) Valid() bool {
	for _, known := range StockCategories {
		if c == known {
			return true
		}
	}
	return false
}

// StockItem is a raw material tracked by the back office.
type StockItem struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Unit      string        `db:"unit" json:"unit"`
	Quantity  int64         `db:"quantity" json:"quantity"`
	Threshold int64         `db:"threshold" json:"threshold"`
	Category  StockCategory `db:"category" json:"category"`
}

// Low reports whether the item has fallen to or below its alert threshold.
func (s StockItem) Low() bool {
	return s.Quantity <= s.Threshold
}

// NewID returns a fresh random identifier for stock items, expenses and line keys.
func NewID() string {
	return uuid.NewString()
}
