package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printbazar/m/domain"
)

func sampleStock() *Stock {
	return NewStock([]domain.StockItem{
		{ID: "s1", Name: "A4 JK Copier 75GSM", Unit: "Ream (500)", Quantity: 8, Threshold: 10, Category: domain.StockPaper},
		{ID: "s2", Name: "A4 Double A 80GSM", Unit: "Ream (500)", Quantity: 20, Threshold: 5, Category: domain.StockPaper},
		{ID: "s3", Name: "A3 Bond Paper", Unit: "Pack (250)", Quantity: 0, Threshold: 3, Category: domain.StockPaper},
		{ID: "s6", Name: "HP 12A Black Toner", Unit: "Cartridge", Quantity: 1, Threshold: 2, Category: domain.StockInk},
		{ID: "s9", Name: "Spiral Coils 6mm", Unit: "Box (100)", Quantity: 5, Threshold: 2, Category: domain.StockBinding},
	})
}

func names(items []domain.StockItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestDeductCategoryClampsAtZero(t *testing.T) {
	s := sampleStock()
	assert.Equal(t, 3, s.DeductCategory(domain.StockPaper, 1))

	got := map[string]int64{}
	for _, it := range s.Items() {
		got[it.ID] = it.Quantity
	}
	assert.Equal(t, map[string]int64{"s1": 7, "s2": 19, "s3": 0, "s6": 1, "s9": 5}, got)
}

func TestAdjust(t *testing.T) {
	s := sampleStock()
	it, err := s.Adjust("s9", -10)
	require.NoError(t, err)
	assert.Zero(t, it.Quantity)

	it, err = s.Adjust("s9", 4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, it.Quantity)

	_, err = s.Adjust("missing", 1)
	assert.ErrorIs(t, err, ErrStockNotFound)
}

func TestLowStockRecomputedAfterDelete(t *testing.T) {
	s := sampleStock()
	assert.Equal(t, []string{"A4 JK Copier 75GSM", "A3 Bond Paper", "HP 12A Black Toner"}, names(s.LowStock()))

	require.NoError(t, s.Delete("s1"))
	assert.Equal(t, []string{"A3 Bond Paper", "HP 12A Black Toner"}, names(s.LowStock()))

	_, err := s.Adjust("s6", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"A3 Bond Paper"}, names(s.LowStock()))

	assert.ErrorIs(t, s.Delete("s1"), ErrStockNotFound)
}

func TestAddAndUpdate(t *testing.T) {
	s := sampleStock()
	_, err := s.Add(domain.StockItem{Name: "  ", Category: domain.StockInk})
	assert.ErrorIs(t, err, ErrStockName)
	_, err = s.Add(domain.StockItem{Name: "Glitter", Category: "Sparkle"})
	assert.ErrorIs(t, err, ErrStockCategory)

	added, err := s.Add(domain.StockItem{Name: "Lamination Pouch A4", Quantity: -3, Threshold: 5, Category: domain.StockLamination})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Unit", added.Unit)
	assert.Zero(t, added.Quantity)
	assert.Equal(t, added.ID, s.Items()[0].ID)

	qty := int64(40)
	cat := domain.StockCover
	updated, err := s.Update(added.ID, StockPatch{Quantity: &qty, Category: &cat})
	require.NoError(t, err)
	assert.EqualValues(t, 40, updated.Quantity)
	assert.Equal(t, domain.StockCover, updated.Category)
	assert.False(t, updated.Low())
}

func TestFilter(t *testing.T) {
	s := sampleStock()
	assert.Len(t, s.Filter("All", ""), 5)
	assert.Equal(t, []string{"HP 12A Black Toner"}, names(s.Filter("Ink", "")))
	assert.Equal(t, []string{"A4 JK Copier 75GSM", "A4 Double A 80GSM"}, names(s.Filter("Paper", "a4")))
}

func TestLedger(t *testing.T) {
	l := NewLedger(nil)
	_, err := l.Add(domain.Expense{Title: "Shop Rent", Amount: domain.Rupees(15000), Category: domain.ExpenseRent,
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = l.Add(domain.Expense{Title: "Printer Service", Amount: domain.Rupees(1200), Category: domain.ExpenseRepairs,
		Date: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	_, err = l.Add(domain.Expense{Title: "Tea", Amount: domain.Zero, Category: domain.ExpenseOther})
	assert.ErrorIs(t, err, ErrExpenseAmount)
	_, err = l.Add(domain.Expense{Title: "Tea", Amount: domain.Rupees(1), Category: "Snacks"})
	assert.ErrorIs(t, err, ErrExpenseCategory)

	assert.Equal(t, "16200", l.Total().String())
	assert.Equal(t, "Printer Service", l.List()[0].Title)
}
