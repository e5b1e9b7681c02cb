package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printbazar/m/domain"
	"printbazar/m/internal/pricing"
)

func pen() domain.Product {
	return domain.Product{ID: "st-pen-blue", Name: "Ball Point Pen (Blue)", Category: "Stationery",
		Price: domain.Rupees(10), Cost: domain.Rupees(4), Quantity: 100, InStock: true}
}

func printLine(key string) domain.LineItem {
	return domain.CustomPrintLine(key, domain.Rupees(140), domain.Rupees(35), domain.PrintFile{
		Name: "notes.pdf", Ref: "ref-" + key, PageCount: 50,
		Mode: domain.PrintBlackWhite, Sides: domain.SidesDouble, Binding: domain.BindingSpiral,
	})
}

func assertLineTotals(t *testing.T, c *Cart) {
	t.Helper()
	for _, l := range c.Lines() {
		assert.True(t, l.TotalPrice.Equal(pricing.LineTotal(l)), "line %s total %s", l.Key, l.TotalPrice)
	}
}

func TestAddOrIncrementMergesCatalogItems(t *testing.T) {
	c := New()
	_, err := c.AddOrIncrement(domain.CatalogLine(pen(), 7))
	require.NoError(t, err)
	line, err := c.AddOrIncrement(domain.CatalogLine(pen(), 1))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.EqualValues(t, 2, line.Quantity)
	assert.Equal(t, "20", line.TotalPrice.String())
	assertLineTotals(t, c)
}

func TestCustomLinesNeverMerge(t *testing.T) {
	c := New()
	_, err := c.AddOrIncrement(printLine("custom-a"))
	require.NoError(t, err)
	_, err = c.AddOrIncrement(printLine("custom-b"))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "280", c.Subtotal().String())
}

func TestAddRejectsInvalidVariant(t *testing.T) {
	c := New()
	bad := printLine("custom-a")
	bad.File.PageCount = 0
	_, err := c.AddOrIncrement(bad)
	assert.ErrorIs(t, err, domain.ErrLineVariant)
	assert.True(t, c.Empty())
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	_, _ = c.AddOrIncrement(domain.CatalogLine(pen(), 1))

	assert.True(t, c.UpdateQuantity("st-pen-blue", 4))
	assert.EqualValues(t, 5, c.Lines()[0].Quantity)
	assert.Equal(t, "50", c.Lines()[0].TotalPrice.String())

	assert.True(t, c.UpdateQuantity("st-pen-blue", -10))
	assert.EqualValues(t, 1, c.Lines()[0].Quantity)
	assertLineTotals(t, c)

	gen := c.Generation()
	assert.False(t, c.UpdateQuantity("missing", 1))
	assert.Equal(t, gen, c.Generation())
}

func TestDecrementBelowOneRemoves(t *testing.T) {
	c := New()
	_, _ = c.AddOrIncrement(domain.CatalogLine(pen(), 1))
	_, _ = c.AddOrIncrement(domain.CatalogLine(pen(), 1))

	assert.True(t, c.Decrement("st-pen-blue"))
	require.Equal(t, 1, c.Len())
	assert.EqualValues(t, 1, c.Lines()[0].Quantity)

	assert.True(t, c.Decrement("st-pen-blue"))
	assert.True(t, c.Empty())
	assert.False(t, c.Decrement("st-pen-blue"))
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	_, _ = c.AddOrIncrement(domain.CatalogLine(pen(), 1))
	_, _ = c.AddOrIncrement(printLine("custom-a"))

	assert.False(t, c.Remove("nope"))
	assert.True(t, c.Remove("st-pen-blue"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.True(t, c.Empty())
	assert.True(t, c.Subtotal().IsZero())
}

func TestLinesAreCopies(t *testing.T) {
	c := New()
	_, _ = c.AddOrIncrement(printLine("custom-a"))
	lines := c.Lines()
	lines[0].Quantity = 99
	lines[0].File.PageCount = 1

	got := c.Lines()[0]
	assert.EqualValues(t, 1, got.Quantity)
	assert.Equal(t, 50, got.File.PageCount)
}

func TestJSONRestoreRecomputesTotals(t *testing.T) {
	stale := domain.CatalogLine(pen(), 3)
	stale.TotalPrice = domain.Rupees(999)
	dup := stale
	raw, err := json.Marshal([]domain.LineItem{stale, dup})
	require.NoError(t, err)

	var c Cart
	require.NoError(t, json.Unmarshal(raw, &c))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "30", c.Lines()[0].TotalPrice.String())

	out, err := json.Marshal(New())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
}
