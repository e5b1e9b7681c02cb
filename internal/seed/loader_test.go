package seed

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printbazar/m/domain"
)

func TestReadProducts(t *testing.T) {
	in := `id,name,category,description,price,cost,quantity,in_stock,image
svc-print-custom,Custom Document Print,Custom Print,"Upload PDF, we print and bind.",2,0.5,9999,true,img
bad-row,Broken,Stationery,,abc,1,1,true,
pf-workshop,Workshop Technology File,Practical Files,Standard file.,110,55,0,false,img
`
	products, err := ReadProducts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Upload PDF, we print and bind.", products[0].Description)
	assert.Equal(t, "0.5", products[0].Cost.String())
	assert.False(t, products[1].InStock)
}

func TestReadStockRejectsUnknownCategory(t *testing.T) {
	in := "id,name,unit,quantity,threshold,category\ns1,A4 JK Copier 75GSM,Ream (500),8,10,Paper\nsx,Mystery,Box,1,1,Gadgets\n"
	items, err := ReadStock(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.StockPaper, items[0].Category)
	assert.True(t, items[0].Low())
}

func TestReadExpenses(t *testing.T) {
	in := "id,title,amount,category,date\ne3,JK Paper Bulk Order,8500,Raw Material,2024-05-10\n"
	expenses, err := ReadExpenses(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, domain.ExpenseRawMaterial, expenses[0].Category)
	assert.Equal(t, 10, expenses[0].Date.Day())
}

func TestBundledAssets(t *testing.T) {
	dir := filepath.Join("..", "..", "assets")
	assert.Len(t, LoadProducts(filepath.Join(dir, "products.csv")), 10)
	assert.Len(t, LoadStock(filepath.Join(dir, "stock.csv")), 14)
	assert.Len(t, LoadExpenses(filepath.Join(dir, "expenses.csv")), 6)
	assert.Empty(t, LoadProducts(filepath.Join(dir, "missing.csv")))
}
