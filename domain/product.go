package domain

// CustomPrintCategory marks the catalog entry that backs uploaded print jobs.
// It is hidden from the storefront grid.
const CustomPrintCategory = "Custom Print"

type Product struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
	Price       Money  `db:"price" json:"price"`
	Cost        Money  `db:"cost" json:"cost"`
	Quantity    int64  `db:"quantity" json:"quantity"`
	InStock     bool   `db:"in_stock" json:"in_stock"`
	Image       string `db:"image" json:"image"`
}
