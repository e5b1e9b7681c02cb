package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printbazar/m/domain"
)

// LoadProducts reads the catalog CSV. A missing or unreadable file yields an
// empty catalog and a log line.
func LoadProducts(csvPath string) []domain.Product {
	var out []domain.Product
	load(csvPath, "product", func(r io.Reader) (int, error) {
		var err error
		out, err = ReadProducts(r)
		return len(out), err
	})
	return out
}

func LoadStock(csvPath string) []domain.StockItem {
	var out []domain.StockItem
	load(csvPath, "stock", func(r io.Reader) (int, error) {
		var err error
		out, err = ReadStock(r)
		return len(out), err
	})
	return out
}

func LoadExpenses(csvPath string) []domain.Expense {
	var out []domain.Expense
	load(csvPath, "expense", func(r io.Reader) (int, error) {
		var err error
		out, err = ReadExpenses(r)
		return len(out), err
	})
	return out
}

func load(csvPath, what string, read func(io.Reader) (int, error)) {
	if csvPath == "" {
		return
	}
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load %s seed %s: %v", what, csvPath, err)
		return
	}
	defer file.Close()

	rows, err := read(file)
	if err != nil {
		log.Printf("unable to read %s seed: %v", what, err)
		return
	}
	log.Printf("loaded %s seed with %d rows", what, rows)
}

// each skips the header and calls fn for every row. Rows that fn rejects are
// logged and skipped.
func each(r io.Reader, what string, minFields int, fn func(record []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read %s header: %w", what, err)
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.Printf("unable to read %s row: %v", what, err)
			continue
		}
		if len(record) < minFields {
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if err := fn(record); err != nil {
			log.Printf("skipping %s row %q: %v", what, record[0], err)
		}
	}
}

func ReadProducts(r io.Reader) ([]domain.Product, error) {
	var out []domain.Product
	err := each(r, "product", 9, func(rec []string) error {
		price, err := decimal.NewFromString(rec[4])
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		cost, err := decimal.NewFromString(rec[5])
		if err != nil {
			return fmt.Errorf("cost: %w", err)
		}
		qty, err := strconv.ParseInt(rec[6], 10, 64)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		inStock, err := strconv.ParseBool(rec[7])
		if err != nil {
			return fmt.Errorf("in_stock: %w", err)
		}
		if rec[0] == "" || rec[1] == "" {
			return errors.New("id and name are required")
		}
		out = append(out, domain.Product{
			ID: rec[0], Name: rec[1], Category: rec[2], Description: rec[3],
			Price: price, Cost: cost, Quantity: qty, InStock: inStock, Image: rec[8],
		})
		return nil
	})
	return out, err
}

func ReadStock(r io.Reader) ([]domain.StockItem, error) {
	var out []domain.StockItem
	err := each(r, "stock", 6, func(rec []string) error {
		qty, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		threshold, err := strconv.ParseInt(rec[4], 10, 64)
		if err != nil {
			return fmt.Errorf("threshold: %w", err)
		}
		category := domain.StockCategory(rec[5])
		if !category.Valid() {
			return fmt.Errorf("unknown category %q", rec[5])
		}
		out = append(out, domain.StockItem{
			ID: rec[0], Name: rec[1], Unit: rec[2], Quantity: qty, Threshold: threshold, Category: category,
		})
		return nil
	})
	return out, err
}

func ReadExpenses(r io.Reader) ([]domain.Expense, error) {
	var out []domain.Expense
	err := each(r, "expense", 5, func(rec []string) error {
		amount, err := decimal.NewFromString(rec[2])
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		category := domain.ExpenseCategory(rec[3])
		if !category.Valid() {
			return fmt.Errorf("unknown category %q", rec[3])
		}
		date, err := time.ParseInLocation("2006-01-02", rec[4], time.Local)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		out = append(out, domain.Expense{ID: rec[0], Title: rec[1], Amount: amount, Category: category, Date: date})
		return nil
	})
	return out, err
}
