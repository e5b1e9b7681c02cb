package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"printbazar/m/internal/api"
	"printbazar/m/internal/config"
	"printbazar/m/internal/database"
	"printbazar/m/internal/migrations"
	"printbazar/m/internal/notify"
	"printbazar/m/internal/pricing"
	"printbazar/m/internal/printjob"
	"printbazar/m/internal/report"
	"printbazar/m/internal/seed"
	"printbazar/m/internal/shop"
	"printbazar/m/internal/storage"
	"printbazar/m/internal/store"
)

func main() {
	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	cfg := config.Load()
	db := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	files, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	log.Printf("file storage: %s", files.Driver)

	var gen report.Generator
	if g, err := report.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Printf("AI reports disabled: %v", err)
	} else {
		gen = g
	}

	s, err := shop.Open(ctx, shop.Deps{
		Store:         store.New(db),
		Files:         files.Storage,
		Counter:       printjob.Delayed{Counter: printjob.PDFCounter{Files: files.Storage}, Delay: cfg.PageCountDelay},
		Reporter:      report.New(gen),
		WhatsApp:      notify.NewWhatsApp(cfg.WhatsAppCountryCode),
		Calculator:    pricing.New(cfg.UrgentFee),
		Rates:         pricing.DefaultRateCard(),
		CheckoutDelay: cfg.CheckoutDelay,
		Defaults: shop.Defaults{
			Products: seed.LoadProducts(cfg.ProductsCSV),
			Stock:    seed.LoadStock(cfg.StockCSV),
			Expenses: seed.LoadExpenses(cfg.ExpensesCSV),
		},
	})
	if err != nil {
		log.Fatalf("open shop: %v", err)
	}

	handler := api.New(s, cfg.Secret, api.Admin{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash})

	log.Printf("PrintBazar server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
