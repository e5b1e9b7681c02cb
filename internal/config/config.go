package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"printbazar/m/internal/storage"
)

// Config holds application configuration values.
type Config struct {
	Secret      string
	HTTPPort    string
	DBDriver    string
	DatabaseDSN string

	AdminEmail        string
	AdminPasswordHash string

	UrgentFee      decimal.Decimal
	CheckoutDelay  time.Duration
	PageCountDelay time.Duration

	GeminiAPIKey string
	GeminiModel  string

	Storage storage.Config

	WhatsAppCountryCode string
	ProductsCSV         string
	StockCSV            string
	ExpensesCSV         string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	port := envOr("HTTP_PORT", "8080")
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	driver := envOr("DATABASE_DRIVER", "sqlite")
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		if driver == "pgx" {
			dsn = "postgres://postgres@localhost:5432/printbazar?sslmode=disable"
		} else {
			dsn = "printbazar.db"
		}
	}

	urgentFee := decimal.NewFromInt(50)
	if v := os.Getenv("URGENT_FEE"); v != "" {
		fee, err := decimal.NewFromString(v)
		if err != nil || fee.IsNegative() {
			log.Printf("invalid URGENT_FEE value %q, defaulting to 50", v)
		} else {
			urgentFee = fee
		}
	}

	return Config{
		Secret:            secret,
		HTTPPort:          port,
		DBDriver:          driver,
		DatabaseDSN:       dsn,
		AdminEmail:        envOr("ADMIN_EMAIL", "admin@printbazar.in"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		UrgentFee:         urgentFee,
		CheckoutDelay:     durationOr("CHECKOUT_DELAY", 1500*time.Millisecond),
		PageCountDelay:    durationOr("PAGE_COUNT_DELAY", 0),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		Storage: storage.Config{
			Driver:          envOr("STORAGE_DRIVER", "local"),
			LocalDir:        os.Getenv("LOCAL_UPLOAD_DIR"),
			LocalURLPrefix:  os.Getenv("LOCAL_UPLOAD_URL_PREFIX"),
			S3Region:        os.Getenv("S3_REGION"),
			S3Bucket:        os.Getenv("S3_BUCKET"),
			S3Prefix:        os.Getenv("S3_PREFIX"),
			S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		WhatsAppCountryCode: envOr("WHATSAPP_COUNTRY_CODE", "91"),
		ProductsCSV:         envOr("CATALOG_CSV", "assets/products.csv"),
		StockCSV:            envOr("STOCK_CSV", "assets/stock.csv"),
		ExpensesCSV:         envOr("EXPENSES_CSV", "assets/expenses.csv"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationOr(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("invalid %s value %q, defaulting to %s", k, v, def)
		return def
	}
	return d
}
