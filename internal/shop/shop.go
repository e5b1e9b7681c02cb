// Package shop is the application state of the print shop: one session, one
// cart, the print job being configured, orders, stock, expenses and the
// catalog. Every mutation is written through to the record store.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"printbazar/m/domain"
	"printbazar/m/internal/apperr"
	"printbazar/m/internal/cart"
	"printbazar/m/internal/inventory"
	"printbazar/m/internal/notify"
	"printbazar/m/internal/orders"
	"printbazar/m/internal/pricing"
	"printbazar/m/internal/printjob"
	"printbazar/m/internal/report"
	"printbazar/m/internal/storage"
	"printbazar/m/internal/store"
)

// Defaults is the state used for records that are missing or unreadable.
type Defaults struct {
	Products   []domain.Product
	Stock      []domain.StockItem
	Expenses   []domain.Expense
	Categories []string
}

type Deps struct {
	Store         *store.Store
	Files         storage.Storage
	Counter       printjob.PageCounter
	Reporter      *report.Reporter
	WhatsApp      notify.WhatsApp
	Calculator    pricing.Calculator
	Rates         pricing.RateCard
	CheckoutDelay time.Duration
	Defaults      Defaults
	Now           func() time.Time
}

type Shop struct {
	mu   sync.Mutex
	deps Deps
	now  func() time.Time

	session    *domain.Session
	cart       *cart.Cart
	job        *printjob.Configurator
	orders     *orders.Manager
	stock      *inventory.Stock
	ledger     *inventory.Ledger
	products   []domain.Product
	categories *domain.CategorySet

	checkoutGen uint64
}

// Open restores the shop from deps.Store. Records that are missing or
// corrupt fall back to deps.Defaults and are written back.
func Open(ctx context.Context, deps Deps) (*Shop, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	if deps.Counter == nil {
		return nil, errors.New("shop: page counter is required")
	}
	s := &Shop{deps: deps, now: now}
	s.job = printjob.New(deps.Counter, deps.Rates)

	var dirty []store.Key
	track := func(key store.Key, reset bool) {
		if reset {
			dirty = append(dirty, key)
		}
	}

	session, reset, err := load(ctx, deps.Store, store.KeySession, func() *domain.Session { return nil })
	if err != nil {
		return nil, err
	}
	s.session = session
	track(store.KeySession, reset)

	c, reset, err := load(ctx, deps.Store, store.KeyCart, func() *cart.Cart { return cart.New() })
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.New()
	}
	s.cart = c
	track(store.KeyCart, reset)

	stockItems, reset, err := load(ctx, deps.Store, store.KeyStock, func() []domain.StockItem { return deps.Defaults.Stock })
	if err != nil {
		return nil, err
	}
	s.stock = inventory.NewStock(stockItems)
	track(store.KeyStock, reset)

	existing, reset, err := load(ctx, deps.Store, store.KeyOrders, func() []domain.Order { return nil })
	if err != nil {
		return nil, err
	}
	s.orders = orders.New(deps.Calculator, s.stock, existing)
	s.orders.Now = now
	track(store.KeyOrders, reset)

	expenses, reset, err := load(ctx, deps.Store, store.KeyExpenses, func() []domain.Expense { return deps.Defaults.Expenses })
	if err != nil {
		return nil, err
	}
	s.ledger = inventory.NewLedger(expenses)
	track(store.KeyExpenses, reset)

	products, reset, err := load(ctx, deps.Store, store.KeyProducts, func() []domain.Product { return deps.Defaults.Products })
	if err != nil {
		return nil, err
	}
	s.products = append([]domain.Product(nil), products...)
	track(store.KeyProducts, reset)

	categories, reset, err := load(ctx, deps.Store, store.KeyCategories, func() *domain.CategorySet {
		return defaultCategories(deps.Defaults)
	})
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = defaultCategories(deps.Defaults)
	}
	s.categories = categories
	track(store.KeyCategories, reset)

	if len(dirty) > 0 {
		if err := s.persistLocked(ctx, dirty...); err != nil {
			return nil, err
		}
		log.Printf("shop: initialised records %v from defaults", dirty)
	}
	return s, nil
}

func defaultCategories(d Defaults) *domain.CategorySet {
	set := domain.NewCategorySet(d.Categories...)
	for _, p := range d.Products {
		if p.Category != domain.CustomPrintCategory {
			set.Add(p.Category)
		}
	}
	return set
}

// load reads one record. The bool is true when def was used and the record
// needs writing back.
func load[T any](ctx context.Context, st *store.Store, key store.Key, def func() T) (T, bool, error) {
	if st == nil {
		return def(), false, nil
	}
	var v T
	found, err := st.Load(ctx, key, &v)
	switch {
	case apperr.Is(err, apperr.CorruptState):
		log.Printf("shop: %v; resetting to defaults", err)
		return def(), true, nil
	case err != nil:
		return v, false, err
	case !found:
		return def(), true, nil
	}
	return v, false, nil
}

func (s *Shop) record(key store.Key) any {
	switch key {
	case store.KeySession:
		return s.session
	case store.KeyCart:
		return s.cart
	case store.KeyOrders:
		return s.orders.List()
	case store.KeyStock:
		return s.stock.Items()
	case store.KeyExpenses:
		return s.ledger.List()
	case store.KeyProducts:
		return s.products
	case store.KeyCategories:
		return s.categories
	}
	return nil
}

// persistLocked writes the given records. Callers hold s.mu.
func (s *Shop) persistLocked(ctx context.Context, keys ...store.Key) error {
	if s.deps.Store == nil {
		return nil
	}
	records := make(map[store.Key]any, len(keys))
	for _, k := range keys {
		records[k] = s.record(k)
	}
	if err := s.deps.Store.SaveAll(ctx, records); err != nil {
		log.Printf("shop: persist %v failed: %v", keys, err)
		return apperr.Wrap(fmt.Errorf("persist: %w", err))
	}
	return nil
}

func invalid(err error, field string) error {
	var fields map[string]string
	if field != "" {
		fields = map[string]string{field: err.Error()}
	}
	return &apperr.AppError{Kind: apperr.Validation, PublicMsg: err.Error(), Fields: fields, Err: err}
}

func notFound(err error) error {
	return apperr.NotFoundErr(err.Error(), err)
}

var (
	ErrCustomerName  = errors.New("name is required")
	ErrCustomerPhone = errors.New("phone number must have at least 10 digits")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrProduct       = errors.New("product not found")
	ErrOutOfStock    = errors.New("product is out of stock")
	ErrLineNotFound  = errors.New("cart line not found")
	ErrCheckoutStale = errors.New("cart changed during checkout")
	ErrCategory      = errors.New("category name is required")
	ErrItemName      = errors.New("item name is required")
)

func validPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if len(phone) < 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
