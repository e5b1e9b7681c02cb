// Package orders owns the order collection: placement, edits, the status and
// payment state machines and deletion.
package orders

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"printbazar/m/domain"
	"printbazar/m/internal/pricing"
)

// StockDeductor takes raw material out of inventory when an order is placed.
type StockDeductor interface {
	DeductCategory(category domain.StockCategory, n int64) int
}

// Confirmer gates destructive operations.
type Confirmer interface {
	Confirm(order domain.Order) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(order domain.Order) bool

func (f ConfirmFunc) Confirm(order domain.Order) bool { return f(order) }

// Always confirms every request.
var Always = ConfirmFunc(func(domain.Order) bool { return true })

type Customer struct {
	Name  string
	Phone string
}

type PlaceInput struct {
	Customer Customer
	Lines    []domain.LineItem
	Urgent   bool
	Method   domain.PaymentMethod
}

// Patch is a partial order edit. Totals are not editable; they follow the
// items and the urgency flag.
type Patch struct {
	CustomerName  *string
	CustomerPhone *string
	Items         []domain.LineItem
	Urgent        *bool
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	PaymentMethod *domain.PaymentMethod
}

type Manager struct {
	calc   pricing.Calculator
	stock  StockDeductor
	orders []domain.Order
	byID   map[string]int

	Now   func() time.Time
	NewID func() string
}

// New builds a manager over an existing collection. Orders are kept in
// creation order and their totals are re-derived from the items; stock may be nil.
func New(calc pricing.Calculator, stock StockDeductor, existing []domain.Order) *Manager {
	m := &Manager{
		calc:  calc,
		stock: stock,
		byID:  make(map[string]int, len(existing)),
		Now:   time.Now,
		NewID: newOrderID,
	}
	for _, o := range existing {
		if _, dup := m.byID[o.ID]; dup || o.ID == "" {
			log.Printf("orders: skipping duplicate or blank id %q", o.ID)
			continue
		}
		o = o.Clone()
		for j := range o.Items {
			pricing.Reprice(&o.Items[j])
		}
		o.Totals = calc.Totals(o.Items, o.Urgent)
		m.byID[o.ID] = len(m.orders)
		m.orders = append(m.orders, o)
	}
	return m
}

func newOrderID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + raw[:10]
}

func (m *Manager) freshID() string {
	for {
		id := m.NewID()
		if _, taken := m.byID[id]; !taken {
			return id
		}
	}
}

func (m *Manager) reindex() {
	m.byID = make(map[string]int, len(m.orders))
	for i, o := range m.orders {
		m.byID[o.ID] = i
	}
}

func validateLines(lines []domain.LineItem) ([]domain.LineItem, error) {
	if len(lines) == 0 {
		return nil, invalid(ErrEmptyOrder, "items")
	}
	out := domain.CloneLines(lines)
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, invalid(err, "items")
		}
		pricing.Reprice(&out[i])
	}
	return out, nil
}

// Place prices the lines, assigns a fresh id and appends the order. Every
// Paper stock item loses one unit.
func (m *Manager) Place(in PlaceInput) (domain.Order, error) {
	name := strings.TrimSpace(in.Customer.Name)
	if name == "" {
		return domain.Order{}, invalid(ErrCustomerName, "customer_name")
	}
	lines, err := validateLines(in.Lines)
	if err != nil {
		return domain.Order{}, err
	}
	method := in.Method
	if !method.Valid() {
		method = domain.MethodCash
	}

	o := domain.Order{
		ID:            m.freshID(),
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(in.Customer.Phone),
		Items:         lines,
		Urgent:        in.Urgent,
		Totals:        m.calc.Totals(lines, in.Urgent),
		Status:        domain.StatusReceived,
		CreatedAt:     m.Now(),
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: method,
	}
	m.byID[o.ID] = len(m.orders)
	m.orders = append(m.orders, o)

	if m.stock != nil {
		n := m.stock.DeductCategory(domain.StockPaper, 1)
		log.Printf("orders: placed %s total=%s, deducted paper from %d items", o.ID, o.Total, n)
	}
	return o.Clone(), nil
}

// Update merges patch into the order. Status may be set to any valid value
// here; use Transition for the guarded state machine.
func (m *Manager) Update(id string, patch Patch) (domain.Order, error) {
	i, ok := m.byID[id]
	if !ok {
		return domain.Order{}, notFound(id)
	}
	o := m.orders[i].Clone()

	if patch.CustomerName != nil {
		name := strings.TrimSpace(*patch.CustomerName)
		if name == "" {
			return domain.Order{}, invalid(ErrCustomerName, "customer_name")
		}
		o.CustomerName = name
	}
	if patch.CustomerPhone != nil {
		o.CustomerPhone = strings.TrimSpace(*patch.CustomerPhone)
	}
	reprice := false
	if patch.Items != nil {
		lines, err := validateLines(patch.Items)
		if err != nil {
			return domain.Order{}, err
		}
		o.Items = lines
		reprice = true
	}
	if patch.Urgent != nil {
		o.Urgent = *patch.Urgent
		reprice = true
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return domain.Order{}, invalid(fmt.Errorf("unknown status %q", *patch.Status), "status")
		}
		o.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		if !patch.PaymentStatus.Valid() {
			return domain.Order{}, invalid(fmt.Errorf("unknown payment status %q", *patch.PaymentStatus), "payment_status")
		}
		o.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaymentMethod != nil {
		if !patch.PaymentMethod.Valid() {
			return domain.Order{}, invalid(fmt.Errorf("unknown payment method %q", *patch.PaymentMethod), "payment_method")
		}
		o.PaymentMethod = *patch.PaymentMethod
	}
	if reprice {
		o.Totals = m.calc.Totals(o.Items, o.Urgent)
	}

	m.orders[i] = o
	return o.Clone(), nil
}

// Transition moves the order along Received -> Printing -> Delivered, or to
// Cancelled from any non-terminal status.
func (m *Manager) Transition(id string, next domain.OrderStatus) (domain.Order, error) {
	i, ok := m.byID[id]
	if !ok {
		return domain.Order{}, notFound(id)
	}
	cur := m.orders[i].Status
	if !cur.CanTransition(next) {
		return domain.Order{}, invalid(fmt.Errorf("%w: %s to %s", ErrBadTransition, cur, next), "status")
	}
	m.orders[i].Status = next
	return m.orders[i].Clone(), nil
}

// Advance is the quick toggle. A received order starts printing; a printing
// order can only be completed by recording its payment.
func (m *Manager) Advance(id string) (domain.Order, error) {
	i, ok := m.byID[id]
	if !ok {
		return domain.Order{}, notFound(id)
	}
	switch m.orders[i].Status {
	case domain.StatusReceived:
		return m.Transition(id, domain.StatusPrinting)
	case domain.StatusPrinting:
		return domain.Order{}, invalid(ErrPaymentRequired, "payment_status")
	}
	return domain.Order{}, invalid(fmt.Errorf("%w: %s is final", ErrBadTransition, m.orders[i].Status), "status")
}

func (m *Manager) Cancel(id string) (domain.Order, error) {
	return m.Transition(id, domain.StatusCancelled)
}

// RecordPayment sets the payment axis. Paid derives the method from the
// split and completes the order; Pending clears any split; Partial keeps the
// split and leaves the status alone.
func (m *Manager) RecordPayment(id string, status domain.PaymentStatus, cash, online domain.Money) (domain.Order, error) {
	i, ok := m.byID[id]
	if !ok {
		return domain.Order{}, notFound(id)
	}
	if !status.Valid() {
		return domain.Order{}, invalid(fmt.Errorf("unknown payment status %q", status), "status")
	}
	if cash.IsNegative() || online.IsNegative() {
		return domain.Order{}, invalid(ErrNegativeAmount, "cash")
	}

	o := &m.orders[i]
	switch status {
	case domain.PaymentPaid:
		switch {
		case cash.IsPositive() && online.IsPositive():
			o.PaymentMethod = domain.MethodSplit
		case online.IsPositive():
			o.PaymentMethod = domain.MethodOnline
		default:
			o.PaymentMethod = domain.MethodCash
		}
		o.PaymentSplit = &domain.PaymentSplit{Cash: cash, Online: online}
		o.Status = domain.StatusDelivered
	case domain.PaymentPartial:
		o.PaymentSplit = &domain.PaymentSplit{Cash: cash, Online: online}
	case domain.PaymentPending:
		o.PaymentSplit = nil
	}
	o.PaymentStatus = status
	log.Printf("orders: payment %s on %s (%s)", status, id, o.PaymentMethod)
	return o.Clone(), nil
}

// Delete removes the order permanently once confirm agrees.
func (m *Manager) Delete(id string, confirm Confirmer) error {
	i, ok := m.byID[id]
	if !ok {
		return notFound(id)
	}
	if confirm == nil || !confirm.Confirm(m.orders[i].Clone()) {
		return invalid(ErrNotConfirmed, "confirm")
	}
	m.orders = append(m.orders[:i], m.orders[i+1:]...)
	m.reindex()
	log.Printf("orders: deleted %s", id)
	return nil
}

func (m *Manager) Get(id string) (domain.Order, error) {
	i, ok := m.byID[id]
	if !ok {
		return domain.Order{}, notFound(id)
	}
	return m.orders[i].Clone(), nil
}

// List returns deep copies in creation order.
func (m *Manager) List() []domain.Order {
	out := make([]domain.Order, len(m.orders))
	for i, o := range m.orders {
		out[i] = o.Clone()
	}
	return out
}

func (m *Manager) Len() int { return len(m.orders) }
