package orders

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printbazar/m/domain"
	"printbazar/m/internal/apperr"
	"printbazar/m/internal/pricing"
)

type stubStock struct {
	calls []domain.StockCategory
}

func (s *stubStock) DeductCategory(category domain.StockCategory, n int64) int {
	s.calls = append(s.calls, category)
	return 1
}

func newManager(t *testing.T) (*Manager, *stubStock) {
	t.Helper()
	stock := &stubStock{}
	m := New(pricing.New(pricing.DefaultUrgentFee), stock, nil)
	seq := 0
	m.NewID = func() string {
		seq++
		return fmt.Sprintf("ORD-%05d", seq)
	}
	m.Now = func() time.Time { return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC) }
	return m, stock
}

func beeAndSpiral() []domain.LineItem {
	bee := domain.CatalogLine(domain.Product{ID: "pf-bee", Name: "BEE Practical File", Category: "Practical Files",
		Price: domain.Rupees(150), Cost: domain.Rupees(80)}, 1)
	spiral := domain.CatalogLine(domain.Product{ID: "bind-spiral", Name: "Spiral Binding", Category: "Binding",
		Price: domain.Rupees(40), Cost: domain.Rupees(10)}, 1)
	pages := domain.CustomPrintLine("custom-1", domain.Rupees(100), domain.Rupees(25),
		domain.PrintFile{Name: "notes.pdf", PageCount: 50, Mode: domain.PrintBlackWhite, Sides: domain.SidesDouble, Binding: domain.BindingNone})
	return []domain.LineItem{bee, spiral, pages}
}

func place(t *testing.T, m *Manager, urgent bool) domain.Order {
	t.Helper()
	o, err := m.Place(PlaceInput{
		Customer: Customer{Name: "Aarav", Phone: "9876543210"},
		Lines:    beeAndSpiral(),
		Urgent:   urgent,
		Method:   domain.MethodUPI,
	})
	require.NoError(t, err)
	return o
}

func TestPlaceUrgentOrder(t *testing.T) {
	m, stock := newManager(t)
	o := place(t, m, true)

	assert.Equal(t, "ORD-00001", o.ID)
	assert.Equal(t, "290", o.Subtotal.String())
	assert.Equal(t, "50", o.UrgentFee.String())
	assert.Equal(t, "340", o.Total.String())
	assert.Equal(t, "115", o.CostTotal.String())
	assert.Equal(t, "225", o.Profit.String())
	assert.Equal(t, domain.StatusReceived, o.Status)
	assert.Equal(t, domain.PaymentPending, o.PaymentStatus)
	assert.Equal(t, domain.MethodUPI, o.PaymentMethod)
	assert.Nil(t, o.PaymentSplit)
	assert.Equal(t, []domain.StockCategory{domain.StockPaper}, stock.calls)
}

func TestPlaceRejectsEmptyOrder(t *testing.T) {
	m, stock := newManager(t)
	_, err := m.Place(PlaceInput{Customer: Customer{Name: "Aarav"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.True(t, apperr.Is(err, apperr.Validation))
	assert.Empty(t, stock.calls)
	assert.Zero(t, m.Len())
}

func TestPlaceRequiresName(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Place(PlaceInput{Customer: Customer{Name: " "}, Lines: beeAndSpiral()})
	assert.ErrorIs(t, err, ErrCustomerName)
}

func TestPlaceIgnoresStaleLineTotals(t *testing.T) {
	m, _ := newManager(t)
	lines := beeAndSpiral()
	lines[0].TotalPrice = domain.Rupees(9999)
	lines[0].Quantity = 2

	o, err := m.Place(PlaceInput{Customer: Customer{Name: "Aarav"}, Lines: lines})
	require.NoError(t, err)
	assert.Equal(t, "300", o.Items[0].TotalPrice.String())
	assert.Equal(t, "440", o.Total.String())
	assert.Equal(t, domain.MethodCash, o.PaymentMethod)
}

func TestOrderIsASnapshot(t *testing.T) {
	m, _ := newManager(t)
	lines := beeAndSpiral()
	o, err := m.Place(PlaceInput{Customer: Customer{Name: "Aarav"}, Lines: lines})
	require.NoError(t, err)

	lines[2].File.PageCount = 1
	o.Items[0].Quantity = 7

	stored, err := m.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Items[2].File.PageCount)
	assert.EqualValues(t, 1, stored.Items[0].Quantity)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	m, _ := newManager(t)
	o := place(t, m, true)

	urgent := false
	got, err := m.Update(o.ID, Patch{Urgent: &urgent})
	require.NoError(t, err)
	assert.Equal(t, "290", got.Total.String())
	assert.Equal(t, "0", got.UrgentFee.String())

	items := got.Items[:1]
	items[0].Quantity = 3
	got, err = m.Update(o.ID, Patch{Items: items})
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, "450", got.Subtotal.String())
	assert.Equal(t, "240", got.CostTotal.String())
	assert.Equal(t, "210", got.Profit.String())

	_, err = m.Update(o.ID, Patch{Items: []domain.LineItem{}})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestUpdateSetsStatusFreely(t *testing.T) {
	m, _ := newManager(t)
	o := place(t, m, false)
	_, err := m.Cancel(o.ID)
	require.NoError(t, err)

	received := domain.StatusReceived
	got, err := m.Update(o.ID, Patch{Status: &received})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, got.Status)

	bogus := domain.OrderStatus("Lost")
	_, err = m.Update(o.ID, Patch{Status: &bogus})
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestTransitions(t *testing.T) {
	m, _ := newManager(t)
	o := place(t, m, false)

	_, err := m.Transition(o.ID, domain.StatusDelivered)
	assert.ErrorIs(t, err, ErrBadTransition)

	got, err := m.Advance(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrinting, got.Status)

	_, err = m.Advance(o.ID)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	got, err = m.Cancel(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)

	_, err = m.Cancel(o.ID)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestRecordPayment(t *testing.T) {
	tests := []struct {
		name   string
		cash   int64
		online int64
		method domain.PaymentMethod
	}{
		{"all cash", 100, 0, domain.MethodCash},
		{"all online", 0, 100, domain.MethodOnline},
		{"split", 60, 40, domain.MethodSplit},
		{"nothing entered", 0, 0, domain.MethodCash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t)
			o := place(t, m, false)

			got, err := m.RecordPayment(o.ID, domain.PaymentPaid, domain.Rupees(tt.cash), domain.Rupees(tt.online))
			require.NoError(t, err)
			assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
			assert.Equal(t, tt.method, got.PaymentMethod)
			assert.Equal(t, domain.StatusDelivered, got.Status)
			require.NotNil(t, got.PaymentSplit)
			assert.Equal(t, fmt.Sprint(tt.cash), got.PaymentSplit.Cash.String())
			assert.Equal(t, fmt.Sprint(tt.online), got.PaymentSplit.Online.String())
		})
	}
}

func TestPaidBackToPending(t *testing.T) {
	m, _ := newManager(t)
	o := place(t, m, false)
	_, err := m.RecordPayment(o.ID, domain.PaymentPaid, domain.Rupees(60), domain.Rupees(40))
	require.NoError(t, err)

	got, err := m.RecordPayment(o.ID, domain.PaymentPending, domain.Zero, domain.Zero)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.PaymentStatus)
	assert.Nil(t, got.PaymentSplit)
	assert.Equal(t, domain.StatusDelivered, got.Status)

	got, err = m.RecordPayment(o.ID, domain.PaymentPartial, domain.Rupees(20), domain.Zero)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, got.PaymentStatus)
	assert.Equal(t, "20", got.PaymentSplit.Cash.String())

	_, err = m.RecordPayment(o.ID, domain.PaymentPaid, domain.Rupees(-1), domain.Zero)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestDelete(t *testing.T) {
	m, _ := newManager(t)
	first := place(t, m, false)
	second := place(t, m, false)

	err := m.Delete(first.ID, ConfirmFunc(func(domain.Order) bool { return false }))
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Delete(first.ID, Always))
	assert.Equal(t, 1, m.Len())

	_, err = m.Get(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := m.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	m, _ := newManager(t)
	checks := map[string]error{
		"update":  func() error { _, err := m.Update("nope", Patch{}); return err }(),
		"advance": func() error { _, err := m.Advance("nope"); return err }(),
		"payment": func() error { _, err := m.RecordPayment("nope", domain.PaymentPaid, domain.Zero, domain.Zero); return err }(),
		"delete":  m.Delete("nope", Always),
	}
	for name, err := range checks {
		assert.True(t, errors.Is(err, ErrNotFound), name)
		assert.True(t, apperr.Is(err, apperr.NotFound), name)
	}
}

func TestNewSkipsDuplicateIDs(t *testing.T) {
	existing := []domain.Order{{ID: "A", CustomerName: "x"}, {ID: "A", CustomerName: "y"}, {ID: "B"}}
	m := New(pricing.New(pricing.DefaultUrgentFee), nil, existing)
	assert.Equal(t, 2, m.Len())
	got, err := m.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "x", got.CustomerName)
}

func TestNewRederivesStoredTotals(t *testing.T) {
	items := beeAndSpiral()
	items[0].TotalPrice = domain.Rupees(1)
	existing := []domain.Order{{
		ID:           "A",
		CustomerName: "x",
		Items:        items,
		Urgent:       true,
		Totals:       domain.Totals{Total: domain.Rupees(999), CostTotal: domain.Rupees(1), Profit: domain.Rupees(5)},
	}}
	m := New(pricing.New(pricing.DefaultUrgentFee), nil, existing)

	got, err := m.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "290", got.Subtotal.String())
	assert.Equal(t, "340", got.Total.String())
	assert.Equal(t, "115", got.CostTotal.String())
	assert.Equal(t, got.Total.Sub(got.CostTotal).String(), got.Profit.String())
	assert.Equal(t, "150", got.Items[0].TotalPrice.String())
	assert.Equal(t, "999", existing[0].Total.String())
}

func TestGeneratedIDs(t *testing.T) {
	id := newOrderID()
	assert.Regexp(t, `^ORD-[0-9A-F]{10}$`, id)
}
