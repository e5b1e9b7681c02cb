package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"printbazar/m/domain"
	"printbazar/m/internal/insights"
	"printbazar/m/internal/inventory"
	"printbazar/m/internal/orders"
	"printbazar/m/internal/shop"
)

type staffItemRequest struct {
	Key       string       `json:"key"`
	ProductID string       `json:"product_id"`
	Name      string       `json:"name" validate:"required_without_all=Key ProductID"`
	Category  string       `json:"category"`
	Price     domain.Money `json:"price"`
	Cost      domain.Money `json:"cost"`
	Quantity  int64        `json:"quantity" validate:"gte=0"`
}

func (it staffItemRequest) toStaffItem() shop.StaffItem {
	return shop.StaffItem{
		Key:       it.Key,
		ProductID: it.ProductID,
		Name:      it.Name,
		Category:  it.Category,
		Price:     it.Price,
		Cost:      it.Cost,
		Quantity:  it.Quantity,
	}
}

func staffItems(in []staffItemRequest) []shop.StaffItem {
	out := make([]shop.StaffItem, 0, len(in))
	for _, it := range in {
		out = append(out, it.toStaffItem())
	}
	return out
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerPhone string             `json:"customer_phone"`
	Urgent        bool               `json:"urgent"`
	Items         []staffItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Totals are derived, so they are not accepted here.
type updateOrderRequest struct {
	CustomerName  *string               `json:"customer_name"`
	CustomerPhone *string               `json:"customer_phone"`
	Urgent        *bool                 `json:"urgent"`
	Status        *domain.OrderStatus   `json:"status"`
	PaymentStatus *domain.PaymentStatus `json:"payment_status"`
	PaymentMethod *domain.PaymentMethod `json:"payment_method"`
	Items         []staffItemRequest    `json:"items" validate:"omitempty,dive"`
}

type transitionRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

type paymentRequest struct {
	Status domain.PaymentStatus `json:"status" validate:"required,oneof=Pending Partial Paid"`
	Cash   domain.Money         `json:"cash"`
	Online domain.Money         `json:"online"`
}

func periodParam(w http.ResponseWriter, r *http.Request) (insights.Period, bool) {
	p, err := insights.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return p, true
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	period, ok := periodParam(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, h.shop.ListOrders(insights.Query{
		Period: period,
		Tab:    insights.Tab(q.Get("tab")),
		Search: q.Get("q"),
	}))
}

func (h *Handler) orderCounts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.shop.TabCounts())
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !h.bind(w, r, &req) {
		return
	}
	order, err := h.shop.CreateOrder(r.Context(), shop.StaffOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Urgent:        req.Urgent,
		Items:         staffItems(req.Items),
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.shop.Order(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if !h.bind(w, r, &req) {
		return
	}
	patch := orders.Patch{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Urgent:        req.Urgent,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
	}
	var items []shop.StaffItem
	if req.Items != nil {
		items = staffItems(req.Items)
	}
	order, err := h.shop.EditOrder(r.Context(), chi.URLParam(r, "id"), patch, items)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.shop.AdvanceOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) transitionOrder(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if !h.bind(w, r, &req) {
		return
	}
	order, err := h.shop.TransitionOrder(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.bind(w, r, &req) {
		return
	}
	order, err := h.shop.RecordPayment(r.Context(), chi.URLParam(r, "id"), req.Status, req.Cash, req.Online)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	confirm := orders.ConfirmFunc(func(domain.Order) bool { return confirmed })
	if err := h.shop.DeleteOrder(r.Context(), chi.URLParam(r, "id"), confirm); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) whatsApp(w http.ResponseWriter, r *http.Request) {
	handoff, err := h.shop.WhatsApp(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, handoff)
}

// Insights

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	period, ok := periodParam(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.shop.Dashboard(period))
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	period, ok := periodParam(w, r)
	if !ok {
		return
	}
	res, err := h.shop.Report(r.Context(), period)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Inventory

type stockRequest struct {
	Name      string               `json:"name" validate:"required"`
	Unit      string               `json:"unit"`
	Quantity  int64                `json:"quantity" validate:"gte=0"`
	Threshold int64                `json:"threshold" validate:"gte=0"`
	Category  domain.StockCategory `json:"category" validate:"required"`
}

type stockPatchRequest struct {
	Name      *string               `json:"name" validate:"omitempty,min=1"`
	Unit      *string               `json:"unit"`
	Quantity  *int64                `json:"quantity" validate:"omitempty,gte=0"`
	Threshold *int64                `json:"threshold" validate:"omitempty,gte=0"`
	Category  *domain.StockCategory `json:"category"`
}

type adjustRequest struct {
	Delta int64 `json:"delta"`
}

type expenseRequest struct {
	Title    string                 `json:"title" validate:"required"`
	Amount   domain.Money           `json:"amount"`
	Category domain.ExpenseCategory `json:"category" validate:"required"`
	Date     string                 `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("low") == "true" {
		respondJSON(w, http.StatusOK, h.shop.LowStock())
		return
	}
	respondJSON(w, http.StatusOK, h.shop.StockItems(q.Get("category"), q.Get("q")))
}

func (h *Handler) addStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !h.bind(w, r, &req) {
		return
	}
	item, err := h.shop.AddStock(r.Context(), domain.StockItem{
		Name:      req.Name,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		Category:  req.Category,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req stockPatchRequest
	if !h.bind(w, r, &req) {
		return
	}
	item, err := h.shop.UpdateStock(r.Context(), chi.URLParam(r, "id"), inventory.StockPatch{
		Name:      req.Name,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		Category:  req.Category,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !h.bind(w, r, &req) {
		return
	}
	item, err := h.shop.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteStock(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.DeleteStock(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.shop.Expenses())
}

func (h *Handler) addExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !h.bind(w, r, &req) {
		return
	}
	e := domain.Expense{Title: req.Title, Amount: req.Amount, Category: req.Category}
	if req.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date")
			return
		}
		e.Date = d
	}
	added, err := h.shop.AddExpense(r.Context(), e)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, added)
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.bind(w, r, &req) {
		return
	}
	cats, err := h.shop.AddCategory(r.Context(), req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cats)
}

func (h *Handler) toggleProductStock(w http.ResponseWriter, r *http.Request) {
	p, err := h.shop.ToggleStock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
