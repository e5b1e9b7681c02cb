package domain

import "time"

type OrderStatus string

const (
	StatusReceived  OrderStatus = "Received"
	StatusPrinting  OrderStatus = "Printing"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusPrinting, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is expected.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether the status machine allows moving from s to next.
// Received -> Printing -> Delivered, and Cancelled from any non-terminal status.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case StatusCancelled:
		return true
	case StatusPrinting:
		return s == StatusReceived
	case StatusDelivered:
		return s == StatusPrinting
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodOnline PaymentMethod = "Online"
	MethodUPI    PaymentMethod = "UPI"
	MethodSplit  PaymentMethod = "Split"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodOnline, MethodUPI, MethodSplit:
		return true
	}
	return false
}

// Online reports whether money arrived through a digital channel.
func (m PaymentMethod) Online() bool {
	return m == MethodOnline || m == MethodUPI
}

type PaymentSplit struct {
	Cash   Money `json:"cash"`
	Online Money `json:"online"`
}

// Totals are the derived money fields of an order. They are always computed
// together from the items and the urgency flag.
type Totals struct {
	Subtotal  Money `json:"subtotal"`
	UrgentFee Money `json:"urgent_fee"`
	Total     Money `json:"total"`
	CostTotal Money `json:"cost_total"`
	Profit    Money `json:"profit"`
}

type Order struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Items         []LineItem `json:"items"`
	Urgent        bool       `json:"urgent"`
	Totals
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentSplit  *PaymentSplit `json:"payment_split,omitempty"`
}

// ShortID is the truncated identifier shown to customers.
func (o Order) ShortID() string {
	if len(o.ID) <= 5 {
		return o.ID
	}
	return o.ID[len(o.ID)-5:]
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	o.Items = CloneLines(o.Items)
	if o.PaymentSplit != nil {
		split := *o.PaymentSplit
		o.PaymentSplit = &split
	}
	return o
}

// HasCategory reports whether any line belongs to category.
func (o Order) HasCategory(category string) bool {
	for _, it := range o.Items {
		if it.Category == category {
			return true
		}
	}
	return false
}
