package shop

import (
	"context"
	"log"
	"strings"
	"time"

	"printbazar/m/domain"
	"printbazar/m/internal/apperr"
	"printbazar/m/internal/orders"
	"printbazar/m/internal/store"
)

type CheckoutInput struct {
	Name   string
	Phone  string
	Urgent bool
}

// Checkout turns the cart into an order after the configured delay. The cart
// is cleared only when the order is placed; if the cart changed or another
// checkout started meanwhile, this one fails with a Conflict and nothing is
// placed.
func (s *Shop) Checkout(ctx context.Context, in CheckoutInput) (domain.Order, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		return domain.Order{}, invalid(ErrCustomerName, "name")
	}
	if !validPhone(phone) {
		return domain.Order{}, invalid(ErrCustomerPhone, "phone")
	}

	s.mu.Lock()
	if s.cart.Empty() {
		s.mu.Unlock()
		return domain.Order{}, invalid(ErrEmptyCart, "cart")
	}
	s.checkoutGen++
	token := s.checkoutGen
	cartGen := s.cart.Generation()
	s.mu.Unlock()

	if d := s.deps.CheckoutDelay; d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Order{}, ctx.Err()
		case <-t.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.checkoutGen || cartGen != s.cart.Generation() {
		log.Printf("shop: checkout %d superseded", token)
		return domain.Order{}, apperr.ConflictErr(ErrCheckoutStale.Error(), ErrCheckoutStale)
	}
	o, err := s.orders.Place(orders.PlaceInput{
		Customer: orders.Customer{Name: name, Phone: phone},
		Lines:    s.cart.Lines(),
		Urgent:   in.Urgent,
		Method:   domain.MethodUPI,
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.cart.Clear()
	return o, s.persistLocked(ctx, store.KeyOrders, store.KeyCart, store.KeyStock)
}

// MyOrders lists the orders placed with the session's phone number, newest first.
func (s *Shop) MyOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Order{}
	if s.session == nil || s.session.Phone == "" {
		return out
	}
	all := s.orders.List()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].CustomerPhone == s.session.Phone {
			out = append(out, all[i])
		}
	}
	return out
}
