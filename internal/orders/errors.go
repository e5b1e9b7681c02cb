package orders

import (
	"errors"
	"fmt"

	"printbazar/m/internal/apperr"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrCustomerName    = errors.New("customer name is required")
	ErrBadTransition   = errors.New("status transition not allowed")
	ErrPaymentRequired = errors.New("record the payment to complete this order")
	ErrNotConfirmed    = errors.New("deletion was not confirmed")
	ErrNegativeAmount  = errors.New("payment amounts cannot be negative")
)

func invalid(err error, field string) error {
	var fields map[string]string
	if field != "" {
		fields = map[string]string{field: err.Error()}
	}
	return &apperr.AppError{Kind: apperr.Validation, PublicMsg: err.Error(), Fields: fields, Err: err}
}

func notFound(id string) error {
	return apperr.NotFoundErr(ErrNotFound.Error(), fmt.Errorf("%w: %s", ErrNotFound, id))
}
