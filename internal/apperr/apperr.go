// Package apperr carries the error taxonomy shared by the core and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	Validation          Kind = "validation"
	NotFound            Kind = "not_found"
	CorruptState        Kind = "corrupt_state"
	ExternalUnavailable Kind = "external_unavailable"
	Unauthorized        Kind = "unauthorized"
	Forbidden           Kind = "forbidden"
	Conflict            Kind = "conflict"
	Internal            Kind = "internal"
)

type AppError struct {
	Kind      Kind
	PublicMsg string            // safe to show to the user
	Fields    map[string]string // per-field validation messages, optional
	Err       error             // internal cause, for logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		if e.PublicMsg != "" {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.PublicMsg, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.PublicMsg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.PublicMsg)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

func ValidationErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Validation, PublicMsg: publicMsg, Fields: fields}
}

func NotFoundErr(publicMsg string, cause error) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg, Err: cause}
}

func CorruptStateErr(publicMsg string, cause error) *AppError {
	return &AppError{Kind: CorruptState, PublicMsg: publicMsg, Err: cause}
}

func UnavailableErr(publicMsg string, cause error) *AppError {
	return &AppError{Kind: ExternalUnavailable, PublicMsg: publicMsg, Err: cause}
}

func UnauthorizedErr(publicMsg string) *AppError {
	return &AppError{Kind: Unauthorized, PublicMsg: publicMsg}
}

func ConflictErr(publicMsg string, cause error) *AppError {
	return &AppError{Kind: Conflict, PublicMsg: publicMsg, Err: cause}
}

// Wrap marks err as internal without exposing it publicly.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: Internal, PublicMsg: "unexpected error", Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Validation:
			return http.StatusBadRequest
		case Unauthorized:
			return http.StatusUnauthorized
		case Forbidden:
			return http.StatusForbidden
		case NotFound:
			return http.StatusNotFound
		case Conflict:
			return http.StatusConflict
		case ExternalUnavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return "unexpected error"
}
