package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationErr("name is required", nil), http.StatusBadRequest},
		{"not found", NotFoundErr("order not found", nil), http.StatusNotFound},
		{"unavailable", UnavailableErr("report service down", nil), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("checkout: %w", ConflictErr("stale", nil)), http.StatusConflict},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessageHidesInternalCause(t *testing.T) {
	err := Wrap(errors.New("disk full"))
	assert.Equal(t, "unexpected error", PublicMessage(err))
	assert.ErrorContains(t, err, "disk full")
	assert.True(t, Is(err, Internal))
	assert.False(t, Is(errors.New("x"), Internal))
}
