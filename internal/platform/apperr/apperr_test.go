package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid", Invalid("name required"), http.StatusBadRequest},
		{"not found", NotFound("pet"), http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"transition is conflict", ErrInvalidTransition, http.StatusConflict},
		{"wrapped transition", fmt.Errorf("accept: %w", ErrInvalidTransition), http.StatusConflict},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestPublicMessage_HidesStorageErrors(t *testing.T) {
	if got := PublicMessage(errors.New("pq: password authentication failed")); got != "internal error" {
		t.Fatalf("expected generic message, got %q", got)
	}
	if got := PublicMessage(Invalid("location_name required")); got != "invalid input: location_name required" {
		t.Fatalf("unexpected message %q", got)
	}
}
