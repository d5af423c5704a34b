// Package apperr define la taxonomía de errores compartida por los módulos de dominio.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	// ErrInvalidTransition es un conflicto: la entidad no está en el estado requerido.
	ErrInvalidTransition = fmt.Errorf("%w: invalid state transition", ErrConflict)
)

// Invalid envuelve ErrInvalidInput con un detalle legible para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando qué entidad falta.
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// HTTPStatus traduce un error de dominio a status HTTP.
// Cualquier error fuera de la taxonomía es un fallo de storage => 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage devuelve el mensaje que se puede exponer al cliente.
// Los fallos internos no filtran detalles del driver.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
