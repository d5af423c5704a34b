// Package idempotency guarda la primera respuesta de un POST con Idempotency-Key
// para repetirla en los reintentos.
package idempotency

import (
	"context"
	"errors"
	"time"
)

// ErrInFlight: la key está reservada por un request que todavía no terminó.
var ErrInFlight = errors.New("idempotent request still in progress")

// Record es lo que se persiste por key. Completed=false mientras el primer request corre.
type Record struct {
	Fingerprint string `json:"fingerprint"`
	Completed   bool   `json:"completed"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

type Store interface {
	// Reserve intenta tomar la key. Si ya existía devuelve el record guardado y reserved=false.
	Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (existing Record, reserved bool, err error)
	// Complete reemplaza la reserva por la respuesta final.
	Complete(ctx context.Context, key string, rec Record, ttl time.Duration) error
	// Release libera la key (p.ej. tras un 5xx) para que el cliente pueda reintentar.
	Release(ctx context.Context, key string) error
}
