package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pawpairs/internal/platform/idempotency"
	"pawpairs/internal/platform/logger"
)

const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotentReplayedHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLen     = 255
	maxFingerprintBody       = 1 << 20
)

// Idempotency repite la primera respuesta de un POST con Idempotency-Key.
//   - key usada con otro método, path o body => 422
//   - key en curso => 409
//   - respuestas 5xx no se guardan (se libera la key)
func Idempotency(store idempotency.Store, ttl time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				http.Error(w, "idempotency key too long", http.StatusBadRequest)
				return
			}

			ctx := r.Context()
			fingerprint, err := requestFingerprint(w, r)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}

			existing, reserved, err := store.Reserve(ctx, key, fingerprint, ttl)
			if err != nil {
				if errors.Is(err, idempotency.ErrInFlight) {
					http.Error(w, "request with this idempotency key is in progress", http.StatusConflict)
					return
				}
				log.Error("idempotency reserve failed", map[string]any{"error": err, "path": r.URL.Path})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			if !reserved {
				switch {
				case existing.Fingerprint != fingerprint:
					http.Error(w, "idempotency key reused with a different request", http.StatusUnprocessableEntity)
				case !existing.Completed:
					http.Error(w, "request with this idempotency key is in progress", http.StatusConflict)
				default:
					replay(w, existing)
				}
				return
			}

			// Complete/Release no dependen de que el cliente siga conectado.
			storeCtx := context.WithoutCancel(ctx)
			defer func() {
				if p := recover(); p != nil {
					if err := store.Release(storeCtx, key); err != nil {
						log.Warn("idempotency release failed", map[string]any{"error": err})
					}
					panic(p)
				}
			}()

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusInternalServerError {
				if err := store.Release(storeCtx, key); err != nil {
					log.Warn("idempotency release failed", map[string]any{"error": err})
				}
				return
			}

			err = store.Complete(storeCtx, key, idempotency.Record{
				Fingerprint: fingerprint,
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}, ttl)
			if err != nil {
				log.Warn("idempotency complete failed", map[string]any{"error": err})
			}
		})
	}
}

// requestFingerprint = método + path + sha256 del body. Deja r.Body listo para el handler.
func requestFingerprint(w http.ResponseWriter, r *http.Request) (string, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFingerprintBody))
		if err != nil {
			return "", err
		}
		_ = r.Body.Close()
		body = b
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	sum := sha256.Sum256(body)
	return r.Method + " " + r.URL.Path + " " + hex.EncodeToString(sum[:]), nil
}

func replay(w http.ResponseWriter, rec idempotency.Record) {
	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set(IdempotentReplayedHeader, "true")
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}

// recordingWriter copia status y body mientras los deja pasar al cliente.
type recordingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
