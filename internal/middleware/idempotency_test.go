package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pawpairs/internal/platform/idempotency"
	"pawpairs/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func newIdempotentRouter(calls *int32, status int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(idempotency.NewMemoryStore(), time.Hour, logger.NewNop()))
	handler := func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"call":` + strconv.Itoa(int(n)) + `}`))
	}
	r.Post("/a", handler)
	r.Post("/b", handler)
	return r
}

func post(h http.Handler, path, key string) *httptest.ResponseRecorder {
	return postBody(h, path, key, `{}`)
}

func postBody(h http.Handler, path, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIdempotency_ReplaysFirstResponse(t *testing.T) {
	var calls int32
	h := newIdempotentRouter(&calls, http.StatusCreated)

	first := post(h, "/a", "key-1")
	second := post(h, "/a", "key-1")

	if calls != 1 {
		t.Fatalf("handler must run once, ran %d", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Fatalf("expected replay of %d %q, got %d %q", first.Code, first.Body.String(), second.Code, second.Body.String())
	}
	if second.Header().Get(IdempotentReplayedHeader) != "true" {
		t.Fatalf("expected replay header")
	}
	if first.Header().Get(IdempotentReplayedHeader) != "" {
		t.Fatalf("first response must not be marked as replay")
	}
}

func TestIdempotency_KeyReusedOnOtherPath_422(t *testing.T) {
	var calls int32
	h := newIdempotentRouter(&calls, http.StatusCreated)

	post(h, "/a", "key-1")
	rr := post(h, "/b", "key-1")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestIdempotency_WithoutKey_PassesThrough(t *testing.T) {
	var calls int32
	h := newIdempotentRouter(&calls, http.StatusCreated)

	post(h, "/a", "")
	post(h, "/a", "")
	if calls != 2 {
		t.Fatalf("expected 2 calls without key, got %d", calls)
	}
}

func TestIdempotency_ServerErrorsAreNotStored(t *testing.T) {
	var calls int32
	h := newIdempotentRouter(&calls, http.StatusInternalServerError)

	post(h, "/a", "key-1")
	post(h, "/a", "key-1")
	if calls != 2 {
		t.Fatalf("5xx must not be replayed, handler ran %d times", calls)
	}
}

func TestIdempotency_KeyReusedWithOtherBody_422(t *testing.T) {
	var calls int32
	h := newIdempotentRouter(&calls, http.StatusCreated)

	postBody(h, "/a", "key-1", `{"from_pet_id":"x","to_pet_id":"y"}`)
	rr := postBody(h, "/a", "key-1", `{"from_pet_id":"x","to_pet_id":"z"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if rr.Header().Get(IdempotentReplayedHeader) != "" {
		t.Fatalf("a different body must not be replayed")
	}
	if calls != 1 {
		t.Fatalf("handler must run once, ran %d", calls)
	}
}

func TestIdempotency_HandlerStillReadsBody(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Idempotency(idempotency.NewMemoryStore(), time.Hour, logger.NewNop()))
	r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(b)
	})

	rr := postBody(r, "/echo", "key-1", `{"name":"Luna"}`)
	if rr.Code != http.StatusCreated || rr.Body.String() != `{"name":"Luna"}` {
		t.Fatalf("handler got %d %q", rr.Code, rr.Body.String())
	}
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	var calls int32
	r := chi.NewRouter()
	r.Use(Recover(logger.NewNop()))
	r.Group(func(g chi.Router) {
		g.Use(Idempotency(idempotency.NewMemoryStore(), time.Hour, logger.NewNop()))
		g.Post("/a", func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				panic("boom")
			}
			w.WriteHeader(http.StatusCreated)
		})
	})

	first := post(r, "/a", "key-1")
	retry := post(r, "/a", "key-1")

	if first.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on panic, got %d", first.Code)
	}
	if retry.Code != http.StatusCreated {
		t.Fatalf("retry after panic must run the handler, got %d", retry.Code)
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

// ctxStore falla si el ctx ya está cancelado, como haría Redis.
type ctxStore struct {
	*idempotency.MemoryStore
}

func (s ctxStore) Complete(ctx context.Context, key string, rec idempotency.Record, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryStore.Complete(ctx, key, rec, ttl)
}

func (s ctxStore) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryStore.Release(ctx, key)
}

func TestIdempotency_ClientGoneStillCompletes(t *testing.T) {
	var calls int32
	store := ctxStore{idempotency.NewMemoryStore()}

	r := chi.NewRouter()
	r.Use(Idempotency(store, time.Hour, logger.NewNop()))
	r.Post("/a", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
	})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/a", strings.NewReader(`{}`)).WithContext(ctx)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	cancel()
	r.ServeHTTP(httptest.NewRecorder(), req)

	retry := post(r, "/a", "key-1")
	if retry.Code != http.StatusCreated || retry.Header().Get(IdempotentReplayedHeader) != "true" {
		t.Fatalf("expected replay after client disconnect, got %d", retry.Code)
	}
	if calls != 1 {
		t.Fatalf("handler must run once, ran %d", calls)
	}
}
