package idempotency

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "k-" + uuid.NewString()

	_, reserved, err := s.Reserve(ctx, key, "POST /api/matchrequests", time.Minute)
	if err != nil || !reserved {
		t.Fatalf("first reserve: reserved=%v err=%v", reserved, err)
	}

	existing, reserved, err := s.Reserve(ctx, key, "POST /api/matchrequests", time.Minute)
	if err != nil || reserved {
		t.Fatalf("second reserve must not reserve: reserved=%v err=%v", reserved, err)
	}
	if existing.Completed || existing.Fingerprint != "POST /api/matchrequests" {
		t.Fatalf("expected in-flight record, got %+v", existing)
	}

	if err := s.Complete(ctx, key, Record{Fingerprint: "POST /api/matchrequests", Status: 201, ContentType: "application/json", Body: []byte(`{"id":"x"}`)}, time.Minute); err != nil {
		t.Fatalf("complete: %v", err)
	}
	existing, _, err = s.Reserve(ctx, key, "POST /api/matchrequests", time.Minute)
	if err != nil {
		t.Fatalf("reserve after complete: %v", err)
	}
	if !existing.Completed || existing.Status != 201 || string(existing.Body) != `{"id":"x"}` {
		t.Fatalf("unexpected stored record: %+v", existing)
	}

	if err := s.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, reserved, _ := s.Reserve(ctx, key, "POST /api/matchrequests", time.Minute); !reserved {
		t.Fatalf("expected key to be free after release")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if _, reserved, _ := s.Reserve(ctx, "k", "fp", time.Minute); !reserved {
		t.Fatalf("expected reserve")
	}
	now = now.Add(2 * time.Minute)
	if _, reserved, _ := s.Reserve(ctx, "k", "fp", time.Minute); !reserved {
		t.Fatalf("expected expired key to be reservable again")
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("PAWPAIRS_TEST_REDIS")
	if addr == "" {
		t.Skip("PAWPAIRS_TEST_REDIS not set; skipping redis-backed tests")
	}
	s, err := NewRedisStore(context.Background(), addr)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}
