package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pawpairs/internal/domain/matches"
	"pawpairs/internal/platform/apperr"
)

func newPending(id, from, to string, at time.Time) matches.MatchRequest {
	return matches.MatchRequest{ID: id, FromPetID: from, ToPetID: to, Status: matches.StatusPending, CreatedAt: at}
}

func TestMatchRepo_CreatePending_ConcurrentSamePair(t *testing.T) {
	repo := NewMatchRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			err := repo.CreatePending(ctx, newPending(fmt.Sprintf("m-%d", i), "a", "b", now))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				oks++
			case errors.Is(err, matches.ErrDuplicatePending):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if oks != 1 || dups != workers-1 {
		t.Fatalf("expected exactly one pending, got ok=%d dup=%d", oks, dups)
	}
}

func TestMatchRepo_Transition_IsCompareAndSwap(t *testing.T) {
	repo := NewMatchRepo()
	ctx := context.Background()

	if err := repo.CreatePending(ctx, newPending("m-1", "a", "b", time.Now())); err != nil {
		t.Fatalf("create: %v", err)
	}

	m, err := repo.Transition(ctx, "m-1", matches.StatusPending, matches.StatusAccepted)
	if err != nil || m.Status != matches.StatusAccepted {
		t.Fatalf("expected accepted, got %+v err=%v", m, err)
	}
	if _, err := repo.Transition(ctx, "m-1", matches.StatusPending, matches.StatusRejected); !errors.Is(err, matches.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := repo.Transition(ctx, "nope", matches.StatusPending, matches.StatusRejected); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// El par quedó libre al salir de pending.
	if err := repo.CreatePending(ctx, newPending("m-2", "a", "b", time.Now())); err != nil {
		t.Fatalf("create after accept: %v", err)
	}
}

func TestMatchRepo_DeletePending_FreesPair(t *testing.T) {
	repo := NewMatchRepo()
	ctx := context.Background()

	_ = repo.CreatePending(ctx, newPending("m-1", "a", "b", time.Now()))
	if ok, _ := repo.Delete(ctx, "m-1"); !ok {
		t.Fatalf("expected delete ok")
	}
	if err := repo.CreatePending(ctx, newPending("m-2", "a", "b", time.Now())); err != nil {
		t.Fatalf("expected pair to be free after delete: %v", err)
	}
}

func TestMatchRepo_ListBy_NewestFirst(t *testing.T) {
	repo := NewMatchRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.CreatePending(ctx, newPending("old", "a", "b", base))
	_ = repo.CreatePending(ctx, newPending("new", "c", "b", base.Add(time.Hour)))
	_ = repo.CreatePending(ctx, newPending("other", "b", "a", base.Add(2*time.Hour)))

	items, err := repo.ListBy(ctx, matches.Filter{ToPetID: "b"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "new" || items[1].ID != "old" {
		t.Fatalf("unexpected order: %+v", items)
	}

	page, _ := repo.List(ctx, 1, 1)
	if len(page) != 1 || page[0].ID != "new" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
