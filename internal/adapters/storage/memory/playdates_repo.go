package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pawpairs/internal/domain/playdates"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"
)

type playdateRepo struct {
	mu   sync.RWMutex
	byID map[string]playdates.Playdate
}

func NewPlaydateRepo() playdates.Repository {
	return &playdateRepo{
		byID: make(map[string]playdates.Playdate),
	}
}

func (r *playdateRepo) Create(ctx context.Context, p playdates.Playdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("playdate id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("playdate already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *playdateRepo) Update(ctx context.Context, p playdates.Playdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return apperr.NotFound("playdate")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *playdateRepo) GetByID(ctx context.Context, id string) (playdates.Playdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return playdates.Playdate{}, apperr.NotFound("playdate")
	}
	return p, nil
}

func (r *playdateRepo) List(ctx context.Context, skip, take int) ([]playdates.Playdate, error) {
	r.mu.RLock()
	out := make([]playdates.Playdate, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sortPlaydatesNewestFirst(out)
	return paging.Window(out, skip, take), nil
}

func (r *playdateRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *playdateRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byID[id]
	delete(r.byID, id)
	return ok, nil
}

func sortPlaydatesNewestFirst(items []playdates.Playdate) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.After(items[j].ScheduledAt)
		}
		return items[i].ID > items[j].ID
	})
}
