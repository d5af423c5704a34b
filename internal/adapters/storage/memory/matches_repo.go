package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pawpairs/internal/domain/matches"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"
)

type pairKey struct {
	from, to string
}

// matchRepo: un único mutex serializa el chequeo de pending y las transiciones.
type matchRepo struct {
	mu      sync.Mutex
	byID    map[string]matches.MatchRequest
	pending map[pairKey]string
}

func NewMatchRepo() matches.Repository {
	return &matchRepo{
		byID:    make(map[string]matches.MatchRequest),
		pending: make(map[pairKey]string),
	}
}

func (r *matchRepo) CreatePending(ctx context.Context, m matches.MatchRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("match request id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("match request already exists")
	}
	key := pairKey{m.FromPetID, m.ToPetID}
	if _, dup := r.pending[key]; dup {
		return matches.ErrDuplicatePending
	}

	m.Status = matches.StatusPending
	r.byID[m.ID] = m
	r.pending[key] = m.ID
	return nil
}

func (r *matchRepo) GetByID(ctx context.Context, id string) (matches.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return matches.MatchRequest{}, apperr.NotFound("match request")
	}
	return m, nil
}

func (r *matchRepo) List(ctx context.Context, skip, take int) ([]matches.MatchRequest, error) {
	all, err := r.ListBy(ctx, matches.Filter{})
	if err != nil {
		return nil, err
	}
	return paging.Window(all, skip, take), nil
}

func (r *matchRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *matchRepo) ListBy(ctx context.Context, f matches.Filter) ([]matches.MatchRequest, error) {
	r.mu.Lock()
	out := make([]matches.MatchRequest, 0)
	for _, m := range r.byID {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	r.mu.Unlock()

	matches.SortNewestFirst(out)
	return out, nil
}

func (r *matchRepo) Transition(ctx context.Context, id string, from, to matches.Status) (matches.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return matches.MatchRequest{}, apperr.NotFound("match request")
	}
	if m.Status != from {
		return matches.MatchRequest{}, matches.ErrInvalidTransition
	}

	m.Status = to
	r.byID[id] = m
	if from == matches.StatusPending {
		delete(r.pending, pairKey{m.FromPetID, m.ToPetID})
	}
	return m, nil
}

func (r *matchRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	if m.Status == matches.StatusPending {
		delete(r.pending, pairKey{m.FromPetID, m.ToPetID})
	}
	return true, nil
}
