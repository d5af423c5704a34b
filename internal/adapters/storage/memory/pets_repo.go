package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pawpairs/internal/domain/pets"
	"pawpairs/internal/geo"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return apperr.NotFound("pet")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, apperr.NotFound("pet")
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return r.collect(func(p pets.Pet) bool { return p.OwnerID == ownerID }), nil
}

func (r *petRepo) List(ctx context.Context, skip, take int) ([]pets.Pet, error) {
	return paging.Window(r.collect(nil), skip, take), nil
}

func (r *petRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *petRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byID[id]
	delete(r.byID, id)
	return ok, nil
}

func (r *petRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	candidates := r.collect(f.Matches)
	return geo.Filter(candidates, f.Near, f.RadiusKm, pets.Pet.Position), nil
}

// collect devuelve una copia ordenada por nombre (desempate por id).
func (r *petRepo) collect(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	sortPetsByName(out)
	return out
}

func sortPetsByName(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
