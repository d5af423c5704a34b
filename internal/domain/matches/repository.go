package matches

import (
	"context"
	"sort"
)

type Repository interface {
	// CreatePending inserta m (status pending) o devuelve ErrDuplicatePending si ya
	// existe un pending para el par ordenado. El chequeo y el insert son atómicos.
	CreatePending(ctx context.Context, m MatchRequest) error
	GetByID(ctx context.Context, id string) (MatchRequest, error)
	// List y ListBy ordenan por CreatedAt desc.
	List(ctx context.Context, skip, take int) ([]MatchRequest, error)
	Count(ctx context.Context) (int, error)
	ListBy(ctx context.Context, f Filter) ([]MatchRequest, error)
	// Transition es un compare-and-swap: solo escribe si el status actual es from.
	// ErrNotFound si no existe; ErrInvalidTransition si el status ya no es from.
	Transition(ctx context.Context, id string, from, to Status) (MatchRequest, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Filter: campos vacíos = sin restricción.
type Filter struct {
	FromPetID string
	ToPetID   string
	Status    Status
}

func (f Filter) Matches(m MatchRequest) bool {
	if f.FromPetID != "" && m.FromPetID != f.FromPetID {
		return false
	}
	if f.ToPetID != "" && m.ToPetID != f.ToPetID {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	return true
}

// SortNewestFirst ordena in-place por CreatedAt desc (desempate por ID para que sea estable).
func SortNewestFirst(items []MatchRequest) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
