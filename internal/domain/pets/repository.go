package pets

import (
	"context"

	"pawpairs/internal/geo"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	// List ordena por nombre asc.
	List(ctx context.Context, skip, take int) ([]Pet, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, f SearchFilter) ([]Pet, error)
}

// SearchFilter combina predicados independientes (conmutan entre sí).
// nil = sin restricción.
type SearchFilter struct {
	Species     *Species
	EnergyLevel *EnergyLevel

	Near     *geo.Point
	RadiusKm float64
}

// Box devuelve la bounding box del filtro geográfico, si aplica.
// Sin centro o con radio <= 0 el filtro geográfico es no-op.
func (f SearchFilter) Box() (geo.BoundingBox, bool) {
	if f.Near == nil || !(f.RadiusKm > 0) {
		return geo.BoundingBox{}, false
	}
	return geo.NewBoundingBox(*f.Near, f.RadiusKm), true
}

// Matches evalúa species/energy. El geo se aplica aparte con geo.Filter.
func (f SearchFilter) Matches(p Pet) bool {
	if f.Species != nil && p.Species != *f.Species {
		return false
	}
	if f.EnergyLevel != nil && p.EnergyLevel != *f.EnergyLevel {
		return false
	}
	return true
}
