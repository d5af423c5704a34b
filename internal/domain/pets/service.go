package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pawpairs/internal/geo"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = apperr.ErrInvalidInput
	ErrNotFound     = apperr.ErrNotFound
)

const (
	maxNameLen  = 100
	maxBreedLen = 100
	maxAgeYears = 30
)

// OwnerDirectory resuelve si un owner existe. Lo implementa users.Service.
type OwnerDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerDirectory, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		log:    log.With(map[string]any{"module": "pets"}),
		now:    time.Now,
	}
}

type CreateInput struct {
	OwnerID      string
	Name         string
	Species      string
	BreedName    string
	AgeYears     int
	EnergyLevel  string
	IsVaccinated bool
	Latitude     float64
	Longitude    float64
}

// UpdateInput no permite cambiar especie ni owner.
type UpdateInput struct {
	Name         string
	BreedName    string
	AgeYears     int
	EnergyLevel  string
	IsVaccinated bool
	Latitude     float64
	Longitude    float64
}

type SearchQuery struct {
	Species     *Species
	EnergyLevel *EnergyLevel
	Near        *geo.Point
	RadiusKm    float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	ownerID := strings.TrimSpace(in.OwnerID)
	if ownerID == "" {
		return Pet{}, apperr.Invalid("owner_id required")
	}
	species, ok := ParseSpecies(in.Species)
	if !ok {
		return Pet{}, apperr.Invalid("species must be one of dog, cat, other")
	}

	p := Pet{
		OwnerID:      ownerID,
		Species:      species,
		IsVaccinated: in.IsVaccinated,
	}
	if err := applyProfile(&p, in.Name, in.BreedName, in.AgeYears, in.EnergyLevel, in.Latitude, in.Longitude); err != nil {
		return Pet{}, err
	}

	exists, err := s.owners.Exists(ctx, ownerID)
	if err != nil {
		return Pet{}, err
	}
	if !exists {
		return Pet{}, apperr.NotFound("owner")
	}

	now := s.now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	s.log.Info("created pet", map[string]any{"pet_id": p.ID, "owner_id": p.OwnerID, "species": string(p.Species)})
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	current.IsVaccinated = in.IsVaccinated
	if err := applyProfile(&current, in.Name, in.BreedName, in.AgeYears, in.EnergyLevel, in.Latitude, in.Longitude); err != nil {
		return Pet{}, err
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	s.log.Info("updated pet", map[string]any{"pet_id": current.ID})
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, apperr.NotFound("pet")
	}
	return s.repo.GetByID(ctx, id)
}

// Exists lo consumen matches y playdates.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerID))
}

func (s *Service) List(ctx context.Context, skip, take int) ([]Pet, error) {
	return s.repo.List(ctx, skip, take)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Info("deleted pet", map[string]any{"pet_id": id})
	}
	return ok, nil
}

// Search devuelve candidatos. El filtro geográfico es una bounding box,
// no un círculo: puede incluir puntos en las esquinas fuera del radio.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Pet, error) {
	if q.Near != nil && !q.Near.Valid() {
		return nil, apperr.Invalid("near coordinates out of range")
	}
	if q.RadiusKm < 0 {
		return nil, apperr.Invalid("radius_km must be >= 0")
	}

	f := SearchFilter{
		Species:     q.Species,
		EnergyLevel: q.EnergyLevel,
		Near:        q.Near,
		RadiusKm:    q.RadiusKm,
	}
	out, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	s.log.Debug("pet search", map[string]any{"results": len(out), "radius_km": q.RadiusKm})
	return out, nil
}

func applyProfile(p *Pet, name, breed string, age int, energy string, lat, lng float64) error {
	p.Name = strings.TrimSpace(name)
	if p.Name == "" || len(p.Name) > maxNameLen {
		return apperr.Invalid("name required (max %d chars)", maxNameLen)
	}
	p.BreedName = strings.TrimSpace(breed)
	if p.BreedName == "" || len(p.BreedName) > maxBreedLen {
		return apperr.Invalid("breed_name required (max %d chars)", maxBreedLen)
	}
	if age < 0 || age > maxAgeYears {
		return apperr.Invalid("age_years must be between 0 and %d", maxAgeYears)
	}
	p.AgeYears = age

	e, ok := ParseEnergyLevel(energy)
	if !ok {
		return apperr.Invalid("energy_level must be one of low, medium, high")
	}
	p.EnergyLevel = e

	if !(geo.Point{Lat: lat, Lng: lng}).Valid() {
		return apperr.Invalid("latitude/longitude out of range")
	}
	p.Latitude = lat
	p.Longitude = lng
	return nil
}
