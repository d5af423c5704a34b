package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pawpairs/internal/geo"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/logger"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return apperr.NotFound("pet")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, apperr.NotFound("pet")
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context, skip, take int) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) { return len(r.byID), nil }

func (r *testRepo) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	delete(r.byID, id)
	return ok, nil
}

func (r *testRepo) Search(ctx context.Context, f SearchFilter) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return geo.Filter(out, f.Near, f.RadiusKm, Pet.Position), nil
}

type fakeOwners map[string]bool

func (f fakeOwners) Exists(ctx context.Context, id string) (bool, error) { return f[id], nil }

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, fakeOwners{"owner-1": true}, logger.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validPet() CreateInput {
	return CreateInput{
		OwnerID:     "owner-1",
		Name:        "Luna",
		Species:     "Dog",
		BreedName:   "Mestiza",
		AgeYears:    3,
		EnergyLevel: "high",
		Latitude:    -34.6,
		Longitude:   -58.4,
	}
}

func TestService_Create_OK(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), validPet())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Species != SpeciesDog || p.EnergyLevel != EnergyHigh {
		t.Fatalf("expected parsed enums, got %s/%s", p.Species, p.EnergyLevel)
	}
	if ok, _ := svc.Exists(context.Background(), p.ID); !ok {
		t.Fatalf("expected pet to exist")
	}
}

func TestService_Create_UnknownOwner_NotFound(t *testing.T) {
	svc, repo := newTestService()
	in := validPet()
	in.OwnerID = "ghost"

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()

	mutations := map[string]func(*CreateInput){
		"species":   func(in *CreateInput) { in.Species = "hamster" },
		"energy":    func(in *CreateInput) { in.EnergyLevel = "extreme" },
		"age":       func(in *CreateInput) { in.AgeYears = 31 },
		"negative":  func(in *CreateInput) { in.AgeYears = -1 },
		"latitude":  func(in *CreateInput) { in.Latitude = 90.5 },
		"longitude": func(in *CreateInput) { in.Longitude = -181 },
		"name":      func(in *CreateInput) { in.Name = " " },
		"breed":     func(in *CreateInput) { in.BreedName = "" },
	}
	for name, mutate := range mutations {
		in := validPet()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestService_Update_KeepsSpeciesAndOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, validPet())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, p.ID, UpdateInput{
		Name: "Luna", BreedName: "Mestiza", AgeYears: 4, EnergyLevel: "medium", Latitude: 1, Longitude: 2,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Species != SpeciesDog || updated.OwnerID != "owner-1" || updated.EnergyLevel != EnergyMedium {
		t.Fatalf("unexpected update: %+v", updated)
	}
}

func TestService_Search_CombinesPredicates(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	seed := []Pet{
		{ID: "near-dog-high", Species: SpeciesDog, EnergyLevel: EnergyHigh, Latitude: 0.5, Longitude: 0.5},
		{ID: "near-cat-high", Species: SpeciesCat, EnergyLevel: EnergyHigh, Latitude: 0.2, Longitude: -0.3},
		{ID: "near-dog-low", Species: SpeciesDog, EnergyLevel: EnergyLow, Latitude: -0.1, Longitude: 0.1},
		{ID: "far-dog-high", Species: SpeciesDog, EnergyLevel: EnergyHigh, Latitude: 5, Longitude: 5},
	}
	for _, p := range seed {
		repo.byID[p.ID] = p
	}

	dog := SpeciesDog
	high := EnergyHigh
	center := &geo.Point{Lat: 0, Lng: 0}

	got, err := svc.Search(ctx, SearchQuery{Species: &dog, EnergyLevel: &high, Near: center, RadiusKm: 100})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "near-dog-high" {
		t.Fatalf("expected only near-dog-high, got %+v", got)
	}

	// Radio 0 desactiva el filtro geográfico.
	got, _ = svc.Search(ctx, SearchQuery{Species: &dog, EnergyLevel: &high, Near: center})
	if len(got) != 2 {
		t.Fatalf("expected 2 dogs with high energy anywhere, got %d", len(got))
	}

	if _, err := svc.Search(ctx, SearchQuery{Near: &geo.Point{Lat: 91}, RadiusKm: 10}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out of range center, got %v", err)
	}
}

// Filtrar primero por geo y después por especie/energía da lo mismo que al revés.
func TestSearchFilter_PredicatesCommute(t *testing.T) {
	pets := []Pet{
		{ID: "1", Species: SpeciesDog, EnergyLevel: EnergyHigh, Latitude: 0.5, Longitude: 0.5},
		{ID: "2", Species: SpeciesCat, EnergyLevel: EnergyLow, Latitude: 0.3, Longitude: 0.1},
		{ID: "3", Species: SpeciesDog, EnergyLevel: EnergyLow, Latitude: 3, Longitude: 3},
		{ID: "4", Species: SpeciesOther, EnergyLevel: EnergyMedium, Latitude: -0.8, Longitude: 0.2},
		{ID: "5", Species: SpeciesDog, EnergyLevel: EnergyLow, Latitude: -0.4, Longitude: -0.4},
	}
	dog := SpeciesDog
	low := EnergyLow
	f := SearchFilter{Species: &dog, EnergyLevel: &low, Near: &geo.Point{}, RadiusKm: 100}

	predicatesFirst := make([]Pet, 0)
	for _, p := range pets {
		if f.Matches(p) {
			predicatesFirst = append(predicatesFirst, p)
		}
	}
	predicatesFirst = geo.Filter(predicatesFirst, f.Near, f.RadiusKm, Pet.Position)

	geoFirst := make([]Pet, 0)
	for _, p := range geo.Filter(pets, f.Near, f.RadiusKm, Pet.Position) {
		if f.Matches(p) {
			geoFirst = append(geoFirst, p)
		}
	}

	if len(predicatesFirst) != 1 || len(geoFirst) != 1 || predicatesFirst[0].ID != "5" || geoFirst[0].ID != "5" {
		t.Fatalf("predicates do not commute: %+v vs %+v", predicatesFirst, geoFirst)
	}
}

func TestSearchFilter_Box(t *testing.T) {
	if _, ok := (SearchFilter{RadiusKm: 10}).Box(); ok {
		t.Fatalf("no center => no box")
	}
	if _, ok := (SearchFilter{Near: &geo.Point{}, RadiusKm: 0}).Box(); ok {
		t.Fatalf("radius 0 => no box")
	}
	b, ok := (SearchFilter{Near: &geo.Point{}, RadiusKm: 100}).Box()
	if !ok || !b.Contains(geo.Point{Lat: 0.5, Lng: 0.5}) {
		t.Fatalf("expected box containing (0.5, 0.5), got %+v", b)
	}
}

func TestEnergyLevel_Rank(t *testing.T) {
	if !(EnergyLow.Rank() < EnergyMedium.Rank() && EnergyMedium.Rank() < EnergyHigh.Rank()) {
		t.Fatalf("energy levels must be ordinal")
	}
	if EnergyLevel("bogus").Rank() != 0 {
		t.Fatalf("unknown level must rank 0")
	}
}
