package boltdb

import (
	"context"
	"errors"
	"sort"

	"pawpairs/internal/domain/pets"
	"pawpairs/internal/geo"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	bolt "github.com/boltdb/bolt"
)

type PetsRepo struct {
	db *bolt.DB
}

func NewPetsRepo(db *bolt.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPets)
		if b.Get([]byte(p.ID)) != nil {
			return errors.New("pet already exists")
		}
		return putJSON(b, p.ID, p)
	})
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPets)
		if b.Get([]byte(p.ID)) == nil {
			return apperr.NotFound("pet")
		}
		return putJSON(b, p.ID, p)
	})
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var p pets.Pet
	err := r.db.View(func(tx *bolt.Tx) error {
		var ok bool
		var err error
		p, ok, err = getJSON[pets.Pet](tx.Bucket(bucketPets), id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("pet")
		}
		return nil
	})
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return r.collect(func(p pets.Pet) bool { return p.OwnerID == ownerID })
}

func (r *PetsRepo) List(ctx context.Context, skip, take int) ([]pets.Pet, error) {
	all, err := r.collect(nil)
	if err != nil {
		return nil, err
	}
	return paging.Window(all, skip, take), nil
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	return countKeys(r.db, bucketPets)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) (bool, error) {
	existed := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPets)
		existed = b.Get([]byte(id)) != nil
		return b.Delete([]byte(id))
	})
	return existed, err
}

// Search recorre el bucket: no hay índice espacial en bolt.
func (r *PetsRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	candidates, err := r.collect(f.Matches)
	if err != nil {
		return nil, err
	}
	return geo.Filter(candidates, f.Near, f.RadiusKm, pets.Pet.Position), nil
}

func (r *PetsRepo) collect(keep func(pets.Pet) bool) ([]pets.Pet, error) {
	var out []pets.Pet
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = scanAll(tx.Bucket(bucketPets), keep)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
