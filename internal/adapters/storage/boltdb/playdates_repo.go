package boltdb

import (
	"context"
	"errors"
	"sort"

	"pawpairs/internal/domain/playdates"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	bolt "github.com/boltdb/bolt"
)

type PlaydatesRepo struct {
	db *bolt.DB
}

func NewPlaydatesRepo(db *bolt.DB) *PlaydatesRepo {
	return &PlaydatesRepo{db: db}
}

func (r *PlaydatesRepo) Create(ctx context.Context, p playdates.Playdate) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlaydates)
		if b.Get([]byte(p.ID)) != nil {
			return errors.New("playdate already exists")
		}
		return putJSON(b, p.ID, p)
	})
}

func (r *PlaydatesRepo) Update(ctx context.Context, p playdates.Playdate) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlaydates)
		if b.Get([]byte(p.ID)) == nil {
			return apperr.NotFound("playdate")
		}
		return putJSON(b, p.ID, p)
	})
}

func (r *PlaydatesRepo) GetByID(ctx context.Context, id string) (playdates.Playdate, error) {
	var p playdates.Playdate
	err := r.db.View(func(tx *bolt.Tx) error {
		var ok bool
		var err error
		p, ok, err = getJSON[playdates.Playdate](tx.Bucket(bucketPlaydates), id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("playdate")
		}
		return nil
	})
	return p, err
}

func (r *PlaydatesRepo) List(ctx context.Context, skip, take int) ([]playdates.Playdate, error) {
	var out []playdates.Playdate
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = scanAll[playdates.Playdate](tx.Bucket(bucketPlaydates), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.After(out[j].ScheduledAt)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Window(out, skip, take), nil
}

func (r *PlaydatesRepo) Count(ctx context.Context) (int, error) {
	return countKeys(r.db, bucketPlaydates)
}

func (r *PlaydatesRepo) Delete(ctx context.Context, id string) (bool, error) {
	existed := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlaydates)
		existed = b.Get([]byte(id)) != nil
		return b.Delete([]byte(id))
	})
	return existed, err
}
