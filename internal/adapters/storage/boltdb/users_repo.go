package boltdb

import (
	"context"
	"sort"

	"pawpairs/internal/domain/users"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	bolt "github.com/boltdb/bolt"
)

type UsersRepo struct {
	db *bolt.DB
}

func NewUsersRepo(db *bolt.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bucketUsersByEmail)
		if idx.Get([]byte(u.Email)) != nil {
			return apperr.ErrConflict
		}
		if err := idx.Put([]byte(u.Email), []byte(u.ID)); err != nil {
			return err
		}
		return putJSON(tx.Bucket(bucketUsers), u.ID, u)
	})
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		current, ok, err := getJSON[users.User](b, u.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("user")
		}
		u.Email = current.Email
		return putJSON(b, u.ID, u)
	})
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	var u users.User
	err := r.db.View(func(tx *bolt.Tx) error {
		var ok bool
		var err error
		u, ok, err = getJSON[users.User](tx.Bucket(bucketUsers), id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("user")
		}
		return nil
	})
	return u, err
}

func (r *UsersRepo) List(ctx context.Context, skip, take int) ([]users.User, error) {
	var out []users.User
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = scanAll[users.User](tx.Bucket(bucketUsers), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paging.Window(out, skip, take), nil
}

func (r *UsersRepo) Count(ctx context.Context) (int, error) {
	return countKeys(r.db, bucketUsers)
}

func (r *UsersRepo) Delete(ctx context.Context, id string) (bool, error) {
	existed := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		u, ok, err := getJSON[users.User](b, id)
		if err != nil || !ok {
			return err
		}
		existed = true
		if err := tx.Bucket(bucketUsersByEmail).Delete([]byte(u.Email)); err != nil {
			return err
		}
		return b.Delete([]byte(id))
	})
	return existed, err
}
