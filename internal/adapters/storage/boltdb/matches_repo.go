package boltdb

import (
	"context"
	"errors"

	"pawpairs/internal/domain/matches"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	bolt "github.com/boltdb/bolt"
)

// MatchesRepo apoya sus invariantes en que bolt serializa las transacciones de
// escritura: el chequeo de pending y la transición se leen y escriben en el mismo db.Update.
type MatchesRepo struct {
	db *bolt.DB
}

func NewMatchesRepo(db *bolt.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

func pendingKey(from, to string) []byte {
	return []byte(from + "\x00" + to)
}

func (r *MatchesRepo) CreatePending(ctx context.Context, m matches.MatchRequest) error {
	m.Status = matches.StatusPending
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMatchRequests)
		if b.Get([]byte(m.ID)) != nil {
			return errors.New("match request already exists")
		}

		idx := tx.Bucket(bucketPendingPairs)
		key := pendingKey(m.FromPetID, m.ToPetID)
		if idx.Get(key) != nil {
			return matches.ErrDuplicatePending
		}
		if err := idx.Put(key, []byte(m.ID)); err != nil {
			return err
		}
		return putJSON(b, m.ID, m)
	})
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.MatchRequest, error) {
	var m matches.MatchRequest
	err := r.db.View(func(tx *bolt.Tx) error {
		var ok bool
		var err error
		m, ok, err = getJSON[matches.MatchRequest](tx.Bucket(bucketMatchRequests), id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("match request")
		}
		return nil
	})
	return m, err
}

func (r *MatchesRepo) List(ctx context.Context, skip, take int) ([]matches.MatchRequest, error) {
	all, err := r.ListBy(ctx, matches.Filter{})
	if err != nil {
		return nil, err
	}
	return paging.Window(all, skip, take), nil
}

func (r *MatchesRepo) Count(ctx context.Context) (int, error) {
	return countKeys(r.db, bucketMatchRequests)
}

func (r *MatchesRepo) ListBy(ctx context.Context, f matches.Filter) ([]matches.MatchRequest, error) {
	var out []matches.MatchRequest
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = scanAll(tx.Bucket(bucketMatchRequests), f.Matches)
		return err
	})
	if err != nil {
		return nil, err
	}
	matches.SortNewestFirst(out)
	return out, nil
}

func (r *MatchesRepo) Transition(ctx context.Context, id string, from, to matches.Status) (matches.MatchRequest, error) {
	var m matches.MatchRequest
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMatchRequests)
		current, ok, err := getJSON[matches.MatchRequest](b, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("match request")
		}
		if current.Status != from {
			return matches.ErrInvalidTransition
		}

		current.Status = to
		if from == matches.StatusPending {
			if err := tx.Bucket(bucketPendingPairs).Delete(pendingKey(current.FromPetID, current.ToPetID)); err != nil {
				return err
			}
		}
		m = current
		return putJSON(b, id, current)
	})
	if err != nil {
		return matches.MatchRequest{}, err
	}
	return m, nil
}

func (r *MatchesRepo) Delete(ctx context.Context, id string) (bool, error) {
	existed := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMatchRequests)
		m, ok, err := getJSON[matches.MatchRequest](b, id)
		if err != nil || !ok {
			return err
		}
		existed = true
		if m.Status == matches.StatusPending {
			if err := tx.Bucket(bucketPendingPairs).Delete(pendingKey(m.FromPetID, m.ToPetID)); err != nil {
				return err
			}
		}
		return b.Delete([]byte(id))
	})
	return existed, err
}
