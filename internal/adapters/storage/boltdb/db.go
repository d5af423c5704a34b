// Package boltdb persiste los módulos en un único archivo BoltDB.
// Cada entidad vive en su bucket como JSON; los índices (email, par pending)
// son buckets auxiliares que se actualizan en la misma transacción.
package boltdb

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

var (
	bucketUsers         = []byte("users")
	bucketUsersByEmail  = []byte("users_by_email")
	bucketPets          = []byte("pets")
	bucketMatchRequests = []byte("match_requests")
	bucketPendingPairs  = []byte("match_requests_pending")
	bucketPlaydates     = []byte("playdates")
)

// Open abre (o crea) el archivo y asegura los buckets.
func Open(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{
			bucketUsers, bucketUsersByEmail, bucketPets,
			bucketMatchRequests, bucketPendingPairs, bucketPlaydates,
		} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bolt buckets: %w", err)
	}
	return db, nil
}

func putJSON(b *bolt.Bucket, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(id), data)
}

// getJSON devuelve ok=false si la key no existe.
func getJSON[T any](b *bolt.Bucket, id string) (T, bool, error) {
	var v T
	raw := b.Get([]byte(id))
	if raw == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

func scanAll[T any](b *bolt.Bucket, keep func(T) bool) ([]T, error) {
	out := make([]T, 0)
	err := b.ForEach(func(k, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

func countKeys(db *bolt.DB, bucket []byte) (int, error) {
	n := 0
	err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, v []byte) error {
			n++
			return nil
		})
	})
	return n, err
}
