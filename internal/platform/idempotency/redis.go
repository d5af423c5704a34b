package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pawpairs:idem:"

// RedisStore comparte las keys entre réplicas. La reserva es un SET NX EX.
type RedisStore struct {
	rdb *goredis.Client
}

// NewRedisStore conecta y hace ping antes de devolver el store.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (Record, bool, error) {
	raw, err := json.Marshal(Record{Fingerprint: fingerprint})
	if err != nil {
		return Record{}, false, err
	}

	ok, err := s.rdb.SetNX(ctx, redisKeyPrefix+key, raw, ttl).Result()
	if err != nil {
		return Record{}, false, fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return Record{}, true, nil
	}

	existing, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		// Venció entre el SETNX y el GET: se reintenta una vez.
		ok, err = s.rdb.SetNX(ctx, redisKeyPrefix+key, raw, ttl).Result()
		if err != nil {
			return Record{}, false, fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return Record{}, true, nil
		}
		return Record{}, false, ErrInFlight
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(existing, &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode idempotency record: %w", err)
	}
	return rec, false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, rec Record, ttl time.Duration) error {
	rec.Completed = true
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
