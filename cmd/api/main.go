package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawpairs/internal/adapters/storage/boltdb"
	pg "pawpairs/internal/adapters/storage/postgres"
	"pawpairs/internal/config"
	"pawpairs/internal/platform/idempotency"
	"pawpairs/internal/platform/logger"
	"pawpairs/internal/router"

	"golang.org/x/sync/errgroup"
)

// @title			PawPairs API
// @version		1.0
// @description	Match requests entre mascotas, búsqueda de candidatos y agenda de playdates.
// @BasePath		/api
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepos.Close() }()

	idem, closeIdem, err := openIdempotency(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeIdem.Close() }()

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: router.NewRouter(router.Options{
			Logger:         log,
			Repos:          &repos,
			Idempotency:    idem,
			IdempotencyTTL: cfg.Idempotency.TTL,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":    cfg.HTTP.Addr,
			"storage": string(cfg.Storage.Driver),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

func openRepositories(ctx context.Context, cfg config.Config) (router.Repositories, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := pg.Open(cfg.Storage.DSN)
		if err != nil {
			return router.Repositories{}, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := pg.ApplySchema(ctx, db); err != nil {
			_ = db.Close()
			return router.Repositories{}, nil, err
		}
		return router.Repositories{
			Users:     pg.NewUsersRepo(db),
			Pets:      pg.NewPetsRepo(db),
			Matches:   pg.NewMatchesRepo(db),
			Playdates: pg.NewPlaydatesRepo(db),
		}, db, nil

	case config.StorageBolt:
		db, err := boltdb.Open(cfg.Storage.BoltPath)
		if err != nil {
			return router.Repositories{}, nil, fmt.Errorf("bolt: %w", err)
		}
		return router.Repositories{
			Users:     boltdb.NewUsersRepo(db),
			Pets:      boltdb.NewPetsRepo(db),
			Matches:   boltdb.NewMatchesRepo(db),
			Playdates: boltdb.NewPlaydatesRepo(db),
		}, db, nil

	default:
		return router.MemoryRepositories(), nopCloser, nil
	}
}

// openIdempotency usa Redis si hay REDIS_ADDR; si no, el store en memoria.
func openIdempotency(ctx context.Context, cfg config.Config) (idempotency.Store, io.Closer, error) {
	if cfg.Idempotency.RedisAddr == "" {
		return idempotency.NewMemoryStore(), nopCloser, nil
	}
	store, err := idempotency.NewRedisStore(ctx, cfg.Idempotency.RedisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	return store, store, nil
}
