package router

import (
	"net/http"
	"time"

	_ "pawpairs/docs"
	mem "pawpairs/internal/adapters/storage/memory"
	"pawpairs/internal/domain/matches"
	"pawpairs/internal/domain/pets"
	"pawpairs/internal/domain/playdates"
	"pawpairs/internal/domain/users"
	"pawpairs/internal/middleware"
	"pawpairs/internal/platform/idempotency"
	"pawpairs/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Repositories agrupa los adapters de storage elegidos en main.
type Repositories struct {
	Users     users.Repository
	Pets      pets.Repository
	Matches   matches.Repository
	Playdates playdates.Repository
}

// MemoryRepositories es el default para dev y tests.
func MemoryRepositories() Repositories {
	return Repositories{
		Users:     mem.NewUserRepo(),
		Pets:      mem.NewPetRepo(),
		Matches:   mem.NewMatchRepo(),
		Playdates: mem.NewPlaydateRepo(),
	}
}

type Options struct {
	Logger logger.Logger // nil => no-op

	// Repos nil => in-memory.
	Repos *Repositories

	// Idempotency nil => store en memoria.
	Idempotency    idempotency.Store
	IdempotencyTTL time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	repos := MemoryRepositories()
	if opts.Repos != nil {
		repos = *opts.Repos
	}
	idem := opts.Idempotency
	if idem == nil {
		idem = idempotency.NewMemoryStore()
	}
	ttl := opts.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	usersSvc := users.NewService(repos.Users, log)
	petsSvc := pets.NewService(repos.Pets, usersSvc, log)
	matchesSvc := matches.NewService(repos.Matches, petsSvc, log)
	playdatesSvc := playdates.NewService(repos.Playdates, matchesSvc, petsSvc, log)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc)
		pets.RegisterRoutes(api, petsSvc)

		// Los POST de matchrequests y playdates aceptan Idempotency-Key.
		api.Group(func(g chi.Router) {
			g.Use(middleware.Idempotency(idem, ttl, log))
			matches.RegisterRoutes(g, matchesSvc, playdates.MatchRoutes(playdatesSvc))
			playdates.RegisterRoutes(g, playdatesSvc)
		})
	})

	return r
}
