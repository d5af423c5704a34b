package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = apperr.ErrInvalidInput
	ErrNotFound          = apperr.ErrNotFound
	ErrConflict          = apperr.ErrConflict
	ErrInvalidTransition = apperr.ErrInvalidTransition

	ErrDuplicatePending = fmt.Errorf("%w: a pending match request already exists for these pets", apperr.ErrConflict)
)

// PetDirectory es lo único que este módulo necesita de pets.
type PetDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
	pets PetDirectory
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, pets PetDirectory, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		log:  log.With(map[string]any{"module": "matches"}),
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, fromPetID, toPetID string) (MatchRequest, error) {
	fromPetID = strings.TrimSpace(fromPetID)
	toPetID = strings.TrimSpace(toPetID)

	if fromPetID == "" || toPetID == "" {
		return MatchRequest{}, apperr.Invalid("from_pet_id and to_pet_id are required")
	}
	// Antes de cualquier lookup.
	if fromPetID == toPetID {
		return MatchRequest{}, apperr.Invalid("a pet cannot be matched with itself")
	}

	for _, id := range []string{fromPetID, toPetID} {
		ok, err := s.pets.Exists(ctx, id)
		if err != nil {
			return MatchRequest{}, err
		}
		if !ok {
			return MatchRequest{}, apperr.NotFound("pet " + id)
		}
	}

	m := MatchRequest{
		ID:        uuid.NewString(),
		FromPetID: fromPetID,
		ToPetID:   toPetID,
		Status:    StatusPending,
		CreatedAt: s.now().UTC(),
	}

	s.log.Info("creating match request", map[string]any{"from_pet_id": fromPetID, "to_pet_id": toPetID})
	if err := s.repo.CreatePending(ctx, m); err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn("duplicate pending match request", map[string]any{"from_pet_id": fromPetID, "to_pet_id": toPetID})
		}
		return MatchRequest{}, err
	}
	s.log.Info("created match request", map[string]any{"match_request_id": m.ID})
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (MatchRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MatchRequest{}, apperr.NotFound("match request")
	}
	return s.repo.GetByID(ctx, id)
}

// List no clampa take; eso lo hace paging en el handler.
func (s *Service) List(ctx context.Context, skip, take int) ([]MatchRequest, error) {
	return s.repo.List(ctx, skip, take)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) ListIncoming(ctx context.Context, toPetID string) ([]MatchRequest, error) {
	return s.listBy(ctx, Filter{ToPetID: strings.TrimSpace(toPetID)})
}

func (s *Service) ListOutgoing(ctx context.Context, fromPetID string) ([]MatchRequest, error) {
	return s.listBy(ctx, Filter{FromPetID: strings.TrimSpace(fromPetID)})
}

func (s *Service) ListPendingIncoming(ctx context.Context, toPetID string) ([]MatchRequest, error) {
	return s.listBy(ctx, Filter{ToPetID: strings.TrimSpace(toPetID), Status: StatusPending})
}

func (s *Service) ListPendingOutgoing(ctx context.Context, fromPetID string) ([]MatchRequest, error) {
	return s.listBy(ctx, Filter{FromPetID: strings.TrimSpace(fromPetID), Status: StatusPending})
}

func (s *Service) listBy(ctx context.Context, f Filter) ([]MatchRequest, error) {
	// Un pet id vacío no debe degenerar en "listar todo".
	if f.FromPetID == "" && f.ToPetID == "" {
		return []MatchRequest{}, nil
	}
	return s.repo.ListBy(ctx, f)
}

func (s *Service) Accept(ctx context.Context, id string) (MatchRequest, error) {
	return s.transition(ctx, id, StatusAccepted)
}

func (s *Service) Reject(ctx context.Context, id string) (MatchRequest, error) {
	return s.transition(ctx, id, StatusRejected)
}

func (s *Service) transition(ctx context.Context, id string, to Status) (MatchRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MatchRequest{}, apperr.NotFound("match request")
	}
	if !StatusPending.CanTransitionTo(to) {
		return MatchRequest{}, ErrInvalidTransition
	}

	m, err := s.repo.Transition(ctx, id, StatusPending, to)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			s.log.Warn("match request is not pending", map[string]any{"match_request_id": id, "target": string(to)})
		}
		return MatchRequest{}, err
	}
	s.log.Info("match request "+string(to), map[string]any{"match_request_id": id})
	return m, nil
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
	if !ok {
		s.log.Warn("match request not found for deletion", map[string]any{"match_request_id": id})
	}
	return ok, nil
}
