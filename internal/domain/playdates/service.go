package playdates

import (
	"context"
	"strings"
	"time"

	"pawpairs/internal/domain/matches"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = apperr.ErrInvalidInput
	ErrNotFound          = apperr.ErrNotFound
	ErrInvalidTransition = apperr.ErrInvalidTransition
)

const (
	maxLocationLen = 200
	maxNotesLen    = 1000
)

// MatchLookup lo implementa matches.Service.
type MatchLookup interface {
	GetByID(ctx context.Context, id string) (matches.MatchRequest, error)
}

type PetDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo    Repository
	matches MatchLookup
	pets    PetDirectory
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, matchLookup MatchLookup, pets PetDirectory, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		matches: matchLookup,
		pets:    pets,
		log:     log.With(map[string]any{"module": "playdates"}),
		now:     time.Now,
	}
}

type ScheduleInput struct {
	ScheduledAt  time.Time
	LocationName string
	Notes        string
}

type CreateInput struct {
	PetAID       string
	PetBID       string
	ScheduledAt  time.Time
	LocationName string
	Notes        string
}

type UpdateInput = ScheduleInput

// Schedule materializa una playdate desde un match request aceptado.
// No marca el match como consumido: llamadas repetidas crean más playdates.
func (s *Service) Schedule(ctx context.Context, matchRequestID string, in ScheduleInput) (Playdate, error) {
	p := Playdate{}
	if err := applyDetails(&p, in); err != nil {
		return Playdate{}, err
	}

	m, err := s.matches.GetByID(ctx, strings.TrimSpace(matchRequestID))
	if err != nil {
		return Playdate{}, err
	}
	if m.Status != matches.StatusAccepted {
		s.log.Warn("match request not accepted", map[string]any{"match_request_id": m.ID, "status": string(m.Status)})
		return Playdate{}, ErrInvalidTransition
	}

	p.PetAID = m.FromPetID
	p.PetBID = m.ToPetID
	// Los pets pueden haberse borrado después de aceptar.
	if err := s.ensurePets(ctx, p.PetAID, p.PetBID); err != nil {
		return Playdate{}, err
	}

	if err := s.create(ctx, &p); err != nil {
		return Playdate{}, err
	}
	s.log.Info("scheduled playdate", map[string]any{"playdate_id": p.ID, "match_request_id": m.ID})
	return p, nil
}

// Create da de alta una playdate ad hoc, sin match request.
func (s *Service) Create(ctx context.Context, in CreateInput) (Playdate, error) {
	p := Playdate{
		PetAID: strings.TrimSpace(in.PetAID),
		PetBID: strings.TrimSpace(in.PetBID),
	}
	if p.PetAID == "" || p.PetBID == "" {
		return Playdate{}, apperr.Invalid("pet_a_id and pet_b_id are required")
	}
	if p.PetAID == p.PetBID {
		return Playdate{}, apperr.Invalid("a playdate needs two different pets")
	}
	if err := applyDetails(&p, ScheduleInput{
		ScheduledAt:  in.ScheduledAt,
		LocationName: in.LocationName,
		Notes:        in.Notes,
	}); err != nil {
		return Playdate{}, err
	}
	if err := s.ensurePets(ctx, p.PetAID, p.PetBID); err != nil {
		return Playdate{}, err
	}

	if err := s.create(ctx, &p); err != nil {
		return Playdate{}, err
	}
	s.log.Info("created playdate", map[string]any{"playdate_id": p.ID})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Playdate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Playdate{}, apperr.NotFound("playdate")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, skip, take int) ([]Playdate, error) {
	return s.repo.List(ctx, skip, take)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Update solo toca fecha, lugar y notas; los pets no cambian.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Playdate, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Playdate{}, err
	}
	if err := applyDetails(&current, in); err != nil {
		return Playdate{}, err
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return Playdate{}, err
	}
	s.log.Info("updated playdate", map[string]any{"playdate_id": current.ID})
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) create(ctx context.Context, p *Playdate) error {
	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	return s.repo.Create(ctx, *p)
}

func (s *Service) ensurePets(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		ok, err := s.pets.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("pet " + id)
		}
	}
	return nil
}

// applyDetails valida y normaliza. ScheduledAt no se ajusta al futuro.
func applyDetails(p *Playdate, in ScheduleInput) error {
	if in.ScheduledAt.IsZero() {
		return apperr.Invalid("scheduled_at required")
	}
	loc := strings.TrimSpace(in.LocationName)
	if loc == "" || len(loc) > maxLocationLen {
		return apperr.Invalid("location_name required (max %d chars)", maxLocationLen)
	}
	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLen {
		return apperr.Invalid("notes too long (max %d chars)", maxNotesLen)
	}

	p.ScheduledAt = in.ScheduledAt.UTC()
	p.LocationName = loc
	p.Notes = notes
	return nil
}
