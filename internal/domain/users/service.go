package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = apperr.ErrInvalidInput
	ErrNotFound     = apperr.ErrNotFound
	ErrConflict     = apperr.ErrConflict
)

const (
	maxNameLen  = 100
	maxEmailLen = 255
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"module": "users"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	City      string
}

type UpdateInput struct {
	FirstName string
	LastName  string
	City      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	u := User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		City:      strings.TrimSpace(in.City),
	}
	if err := validateNames(u.FirstName, u.LastName, u.City); err != nil {
		return User{}, err
	}
	if u.Email == "" || len(u.Email) > maxEmailLen {
		return User{}, apperr.Invalid("email required (max %d chars)", maxEmailLen)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return User{}, apperr.Invalid("email is not valid")
	}

	u.ID = uuid.NewString()
	u.CreatedAt = s.now().UTC()

	s.log.Info("creating user", map[string]any{"email": u.Email})
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn("email already registered", map[string]any{"email": u.Email})
		}
		return User{}, err
	}
	s.log.Info("created user", map[string]any{"user_id": u.ID})
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, apperr.NotFound("user")
	}
	return s.repo.GetByID(ctx, id)
}

// Exists lo consume pets para validar el owner sin importar este paquete en sentido inverso.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Service) List(ctx context.Context, skip, take int) ([]User, error) {
	return s.repo.List(ctx, skip, take)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	current.FirstName = strings.TrimSpace(in.FirstName)
	current.LastName = strings.TrimSpace(in.LastName)
	current.City = strings.TrimSpace(in.City)
	if err := validateNames(current.FirstName, current.LastName, current.City); err != nil {
		return User{}, err
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	s.log.Info("updated user", map[string]any{"user_id": current.ID})
	return current, nil
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
		s.log.Warn("user not found for deletion", map[string]any{"user_id": id})
	}
	return ok, nil
}

func validateNames(first, last, city string) error {
	if first == "" || len(first) > maxNameLen {
		return apperr.Invalid("first_name required (max %d chars)", maxNameLen)
	}
	if last == "" || len(last) > maxNameLen {
		return apperr.Invalid("last_name required (max %d chars)", maxNameLen)
	}
	if city == "" || len(city) > maxNameLen {
		return apperr.Invalid("city required (max %d chars)", maxNameLen)
	}
	return nil
}
