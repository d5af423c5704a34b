package users

import "context"

type Repository interface {
	// Create devuelve un error que envuelve apperr.ErrConflict si el email ya existe.
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context, skip, take int) ([]User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
