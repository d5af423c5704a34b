package playdates

import "context"

type Repository interface {
	Create(ctx context.Context, p Playdate) error
	Update(ctx context.Context, p Playdate) error
	GetByID(ctx context.Context, id string) (Playdate, error)
	// List ordena por ScheduledAt desc.
	List(ctx context.Context, skip, take int) ([]Playdate, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
