package playdates

import "time"

// Playdate es un snapshot: no guarda referencia al match request que la originó.
type Playdate struct {
	ID     string
	PetAID string
	PetBID string

	ScheduledAt  time.Time
	LocationName string
	Notes        string

	CreatedAt time.Time
}
