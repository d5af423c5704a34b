package users

import "time"

// User es el dueño de una o más mascotas.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	City      string
	CreatedAt time.Time
}
