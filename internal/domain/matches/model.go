package matches

import "time"

// Status del ciclo de vida. pending es inicial; accepted y rejected son terminales.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo: solo pending -> accepted | rejected.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.Terminal()
}

// MatchRequest es una propuesta dirigida FromPetID -> ToPetID.
type MatchRequest struct {
	ID        string
	FromPetID string
	ToPetID   string
	Status    Status
	CreatedAt time.Time
}
