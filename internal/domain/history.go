package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is append-only. One row is written per successful transition.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RequestID uuid.UUID `json:"request_id" db:"request_id"`
	Status    Status    `json:"status" db:"status"`
	Message   string    `json:"message" db:"message"`
	ActorID   uuid.UUID `json:"actor_id" db:"actor_id"`
	ActorName *string   `json:"actor_name,omitempty" db:"actor_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
