package report

import (
	"time"

	"github.com/google/uuid"
)

// Report pairs a user's submitted symptoms with the generated assessment.
// Reports are immutable once created.
type Report struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"-" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	Symptoms   string    `json:"symptoms" db:"symptoms"`
	Assessment string    `json:"assessment" db:"assessment"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Summary is what a successful save echoes back; the full symptoms and
// assessment are never returned on create.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}
