package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered customer of the shop. The invoice layer only reads
// users; HashedPassword is loaded for completeness and never projected.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
