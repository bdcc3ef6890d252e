package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account. ProviderID links the row to the identity
// provider subject from the verified token.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	ProviderID *string   `json:"provider_id,omitempty"`
	Name       *string   `json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
